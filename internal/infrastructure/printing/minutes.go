package printing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/samber/lo"
)

// EmptySection is printed for sections without entries
const EmptySection = "Sem registros"

const maxFileNameRunes = 80

var unsafeFileNameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// Item tones drive the bullet colour
const (
	ToneDone    = "done"
	TonePending = "pending"
	ToneMuted   = "muted"
)

// MinutesItem is one bullet of a minutes section
type MinutesItem struct {
	Text string
	Tone string
}

// MinutesData is the view model of the minutes document
type MinutesData struct {
	Name           string
	Unit           string
	Department     string
	Responsible    string
	Date           string
	Time           string
	Duration       string
	Highlights     []MinutesItem
	PendingPautas  []MinutesItem
	Tasks          []MinutesItem
	Notes          []MinutesItem
	PresentMembers []string
	EmptyLabel     string
}

// NameResolver resolves participant keys to display names.
// Lookup order is the meeting's own directory, then the participant list,
// then the raw key.
type NameResolver struct {
	directory    map[string]string
	participants []identity.Participant
}

// NewNameResolver creates a resolver for one meeting
func NewNameResolver(m *meeting.Meeting, participants []identity.Participant) NameResolver {
	return NameResolver{directory: m.UserDirectory, participants: participants}
}

// Name returns the display name for key, or "-" for an empty key
func (r NameResolver) Name(key string) string {
	k := identity.NormalizeKey(key)
	if k == "" {
		return "-"
	}
	if name := r.directory[k]; name != "" {
		return name
	}
	if p, ok := identity.FindByKey(r.participants, k); ok && p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(key)
}

// Names resolves every key
func (r NameResolver) Names(keys []string) []string {
	return lo.Map(keys, func(k string, _ int) string { return r.Name(k) })
}

// BuildMinutes assembles the minutes view model.
// Present members fall back to the member list when nobody was marked present.
func BuildMinutes(m *meeting.Meeting, names NameResolver) MinutesData {
	present := m.PresentMembers
	if len(present) == 0 {
		present = m.Members
	}

	duration := lo.Ternary(m.Duration != "", m.Duration, "-")
	if m.ActualDurationSeconds != nil {
		duration = m.ElapsedLabel()
	}

	highlights := lo.FilterMap(m.Highlights, func(h meeting.Highlight, _ int) (MinutesItem, bool) {
		return MinutesItem{Text: h.Text, Tone: lo.Ternary(h.Checked, ToneDone, ToneMuted)}, h.Text != ""
	})
	pautas := lo.FilterMap(m.Pautas, func(p meeting.Pauta, _ int) (MinutesItem, bool) {
		text := p.Text
		if p.Description != "" {
			text += " - " + p.Description
		}
		return MinutesItem{Text: strings.TrimSpace(text), Tone: TonePending}, !p.Checked && strings.TrimSpace(text) != ""
	})
	tasks := lo.FilterMap(m.Tasks, func(t meeting.Task, _ int) (MinutesItem, bool) {
		return MinutesItem{Text: t.Text, Tone: lo.Ternary(t.Checked, ToneDone, TonePending)}, t.Text != ""
	})
	notes := lo.FilterMap(m.Notes, func(n meeting.Note, _ int) (MinutesItem, bool) {
		return MinutesItem{Text: n.Text, Tone: ToneDone}, n.Text != ""
	})

	return MinutesData{
		Name:           lo.Ternary(m.Name != "", m.Name, "Reunião"),
		Unit:           lo.Ternary(m.Unit != "", m.Unit, "-"),
		Department:     lo.Ternary(m.Department != "", m.Department, "-"),
		Responsible:    names.Name(m.Responsible),
		Date:           DateLabel(m.Date),
		Time:           lo.Ternary(m.Time != "", m.Time, "-"),
		Duration:       duration,
		Highlights:     highlights,
		PendingPautas:  pautas,
		Tasks:          tasks,
		Notes:          notes,
		PresentMembers: names.Names(present),
		EmptyLabel:     EmptySection,
	}
}

// PresentTitle is the heading of the attendance section
func (d MinutesData) PresentTitle() string {
	return fmt.Sprintf("%d membros presentes nesta reunião", len(d.PresentMembers))
}

// DateLabel formats a YYYY-MM-DD date as dd/mm/yyyy.
// Empty input gives "-"; unparseable input is returned as is.
func DateLabel(date string) string {
	if date == "" {
		return "-"
	}
	t, err := time.Parse(meeting.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// MinutesFileName is the attachment name of the minutes PDF
func MinutesFileName(m *meeting.Meeting) string {
	name := lo.Ternary(m.Name != "", m.Name, "Reunião")
	safe := unsafeFileNameChars.ReplaceAllString(name, "-")
	if runes := []rune(safe); len(runes) > maxFileNameRunes {
		safe = string(runes[:maxFileNameRunes])
	}
	return fmt.Sprintf("Ata - %s - %s.pdf", safe, m.Date)
}

// MinutesSubject is the email subject announcing a completed meeting
func MinutesSubject(m *meeting.Meeting) string {
	return fmt.Sprintf("Reunião finalizada: %s - %s", lo.Ternary(m.Name != "", m.Name, "Reunião"), DateLabel(m.Date))
}
