package meeting

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/samber/lo"
)

// Status represents the lifecycle status of a meeting
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// in_progress -> in_progress is a resume and leaves startedAt untouched.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusNotStarted:
		return target == StatusInProgress || target == StatusCompleted
	case StatusInProgress:
		return target == StatusInProgress || target == StatusCompleted
	case StatusCompleted:
		return false // Terminal state
	}
	return false
}

// Scheduling defaults applied on creation
const (
	DefaultTime       = "09:00"
	DefaultDuration   = "1h"
	DefaultType       = "Gerencial"
	DefaultRecurrence = "never"
	FallbackMember    = "GM"
	DateLayout        = "2006-01-02"
)

// Meeting is the aggregate root of the meeting lifecycle
type Meeting struct {
	shared.BaseAggregateRoot
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Date                  string            `json:"date"`
	Time                  string            `json:"time"`
	Duration              string            `json:"duration"`
	Type                  string            `json:"type"`
	Unit                  string            `json:"unit"`
	Department            string            `json:"department"`
	Indic                 string            `json:"indic"`
	Plan                  string            `json:"plan"`
	Members               []string          `json:"members"`
	Responsible           string            `json:"responsible"`
	Status                Status            `json:"status"`
	Recurrence            string            `json:"recurrence"`
	Active                bool              `json:"active"`
	StartedAt             *time.Time        `json:"startedAt,omitempty"`
	CompletedAt           *time.Time        `json:"completedAt,omitempty"`
	ActualDurationSeconds *int64            `json:"actualDurationSeconds,omitempty"`
	PresentMembers        []string          `json:"presentMembers"`
	UserDirectory         map[string]string `json:"userDirectory"`
	Highlights            []Highlight       `json:"highlights"`
	Pautas                []Pauta           `json:"pautas"`
	Tasks                 []Task            `json:"tasks"`
	Notes                 []Note            `json:"notes"`
	Attachments           []Attachment      `json:"attachments"`
}

// NewMeetingParams carries the creation input. Member keys must already be resolved.
type NewMeetingParams struct {
	Name          string
	Description   string
	Date          string
	Time          string
	Duration      string
	Type          string
	Unit          string
	Department    string
	Indic         string
	Plan          string
	Members       []string
	Responsible   string
	Recurrence    string
	Active        *bool
	UserDirectory map[string]string
}

// NewMeeting creates a not_started meeting with scheduling defaults filled in
func NewMeeting(p NewMeetingParams) (*Meeting, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, shared.NewBadRequestError("O nome da reunião é obrigatório")
	}

	responsible := identity.NormalizeKey(p.Responsible)
	members := normalizeKeys(p.Members)
	if len(members) == 0 {
		members = []string{lo.Ternary(responsible != "", responsible, FallbackMember)}
	}
	if responsible == "" {
		responsible = members[0]
	}

	m := &Meeting{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       p.Description,
		Date:              lo.Ternary(p.Date != "", p.Date, time.Now().Format(DateLayout)),
		Time:              lo.Ternary(p.Time != "", p.Time, DefaultTime),
		Duration:          lo.Ternary(p.Duration != "", p.Duration, DefaultDuration),
		Type:              lo.Ternary(p.Type != "", p.Type, DefaultType),
		Unit:              p.Unit,
		Department:        p.Department,
		Indic:             p.Indic,
		Plan:              p.Plan,
		Members:           members,
		Responsible:       responsible,
		Status:            StatusNotStarted,
		Recurrence:        lo.Ternary(p.Recurrence != "", p.Recurrence, DefaultRecurrence),
		Active:            p.Active == nil || *p.Active,
		PresentMembers:    []string{},
		UserDirectory:     mergeDirectory(nil, p.UserDirectory),
		Highlights:        []Highlight{},
		Pautas:            []Pauta{},
		Tasks:             []Task{},
		Notes:             []Note{},
		Attachments:       []Attachment{},
	}

	m.AddDomainEvent(NewMeetingCreatedEvent(m))

	return m, nil
}

// Clone returns a deep copy without pending domain events
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	c := *m
	c.ClearDomainEvents()
	c.Members = slices.Clone(m.Members)
	c.PresentMembers = slices.Clone(m.PresentMembers)
	c.UserDirectory = maps.Clone(m.UserDirectory)
	c.Highlights = slices.Clone(m.Highlights)
	c.Pautas = slices.Clone(m.Pautas)
	c.Tasks = slices.Clone(m.Tasks)
	c.Notes = slices.Clone(m.Notes)
	c.Attachments = slices.Clone(m.Attachments)
	if m.StartedAt != nil {
		c.StartedAt = lo.ToPtr(*m.StartedAt)
	}
	if m.CompletedAt != nil {
		c.CompletedAt = lo.ToPtr(*m.CompletedAt)
	}
	if m.ActualDurationSeconds != nil {
		c.ActualDurationSeconds = lo.ToPtr(*m.ActualDurationSeconds)
	}
	return &c
}

// Normalize repairs records loaded from storage: nil collections become empty,
// stored keys are uppercased and an empty member list falls back to the responsible.
func (m *Meeting) Normalize() {
	m.Members = normalizeKeys(m.Members)
	m.Responsible = identity.NormalizeKey(m.Responsible)
	if len(m.Members) == 0 {
		m.Members = []string{lo.Ternary(m.Responsible != "", m.Responsible, FallbackMember)}
	}
	if m.Responsible == "" {
		m.Responsible = m.Members[0]
	}
	if !m.Status.IsValid() {
		m.Status = StatusNotStarted
	}
	m.PresentMembers = lo.Ternary(m.PresentMembers == nil, []string{}, normalizeKeys(m.PresentMembers))
	if m.UserDirectory == nil {
		m.UserDirectory = map[string]string{}
	}
	if m.Highlights == nil {
		m.Highlights = []Highlight{}
	}
	if m.Pautas == nil {
		m.Pautas = []Pauta{}
	}
	if m.Tasks == nil {
		m.Tasks = []Task{}
	}
	if m.Notes == nil {
		m.Notes = []Note{}
	}
	if m.Attachments == nil {
		m.Attachments = []Attachment{}
	}
}

// IsCompleted reports whether the meeting reached its terminal state
func (m *Meeting) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// HasMember reports whether key is listed in members
func (m *Meeting) HasMember(key string) bool {
	key = identity.NormalizeKey(key)
	return key != "" && lo.ContainsBy(m.Members, func(member string) bool {
		return identity.NormalizeKey(member) == key
	})
}

// Start moves the meeting to in_progress.
// startedAt is only set the first time; present members are replaced when
// given and the directory delta is merged.
func (m *Meeting) Start(caller identity.ParticipantKey, presentMembers []string, directory map[string]string, at time.Time) error {
	if caller.IsAnonymous() {
		return shared.NewBadRequestError("Informe o usuário para iniciar a reunião")
	}
	if !m.CanAccess(caller) {
		return shared.NewForbiddenError(ReasonNotMember, "Sem permissão para iniciar esta reunião")
	}
	if !m.IsResponsible(caller) {
		return shared.NewForbiddenError(ReasonNotResponsible, "Somente o responsável pode iniciar esta reunião")
	}
	if !m.Status.CanTransitionTo(StatusInProgress) {
		return errMeetingClosed()
	}

	m.Status = StatusInProgress
	if m.StartedAt == nil {
		m.StartedAt = lo.ToPtr(at)
	}
	if presentMembers != nil {
		m.PresentMembers = normalizeKeys(presentMembers)
	}
	m.UserDirectory = mergeDirectory(m.UserDirectory, directory)
	m.Touch()

	m.AddDomainEvent(NewMeetingStartedEvent(m, caller.String()))

	return nil
}

// Complete moves the meeting to its terminal state.
// durationSeconds is recorded only when it is a finite, non-negative number.
func (m *Meeting) Complete(caller identity.ParticipantKey, durationSeconds *float64, at time.Time) error {
	if !m.CanAccess(caller) {
		return shared.NewForbiddenError(ReasonNotMember, "Sem permissão para concluir esta reunião")
	}
	if !m.Status.CanTransitionTo(StatusCompleted) {
		return errMeetingClosed()
	}

	m.Status = StatusCompleted
	m.CompletedAt = lo.ToPtr(at)
	if d := durationSeconds; d != nil && !math.IsNaN(*d) && !math.IsInf(*d, 0) && *d >= 0 {
		m.ActualDurationSeconds = lo.ToPtr(int64(math.Floor(*d)))
	}
	m.Touch()

	m.AddDomainEvent(NewMeetingCompletedEvent(m, caller.String()))

	return nil
}

// Remove authorizes deletion and records the removal event
func (m *Meeting) Remove(caller identity.ParticipantKey) error {
	if !m.CanAccess(caller) {
		return shared.NewForbiddenError(ReasonNotMember, "Sem permissão para excluir esta reunião")
	}

	m.AddDomainEvent(NewMeetingRemovedEvent(m, caller.String()))

	return nil
}

// ElapsedLabel formats actualDurationSeconds as HH:MM:SS
func (m *Meeting) ElapsedLabel() string {
	var total int64
	if m.ActualDurationSeconds != nil {
		total = *m.ActualDurationSeconds
	}
	return FormatElapsed(total)
}

// FormatElapsed formats whole seconds as HH:MM:SS
func FormatElapsed(total int64) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func errMeetingClosed() error {
	return shared.NewForbiddenError(ReasonMeetingClosed, "Reunião já finalizada")
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if n := identity.NormalizeKey(k); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func mergeDirectory(prev, delta map[string]string) map[string]string {
	out := make(map[string]string, len(prev)+len(delta))
	maps.Copy(out, prev)
	for k, v := range delta {
		if key := identity.NormalizeKey(k); key != "" {
			out[key] = v
		}
	}
	return out
}
