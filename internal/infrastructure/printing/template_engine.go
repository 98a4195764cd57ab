package printing

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/samber/lo"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	TemplateMinutes          = "minutes.html"
	TemplateMeetingCompleted = "meeting_completed.html"
	TemplateMeetingCreated   = "meeting_created.html"
)

// Email headlines of the meeting summary template
const (
	HeadlineCreated  = "Nova reunião agendada"
	HeadlineReminder = "Lembrete: reunião hoje"
)

// TemplateEngine renders the embedded document and email templates.
// It uses Go's html/template package so every field is escaped.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates. It panics on a malformed
// template, which can only happen at build time.
func NewTemplateEngine() *TemplateEngine {
	funcMap := template.FuncMap{
		"join":    strings.Join,
		"section": section,
	}
	return &TemplateEngine{
		templates: template.Must(template.New("printing").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")),
	}
}

// RenderMinutes renders the minutes document as a full HTML page
func (e *TemplateEngine) RenderMinutes(data MinutesData) (string, error) {
	return e.execute(TemplateMinutes, data)
}

// MeetingEmailData is the view model of the meeting emails
type MeetingEmailData struct {
	Headline    string
	Name        string
	Date        string
	Time        string
	Duration    string
	Type        string
	Responsible string
	Members     []string
	Description string
	Link        string
}

// BuildMeetingEmail assembles the email view model; link points at the web app
func BuildMeetingEmail(m *meeting.Meeting, names NameResolver, link string) MeetingEmailData {
	duration := lo.Ternary(m.Duration != "", m.Duration, "-")
	if m.ActualDurationSeconds != nil {
		duration = m.ElapsedLabel()
	}
	members := names.Names(m.Members)
	if len(members) == 0 {
		members = []string{"-"}
	}
	return MeetingEmailData{
		Headline:    HeadlineCreated,
		Name:        lo.Ternary(m.Name != "", m.Name, "Reunião"),
		Date:        DateLabel(m.Date),
		Time:        lo.Ternary(m.Time != "", m.Time, "-"),
		Duration:    duration,
		Type:        lo.Ternary(m.Type != "", m.Type, "-"),
		Responsible: names.Name(m.Responsible),
		Members:     members,
		Description: m.Description,
		Link:        lo.Ternary(link != "", link, "#"),
	}
}

// RenderMeetingCompleted renders the email body sent with the minutes
func (e *TemplateEngine) RenderMeetingCompleted(data MeetingEmailData) (string, error) {
	return e.execute(TemplateMeetingCompleted, data)
}

// RenderMeetingSummary renders the scheduled-meeting email; Headline picks the wording
func (e *TemplateEngine) RenderMeetingSummary(data MeetingEmailData) (string, error) {
	if data.Headline == "" {
		data.Headline = HeadlineCreated
	}
	return e.execute(TemplateMeetingCreated, data)
}

func (e *TemplateEngine) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

type sectionView struct {
	Items []MinutesItem
	Empty string
}

func section(items []MinutesItem, empty string) sectionView {
	return sectionView{Items: items, Empty: empty}
}
