// Package minutes renders meeting minutes and delivers meeting email.
package minutes

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/infrastructure/printing"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Metric results of a minutes delivery
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// ErrNoRecipients is returned when no member has an email address
var ErrNoRecipients = errors.New("nenhum destinatário com email cadastrado")

// ErrRendererUnavailable is returned when PDF rendering is not configured
var ErrRendererUnavailable = errors.New("geração de PDF indisponível")

// Archive stores generated minutes
type Archive interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// EmitterDeps are the collaborators of an Emitter. Renderer and Archive may be nil.
type EmitterDeps struct {
	Directory identity.Directory
	Settings  *SettingsStore
	Sender    mail.Sender
	Renderer  printing.PDFRenderer
	Templates *printing.TemplateEngine
	Archive   Archive
	Metrics   *telemetry.Metrics
	Logger    *zap.Logger
	BaseURL   string
}

// Emitter builds the minutes of a meeting and emails them
type Emitter struct {
	directory identity.Directory
	settings  *SettingsStore
	sender    mail.Sender
	renderer  printing.PDFRenderer
	templates *printing.TemplateEngine
	archive   Archive
	metrics   *telemetry.Metrics
	logger    *zap.Logger
	baseURL   string
}

// NewEmitter creates a new Emitter
func NewEmitter(d EmitterDeps) *Emitter {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Templates == nil {
		d.Templates = printing.NewTemplateEngine()
	}
	if d.Settings == nil {
		d.Settings = NewSettingsStore(mail.Settings{})
	}
	return &Emitter{
		directory: d.Directory,
		settings:  d.Settings,
		sender:    d.Sender,
		renderer:  d.Renderer,
		templates: d.Templates,
		archive:   d.Archive,
		metrics:   d.Metrics,
		logger:    d.Logger.Named("minutes"),
		baseURL:   d.BaseURL,
	}
}

// Notify emails the minutes of a completed meeting to its participants.
// Every failure is reported in the outcome.
func (e *Emitter) Notify(ctx context.Context, m *meeting.Meeting) meeting.NotifyOutcome {
	ctx, span := telemetry.StartServiceSpan(ctx, "minutes", "notify",
		telemetry.WithAttribute(telemetry.SpanAttrMeetingID, m.ID.String()))
	defer span.End()

	if !e.settings.Get().Configured() {
		e.metrics.MinutesEmail(ResultSkipped)
		return meeting.NotifyFailed(mail.ErrNotConfigured.Error())
	}
	recipients := e.Recipients(m)
	if len(recipients) == 0 {
		e.metrics.MinutesEmail(ResultSkipped)
		return meeting.NotifyFailed(ErrNoRecipients.Error())
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrRecipients, len(recipients))

	pdf, err := e.SendMinutes(ctx, m, recipients)
	if err != nil {
		telemetry.RecordError(span, err)
		e.metrics.MinutesEmail(ResultFailed)
		return meeting.NotifyFailed(err.Error())
	}
	e.metrics.MinutesEmail(ResultSent)

	e.archiveMinutes(ctx, m, pdf)
	return meeting.NotifyOutcome{EmailSent: true}
}

// Recipients returns the email addresses of members and present members
func (e *Emitter) Recipients(m *meeting.Meeting) []string {
	participants := e.participants()
	keys := lo.Uniq(append(append([]string{}, m.Members...), m.PresentMembers...))
	emails := lo.FilterMap(keys, func(key string, _ int) (string, bool) {
		p, ok := identity.FindByKey(participants, key)
		email := strings.ToLower(strings.TrimSpace(p.Email))
		return email, ok && email != ""
	})
	return lo.Uniq(emails)
}

// SendMinutes renders the minutes and emails them to to. It returns the PDF.
func (e *Emitter) SendMinutes(ctx context.Context, m *meeting.Meeting, to []string) ([]byte, error) {
	body, err := e.CompletedEmailHTML(m)
	if err != nil {
		return nil, err
	}
	pdf, err := e.MinutesPDF(ctx, m)
	if err != nil {
		return nil, err
	}
	msg := &mail.Message{
		To:      to,
		Subject: printing.MinutesSubject(m),
		HTML:    body,
		Attachments: []mail.Attachment{{
			Name:        printing.MinutesFileName(m),
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	if err := e.send(ctx, msg); err != nil {
		return nil, err
	}
	return pdf, nil
}

// SendSummary emails the meeting details with the given headline.
// to is merged with the member addresses.
func (e *Emitter) SendSummary(ctx context.Context, m *meeting.Meeting, headline string, to []string) error {
	recipients := lo.Uniq(lo.Filter(append(normalizeAddresses(to), e.Recipients(m)...), func(s string, _ int) bool {
		return s != ""
	}))
	if len(recipients) == 0 {
		return ErrNoRecipients
	}
	data := printing.BuildMeetingEmail(m, e.names(m), e.baseURL)
	data.Headline = headline
	body, err := e.templates.RenderMeetingSummary(data)
	if err != nil {
		return err
	}
	return e.send(ctx, &mail.Message{
		To:      recipients,
		Subject: SummarySubject(headline, m),
		HTML:    body,
	})
}

// Send delivers an arbitrary message with the current settings
func (e *Emitter) Send(ctx context.Context, msg *mail.Message) error {
	return e.send(ctx, msg)
}

// CompletedEmailHTML renders the body of the minutes email
func (e *Emitter) CompletedEmailHTML(m *meeting.Meeting) (string, error) {
	return e.templates.RenderMeetingCompleted(printing.BuildMeetingEmail(m, e.names(m), e.baseURL))
}

// MinutesHTML renders the minutes document
func (e *Emitter) MinutesHTML(m *meeting.Meeting) (string, error) {
	return e.templates.RenderMinutes(printing.BuildMinutes(m, e.names(m)))
}

// MinutesPDF renders the minutes document as PDF
func (e *Emitter) MinutesPDF(ctx context.Context, m *meeting.Meeting) ([]byte, error) {
	if e.renderer == nil {
		return nil, ErrRendererUnavailable
	}
	html, err := e.MinutesHTML(m)
	if err != nil {
		return nil, err
	}
	result, err := e.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: printing.MinutesFileName(m),
	})
	if err != nil {
		e.logger.Warn("Failed to render minutes",
			zap.String("meeting_id", m.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("falha ao gerar PDF da ata: %w", err)
	}
	return result.PDFData, nil
}

// ArchiveKey is the object key of archived minutes
func ArchiveKey(m *meeting.Meeting) string {
	return path.Join("atas", m.ID.String(), printing.MinutesFileName(m))
}

// SummarySubject is the subject line of the meeting summary email
func SummarySubject(headline string, m *meeting.Meeting) string {
	prefix := "Nova reunião"
	if headline == printing.HeadlineReminder {
		prefix = "Lembrete"
	}
	return fmt.Sprintf("%s: %s - %s", prefix, lo.Ternary(m.Name != "", m.Name, "Reunião"), printing.DateLabel(m.Date))
}

func (e *Emitter) send(ctx context.Context, msg *mail.Message) error {
	if e.sender == nil {
		return mail.ErrNotConfigured
	}
	return e.sender.Send(ctx, e.settings.Get(), msg)
}

func (e *Emitter) archiveMinutes(ctx context.Context, m *meeting.Meeting, pdf []byte) {
	if e.archive == nil || len(pdf) == 0 {
		return
	}
	key := ArchiveKey(m)
	if err := e.archive.Upload(ctx, key, pdf, "application/pdf"); err != nil {
		e.logger.Warn("Failed to archive minutes",
			zap.String("meeting_id", m.ID.String()),
			zap.String("storage_key", key),
			zap.Error(err))
		return
	}
	e.logger.Info("Minutes archived",
		zap.String("meeting_id", m.ID.String()),
		zap.String("storage_key", key))
}

func (e *Emitter) participants() []identity.Participant {
	if e.directory == nil {
		return nil
	}
	return e.directory.Participants()
}

func (e *Emitter) names(m *meeting.Meeting) printing.NameResolver {
	return printing.NewNameResolver(m, e.participants())
}

func normalizeAddresses(raw []string) []string {
	return lo.Map(raw, func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) })
}
