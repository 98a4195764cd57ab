package minutes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/infrastructure/printing"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const testEmailHTML = `<div style="font-family:'Inter',Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:12px;padding:28px 32px;">` +
	`<p style="font-size:15px;color:#111827;">A configuração de email está funcionando corretamente!</p></div>`

// TestEmailRequest sends a test message
type TestEmailRequest struct {
	To string `json:"to" binding:"required"`
}

// SendEmailRequest sends an arbitrary HTML message
type SendEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required,max=500"`
	HTML    string `json:"html"`
}

// RecipientsRequest lists extra recipients of a meeting email
type RecipientsRequest struct {
	To []string `json:"to"`
}

// PDFDocument is a rendered PDF
type PDFDocument struct {
	FileName string
	Data     []byte
}

// MailService exposes email administration and the on-demand meeting emails
type MailService struct {
	meetings meeting.Repository
	resolver *identity.Resolver
	settings *SettingsStore
	emitter  *Emitter
	logger   *zap.Logger
}

// NewMailService creates a new MailService
func NewMailService(meetings meeting.Repository, directory identity.Directory, settings *SettingsStore, emitter *Emitter, logger *zap.Logger) *MailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailService{
		meetings: meetings,
		resolver: identity.NewResolver(directory),
		settings: settings,
		emitter:  emitter,
		logger:   logger.Named("mail_service"),
	}
}

// Config returns the masked settings
func (s *MailService) Config() SettingsView {
	return ToSettingsView(s.settings.Get())
}

// UpdateConfig replaces the settings and returns the masked result
func (s *MailService) UpdateConfig(req UpdateSettingsRequest) SettingsView {
	updated := s.settings.Replace(req)
	s.logger.Info("Email settings updated",
		zap.Bool("enabled", updated.Enabled),
		zap.String("host", updated.Host),
		zap.Int("port", updated.Port))
	return ToSettingsView(updated)
}

// Test sends a fixed message to req.To
func (s *MailService) Test(ctx context.Context, req TestEmailRequest) error {
	to := mail.SplitRecipients(req.To)
	if len(to) == 0 {
		return shared.NewBadRequestError("Informe o email de destino")
	}
	return deliveryError(s.emitter.Send(ctx, &mail.Message{
		To:      to,
		Subject: "Teste de configuração de email",
		HTML:    testEmailHTML,
	}))
}

// Send delivers an arbitrary message
func (s *MailService) Send(ctx context.Context, req SendEmailRequest) error {
	to := mail.SplitRecipients(req.To)
	if len(to) == 0 || strings.TrimSpace(req.Subject) == "" {
		return shared.NewBadRequestError(`Campos "to" e "subject" são obrigatórios`)
	}
	return deliveryError(s.emitter.Send(ctx, &mail.Message{To: to, Subject: req.Subject, HTML: req.HTML}))
}

// SendMinutes emails the minutes of a meeting to the given recipients
func (s *MailService) SendMinutes(ctx context.Context, id uuid.UUID, callerRaw string, req RecipientsRequest) error {
	m, err := s.load(ctx, id, callerRaw)
	if err != nil {
		return err
	}
	to := lo.Compact(normalizeAddresses(req.To))
	if len(to) == 0 {
		return shared.NewBadRequestError("Informe os destinatários")
	}
	_, err = s.emitter.SendMinutes(ctx, m, to)
	return deliveryError(err)
}

// PreviewHTML renders the minutes email body without sending it
func (s *MailService) PreviewHTML(ctx context.Context, id uuid.UUID, callerRaw string) (string, error) {
	m, err := s.load(ctx, id, callerRaw)
	if err != nil {
		return "", err
	}
	return s.emitter.CompletedEmailHTML(m)
}

// PreviewPDF renders the minutes PDF
func (s *MailService) PreviewPDF(ctx context.Context, id uuid.UUID, callerRaw string) (*PDFDocument, error) {
	m, err := s.load(ctx, id, callerRaw)
	if err != nil {
		return nil, err
	}
	data, err := s.emitter.MinutesPDF(ctx, m)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "Falha ao gerar PDF")
	}
	return &PDFDocument{FileName: printing.MinutesFileName(m), Data: data}, nil
}

// NotifyMeeting emails the meeting details to its members and the extra recipients
func (s *MailService) NotifyMeeting(ctx context.Context, id uuid.UUID, callerRaw string, req RecipientsRequest) error {
	m, err := s.load(ctx, id, callerRaw)
	if err != nil {
		return err
	}
	err = s.emitter.SendSummary(ctx, m, printing.HeadlineCreated, req.To)
	if errors.Is(err, ErrNoRecipients) {
		return shared.NewBadRequestError("Nenhum email encontrado para os membros da reunião")
	}
	return deliveryError(err)
}

func (s *MailService) load(ctx context.Context, id uuid.UUID, callerRaw string) (*meeting.Meeting, error) {
	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanAccess(s.resolver.Resolve(callerRaw)) {
		return nil, shared.NewForbiddenError(meeting.ReasonNotMember, "Sem permissão para acessar esta reunião")
	}
	return m, nil
}

// deliveryError keeps the delivery failure reason visible to the client
func deliveryError(err error) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.NewDomainError(shared.CodeInternal, err.Error())
}
