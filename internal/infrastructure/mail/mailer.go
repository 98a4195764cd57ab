// Package mail delivers HTML email over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// DefaultPort is used when the configured port is missing
const DefaultPort = 587

// ErrNotConfigured reports that SMTP delivery is disabled or incomplete
var ErrNotConfigured = errors.New("email não configurado")

// Settings are the SMTP delivery settings. They can change at runtime.
type Settings struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Secure   bool   `json:"secure"`
	User     string `json:"user"`
	Password string `json:"pass"`
	From     string `json:"from"`
}

// Configured reports whether delivery can be attempted
func (s Settings) Configured() bool {
	return s.Enabled && s.Host != "" && s.User != ""
}

// FromAddress returns the envelope sender, falling back to the SMTP user
func (s Settings) FromAddress() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

// Attachment is a file attached to a message
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is one HTML email
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, settings Settings, msg *Message) error
}

// SMTPSender delivers messages with a fresh SMTP connection per send
type SMTPSender struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewSMTPSender creates an SMTP sender; timeout bounds dialing and each command
func NewSMTPSender(timeout time.Duration, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{timeout: timeout, logger: logger.Named("mail")}
}

// Send delivers msg using settings
func (s *SMTPSender) Send(ctx context.Context, settings Settings, msg *Message) error {
	if !settings.Configured() {
		return ErrNotConfigured
	}

	m, err := BuildMsg(settings, msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(settings.Host, s.clientOptions(settings)...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Warn("Failed to send email",
			zap.String("host", settings.Host),
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)))
	return nil
}

func (s *SMTPSender) clientOptions(settings Settings) []gomail.Option {
	port := settings.Port
	if port <= 0 {
		port = DefaultPort
	}
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(settings.User),
		gomail.WithPassword(settings.Password),
	}
	if settings.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}
	if s.timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.timeout))
	}
	return opts
}

// BuildMsg converts msg to a MIME message
func BuildMsg(settings Settings, msg *Message) (*gomail.Msg, error) {
	if msg == nil || len(msg.To) == 0 {
		return nil, errors.New("no recipients")
	}

	m := gomail.NewMsg()
	if err := m.From(settings.FromAddress()); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", settings.FromAddress(), err)
	}
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		return nil, errors.New("no recipients")
	}
	if err := m.To(to...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		contentType := gomail.TypeAppOctetStream
		if a.ContentType != "" {
			contentType = gomail.ContentType(a.ContentType)
		}
		if err := m.AttachReader(a.Name, bytes.NewReader(a.Data), gomail.WithFileContentType(contentType)); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Name, err)
		}
	}

	return m, nil
}

// SplitRecipients accepts a comma or semicolon separated list
func SplitRecipients(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
