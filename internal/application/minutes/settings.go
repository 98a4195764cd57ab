package minutes

import (
	"strings"
	"sync"

	"github.com/orbita/backend/internal/infrastructure/config"
	"github.com/orbita/backend/internal/infrastructure/mail"
)

// PasswordMask replaces the SMTP password in every response
const PasswordMask = "••••••••"

// SettingsStore holds the runtime SMTP settings, seeded from configuration
type SettingsStore struct {
	mu       sync.RWMutex
	settings mail.Settings
}

// NewSettingsStore creates a store seeded with initial
func NewSettingsStore(initial mail.Settings) *SettingsStore {
	if initial.Port <= 0 {
		initial.Port = mail.DefaultPort
	}
	return &SettingsStore{settings: initial}
}

// SettingsFromConfig maps the mail configuration section
func SettingsFromConfig(cfg config.MailConfig) mail.Settings {
	return mail.Settings{
		Enabled:  cfg.Enabled,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Secure:   cfg.Secure,
		User:     cfg.User,
		Password: cfg.Password,
		From:     cfg.From,
	}
}

// Get returns the current settings
func (s *SettingsStore) Get() mail.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Replace applies req. A missing or masked password keeps the stored one.
func (s *SettingsStore) Replace(req UpdateSettingsRequest) mail.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := mail.Settings{
		Enabled:  req.Enabled,
		Host:     strings.TrimSpace(req.Host),
		Port:     req.Port,
		Secure:   req.Secure,
		User:     strings.TrimSpace(req.User),
		Password: s.settings.Password,
		From:     strings.TrimSpace(req.From),
	}
	if next.Port <= 0 {
		next.Port = mail.DefaultPort
	}
	if req.Pass != "" && req.Pass != PasswordMask {
		next.Password = req.Pass
	}
	s.settings = next
	return next
}

// SettingsView is the masked representation of the settings
type SettingsView struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Secure  bool   `json:"secure"`
	User    string `json:"user"`
	Pass    string `json:"pass"`
	From    string `json:"from"`
}

// UpdateSettingsRequest replaces the settings
type UpdateSettingsRequest struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host" binding:"max=255"`
	Port    int    `json:"port" binding:"gte=0,lte=65535"`
	Secure  bool   `json:"secure"`
	User    string `json:"user" binding:"max=255"`
	Pass    string `json:"pass"`
	From    string `json:"from" binding:"max=255"`
}

// ToSettingsView masks the password
func ToSettingsView(s mail.Settings) SettingsView {
	v := SettingsView{
		Enabled: s.Enabled,
		Host:    s.Host,
		Port:    s.Port,
		Secure:  s.Secure,
		User:    s.User,
		From:    s.From,
	}
	if s.Password != "" {
		v.Pass = PasswordMask
	}
	return v
}
