package identity

import (
	"strings"

	"github.com/orbita/backend/internal/domain/shared"
)

// Participant roles
const (
	RoleAdmin = "admin"
	RoleUser  = "usuario"
)

// Participant is an entry of the shared participant directory.
// Initials are the canonical matching token used as the participant key.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewParticipant creates a sanitized participant
func NewParticipant(id, name, initials, email, role string) (*Participant, error) {
	p, ok := SanitizeParticipant(Participant{
		ID:       id,
		Name:     name,
		Initials: initials,
		Email:    email,
		Role:     role,
	})
	if !ok {
		return nil, shared.NewBadRequestError("Usuário precisa de id e iniciais")
	}
	return &p, nil
}

// SanitizeParticipant normalizes a raw participant record.
// It reports false when the record has no id or no initials.
func SanitizeParticipant(raw Participant) (Participant, bool) {
	id := strings.TrimSpace(raw.ID)
	initials := NormalizeKey(raw.Initials)
	if id == "" || initials == "" {
		return Participant{}, false
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = initials
	}
	role := strings.TrimSpace(raw.Role)
	if role == "" {
		role = RoleUser
	}

	return Participant{
		ID:       id,
		Name:     name,
		Initials: initials,
		Email:    strings.ToLower(strings.TrimSpace(raw.Email)),
		Role:     role,
	}, true
}

// Key returns the participant's canonical key
func (p Participant) Key() string {
	return NormalizeKey(p.Initials)
}

// DefaultParticipants is the directory seeded into empty storage
func DefaultParticipants() []Participant {
	return []Participant{
		{ID: "u1", Name: "Gabriel M.", Initials: "GM", Email: "", Role: RoleAdmin},
		{ID: "u2", Name: "Ana Costa", Initials: "AC", Email: "", Role: RoleUser},
		{ID: "u3", Name: "Lucas P.", Initials: "LP", Email: "", Role: RoleUser},
		{ID: "u4", Name: "Mariana L.", Initials: "ML", Email: "", Role: RoleUser},
		{ID: "u5", Name: "Rafael O.", Initials: "RO", Email: "", Role: RoleUser},
	}
}

// FindByKey looks a participant up by canonical key (initials)
func FindByKey(participants []Participant, key string) (Participant, bool) {
	key = NormalizeKey(key)
	if key == "" {
		return Participant{}, false
	}
	for _, p := range participants {
		if p.Key() == key {
			return p, true
		}
	}
	return Participant{}, false
}

// FindByEmail looks a participant up by email, case-insensitively
func FindByEmail(participants []Participant, email string) (Participant, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Participant{}, false
	}
	for _, p := range participants {
		if p.Email != "" && strings.ToLower(p.Email) == email {
			return p, true
		}
	}
	return Participant{}, false
}

// SyncResult reports the outcome of a directory sync
type SyncResult struct {
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// MergeParticipants upserts incoming records into existing.
// A record matches an existing one by id, then initials, then email; invalid
// records are skipped. Matched entries keep their id and only take non-empty
// incoming values.
func MergeParticipants(existing, incoming []Participant) ([]Participant, SyncResult) {
	merged := make([]Participant, len(existing))
	copy(merged, existing)

	updated := 0
	for _, raw := range incoming {
		p, ok := SanitizeParticipant(raw)
		if !ok {
			continue
		}

		idx := indexOfMatch(merged, p)
		if idx < 0 {
			merged = append(merged, p)
			updated++
			continue
		}

		current := merged[idx]
		if p.Name != "" {
			current.Name = p.Name
		}
		if p.Initials != "" {
			current.Initials = p.Initials
		}
		if p.Email != "" {
			current.Email = p.Email
		}
		if p.Role != "" {
			current.Role = p.Role
		}
		if current.ID == "" {
			current.ID = p.ID
		}
		merged[idx] = current
		updated++
	}

	return merged, SyncResult{Updated: updated, Total: len(merged)}
}

func indexOfMatch(list []Participant, p Participant) int {
	for i, existing := range list {
		if existing.ID == p.ID {
			return i
		}
	}
	for i, existing := range list {
		if NormalizeKey(existing.Initials) == p.Initials {
			return i
		}
	}
	if p.Email == "" {
		return -1
	}
	for i, existing := range list {
		if strings.ToLower(strings.TrimSpace(existing.Email)) == p.Email {
			return i
		}
	}
	return -1
}
