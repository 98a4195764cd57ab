package identity

import "strings"

// KeyKind tells how a caller-supplied identifier was resolved
type KeyKind uint8

const (
	// KeyAnonymous is an empty identifier: no caller was supplied
	KeyAnonymous KeyKind = iota
	// KeyRegistered matched a participant in the directory
	KeyRegistered
	// KeyAdHoc did not match anyone and is used verbatim (uppercased)
	KeyAdHoc
)

// String returns the kind name
func (k KeyKind) String() string {
	switch k {
	case KeyRegistered:
		return "registered"
	case KeyAdHoc:
		return "ad_hoc"
	default:
		return "anonymous"
	}
}

// ParticipantKey is a resolved caller identity
type ParticipantKey struct {
	value string
	kind  KeyKind
}

// Anonymous is the key of a request that carries no caller
var Anonymous = ParticipantKey{}

// AdHocKey builds an unregistered key from raw input without consulting a directory
func AdHocKey(raw string) ParticipantKey {
	v := NormalizeKey(raw)
	if v == "" {
		return Anonymous
	}
	return ParticipantKey{value: v, kind: KeyAdHoc}
}

// String returns the canonical key, "" for anonymous callers
func (k ParticipantKey) String() string {
	return k.value
}

// Kind returns how the key was resolved
func (k ParticipantKey) Kind() KeyKind {
	return k.kind
}

// IsAnonymous reports whether no caller was supplied
func (k ParticipantKey) IsAnonymous() bool {
	return k.value == ""
}

// Matches compares the key against a stored participant key
func (k ParticipantKey) Matches(stored string) bool {
	return k.value != "" && k.value == NormalizeKey(stored)
}

// NormalizeKey trims and uppercases a raw identifier
func NormalizeKey(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Directory exposes a read snapshot of the participant directory
type Directory interface {
	Participants() []Participant
}

// StaticDirectory is a fixed participant list
type StaticDirectory []Participant

// Participants implements Directory
func (d StaticDirectory) Participants() []Participant {
	return d
}

// Resolver maps caller-supplied identifiers to canonical participant keys
type Resolver struct {
	dir Directory
}

// NewResolver creates a resolver backed by dir
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve maps raw (initials, email or id, any case) to a participant key.
// Match order is initials, then email, then id; unmatched input becomes an ad-hoc key.
func (r *Resolver) Resolve(raw string) ParticipantKey {
	var participants []Participant
	if r != nil && r.dir != nil {
		participants = r.dir.Participants()
	}
	return ResolveIn(participants, raw)
}

// ResolveAll resolves every entry, dropping empties and duplicates, keeping order
func (r *Resolver) ResolveAll(raws []string) []string {
	out := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		k := r.Resolve(raw)
		if k.IsAnonymous() {
			continue
		}
		if _, dup := seen[k.value]; dup {
			continue
		}
		seen[k.value] = struct{}{}
		out = append(out, k.value)
	}
	return out
}

// ResolveIn resolves raw against an explicit participant list
func ResolveIn(participants []Participant, raw string) ParticipantKey {
	key := NormalizeKey(raw)
	if key == "" {
		return Anonymous
	}

	for _, p := range participants {
		if NormalizeKey(p.Initials) == key && p.Initials != "" {
			return ParticipantKey{value: NormalizeKey(p.Initials), kind: KeyRegistered}
		}
	}
	for _, p := range participants {
		if p.Email != "" && NormalizeKey(p.Email) == key && p.Initials != "" {
			return ParticipantKey{value: NormalizeKey(p.Initials), kind: KeyRegistered}
		}
	}
	for _, p := range participants {
		if NormalizeKey(p.ID) == key && p.Initials != "" {
			return ParticipantKey{value: NormalizeKey(p.Initials), kind: KeyRegistered}
		}
	}

	return ParticipantKey{value: key, kind: KeyAdHoc}
}
