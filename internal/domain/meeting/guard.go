package meeting

import "github.com/orbita/backend/internal/domain/identity"

// CanAccess reports whether caller may see the meeting.
// Anonymous callers bypass the membership check.
func (m *Meeting) CanAccess(caller identity.ParticipantKey) bool {
	if caller.IsAnonymous() {
		return true
	}
	return m.HasMember(caller.String())
}

// IsResponsible reports whether caller is the meeting's responsible.
// Anonymous callers are treated as responsible.
func (m *Meeting) IsResponsible(caller identity.ParticipantKey) bool {
	if caller.IsAnonymous() {
		return true
	}
	return caller.Matches(m.Responsible)
}

// ActorKey is the key recorded as author of items created by caller:
// the caller itself, else the responsible, else the fallback member.
func (m *Meeting) ActorKey(caller identity.ParticipantKey) string {
	if !caller.IsAnonymous() {
		return caller.String()
	}
	if r := identity.NormalizeKey(m.Responsible); r != "" {
		return r
	}
	return FallbackMember
}

// IsOwner reports whether caller authored an item assigned to owner
func (m *Meeting) IsOwner(owner string, caller identity.ParticipantKey) bool {
	return identity.NormalizeKey(owner) == m.ActorKey(caller)
}
