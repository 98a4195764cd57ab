package notification

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
)

// TypeMeeting tags notifications produced by meeting lifecycle events
const TypeMeeting = "meeting"

// Notification is an in-app feed entry addressed to a set of participants.
// An empty recipient list addresses everyone.
type Notification struct {
	shared.BaseEntity
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	MeetingID  *uuid.UUID `json:"meetingId,omitempty"`
	Recipients []string   `json:"recipients"`
	ReadBy     []string   `json:"readBy"`
	// Read is the shared flag used by anonymous callers
	Read bool `json:"read"`
}

// New creates a notification for recipients
func New(title, message string, meetingID *uuid.UUID, recipients []string) *Notification {
	keys := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if k := identity.NormalizeKey(r); k != "" && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Message:    message,
		Type:       TypeMeeting,
		MeetingID:  meetingID,
		Recipients: keys,
		ReadBy:     []string{},
	}
}

// MeetingCreated builds the "meeting scheduled" notification
func MeetingCreated(meetingID uuid.UUID, name string, members []string) *Notification {
	return New("Nova reunião criada", fmt.Sprintf("A reunião %q foi agendada.", name), &meetingID, members)
}

// MeetingCompleted builds the "meeting finished" notification
func MeetingCompleted(meetingID uuid.UUID, name string, members []string) *Notification {
	return New("Reunião finalizada", fmt.Sprintf("A reunião %q foi finalizada.", name), &meetingID, members)
}

// MeetingRemoved builds the "meeting cancelled" notification.
// It carries no meeting id so retraction of the meeting's feed keeps it.
func MeetingRemoved(name string, members []string) *Notification {
	return New("Reunião removida", fmt.Sprintf("A reunião %q foi cancelada.", name), nil, members)
}

// VisibleTo reports whether caller sees the notification
func (n *Notification) VisibleTo(caller identity.ParticipantKey) bool {
	if caller.IsAnonymous() || len(n.Recipients) == 0 {
		return true
	}
	return slices.ContainsFunc(n.Recipients, caller.Matches)
}

// IsReadBy reports the read state from caller's point of view
func (n *Notification) IsReadBy(caller identity.ParticipantKey) bool {
	if caller.IsAnonymous() {
		return n.Read
	}
	return slices.ContainsFunc(n.ReadBy, caller.Matches)
}

// MarkRead records caller as a reader. Anonymous callers set the shared flag.
func (n *Notification) MarkRead(caller identity.ParticipantKey) error {
	if !n.VisibleTo(caller) {
		return shared.NewForbiddenError("not_recipient", "Sem permissão para esta notificação")
	}
	if caller.IsAnonymous() {
		n.Read = true
		return nil
	}
	if !n.IsReadBy(caller) {
		n.ReadBy = append(n.ReadBy, caller.String())
	}
	return nil
}

// View is a notification rendered for one caller
type View struct {
	Notification
	Read bool `json:"read"`
}

// ViewFor renders n with caller's read state
func (n *Notification) ViewFor(caller identity.ParticipantKey) View {
	return View{Notification: *n, Read: n.IsReadBy(caller)}
}

// Clone returns a deep copy
func (n *Notification) Clone() *Notification {
	c := *n
	c.Recipients = slices.Clone(n.Recipients)
	c.ReadBy = slices.Clone(n.ReadBy)
	if n.MeetingID != nil {
		id := *n.MeetingID
		c.MeetingID = &id
	}
	return &c
}
