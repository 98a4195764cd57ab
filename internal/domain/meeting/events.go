package meeting

import (
	"slices"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMeeting = "Meeting"

// Event type constants
const (
	EventTypeMeetingCreated   = "MeetingCreated"
	EventTypeMeetingStarted   = "MeetingStarted"
	EventTypeMeetingCompleted = "MeetingCompleted"
	EventTypeMeetingRemoved   = "MeetingRemoved"
)

// MeetingCreatedEvent is raised when a meeting is scheduled
type MeetingCreatedEvent struct {
	shared.BaseDomainEvent
	MeetingID uuid.UUID `json:"meeting_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Members   []string  `json:"members"`
}

// NewMeetingCreatedEvent creates a new MeetingCreatedEvent
func NewMeetingCreatedEvent(m *Meeting) *MeetingCreatedEvent {
	return &MeetingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMeetingCreated, AggregateTypeMeeting, m.ID),
		MeetingID:       m.ID,
		Name:            m.Name,
		Date:            m.Date,
		Members:         slices.Clone(m.Members),
	}
}

// MeetingStartedEvent is raised on every successful start, including resumes
type MeetingStartedEvent struct {
	shared.BaseDomainEvent
	MeetingID      uuid.UUID `json:"meeting_id"`
	StartedBy      string    `json:"started_by"`
	PresentMembers []string  `json:"present_members"`
}

// NewMeetingStartedEvent creates a new MeetingStartedEvent
func NewMeetingStartedEvent(m *Meeting, startedBy string) *MeetingStartedEvent {
	return &MeetingStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMeetingStarted, AggregateTypeMeeting, m.ID),
		MeetingID:       m.ID,
		StartedBy:       startedBy,
		PresentMembers:  slices.Clone(m.PresentMembers),
	}
}

// MeetingCompletedEvent is raised when a meeting reaches completed
type MeetingCompletedEvent struct {
	shared.BaseDomainEvent
	MeetingID       uuid.UUID `json:"meeting_id"`
	Name            string    `json:"name"`
	CompletedBy     string    `json:"completed_by"`
	Members         []string  `json:"members"`
	DurationSeconds *int64    `json:"duration_seconds,omitempty"`
}

// NewMeetingCompletedEvent creates a new MeetingCompletedEvent
func NewMeetingCompletedEvent(m *Meeting, completedBy string) *MeetingCompletedEvent {
	return &MeetingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMeetingCompleted, AggregateTypeMeeting, m.ID),
		MeetingID:       m.ID,
		Name:            m.Name,
		CompletedBy:     completedBy,
		Members:         slices.Clone(m.Members),
		DurationSeconds: m.ActualDurationSeconds,
	}
}

// MeetingRemovedEvent is raised when a meeting is deleted
type MeetingRemovedEvent struct {
	shared.BaseDomainEvent
	MeetingID uuid.UUID `json:"meeting_id"`
	Name      string    `json:"name"`
	RemovedBy string    `json:"removed_by"`
	Members   []string  `json:"members"`
}

// NewMeetingRemovedEvent creates a new MeetingRemovedEvent
func NewMeetingRemovedEvent(m *Meeting, removedBy string) *MeetingRemovedEvent {
	return &MeetingRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMeetingRemoved, AggregateTypeMeeting, m.ID),
		MeetingID:       m.ID,
		Name:            m.Name,
		RemovedBy:       removedBy,
		Members:         slices.Clone(m.Members),
	}
}
