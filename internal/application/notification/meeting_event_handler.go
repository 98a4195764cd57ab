package notification

import (
	"context"
	"fmt"

	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MeetingEventHandler turns meeting lifecycle events into feed entries
type MeetingEventHandler struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewMeetingEventHandler creates a new MeetingEventHandler
func NewMeetingEventHandler(repo notification.Repository, logger *zap.Logger) *MeetingEventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingEventHandler{repo: repo, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *MeetingEventHandler) EventTypes() []string {
	return []string{
		meeting.EventTypeMeetingCreated,
		meeting.EventTypeMeetingCompleted,
		meeting.EventTypeMeetingRemoved,
	}
}

// Handle records the notification matching the event.
// A removal retracts the meeting's earlier notifications first.
func (h *MeetingEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *meeting.MeetingCreatedEvent:
		return h.save(ctx, notification.MeetingCreated(e.MeetingID, e.Name, e.Members))

	case *meeting.MeetingCompletedEvent:
		return h.save(ctx, notification.MeetingCompleted(e.MeetingID, e.Name, e.Members))

	case *meeting.MeetingRemovedEvent:
		removed, err := h.repo.DeleteByMeeting(ctx, e.MeetingID)
		if err != nil {
			return fmt.Errorf("failed to retract notifications: %w", err)
		}
		h.logger.Debug("Notifications retracted",
			zap.String("meeting_id", e.MeetingID.String()),
			zap.Int("count", removed))
		return h.save(ctx, notification.MeetingRemoved(e.Name, e.Members))
	}

	h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
	return fmt.Errorf("unexpected event type: %s", event.EventType())
}

func (h *MeetingEventHandler) save(ctx context.Context, n *notification.Notification) error {
	if err := h.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	h.logger.Info("Notification created",
		zap.String("title", n.Title),
		zap.Strings("recipients", n.Recipients))
	return nil
}

var _ shared.EventHandler = (*MeetingEventHandler)(nil)
