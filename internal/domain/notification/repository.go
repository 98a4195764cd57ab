package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/shared"
)

// ErrNotFound reports a missing notification
func ErrNotFound() error {
	return shared.NewNotFoundError("Notificação não encontrada")
}

// Repository stores the notification feed
type Repository interface {
	// FindByID returns a copy of the notification or a NOT_FOUND error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindAll returns copies of every notification, newest first
	FindAll(ctx context.Context) ([]*Notification, error)

	// Save inserts or replaces notifications
	Save(ctx context.Context, notifications ...*Notification) error

	// DeleteByMeeting retracts every notification tied to a meeting
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int, error)
}

// SnapshotStore loads and saves the whole feed
type SnapshotStore interface {
	Load(ctx context.Context) ([]*Notification, error)
	Save(ctx context.Context, notifications []*Notification) error
}
