package meeting

import (
	"context"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/shared"
)

// ErrNotFound reports a missing meeting
func ErrNotFound() error {
	return shared.NewNotFoundError("Reunião não encontrada")
}

// Repository is the meeting registry port
type Repository interface {
	// FindByID returns a copy of the meeting or a NOT_FOUND error
	FindByID(ctx context.Context, id uuid.UUID) (*Meeting, error)

	// FindAll returns copies of the meetings matching filter, sorted by schedule
	FindAll(ctx context.Context, filter Filter) ([]*Meeting, error)

	// Save inserts or replaces the meeting.
	// Replacing a meeting whose version moved since it was read fails with a concurrency conflict.
	Save(ctx context.Context, m *Meeting) error

	// Delete removes the meeting
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotStore loads and saves the whole meeting set
type SnapshotStore interface {
	Load(ctx context.Context) ([]*Meeting, error)
	Save(ctx context.Context, meetings []*Meeting) error
}
