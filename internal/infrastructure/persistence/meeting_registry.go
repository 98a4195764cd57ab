package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MeetingRegistry is the canonical in-process meeting collection.
// Reads hand out deep copies; every mutation rewrites the snapshot store
// before returning.
type MeetingRegistry struct {
	mu       sync.RWMutex
	meetings []*meeting.Meeting
	store    meeting.SnapshotStore
	logger   *zap.Logger
}

// NewMeetingRegistry loads the snapshot and returns a ready registry
func NewMeetingRegistry(ctx context.Context, store meeting.SnapshotStore, logger *zap.Logger) (*MeetingRegistry, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	for _, m := range loaded {
		m.Normalize()
		m.ClearDomainEvents()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Meetings loaded", zap.Int("count", len(loaded)))
	return &MeetingRegistry{
		meetings: loaded,
		store:    store,
		logger:   logger.Named("meeting_registry"),
	}, nil
}

// FindByID returns a copy of the meeting
func (r *MeetingRegistry) FindByID(_ context.Context, id uuid.UUID) (*meeting.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, meeting.ErrNotFound()
	}
	return r.meetings[idx].Clone(), nil
}

// FindAll returns copies of the meetings matching filter, sorted by schedule
func (r *MeetingRegistry) FindAll(_ context.Context, filter meeting.Filter) ([]*meeting.Meeting, error) {
	r.mu.RLock()
	copies := make([]*meeting.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		copies = append(copies, m.Clone())
	}
	r.mu.RUnlock()

	return filter.Apply(copies), nil
}

// Save inserts or replaces m and bumps its version.
// Replacing with a copy older than the stored one is a concurrency conflict.
func (r *MeetingRegistry) Save(ctx context.Context, m *meeting.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(m.ID)
	if idx >= 0 {
		if r.meetings[idx].Version != m.Version {
			return shared.ErrConcurrencyConflict
		}
		m.IncrementVersion()
		m.Touch()
		r.meetings[idx] = m.Clone()
	} else {
		r.meetings = append(r.meetings, m.Clone())
	}

	r.flush(ctx)
	return nil
}

// Delete removes the meeting
func (r *MeetingRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return meeting.ErrNotFound()
	}
	r.meetings = slices.Delete(r.meetings, idx, idx+1)

	r.flush(ctx)
	return nil
}

// Count returns the number of meetings held
func (r *MeetingRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.meetings)
}

func (r *MeetingRegistry) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.meetings, func(m *meeting.Meeting) bool { return m.ID == id })
}

// flush writes the snapshot; failures are logged and not returned.
// Must be called with mu held.
func (r *MeetingRegistry) flush(ctx context.Context) {
	if err := r.store.Save(context.WithoutCancel(ctx), slices.Clone(r.meetings)); err != nil {
		r.logger.Error("Failed to persist meetings",
			zap.Int("count", len(r.meetings)),
			zap.Error(err),
		)
	}
}

var _ meeting.Repository = (*MeetingRegistry)(nil)
