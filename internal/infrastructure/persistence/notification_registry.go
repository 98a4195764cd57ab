package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// NotificationRegistry holds the notification feed newest first
type NotificationRegistry struct {
	mu     sync.RWMutex
	feed   []*notification.Notification
	store  notification.SnapshotStore
	logger *zap.Logger
}

// NewNotificationRegistry loads the feed from store
func NewNotificationRegistry(ctx context.Context, store notification.SnapshotStore, logger *zap.Logger) (*NotificationRegistry, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sortNewestFirst(loaded)
	return &NotificationRegistry{
		feed:   loaded,
		store:  store,
		logger: logger.Named("notification_registry"),
	}, nil
}

// FindByID returns a copy of the notification
func (r *NotificationRegistry) FindByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, notification.ErrNotFound()
	}
	return r.feed[idx].Clone(), nil
}

// FindAll returns copies of the whole feed, newest first
func (r *NotificationRegistry) FindAll(_ context.Context) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*notification.Notification, 0, len(r.feed))
	for _, n := range r.feed {
		out = append(out, n.Clone())
	}
	return out, nil
}

// Save inserts new notifications and replaces known ones
func (r *NotificationRegistry) Save(ctx context.Context, notifications ...*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		if idx := r.indexOf(n.ID); idx >= 0 {
			r.feed[idx] = n.Clone()
			continue
		}
		r.feed = append(r.feed, n.Clone())
	}
	sortNewestFirst(r.feed)

	r.flush(ctx)
	return nil
}

// DeleteByMeeting drops every notification tied to meetingID
func (r *NotificationRegistry) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.feed)
	r.feed = slices.DeleteFunc(r.feed, func(n *notification.Notification) bool {
		return n.MeetingID != nil && *n.MeetingID == meetingID
	})
	removed := before - len(r.feed)
	if removed > 0 {
		r.flush(ctx)
	}
	return removed, nil
}

func (r *NotificationRegistry) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.feed, func(n *notification.Notification) bool { return n.ID == id })
}

// flush must be called with mu held
func (r *NotificationRegistry) flush(ctx context.Context) {
	if err := r.store.Save(context.WithoutCancel(ctx), slices.Clone(r.feed)); err != nil {
		r.logger.Error("Failed to persist notifications",
			zap.Int("count", len(r.feed)),
			zap.Error(err),
		)
	}
}

func sortNewestFirst(feed []*notification.Notification) {
	slices.SortStableFunc(feed, func(a, b *notification.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

var _ notification.Repository = (*NotificationRegistry)(nil)
