package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// UnreadCount is the unread badge of one caller
type UnreadCount struct {
	Count int `json:"count"`
}

// ReadAllResult reports how many notifications were marked read
type ReadAllResult struct {
	Updated int `json:"updated"`
}

// FeedService serves the notification feed of one caller
type FeedService struct {
	repo     notification.Repository
	resolver *identity.Resolver
	logger   *zap.Logger

	// serializes read-modify-write cycles on the feed
	mu sync.Mutex
}

// NewFeedService creates a new FeedService
func NewFeedService(repo notification.Repository, directory identity.Directory, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{repo: repo, resolver: identity.NewResolver(directory), logger: logger}
}

// List returns the notifications visible to caller, newest first
func (s *FeedService) List(ctx context.Context, callerRaw string) ([]notification.View, error) {
	caller := s.resolver.Resolve(callerRaw)
	feed, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]notification.View, 0, len(feed))
	for _, n := range feed {
		if n.VisibleTo(caller) {
			out = append(out, n.ViewFor(caller))
		}
	}
	return out, nil
}

// UnreadCount counts the visible notifications caller has not read
func (s *FeedService) UnreadCount(ctx context.Context, callerRaw string) (UnreadCount, error) {
	caller := s.resolver.Resolve(callerRaw)
	feed, err := s.repo.FindAll(ctx)
	if err != nil {
		return UnreadCount{}, err
	}
	count := 0
	for _, n := range feed {
		if n.VisibleTo(caller) && !n.IsReadBy(caller) {
			count++
		}
	}
	return UnreadCount{Count: count}, nil
}

// MarkRead marks one notification read for caller
func (s *FeedService) MarkRead(ctx context.Context, id uuid.UUID, callerRaw string) (*notification.View, error) {
	caller := s.resolver.Resolve(callerRaw)

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := n.MarkRead(caller); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	view := n.ViewFor(caller)
	return &view, nil
}

// MarkAllRead marks every visible notification read for caller
func (s *FeedService) MarkAllRead(ctx context.Context, callerRaw string) (ReadAllResult, error) {
	caller := s.resolver.Resolve(callerRaw)

	s.mu.Lock()
	defer s.mu.Unlock()

	feed, err := s.repo.FindAll(ctx)
	if err != nil {
		return ReadAllResult{}, err
	}
	changed := make([]*notification.Notification, 0, len(feed))
	for _, n := range feed {
		if !n.VisibleTo(caller) || n.IsReadBy(caller) {
			continue
		}
		if err := n.MarkRead(caller); err != nil {
			return ReadAllResult{}, err
		}
		changed = append(changed, n)
	}
	if err := s.repo.Save(ctx, changed...); err != nil {
		return ReadAllResult{}, err
	}

	s.logger.Debug("Notifications marked read",
		zap.String("caller", caller.String()),
		zap.Int("updated", len(changed)))
	return ReadAllResult{Updated: len(changed)}, nil
}
