package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultLockWait bounds how long a mutation waits for the per-meeting lock
const DefaultLockWait = 10 * time.Second

// Deps are the collaborators shared by the meeting services
type Deps struct {
	Repo      meeting.Repository
	Directory identity.Directory
	Locker    shared.Locker
	Events    shared.EventPublisher
	Metrics   *telemetry.Metrics
	Logger    *zap.Logger
	Now       func() time.Time
	LockWait  time.Duration
	// Storage holds offloaded attachments; nil keeps them inline as data URLs
	Storage ObjectStorage
}

// core holds the read-modify-write cycle every meeting mutation goes through
type core struct {
	repo     meeting.Repository
	resolver *identity.Resolver
	locker   shared.Locker
	events   shared.EventPublisher
	metrics  *telemetry.Metrics
	logger   *zap.Logger
	now      func() time.Time
	lockWait time.Duration
	storage  ObjectStorage
}

func newCore(d Deps) core {
	c := core{
		repo:     d.Repo,
		resolver: identity.NewResolver(d.Directory),
		locker:   d.Locker,
		events:   d.Events,
		metrics:  d.Metrics,
		logger:   d.Logger,
		now:      d.Now,
		lockWait: d.LockWait,
		storage:  d.Storage,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.lockWait <= 0 {
		c.lockWait = DefaultLockWait
	}
	return c
}

// Caller resolves a raw caller identifier
func (c *core) Caller(raw string) identity.ParticipantKey {
	return c.resolver.Resolve(raw)
}

// mutate loads the meeting under its lock, applies fn and saves the result.
// Nothing is saved when fn fails.
func (c *core) mutate(ctx context.Context, id uuid.UUID, fn func(m *meeting.Meeting) error) (*meeting.Meeting, error) {
	unlock, err := c.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	m, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	if err := c.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	c.publish(ctx, m)
	return m, nil
}

func (c *core) lock(ctx context.Context, id uuid.UUID) (func(), error) {
	if c.locker == nil {
		return func() {}, nil
	}
	lockCtx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	unlock, err := c.locker.Lock(lockCtx, lockKey(id))
	if err != nil {
		c.logger.Warn("Failed to acquire meeting lock",
			zap.String("meeting_id", id.String()),
			zap.Error(err))
		if errors.Is(err, shared.ErrLockTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, shared.ErrConcurrencyConflict
		}
		return nil, fmt.Errorf("failed to lock meeting: %w", err)
	}
	return unlock, nil
}

// publish dispatches pending domain events; handler failures are logged only
func (c *core) publish(ctx context.Context, m *meeting.Meeting) {
	events := m.GetDomainEvents()
	m.ClearDomainEvents()
	if c.events == nil || len(events) == 0 {
		return
	}
	if err := c.events.Publish(ctx, events...); err != nil {
		c.logger.Warn("Failed to publish meeting events",
			zap.String("meeting_id", m.ID.String()),
			zap.Int("events", len(events)),
			zap.Error(err))
	}
}

// deleteObjects removes offloaded attachment content after a commit; failures are logged only
func (c *core) deleteObjects(ctx context.Context, id uuid.UUID, attachments []meeting.Attachment) {
	if c.storage == nil {
		return
	}
	for _, a := range attachments {
		if a.StorageKey == "" {
			continue
		}
		if err := c.storage.DeleteObject(ctx, a.StorageKey); err != nil {
			c.logger.Warn("Failed to delete attachment object",
				zap.String("meeting_id", id.String()),
				zap.String("storage_key", a.StorageKey),
				zap.Error(err))
		}
	}
}

func lockKey(id uuid.UUID) string {
	return "meeting:" + id.String()
}

// Service handles meeting CRUD
type Service struct {
	core
}

// NewService creates a new meeting Service
func NewService(d Deps) *Service {
	return &Service{core: newCore(d)}
}

// List returns the meetings visible to caller that match the query
func (s *Service) List(ctx context.Context, callerRaw string, q ListMeetingsQuery) ([]*meeting.Meeting, error) {
	filter := meeting.Filter{
		Status: q.Status,
		Type:   q.Type,
		Search: q.Search,
		Caller: s.Caller(callerRaw),
	}
	if q.Member != "" {
		filter.Member = s.Caller(q.Member).String()
	}
	if q.Responsible != "" {
		filter.Responsible = s.Caller(q.Responsible).String()
	}
	return s.repo.FindAll(ctx, filter)
}

// Get returns a meeting the caller may access
func (s *Service) Get(ctx context.Context, id uuid.UUID, callerRaw string) (*meeting.Meeting, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanAccess(s.Caller(callerRaw)) {
		return nil, shared.NewForbiddenError(meeting.ReasonNotMember, "Sem permissão para acessar esta reunião")
	}
	return m, nil
}

// Create schedules a new meeting
func (s *Service) Create(ctx context.Context, req CreateMeetingRequest) (*meeting.Meeting, error) {
	p := meeting.NewMeetingParams{
		Name:          req.Name,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		Type:          req.Type,
		Unit:          req.Unit,
		Department:    req.Department,
		Indic:         req.Indic,
		Plan:          req.Plan,
		Members:       s.resolver.ResolveAll(req.Members),
		Recurrence:    req.Recurrence,
		Active:        req.Active,
		UserDirectory: req.UserDirectory,
	}
	if req.Responsible != "" {
		p.Responsible = s.Caller(req.Responsible).String()
	}

	m, err := meeting.NewMeeting(p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}
	s.publish(ctx, m)

	s.logger.Info("Meeting created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("responsible", m.Responsible),
		zap.Strings("members", m.Members))
	return m, nil
}

// Update applies a partial update. Attachments dropped from the collection
// lose their offloaded content after the commit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, callerRaw string, req UpdateMeetingRequest) (*meeting.Meeting, error) {
	caller := s.Caller(callerRaw)
	patch := s.toPatch(req)
	var dropped []meeting.Attachment
	m, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		before := m.Attachments
		if err := m.Apply(caller, patch, s.now()); err != nil {
			return err
		}
		dropped = meeting.DroppedAttachments(before, m.Attachments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.deleteObjects(ctx, id, dropped)
	return m, nil
}

// Delete removes a meeting the caller may access
func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerRaw string) error {
	caller := s.Caller(callerRaw)

	unlock, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := m.Remove(caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, m)

	s.logger.Info("Meeting deleted",
		zap.String("meeting_id", id.String()),
		zap.String("caller", caller.String()))
	return nil
}

func (s *Service) toPatch(req UpdateMeetingRequest) meeting.Patch {
	p := meeting.Patch{
		Name:          req.Name,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		Type:          req.Type,
		Unit:          req.Unit,
		Department:    req.Department,
		Indic:         req.Indic,
		Plan:          req.Plan,
		Recurrence:    req.Recurrence,
		Active:        req.Active,
		UserDirectory: req.UserDirectory,
		Highlights:    req.Highlights,
		Pautas:        req.Pautas,
		Tasks:         req.Tasks,
		Notes:         req.Notes,
		Attachments:   req.Attachments,
	}
	if req.Members != nil {
		p.Members = s.resolver.ResolveAll(req.Members)
	}
	if req.Responsible != nil {
		resolved := s.Caller(*req.Responsible).String()
		p.Responsible = &resolved
	}
	return p
}
