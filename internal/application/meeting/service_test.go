package meeting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/lock"
	"github.com/orbita/backend/internal/infrastructure/persistence"
	"github.com/orbita/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ============================================================================
// Fakes
// ============================================================================

type memorySnapshots struct {
	mu    sync.Mutex
	saved []*meeting.Meeting
	err   error
}

func (s *memorySnapshots) Load(context.Context) ([]*meeting.Meeting, error) { return nil, nil }

func (s *memorySnapshots) Save(_ context.Context, meetings []*meeting.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = meetings
	return s.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, mt *meeting.Meeting) meeting.NotifyOutcome {
	args := m.Called(ctx, mt)
	return args.Get(0).(meeting.NotifyOutcome)
}

var fixedNow = time.Date(2026, 5, 10, 14, 30, 0, 0, time.UTC)

var testDirectory = identity.StaticDirectory{
	{ID: "1", Name: "Gabriel Martins", Initials: "GM", Email: "gm@example.com"},
	{ID: "2", Name: "Ana Costa", Initials: "AC", Email: "ac@example.com"},
	{ID: "3", Name: "Bruno Lima", Initials: "BL", Email: "bl@example.com"},
}

type fixture struct {
	deps      Deps
	repo      *persistence.MeetingRegistry
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := persistence.NewMeetingRegistry(context.Background(), &memorySnapshots{}, zap.NewNop())
	require.NoError(t, err)
	pub := &recordingPublisher{}
	return &fixture{
		repo:      repo,
		publisher: pub,
		deps: Deps{
			Repo:      repo,
			Directory: testDirectory,
			Locker:    lock.NewMemoryLocker(),
			Events:    pub,
			Logger:    zap.NewNop(),
			Now:       func() time.Time { return fixedNow },
		},
	}
}

// seed creates a GM-responsible meeting with GM and AC as members
func (f *fixture) seed(t *testing.T) *meeting.Meeting {
	t.Helper()
	m, err := NewService(f.deps).Create(context.Background(), CreateMeetingRequest{
		Name:    "Reunião semanal",
		Date:    "2026-05-10",
		Members: []string{"gm@example.com", "ac"},
	})
	require.NoError(t, err)
	return m
}

func forbiddenReason(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, shared.IsForbidden(err), "expected forbidden, got %v", err)
	return shared.ForbiddenReason(err)
}

// ============================================================================
// Service
// ============================================================================

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	m := f.seed(t)

	assert.Equal(t, []string{"GM", "AC"}, m.Members)
	assert.Equal(t, "GM", m.Responsible)
	assert.Equal(t, meeting.StatusNotStarted, m.Status)
	assert.Equal(t, meeting.DefaultTime, m.Time)
	assert.Empty(t, m.GetDomainEvents())
	assert.Equal(t, []string{meeting.EventTypeMeetingCreated}, f.publisher.types())

	stored, err := f.repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, stored.Name)
}

func TestService_CreateRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := NewService(f.deps).Create(context.Background(), CreateMeetingRequest{Name: "  "})
	require.Error(t, err)
	assert.True(t, shared.IsBadRequest(err))
}

func TestService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.deps)
	m := f.seed(t)

	t.Run("members see the meeting", func(t *testing.T) {
		list, err := svc.List(ctx, "ac@example.com", ListMeetingsQuery{Status: "all"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, m.ID, list[0].ID)
	})

	t.Run("outsiders see nothing", func(t *testing.T) {
		list, err := svc.List(ctx, "BL", ListMeetingsQuery{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("get by outsider is forbidden", func(t *testing.T) {
		_, err := svc.Get(ctx, m.ID, "BL")
		assert.Equal(t, meeting.ReasonNotMember, forbiddenReason(t, err))
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, uuid.New(), "GM")
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.deps)
	m := f.seed(t)

	name := "Comitê mensal"
	updated, err := svc.Update(ctx, m.ID, "AC", UpdateMeetingRequest{
		Name:    &name,
		Members: []string{"GM", "ac", "bl@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, []string{"GM", "AC", "BL"}, updated.Members)
	assert.Equal(t, m.GetVersion()+1, updated.GetVersion())

	_, err = svc.Update(ctx, m.ID, "ZZ", UpdateMeetingRequest{Name: &name})
	assert.Equal(t, meeting.ReasonNotMember, forbiddenReason(t, err))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.deps)
	m := f.seed(t)

	err := svc.Delete(ctx, m.ID, "BL")
	assert.Equal(t, meeting.ReasonNotMember, forbiddenReason(t, err))

	require.NoError(t, svc.Delete(ctx, m.ID, "AC"))
	_, err = f.repo.FindByID(ctx, m.ID)
	assert.True(t, shared.IsNotFound(err))
	assert.Contains(t, f.publisher.types(), meeting.EventTypeMeetingRemoved)
}

func TestService_UpdateKeepsStoredItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	objects := storage.NewMemoryObjectStorage()
	f.deps.Storage = objects
	svc := NewService(f.deps)
	items := NewItemService(f.deps, 0)
	m := f.seed(t)

	t.Run("pauta owner survives a bulk update", func(t *testing.T) {
		created, err := items.Create(ctx, m.ID, "AC", meeting.KindPauta, CreateItemRequest{Text: "Orçamento"})
		require.NoError(t, err)
		forged := created.(meeting.Pauta)
		forged.Assignee = "GM"
		forged.CreatedAt = forged.CreatedAt.Add(time.Hour)

		updated, err := svc.Update(ctx, m.ID, "GM", UpdateMeetingRequest{Pautas: []meeting.Pauta{forged}})
		require.NoError(t, err)
		require.Len(t, updated.Pautas, 1)
		assert.Equal(t, created, updated.Pautas[0])

		err = items.Remove(ctx, m.ID, "GM", meeting.KindPauta, forged.ID)
		assert.Equal(t, meeting.ReasonNotOwner, forbiddenReason(t, err))
	})

	a, err := items.AddAttachment(ctx, m.ID, "GM", CreateAttachmentRequest{
		Name: "ata.pdf",
		Data: dataURL("application/pdf", "%PDF-1.4"),
	})
	require.NoError(t, err)

	t.Run("another meeting cannot claim a stored object", func(t *testing.T) {
		own, err := svc.Create(ctx, CreateMeetingRequest{Name: "Minha reunião", Members: []string{"BL"}})
		require.NoError(t, err)

		_, err = svc.Update(ctx, own.ID, "BL", UpdateMeetingRequest{Attachments: []meeting.Attachment{{
			ID:         "x",
			Name:       "ata.pdf",
			StorageKey: a.StorageKey,
		}}})
		assert.True(t, shared.IsBadRequest(err))

		stored, err := f.repo.FindByID(ctx, own.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Attachments)
		assert.Equal(t, []string{a.StorageKey}, objects.Keys())
	})

	t.Run("stored keys cannot be rewritten", func(t *testing.T) {
		tampered := a
		tampered.StorageKey = "anexos/" + uuid.NewString() + "/x/secret.pdf"

		updated, err := svc.Update(ctx, m.ID, "GM", UpdateMeetingRequest{Attachments: []meeting.Attachment{tampered}})
		require.NoError(t, err)
		assert.Equal(t, []meeting.Attachment{a}, updated.Attachments)
	})

	t.Run("dropped attachments release their objects", func(t *testing.T) {
		_, err := svc.Update(ctx, m.ID, "AC", UpdateMeetingRequest{Attachments: []meeting.Attachment{}})
		assert.Equal(t, meeting.ReasonNotResponsible, forbiddenReason(t, err))
		assert.Len(t, objects.Keys(), 1)

		updated, err := svc.Update(ctx, m.ID, "GM", UpdateMeetingRequest{Attachments: []meeting.Attachment{}})
		require.NoError(t, err)
		assert.Empty(t, updated.Attachments)
		assert.Empty(t, objects.Keys())
	})
}

type blockingLocker struct{}

func (blockingLocker) Lock(ctx context.Context, _ string) (func(), error) {
	<-ctx.Done()
	return nil, shared.ErrLockTimeout
}

func TestService_LockTimeoutIsConflict(t *testing.T) {
	f := newFixture(t)
	m := f.seed(t)

	deps := f.deps
	deps.Locker = blockingLocker{}
	deps.LockWait = 10 * time.Millisecond
	name := "x"
	_, err := NewService(deps).Update(context.Background(), m.ID, "GM", UpdateMeetingRequest{Name: &name})
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
}

// ============================================================================
// LifecycleService
// ============================================================================

func TestLifecycle_StartRequiresResponsible(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := f.seed(t)
	svc := NewLifecycleService(f.deps, nil, 0)

	_, err := svc.Start(ctx, m.ID, "AC", StartMeetingRequest{})
	assert.Equal(t, meeting.ReasonNotResponsible, forbiddenReason(t, err))

	_, err = svc.Start(ctx, m.ID, "BL", StartMeetingRequest{})
	assert.Equal(t, meeting.ReasonNotMember, forbiddenReason(t, err))

	stored, err := f.repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting.StatusNotStarted, stored.Status)
}

func TestLifecycle_StartAndResume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := f.seed(t)

	clock := fixedNow
	deps := f.deps
	deps.Now = func() time.Time { return clock }
	svc := NewLifecycleService(deps, nil, 0)

	started, err := svc.Start(ctx, m.ID, "gm@example.com", StartMeetingRequest{
		PresentMembers: []string{"gm", "ac@example.com"},
		UserDirectory:  map[string]string{"GM": "Gabriel Martins"},
	})
	require.NoError(t, err)
	assert.Equal(t, meeting.StatusInProgress, started.Status)
	assert.Equal(t, []string{"GM", "AC"}, started.PresentMembers)
	require.NotNil(t, started.StartedAt)
	assert.True(t, started.StartedAt.Equal(fixedNow))

	clock = fixedNow.Add(time.Hour)
	resumed, err := svc.Start(ctx, m.ID, "GM", StartMeetingRequest{})
	require.NoError(t, err)
	assert.True(t, resumed.StartedAt.Equal(fixedNow), "startedAt must survive a resume")
	assert.Equal(t, []string{"GM", "AC"}, resumed.PresentMembers)
}

func TestLifecycle_CompleteByMemberWithDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := f.seed(t)

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(mt *meeting.Meeting) bool {
		return mt.ID == m.ID && mt.Status == meeting.StatusCompleted
	})).Return(meeting.NotifyOutcome{EmailSent: true}).Once()

	svc := NewLifecycleService(f.deps, notifier, time.Second)
	_, err := svc.Start(ctx, m.ID, "GM", StartMeetingRequest{})
	require.NoError(t, err)

	duration := Seconds(930.7)
	result, err := svc.Complete(ctx, m.ID, "AC", CompleteMeetingRequest{DurationSeconds: &duration})
	require.NoError(t, err)
	assert.Equal(t, meeting.StatusCompleted, result.Meeting.Status)
	require.NotNil(t, result.Meeting.ActualDurationSeconds)
	assert.Equal(t, int64(930), *result.Meeting.ActualDurationSeconds)
	assert.True(t, result.Notification.EmailSent)
	notifier.AssertExpectations(t)

	_, err = svc.Start(ctx, m.ID, "GM", StartMeetingRequest{})
	assert.Equal(t, meeting.ReasonMeetingClosed, forbiddenReason(t, err))
	_, err = svc.Complete(ctx, m.ID, "GM", CompleteMeetingRequest{})
	assert.Equal(t, meeting.ReasonMeetingClosed, forbiddenReason(t, err))
}

func TestLifecycle_CompleteSurvivesDeliveryFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("failed outcome", func(t *testing.T) {
		f := newFixture(t)
		m := f.seed(t)
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything).
			Return(meeting.NotifyFailed("pdf render failed"))

		result, err := NewLifecycleService(f.deps, notifier, time.Second).
			Complete(ctx, m.ID, "GM", CompleteMeetingRequest{})
		require.NoError(t, err)
		assert.False(t, result.Notification.EmailSent)
		assert.Equal(t, "pdf render failed", result.Notification.EmailError)

		stored, err := f.repo.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, meeting.StatusCompleted, stored.Status)
	})

	t.Run("panicking notifier", func(t *testing.T) {
		f := newFixture(t)
		m := f.seed(t)
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("boom")
		})

		result, err := NewLifecycleService(f.deps, notifier, time.Second).
			Complete(ctx, m.ID, "GM", CompleteMeetingRequest{})
		require.NoError(t, err)
		assert.False(t, result.Notification.EmailSent)
		assert.Contains(t, result.Notification.EmailError, "boom")
	})

	t.Run("no notifier", func(t *testing.T) {
		f := newFixture(t)
		m := f.seed(t)
		result, err := NewLifecycleService(f.deps, nil, 0).
			Complete(ctx, m.ID, "GM", CompleteMeetingRequest{})
		require.NoError(t, err)
		assert.False(t, result.Notification.EmailSent)
		assert.NotEmpty(t, result.Notification.EmailError)
	})

	t.Run("canceled request still delivers", func(t *testing.T) {
		f := newFixture(t)
		m := f.seed(t)
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.MatchedBy(func(c context.Context) bool {
			return c.Err() == nil
		}), mock.Anything).Return(meeting.NotifyOutcome{EmailSent: true})

		reqCtx, cancel := context.WithCancel(ctx)
		svc := NewLifecycleService(f.deps, notifier, time.Second)
		svc.notifier = cancelFirst{cancel: cancel, next: notifier}

		result, err := svc.Complete(reqCtx, m.ID, "GM", CompleteMeetingRequest{})
		require.NoError(t, err)
		assert.True(t, result.Notification.EmailSent)
	})
}

// cancelFirst cancels the request context before delegating
type cancelFirst struct {
	cancel context.CancelFunc
	next   Notifier
}

func (c cancelFirst) Notify(ctx context.Context, m *meeting.Meeting) meeting.NotifyOutcome {
	c.cancel()
	return c.next.Notify(ctx, m)
}

func TestLifecycle_CompleteFromNotStarted(t *testing.T) {
	f := newFixture(t)
	m := f.seed(t)

	result, err := NewLifecycleService(f.deps, nil, 0).
		Complete(context.Background(), m.ID, "AC", CompleteMeetingRequest{})
	require.NoError(t, err)
	assert.Equal(t, meeting.StatusCompleted, result.Meeting.Status)
	assert.Nil(t, result.Meeting.StartedAt)
	assert.Nil(t, result.Meeting.ActualDurationSeconds)
}
