package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingMeetingStore struct{}

func (failingMeetingStore) Load(context.Context) ([]*meeting.Meeting, error) { return nil, nil }
func (failingMeetingStore) Save(context.Context, []*meeting.Meeting) error {
	return errors.New("disk full")
}

func newMeeting(t *testing.T, name string, members ...string) *meeting.Meeting {
	t.Helper()
	m, err := meeting.NewMeeting(meeting.NewMeetingParams{Name: name, Members: members, Date: "2026-05-10"})
	require.NoError(t, err)
	return m
}

func TestMeetingRegistry(t *testing.T) {
	ctx := context.Background()

	newRegistry := func(t *testing.T) (*MeetingRegistry, *FileStore[*meeting.Meeting]) {
		store := NewFileStore[*meeting.Meeting](filepath.Join(t.TempDir(), MeetingsFile))
		r, err := NewMeetingRegistry(ctx, store, zap.NewNop())
		require.NoError(t, err)
		return r, store
	}

	t.Run("save flushes and a new registry reloads it", func(t *testing.T) {
		r, store := newRegistry(t)
		m := newMeeting(t, "Weekly", "GM", "AC")

		require.NoError(t, r.Save(ctx, m))

		reloaded, err := NewMeetingRegistry(ctx, store, nil)
		require.NoError(t, err)
		got, err := reloaded.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "Weekly", got.Name)
		assert.Equal(t, []string{"GM", "AC"}, got.Members)
		assert.Equal(t, 1, reloaded.Count())
	})

	t.Run("reads are copies", func(t *testing.T) {
		r, _ := newRegistry(t)
		m := newMeeting(t, "Weekly", "GM")
		require.NoError(t, r.Save(ctx, m))

		got, err := r.FindByID(ctx, m.ID)
		require.NoError(t, err)
		got.Name = "changed"
		got.Members[0] = "XX"

		again, err := r.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "Weekly", again.Name)
		assert.Equal(t, []string{"GM"}, again.Members)
	})

	t.Run("stale write is a concurrency conflict", func(t *testing.T) {
		r, _ := newRegistry(t)
		m := newMeeting(t, "Weekly", "GM")
		require.NoError(t, r.Save(ctx, m))

		first, _ := r.FindByID(ctx, m.ID)
		second, _ := r.FindByID(ctx, m.ID)

		first.Name = "first"
		require.NoError(t, r.Save(ctx, first))
		assert.Equal(t, 2, first.Version)

		second.Name = "second"
		err := r.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		got, _ := r.FindByID(ctx, m.ID)
		assert.Equal(t, "first", got.Name)
	})

	t.Run("find all filters and sorts", func(t *testing.T) {
		r, _ := newRegistry(t)
		late := newMeeting(t, "Late", "GM")
		late.Date = "2026-06-01"
		early := newMeeting(t, "Early", "GM")
		early.Date = "2026-01-01"
		done := newMeeting(t, "Done", "GM")
		done.Status = meeting.StatusCompleted
		for _, m := range []*meeting.Meeting{late, early, done} {
			require.NoError(t, r.Save(ctx, m))
		}

		got, err := r.FindAll(ctx, meeting.Filter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Early", got[0].Name)
		assert.Equal(t, "Late", got[1].Name)

		all, err := r.FindAll(ctx, meeting.Filter{Status: meeting.StatusAll})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete unknown id is not found", func(t *testing.T) {
		r, _ := newRegistry(t)

		err := r.Delete(ctx, uuid.New())

		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("delete removes the meeting", func(t *testing.T) {
		r, _ := newRegistry(t)
		m := newMeeting(t, "Weekly", "GM")
		require.NoError(t, r.Save(ctx, m))

		require.NoError(t, r.Delete(ctx, m.ID))

		_, err := r.FindByID(ctx, m.ID)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("flush failure is logged, not returned", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		r, err := NewMeetingRegistry(ctx, failingMeetingStore{}, zap.New(core))
		require.NoError(t, err)

		err = r.Save(ctx, newMeeting(t, "Weekly", "GM"))

		assert.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("Failed to persist meetings").Len())
		assert.Equal(t, 1, r.Count())
	})
}

func TestParticipantRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds defaults into an empty store", func(t *testing.T) {
		store := NewFileStore[identity.Participant](filepath.Join(t.TempDir(), UsersFile))

		r, err := NewParticipantRegistry(ctx, store, nil)
		require.NoError(t, err)

		assert.Equal(t, identity.DefaultParticipants(), r.Participants())
		persisted, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, persisted, 5)
	})

	t.Run("find by email ignores case", func(t *testing.T) {
		store := NewFileStore[identity.Participant](filepath.Join(t.TempDir(), UsersFile))
		require.NoError(t, store.Save(ctx, []identity.Participant{
			{ID: "u9", Name: "Bia Souza", Initials: "BS", Email: "bia@example.com", Role: identity.RoleUser},
		}))
		r, err := NewParticipantRegistry(ctx, store, nil)
		require.NoError(t, err)

		p, err := r.FindByEmail(ctx, "BIA@example.com")
		require.NoError(t, err)
		assert.Equal(t, "BS", p.Initials)

		_, err = r.FindByEmail(ctx, "nobody@example.com")
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("replace all persists", func(t *testing.T) {
		store := NewFileStore[identity.Participant](filepath.Join(t.TempDir(), UsersFile))
		r, err := NewParticipantRegistry(ctx, store, nil)
		require.NoError(t, err)

		next := []identity.Participant{{ID: "u1", Name: "Only", Initials: "ON", Role: identity.RoleAdmin}}
		require.NoError(t, r.ReplaceAll(ctx, next))

		persisted, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, next, persisted)
	})
}

func TestNotificationRegistry(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore[*notification.Notification](filepath.Join(t.TempDir(), NotificationsFile))
	r, err := NewNotificationRegistry(ctx, store, nil)
	require.NoError(t, err)

	meetingID := uuid.New()
	older := notification.MeetingCreated(meetingID, "Weekly", []string{"GM"})
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := notification.MeetingRemoved("Other", []string{"AC"})

	require.NoError(t, r.Save(ctx, older, newer))

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest first")

	removed, err := r.DeleteByMeeting(ctx, meetingID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = r.FindByID(ctx, older.ID)
	assert.True(t, shared.IsNotFound(err))

	reloaded, err := NewNotificationRegistry(ctx, store, nil)
	require.NoError(t, err)
	got, err := reloaded.FindByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"AC"}, got.Recipients)
}
