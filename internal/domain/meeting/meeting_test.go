package meeting

import (
	"math"
	"testing"
	"time"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(raw string) identity.ParticipantKey {
	return identity.AdHocKey(raw)
}

func newTestMeeting(t *testing.T) *Meeting {
	t.Helper()
	m, err := NewMeeting(NewMeetingParams{Name: "Weekly", Members: []string{"GM", "AC"}})
	require.NoError(t, err)
	m.ClearDomainEvents()
	return m
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusNotStarted, StatusCompleted, true},
		{StatusNotStarted, StatusNotStarted, false},
		{StatusInProgress, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusNotStarted, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCompleted, StatusNotStarted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.False(t, Status("archived").IsValid())
}

func TestNewMeeting(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		m, err := NewMeeting(NewMeetingParams{Name: "  Kickoff  "})

		require.NoError(t, err)
		assert.Equal(t, "Kickoff", m.Name)
		assert.Equal(t, DefaultTime, m.Time)
		assert.Equal(t, DefaultDuration, m.Duration)
		assert.Equal(t, DefaultType, m.Type)
		assert.Equal(t, DefaultRecurrence, m.Recurrence)
		assert.True(t, m.Active)
		assert.Equal(t, []string{FallbackMember}, m.Members)
		assert.Equal(t, FallbackMember, m.Responsible)
		assert.Equal(t, StatusNotStarted, m.Status)
		assert.Equal(t, time.Now().Format(DateLayout), m.Date)
		assert.Equal(t, 1, m.GetVersion())
	})

	t.Run("responsible defaults to first member", func(t *testing.T) {
		m, err := NewMeeting(NewMeetingParams{Name: "M", Members: []string{"ac", "gm"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"AC", "GM"}, m.Members)
		assert.Equal(t, "AC", m.Responsible)
	})

	t.Run("members default to responsible", func(t *testing.T) {
		m, err := NewMeeting(NewMeetingParams{Name: "M", Responsible: "lp", Active: lo.ToPtr(false)})

		require.NoError(t, err)
		assert.Equal(t, []string{"LP"}, m.Members)
		assert.False(t, m.Active)
	})

	t.Run("fails with blank name", func(t *testing.T) {
		_, err := NewMeeting(NewMeetingParams{Name: "   "})

		assert.True(t, shared.IsBadRequest(err))
		assert.Contains(t, err.Error(), "obrigatório")
	})

	t.Run("raises created event", func(t *testing.T) {
		m, err := NewMeeting(NewMeetingParams{Name: "M", Members: []string{"GM", "AC"}})
		require.NoError(t, err)

		events := m.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*MeetingCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, []string{"GM", "AC"}, created.Members)
	})
}

func TestMeeting_Start(t *testing.T) {
	first := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("requires a caller", func(t *testing.T) {
		m := newTestMeeting(t)

		err := m.Start(identity.Anonymous, nil, nil, first)

		assert.True(t, shared.IsBadRequest(err))
		assert.Equal(t, StatusNotStarted, m.Status)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		m := newTestMeeting(t)

		err := m.Start(key("ZZ"), nil, nil, first)

		assert.Equal(t, ReasonNotMember, shared.ForbiddenReason(err))
	})

	t.Run("rejects members that are not responsible", func(t *testing.T) {
		m := newTestMeeting(t)

		err := m.Start(key("AC"), nil, nil, first)

		assert.Equal(t, ReasonNotResponsible, shared.ForbiddenReason(err))
		assert.Nil(t, m.StartedAt)
	})

	t.Run("starts and records present members", func(t *testing.T) {
		m := newTestMeeting(t)

		err := m.Start(key("gm"), []string{"GM", "ac", "ext"}, map[string]string{"EXT": "Guest"}, first)

		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, m.Status)
		require.NotNil(t, m.StartedAt)
		assert.Equal(t, first, *m.StartedAt)
		assert.Equal(t, []string{"GM", "AC", "EXT"}, m.PresentMembers)
		assert.Equal(t, "Guest", m.UserDirectory["EXT"])
		require.Len(t, m.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeMeetingStarted, m.GetDomainEvents()[0].EventType())
	})

	t.Run("second start keeps the first startedAt", func(t *testing.T) {
		m := newTestMeeting(t)
		require.NoError(t, m.Start(key("GM"), []string{"GM"}, nil, first))

		require.NoError(t, m.Start(key("GM"), nil, nil, first.Add(time.Hour)))

		assert.Equal(t, first, *m.StartedAt)
		assert.Equal(t, []string{"GM"}, m.PresentMembers)
	})

	t.Run("merges the user directory", func(t *testing.T) {
		m := newTestMeeting(t)
		m.UserDirectory = map[string]string{"GM": "Gabriel"}

		require.NoError(t, m.Start(key("GM"), nil, map[string]string{"AC": "Ana"}, first))

		assert.Equal(t, map[string]string{"GM": "Gabriel", "AC": "Ana"}, m.UserDirectory)
	})

	t.Run("completed meeting cannot restart", func(t *testing.T) {
		m := newTestMeeting(t)
		require.NoError(t, m.Complete(key("GM"), nil, first))

		err := m.Start(key("GM"), nil, nil, first)

		assert.Equal(t, ReasonMeetingClosed, shared.ForbiddenReason(err))
		assert.Equal(t, StatusCompleted, m.Status)
	})
}

func TestMeeting_Complete(t *testing.T) {
	at := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

	t.Run("any member may complete", func(t *testing.T) {
		m := newTestMeeting(t)
		require.NoError(t, m.Start(key("GM"), nil, nil, at))

		err := m.Complete(key("AC"), lo.ToPtr(930.0), at)

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, m.Status)
		assert.Equal(t, at, *m.CompletedAt)
		assert.Equal(t, int64(930), *m.ActualDurationSeconds)
		assert.Equal(t, "00:15:30", m.ElapsedLabel())
	})

	t.Run("complete is allowed from not_started", func(t *testing.T) {
		m := newTestMeeting(t)

		require.NoError(t, m.Complete(key("GM"), nil, at))

		assert.Equal(t, StatusCompleted, m.Status)
		assert.Nil(t, m.StartedAt)
	})

	t.Run("ignores invalid durations", func(t *testing.T) {
		for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
			m := newTestMeeting(t)
			require.NoError(t, m.Complete(key("GM"), lo.ToPtr(d), at))
			assert.Nil(t, m.ActualDurationSeconds)
		}
	})

	t.Run("rejects non-members", func(t *testing.T) {
		m := newTestMeeting(t)

		err := m.Complete(key("LP"), nil, at)

		assert.Equal(t, ReasonNotMember, shared.ForbiddenReason(err))
		assert.Equal(t, StatusNotStarted, m.Status)
	})

	t.Run("rejects completing twice", func(t *testing.T) {
		m := newTestMeeting(t)
		require.NoError(t, m.Complete(key("GM"), lo.ToPtr(10.0), at))

		err := m.Complete(key("GM"), lo.ToPtr(99.0), at.Add(time.Minute))

		assert.Equal(t, ReasonMeetingClosed, shared.ForbiddenReason(err))
		assert.Equal(t, int64(10), *m.ActualDurationSeconds)
	})
}

func TestMeeting_Remove(t *testing.T) {
	m := newTestMeeting(t)

	assert.Equal(t, ReasonNotMember, shared.ForbiddenReason(m.Remove(key("LP"))))
	require.NoError(t, m.Remove(key("AC")))

	events := m.GetDomainEvents()
	require.Len(t, events, 1)
	removed := events[0].(*MeetingRemovedEvent)
	assert.Equal(t, "AC", removed.RemovedBy)
	assert.Equal(t, []string{"GM", "AC"}, removed.Members)
}

func TestMeeting_Clone(t *testing.T) {
	m := newTestMeeting(t)
	require.NoError(t, m.Start(key("GM"), []string{"GM"}, nil, time.Now()))

	c := m.Clone()
	c.Members[0] = "XX"
	c.UserDirectory["XX"] = "x"
	*c.StartedAt = time.Time{}

	assert.Equal(t, "GM", m.Members[0])
	assert.NotContains(t, m.UserDirectory, "XX")
	assert.False(t, m.StartedAt.IsZero())
	assert.Empty(t, c.GetDomainEvents())
	assert.NotEmpty(t, m.GetDomainEvents())
}

func TestMeeting_Normalize(t *testing.T) {
	m := &Meeting{Members: []string{" ac ", "AC"}, Status: "bogus"}

	m.Normalize()

	assert.Equal(t, []string{"AC"}, m.Members)
	assert.Equal(t, "AC", m.Responsible)
	assert.Equal(t, StatusNotStarted, m.Status)
	assert.NotNil(t, m.Highlights)
	assert.NotNil(t, m.UserDirectory)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(-5))
	assert.Equal(t, "01:01:01", FormatElapsed(3661))
	assert.Equal(t, "26:00:00", FormatElapsed(26*3600))
}
