package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orbita.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, (&Database{DB: db}).AutoMigrate())
	return db
}

func TestGormMeetingStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormMeetingStore(newSQLiteDB(t))

	first := newMeeting(t, "Weekly", "GM", "AC")
	_, err := first.AddHighlight(identity.AdHocKey("GM"), "budget", time.Now())
	require.NoError(t, err)
	first.Version = 3
	second := newMeeting(t, "Retro", "AC")

	require.NoError(t, store.Save(ctx, []*meeting.Meeting{first, second}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, 3, got[0].Version)
	assert.Equal(t, "Weekly", got[0].Name)
	require.Len(t, got[0].Highlights, 1)
	assert.Equal(t, "budget", got[0].Highlights[0].Text)
	assert.Equal(t, "Retro", got[1].Name)

	require.NoError(t, store.Save(ctx, []*meeting.Meeting{second}))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
}

func TestGormParticipantStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormParticipantStore(newSQLiteDB(t))

	require.NoError(t, store.Save(ctx, identity.DefaultParticipants()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity.DefaultParticipants(), got)
}

func TestGormNotificationStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormNotificationStore(newSQLiteDB(t))

	n := notification.MeetingCreated(uuid.New(), "Weekly", []string{"GM", "AC"})
	require.NoError(t, n.MarkRead(identity.AdHocKey("GM")))

	require.NoError(t, store.Save(ctx, []*notification.Notification{n}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, n.ID, got[0].ID)
	assert.Equal(t, []string{"GM", "AC"}, got[0].Recipients)
	assert.Equal(t, []string{"GM"}, got[0].ReadBy)
	assert.Equal(t, n.MeetingID, got[0].MeetingID)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestGormMeetingStore_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("loads in position order", func(t *testing.T) {
		db, mock := newMockDB(t)
		m := newMeeting(t, "Weekly", "GM")
		row, err := models.MeetingModelFromDomain(m, 0)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "meetings" ORDER BY position ASC`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "created_at", "updated_at", "version", "position",
				"name", "status", "date", "time", "responsible", "document",
			}).AddRow(
				row.ID, row.CreatedAt, row.UpdatedAt, 4, 0,
				row.Name, row.Status, row.Date, row.Time, row.Responsible, []byte(row.Document),
			))

		got, err := NewGormMeetingStore(db).Load(ctx)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, m.ID, got[0].ID)
		assert.Equal(t, 4, got[0].Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed clear rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "meetings"`).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := NewGormMeetingStore(db).Save(ctx, []*meeting.Meeting{newMeeting(t, "Weekly", "GM")})

		assert.ErrorContains(t, err, "failed to clear snapshot")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
