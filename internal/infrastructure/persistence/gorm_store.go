package persistence

import (
	"context"
	"fmt"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMeetingStore persists the meeting snapshot in the meetings table
type GormMeetingStore struct {
	db *gorm.DB
}

// NewGormMeetingStore creates a meeting snapshot store
func NewGormMeetingStore(db *gorm.DB) *GormMeetingStore {
	return &GormMeetingStore{db: db}
}

// Load reads every meeting in snapshot order
func (s *GormMeetingStore) Load(ctx context.Context) ([]*meeting.Meeting, error) {
	var rows []models.MeetingModel
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	out := make([]*meeting.Meeting, 0, len(rows))
	for i := range rows {
		m, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Save rewrites the table inside one transaction
func (s *GormMeetingStore) Save(ctx context.Context, meetings []*meeting.Meeting) error {
	rows := make([]*models.MeetingModel, 0, len(meetings))
	for i, m := range meetings {
		row, err := models.MeetingModelFromDomain(m, i)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return replaceAll(ctx, s.db, &models.MeetingModel{}, rows)
}

// GormParticipantStore persists the participant directory
type GormParticipantStore struct {
	db *gorm.DB
}

// NewGormParticipantStore creates a participant snapshot store
func NewGormParticipantStore(db *gorm.DB) *GormParticipantStore {
	return &GormParticipantStore{db: db}
}

// Load reads the directory in order
func (s *GormParticipantStore) Load(ctx context.Context) ([]identity.Participant, error) {
	var rows []models.ParticipantModel
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	out := make([]identity.Participant, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save rewrites the directory
func (s *GormParticipantStore) Save(ctx context.Context, participants []identity.Participant) error {
	rows := make([]*models.ParticipantModel, 0, len(participants))
	for i, p := range participants {
		rows = append(rows, models.ParticipantModelFromDomain(p, i))
	}
	return replaceAll(ctx, s.db, &models.ParticipantModel{}, rows)
}

// GormNotificationStore persists the notification feed
type GormNotificationStore struct {
	db *gorm.DB
}

// NewGormNotificationStore creates a notification snapshot store
func NewGormNotificationStore(db *gorm.DB) *GormNotificationStore {
	return &GormNotificationStore{db: db}
}

// Load reads the feed, newest first
func (s *GormNotificationStore) Load(ctx context.Context) ([]*notification.Notification, error) {
	var rows []models.NotificationModel
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	out := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		n, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Save rewrites the feed
func (s *GormNotificationStore) Save(ctx context.Context, notifications []*notification.Notification) error {
	rows := make([]*models.NotificationModel, 0, len(notifications))
	for _, n := range notifications {
		row, err := models.NotificationModelFromDomain(n)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return replaceAll(ctx, s.db, &models.NotificationModel{}, rows)
}

// replaceAll deletes every row of model's table and inserts rows in one transaction
func replaceAll[T any](ctx context.Context, db *gorm.DB, model any, rows []*T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	})
}

var (
	_ meeting.SnapshotStore      = (*GormMeetingStore)(nil)
	_ identity.SnapshotStore     = (*GormParticipantStore)(nil)
	_ notification.SnapshotStore = (*GormNotificationStore)(nil)
)
