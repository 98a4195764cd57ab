package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/notification"
	"gorm.io/datatypes"
)

// NotificationModel is a feed entry row
type NotificationModel struct {
	BaseModel
	Title      string         `gorm:"type:varchar(255);not null"`
	Message    string         `gorm:"type:text"`
	Type       string         `gorm:"type:varchar(50);not null"`
	MeetingID  *uuid.UUID     `gorm:"type:uuid;index"`
	Recipients datatypes.JSON `gorm:"not null"`
	ReadBy     datatypes.JSON `gorm:"not null"`
	Read       bool           `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// NotificationModelFromDomain maps a notification to its row
func NotificationModelFromDomain(n *notification.Notification) (*NotificationModel, error) {
	recipients, err := json.Marshal(nonNil(n.Recipients))
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipients: %w", err)
	}
	readBy, err := json.Marshal(nonNil(n.ReadBy))
	if err != nil {
		return nil, fmt.Errorf("failed to encode readBy: %w", err)
	}
	model := &NotificationModel{
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type,
		MeetingID:  n.MeetingID,
		Recipients: datatypes.JSON(recipients),
		ReadBy:     datatypes.JSON(readBy),
		Read:       n.Read,
	}
	model.BaseModel = baseFrom(n.BaseEntity)
	return model, nil
}

// ToDomain converts the row to a notification
func (m *NotificationModel) ToDomain() (*notification.Notification, error) {
	n := &notification.Notification{
		BaseEntity: m.entity(),
		Title:      m.Title,
		Message:    m.Message,
		Type:       m.Type,
		MeetingID:  m.MeetingID,
		Read:       m.Read,
	}
	if err := json.Unmarshal(m.Recipients, &n.Recipients); err != nil {
		return nil, fmt.Errorf("failed to decode recipients of %s: %w", m.ID, err)
	}
	if err := json.Unmarshal(m.ReadBy, &n.ReadBy); err != nil {
		return nil, fmt.Errorf("failed to decode readBy of %s: %w", m.ID, err)
	}
	n.Recipients = nonNil(n.Recipients)
	n.ReadBy = nonNil(n.ReadBy)
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
