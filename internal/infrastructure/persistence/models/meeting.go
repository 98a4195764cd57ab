package models

import (
	"encoding/json"
	"fmt"

	"github.com/orbita/backend/internal/domain/meeting"
	"gorm.io/datatypes"
)

// MeetingModel stores a meeting with its embedded collections as a JSON document.
// Scalar columns mirror the fields used for listing and ordering.
type MeetingModel struct {
	AggregateModel
	Position    int            `gorm:"not null;default:0;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Status      string         `gorm:"type:varchar(20);not null;index"`
	Date        string         `gorm:"type:varchar(10);index"`
	Time        string         `gorm:"type:varchar(5)"`
	Responsible string         `gorm:"type:varchar(255)"`
	Document    datatypes.JSON `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MeetingModel) TableName() string {
	return "meetings"
}

// MeetingModelFromDomain maps a meeting at position pos of the snapshot
func MeetingModelFromDomain(m *meeting.Meeting, pos int) (*MeetingModel, error) {
	doc, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meeting %s: %w", m.ID, err)
	}
	model := &MeetingModel{
		Position:    pos,
		Name:        m.Name,
		Status:      m.Status.String(),
		Date:        m.Date,
		Time:        m.Time,
		Responsible: m.Responsible,
		Document:    datatypes.JSON(doc),
	}
	model.AggregateModel = aggregateFrom(m.BaseAggregateRoot)
	return model, nil
}

// ToDomain decodes the document; identity and version come from the columns
func (m *MeetingModel) ToDomain() (*meeting.Meeting, error) {
	var out meeting.Meeting
	if err := json.Unmarshal(m.Document, &out); err != nil {
		return nil, fmt.Errorf("failed to decode meeting %s: %w", m.ID, err)
	}
	out.BaseAggregateRoot = m.aggregate()
	out.Normalize()
	return &out, nil
}
