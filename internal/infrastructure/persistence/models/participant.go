package models

import "github.com/orbita/backend/internal/domain/identity"

// ParticipantModel is a row of the participant directory
type ParticipantModel struct {
	ID       string `gorm:"type:varchar(64);primary_key"`
	Position int    `gorm:"not null;default:0"`
	Name     string `gorm:"type:varchar(255);not null"`
	Initials string `gorm:"type:varchar(16);not null;index"`
	Email    string `gorm:"type:varchar(255);index"`
	Role     string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ParticipantModel) TableName() string {
	return "participants"
}

// ParticipantModelFromDomain maps a participant at position pos
func ParticipantModelFromDomain(p identity.Participant, pos int) *ParticipantModel {
	return &ParticipantModel{
		ID:       p.ID,
		Position: pos,
		Name:     p.Name,
		Initials: p.Initials,
		Email:    p.Email,
		Role:     p.Role,
	}
}

// ToDomain converts the row to a participant
func (m *ParticipantModel) ToDomain() identity.Participant {
	return identity.Participant{
		ID:       m.ID,
		Name:     m.Name,
		Initials: m.Initials,
		Email:    m.Email,
		Role:     m.Role,
	}
}
