package identity

import "context"

// ParticipantRepository persists the participant directory
type ParticipantRepository interface {
	Directory

	// FindAll returns every participant in directory order
	FindAll(ctx context.Context) ([]Participant, error)

	// FindByEmail finds a participant by email
	FindByEmail(ctx context.Context, email string) (*Participant, error)

	// ReplaceAll swaps the directory content and flushes it to storage
	ReplaceAll(ctx context.Context, participants []Participant) error
}

// SnapshotStore loads and saves the whole participant directory
type SnapshotStore interface {
	Load(ctx context.Context) ([]Participant, error)
	Save(ctx context.Context, participants []Participant) error
}
