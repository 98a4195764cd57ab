package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ParticipantRegistry holds the participant directory in memory and mirrors it to a store
type ParticipantRegistry struct {
	mu           sync.RWMutex
	participants []identity.Participant
	store        identity.SnapshotStore
	logger       *zap.Logger
}

// NewParticipantRegistry loads the directory, seeding the default participants when empty
func NewParticipantRegistry(ctx context.Context, store identity.SnapshotStore, logger *zap.Logger) (*ParticipantRegistry, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ParticipantRegistry{
		store:  store,
		logger: logger.Named("participant_registry"),
	}

	for _, p := range loaded {
		if clean, ok := identity.SanitizeParticipant(p); ok {
			r.participants = append(r.participants, clean)
		}
	}
	if len(r.participants) == 0 {
		r.participants = identity.DefaultParticipants()
		r.logger.Info("Seeding default participants", zap.Int("count", len(r.participants)))
		r.flush(ctx)
	}
	return r, nil
}

// Participants returns a snapshot of the directory
func (r *ParticipantRegistry) Participants() []identity.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.participants)
}

// FindAll returns every participant in directory order
func (r *ParticipantRegistry) FindAll(_ context.Context) ([]identity.Participant, error) {
	return r.Participants(), nil
}

// FindByEmail finds a participant by email, case-insensitively
func (r *ParticipantRegistry) FindByEmail(_ context.Context, email string) (*identity.Participant, error) {
	p, ok := identity.FindByEmail(r.Participants(), email)
	if !ok {
		return nil, shared.NewNotFoundError("Usuário não encontrado")
	}
	return &p, nil
}

// ReplaceAll swaps the directory and flushes it
func (r *ParticipantRegistry) ReplaceAll(ctx context.Context, participants []identity.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants = slices.Clone(participants)
	r.flush(ctx)
	return nil
}

// flush must be called with mu held or before the registry is shared
func (r *ParticipantRegistry) flush(ctx context.Context) {
	if err := r.store.Save(context.WithoutCancel(ctx), slices.Clone(r.participants)); err != nil {
		r.logger.Error("Failed to persist participants",
			zap.Int("count", len(r.participants)),
			zap.Error(err),
		)
	}
}

var _ identity.ParticipantRepository = (*ParticipantRegistry)(nil)
