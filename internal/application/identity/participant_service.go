package identity

import (
	"context"
	"sync"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SyncParticipantsRequest upserts directory entries
type SyncParticipantsRequest struct {
	Users []identity.Participant `json:"users" binding:"required"`
}

// ParticipantService manages the participant directory
type ParticipantService struct {
	repo   identity.ParticipantRepository
	logger *zap.Logger

	// serializes read-merge-replace cycles
	syncMu sync.Mutex
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(repo identity.ParticipantRepository, logger *zap.Logger) *ParticipantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{repo: repo, logger: logger}
}

// List returns the directory, or the single participant matching email
func (s *ParticipantService) List(ctx context.Context, email string) ([]identity.Participant, error) {
	if email == "" {
		return s.repo.FindAll(ctx)
	}
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			return []identity.Participant{}, nil
		}
		return nil, err
	}
	return []identity.Participant{*p}, nil
}

// Sync merges the incoming entries into the directory
func (s *ParticipantService) Sync(ctx context.Context, req SyncParticipantsRequest) (identity.SyncResult, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return identity.SyncResult{}, err
	}
	merged, result := identity.MergeParticipants(existing, req.Users)
	if result.Updated == 0 {
		return result, nil
	}
	if err := s.repo.ReplaceAll(ctx, merged); err != nil {
		return identity.SyncResult{}, err
	}

	s.logger.Info("Participants synced",
		zap.Int("received", len(req.Users)),
		zap.Int("updated", result.Updated),
		zap.Int("total", result.Total))
	return result, nil
}
