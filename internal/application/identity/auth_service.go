package identity

import (
	"context"
	"errors"
	"time"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// LoginRequest picks a registered participant by initials, email or id
type LoginRequest struct {
	User string `json:"user" binding:"required,max=255"`
}

// LoginResult is an issued bearer token
type LoginResult struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        identity.Participant `json:"user"`
}

// AuthService issues and revokes caller bearer tokens.
// The token only asserts the caller key; meeting rules still decide access.
type AuthService struct {
	directory   identity.Directory
	jwtService  *auth.JWTService
	revocations auth.Revocations
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new AuthService. revocations may be nil.
func NewAuthService(directory identity.Directory, jwtService *auth.JWTService, revocations auth.Revocations, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		directory:   directory,
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger.Named("auth"),
		now:         time.Now,
	}
}

// Enabled reports whether bearer tokens are in use
func (s *AuthService) Enabled() bool {
	return s != nil && s.jwtService.Enabled()
}

// Login issues a token for a registered participant
func (s *AuthService) Login(_ context.Context, req LoginRequest) (*LoginResult, error) {
	if !s.Enabled() {
		return nil, shared.NewBadRequestError("Autenticação por token desabilitada")
	}

	var participants []identity.Participant
	if s.directory != nil {
		participants = s.directory.Participants()
	}
	key := identity.ResolveIn(participants, req.User)
	if key.Kind() != identity.KeyRegistered {
		s.logger.Warn("Login attempt for unknown participant", zap.String("user", req.User))
		return nil, shared.NewUnauthorizedError("Usuário não encontrado")
	}
	p, _ := identity.FindByKey(participants, key.String())

	token, err := s.jwtService.Generate(key.String(), p.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Token issued", zap.String("user_key", key.String()))
	return &LoginResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        p,
	}, nil
}

// Authenticate validates a bearer token and checks it was not revoked
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewUnauthorizedError("Token expirado")
		}
		return nil, shared.NewUnauthorizedError("Token inválido")
	}
	if s.revocations != nil && claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail closed
			s.logger.Error("Failed to check token revocation", zap.Error(err))
			return nil, shared.NewUnauthorizedError("Token inválido")
		}
		if revoked {
			return nil, shared.NewUnauthorizedError("Token revogado")
		}
	}
	return claims, nil
}

// Logout revokes the token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revocations == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.RemainingTTL(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.logger.Info("Token revoked", zap.String("user_key", claims.UserKey))
	return nil
}
