package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/orbita/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     testSecret,
		Issuer:     "orbita-test",
		Expiration: time.Hour,
	})
}

func TestJWTService_GenerateAndParse(t *testing.T) {
	svc := newTestJWTService()

	tok, err := svc.Generate(" AC ", "Ana Costa")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.Parse(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "AC", claims.UserKey)
	assert.Equal(t, "Ana Costa", claims.Name)
	assert.Equal(t, "orbita-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(time.Now()), 59*time.Minute)
}

func TestJWTService_Disabled(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{})

	assert.False(t, svc.Enabled())
	_, err := svc.Generate("AC", "")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = svc.Parse("anything")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestJWTService()

	t.Run("empty key", func(t *testing.T) {
		_, err := svc.Generate("  ", "")
		assert.ErrorIs(t, err, ErrMissingUserKey)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "orbita-test"})
		tok, err := other.Generate("AC", "")
		require.NoError(t, err)
		_, err = svc.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "someone-else"})
		tok, err := other.Generate("AC", "")
		require.NoError(t, err)
		_, err = svc.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestJWTService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := past.Generate("AC", "")
		require.NoError(t, err)
		_, err = svc.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("missing user key", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "orbita-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = svc.Parse(signed)
		assert.ErrorIs(t, err, ErrMissingUserKey)
	})
}

func TestRevocations(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	lists := map[string]Revocations{
		"memory": NewMemoryRevocations(),
		"redis":  NewRedisRevocations(client),
	}
	for name, r := range lists {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, r.Revoke(ctx, "jti-1", time.Hour))
			require.NoError(t, r.Revoke(ctx, "jti-zero", 0))

			revoked, err := r.IsRevoked(ctx, "jti-1")
			require.NoError(t, err)
			assert.True(t, revoked)

			revoked, err = r.IsRevoked(ctx, "jti-2")
			require.NoError(t, err)
			assert.False(t, revoked)

			revoked, err = r.IsRevoked(ctx, "jti-zero")
			require.NoError(t, err)
			assert.False(t, revoked)
		})
	}
}

func TestMemoryRevocations_Expire(t *testing.T) {
	r := NewMemoryRevocations()
	now := time.Now()
	r.now = func() time.Time { return now }
	require.NoError(t, r.Revoke(context.Background(), "jti", time.Minute))

	now = now.Add(2 * time.Minute)
	revoked, err := r.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, r.revoked)
}
