package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/auth"
	"github.com/orbita/backend/internal/infrastructure/logger"
	"github.com/orbita/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Caller identification
const (
	CallerHeader     = "X-User-Key"
	CallerQueryParam = "user"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "

	ClaimsKey = "auth_claims"
)

// Authenticator validates bearer tokens
type Authenticator interface {
	Enabled() bool
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// Caller extracts the raw caller key of the request.
// A bearer token wins over the X-User-Key header, which wins over ?user=.
// An invalid bearer token is rejected with 401; no caller at all is the
// anonymous caller and is left for the meeting rules to decide.
func Caller(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		var callerKey string

		if token, ok := bearerToken(c); ok && authenticator != nil && authenticator.Enabled() {
			claims, err := authenticator.Authenticate(c.Request.Context(), token)
			if err != nil {
				log.Warn("Bearer authentication failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
				abortUnauthorized(c, err)
				return
			}
			c.Set(ClaimsKey, claims)
			callerKey = claims.UserKey
		} else {
			callerKey = strings.TrimSpace(c.GetHeader(CallerHeader))
			if callerKey == "" {
				callerKey = strings.TrimSpace(c.Query(CallerQueryParam))
			}
		}

		c.Set(logger.GinCallerKey, callerKey)
		ctx, _ := logger.WithCallerKey(c.Request.Context(), logger.FromContext(c.Request.Context()), callerKey)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireClaims rejects requests that did not present a valid bearer token
func RequireClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetClaims(c) == nil {
			abortUnauthorized(c, shared.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// GetCallerKey returns the raw caller key set by Caller
func GetCallerKey(c *gin.Context) string {
	return c.GetString(logger.GinCallerKey)
}

// GetClaims returns the validated bearer claims, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, err error) {
	message := shared.ErrUnauthorized.Message
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == shared.CodeUnauthorized {
		message = de.Message
	}
	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeUnauthorized),
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
