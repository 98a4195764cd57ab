package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/auth"
	"github.com/orbita/backend/internal/infrastructure/logger"
	"github.com/orbita/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

func callerRouter(a Authenticator) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Caller(a, nil))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"caller":  GetCallerKey(c),
			"ctx":     logger.GetCallerKey(c.Request.Context()),
			"claimed": GetClaims(c) != nil,
		})
	})
	return router
}

func whoami(t *testing.T, router *gin.Engine, req *http.Request) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestCaller_Sources(t *testing.T) {
	router := callerRouter(nil)

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami?user=query", nil)
		req.Header.Set(CallerHeader, " ac ")
		code, body := whoami(t, router, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ac", body["caller"])
		assert.Equal(t, "ac", body["ctx"])
	})

	t.Run("query fallback", func(t *testing.T) {
		code, body := whoami(t, router, httptest.NewRequest(http.MethodGet, "/whoami?user=gm@example.com", nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "gm@example.com", body["caller"])
	})

	t.Run("anonymous", func(t *testing.T) {
		code, body := whoami(t, router, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "", body["caller"])
		assert.Equal(t, false, body["claimed"])
	})

	t.Run("bearer ignored without authenticator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer whatever")
		req.Header.Set(CallerHeader, "BL")
		code, body := whoami(t, router, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "BL", body["caller"])
	})
}

func TestCaller_Bearer(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Enabled").Return(true)
	a.On("Authenticate", mock.Anything, "good").Return(&auth.Claims{UserKey: "AC"}, nil)
	a.On("Authenticate", mock.Anything, "bad").Return(nil, shared.NewUnauthorizedError("Token expirado"))
	router := callerRouter(a)

	t.Run("token wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer good")
		req.Header.Set(CallerHeader, "GM")
		code, body := whoami(t, router, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "AC", body["caller"])
		assert.Equal(t, true, body["claimed"])
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer bad")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
		assert.Equal(t, "Token expirado", resp.Error.Message)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	a.AssertExpectations(t)
}

func TestRequireClaims(t *testing.T) {
	router := gin.New()
	router.Use(Caller(nil, nil), RequireClaims())
	router.POST("/logout", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set(CallerHeader, "GM")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
