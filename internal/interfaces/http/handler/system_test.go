package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *SystemHandler) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	engine := gin.New()
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		w, resp := serveHealth(t, NewSystemHandler("1.2.3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, runtime.Version(), resp.GoVersion)
		assert.Nil(t, resp.Checks)
	})

	t.Run("all checks pass", func(t *testing.T) {
		w, resp := serveHealth(t, NewSystemHandler("dev", map[string]HealthCheck{
			"storage": func(context.Context) error { return nil },
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]string{"storage": "ok"}, resp.Checks)
	})

	t.Run("a failing check answers 503", func(t *testing.T) {
		w, resp := serveHealth(t, NewSystemHandler("dev", map[string]HealthCheck{
			"storage": func(context.Context) error { return nil },
			"redis":   func(context.Context) error { return errors.New("dial tcp: connection refused") },
		}))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, map[string]string{"storage": "ok", "redis": "error"}, resp.Checks)
	})

	t.Run("checks get a deadline", func(t *testing.T) {
		var hasDeadline bool
		serveHealth(t, NewSystemHandler("dev", map[string]HealthCheck{
			"storage": func(ctx context.Context) error {
				_, hasDeadline = ctx.Deadline()
				return nil
			},
		}))
		assert.True(t, hasDeadline)
	})
}
