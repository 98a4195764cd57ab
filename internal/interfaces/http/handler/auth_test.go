package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	identityapp "github.com/orbita/backend/internal/application/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/interfaces/http/dto"
	"github.com/orbita/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testAPI) doBearer(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Token(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{"user": "ac@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decodeData[identityapp.LoginResult](t, w)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "AC", result.User.Initials)

	t.Run("unknown participant", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{"user": "ZZ"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("user is required", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_BearerIdentifiesTheCaller(t *testing.T) {
	api := newTestAPI(t)
	id := api.createMeeting(t)

	token, err := api.jwt.Generate("BL", "Bruno Lima")
	require.NoError(t, err)

	// the token wins over the header, so BL is an outsider here
	req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings/"+id, nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token.AccessToken)
	req.Header.Set(middleware.CallerHeader, "GM")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, meeting.ReasonNotMember, decodeError(t, w).Reason)

	w = api.doBearer(t, http.MethodGet, "/api/v1/meetings/"+id, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/auth/logout", "GM", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{"user": "GM"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeData[identityapp.LoginResult](t, w).AccessToken

	w = api.doBearer(t, http.MethodGet, "/api/v1/notifications", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.doBearer(t, http.MethodPost, "/api/v1/auth/logout", token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.doBearer(t, http.MethodGet, "/api/v1/notifications", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
