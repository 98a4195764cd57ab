package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/orbita/backend/internal/application/identity"
	meetingapp "github.com/orbita/backend/internal/application/meeting"
	"github.com/orbita/backend/internal/application/minutes"
	notificationapp "github.com/orbita/backend/internal/application/notification"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/infrastructure/lock"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/infrastructure/persistence"
	"github.com/orbita/backend/internal/interfaces/http/handler"
	"github.com/orbita/backend/internal/interfaces/http/middleware"
	"github.com/orbita/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHandlers(t *testing.T) router.APIHandlers {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	log := zap.NewNop()

	participants, err := persistence.NewParticipantRegistry(ctx,
		persistence.NewFileStore[identity.Participant](filepath.Join(dir, "users.json")), log)
	require.NoError(t, err)
	meetings, err := persistence.NewMeetingRegistry(ctx,
		persistence.NewFileStore[*meeting.Meeting](filepath.Join(dir, "meetings.json")), log)
	require.NoError(t, err)
	notifications, err := persistence.NewNotificationRegistry(ctx,
		persistence.NewFileStore[*notification.Notification](filepath.Join(dir, "notifications.json")), log)
	require.NoError(t, err)

	deps := meetingapp.Deps{Repo: meetings, Directory: participants, Locker: lock.NewMemoryLocker(), Logger: log}
	emitter := minutes.NewEmitter(minutes.EmitterDeps{Directory: participants, Logger: log})
	settings := minutes.NewSettingsStore(mail.Settings{})

	return router.APIHandlers{
		Meetings:      handler.NewMeetingHandler(meetingapp.NewService(deps), meetingapp.NewLifecycleService(deps, emitter, time.Second)),
		Items:         handler.NewItemHandler(meetingapp.NewItemService(deps, time.Minute)),
		Participants:  handler.NewParticipantHandler(identityapp.NewParticipantService(participants, log)),
		Notifications: handler.NewNotificationHandler(notificationapp.NewFeedService(notifications, participants, log)),
		Email:         handler.NewEmailHandler(minutes.NewMailService(meetings, participants, settings, emitter, log)),
	}
}

func TestAPIHandlers_Groups(t *testing.T) {
	groups := newHandlers(t).Groups()

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"meetings", "users", "notifications", "email"}, names)

	meetings := groups[0].Routes()
	for _, route := range []string{
		"GET ",
		"POST ",
		"GET /:id",
		"PUT /:id",
		"DELETE /:id",
		"PUT /:id/start",
		"PUT /:id/complete",
		"GET /:id/highlights",
		"POST /:id/pautas",
		"PUT /:id/tasks/:itemId",
		"DELETE /:id/notes/:itemId",
		"POST /:id/attachments",
		"DELETE /:id/attachments/:itemId",
		"GET /:id/attachments/:itemId/download",
	} {
		assert.Contains(t, meetings, route)
	}
	assert.False(t, slices.Contains(meetings, "PUT /:id/attachments/:itemId"), "attachments are immutable")
}

func TestRegisterAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	r := router.NewRouter(engine)
	r.Use(middleware.Caller(nil, zap.NewNop()))
	router.RegisterAPI(r, newHandlers(t))
	r.Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, route := range []string{
		"GET /api/v1/meetings",
		"PUT /api/v1/meetings/:id/complete",
		"GET /api/v1/users",
		"PUT /api/v1/users/sync",
		"GET /api/v1/notifications/unread-count",
		"PUT /api/v1/notifications/read-all",
		"GET /api/v1/email/preview-ata-pdf/:id",
		"POST /api/v1/email/notify-meeting/:id",
	} {
		assert.True(t, registered[route], route)
	}
	assert.False(t, registered["POST /api/v1/auth/token"], "auth routes need an auth handler")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/meetings?status=all", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}
