package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
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
	"github.com/orbita/backend/internal/infrastructure/auth"
	"github.com/orbita/backend/internal/infrastructure/config"
	"github.com/orbita/backend/internal/infrastructure/event"
	"github.com/orbita/backend/internal/infrastructure/lock"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/infrastructure/persistence"
	"github.com/orbita/backend/internal/infrastructure/printing"
	"github.com/orbita/backend/internal/infrastructure/storage"
	"github.com/orbita/backend/internal/interfaces/http/dto"
	"github.com/orbita/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSender is a mock implementation of mail.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, settings mail.Settings, msg *mail.Message) error {
	args := m.Called(ctx, settings, msg)
	return args.Error(0)
}

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	return &printing.RenderResult{PDFData: []byte("%PDF-" + req.Title)}, nil
}

func (stubRenderer) Close() error { return nil }

var testParticipants = []identity.Participant{
	{ID: "1", Name: "Gabriel Martins", Initials: "GM", Email: "gm@example.com"},
	{ID: "2", Name: "Ana Costa", Initials: "AC", Email: "ac@example.com"},
	{ID: "3", Name: "Bruno Lima", Initials: "BL", Email: "bl@example.com"},
}

var testMailSettings = mail.Settings{Enabled: true, Host: "smtp.example.com", Port: 587, User: "bot@example.com", Password: "secret"}

// testAPI wires the real services over file-backed registries in a temp dir
type testAPI struct {
	engine  *gin.Engine
	sender  *MockSender
	storage *storage.MemoryObjectStorage
	jwt     *auth.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	log := zap.NewNop()

	participants, err := persistence.NewParticipantRegistry(ctx,
		persistence.NewFileStore[identity.Participant](filepath.Join(dir, "users.json")), log)
	require.NoError(t, err)
	require.NoError(t, participants.ReplaceAll(ctx, testParticipants))

	meetings, err := persistence.NewMeetingRegistry(ctx,
		persistence.NewFileStore[*meeting.Meeting](filepath.Join(dir, "meetings.json")), log)
	require.NoError(t, err)

	notifications, err := persistence.NewNotificationRegistry(ctx,
		persistence.NewFileStore[*notification.Notification](filepath.Join(dir, "notifications.json")), log)
	require.NoError(t, err)

	bus := event.NewInMemoryEventBus(log)
	feedHandler := notificationapp.NewMeetingEventHandler(notifications, log)
	bus.Subscribe(feedHandler, feedHandler.EventTypes()...)

	sender := new(MockSender)
	settings := minutes.NewSettingsStore(testMailSettings)
	emitter := minutes.NewEmitter(minutes.EmitterDeps{
		Directory: participants,
		Settings:  settings,
		Sender:    sender,
		Renderer:  stubRenderer{},
		Logger:    log,
	})

	objects := storage.NewMemoryObjectStorage()
	deps := meetingapp.Deps{
		Repo:      meetings,
		Directory: participants,
		Locker:    lock.NewMemoryLocker(),
		Events:    bus,
		Logger:    log,
		Storage:   objects,
	}

	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "handler-test-secret", Issuer: "orbita-test", Expiration: time.Hour})
	authService := identityapp.NewAuthService(participants, jwtService, auth.NewMemoryRevocations(), log)

	meetingHandler := NewMeetingHandler(meetingapp.NewService(deps), meetingapp.NewLifecycleService(deps, emitter, 5*time.Second))
	itemHandler := NewItemHandler(meetingapp.NewItemService(deps, time.Minute))
	participantHandler := NewParticipantHandler(identityapp.NewParticipantService(participants, log))
	notificationHandler := NewNotificationHandler(notificationapp.NewFeedService(notifications, participants, log))
	emailHandler := NewEmailHandler(minutes.NewMailService(meetings, participants, settings, emitter, log))
	authHandler := NewAuthHandler(authService)

	engine := gin.New()
	api := engine.Group("/api/v1", middleware.RequestID(), middleware.Caller(authService, log))

	m := api.Group("/meetings")
	m.GET("", meetingHandler.List)
	m.POST("", meetingHandler.Create)
	m.GET("/:id", meetingHandler.Get)
	m.PUT("/:id", meetingHandler.Update)
	m.DELETE("/:id", meetingHandler.Delete)
	m.PUT("/:id/start", meetingHandler.Start)
	m.PUT("/:id/complete", meetingHandler.Complete)
	for segment, kind := range ItemCollections {
		m.GET("/:id/"+segment, itemHandler.List(kind))
		m.POST("/:id/"+segment, itemHandler.Create(kind))
		if kind != meeting.KindAttachment {
			m.PUT("/:id/"+segment+"/:itemId", itemHandler.Update(kind))
		}
		m.DELETE("/:id/"+segment+"/:itemId", itemHandler.Delete(kind))
	}
	m.GET("/:id/attachments/:itemId/download", itemHandler.Download)

	api.GET("/users", participantHandler.List)
	api.PUT("/users/sync", participantHandler.Sync)

	api.GET("/notifications", notificationHandler.List)
	api.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	api.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
	api.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	api.GET("/email/config", emailHandler.GetConfig)
	api.PUT("/email/config", emailHandler.UpdateConfig)
	api.POST("/email/test", emailHandler.Test)
	api.POST("/email/send", emailHandler.Send)
	api.POST("/email/send-ata/:id", emailHandler.SendMinutes)
	api.GET("/email/preview-ata/:id", emailHandler.PreviewHTML)
	api.GET("/email/preview-ata-pdf/:id", emailHandler.PreviewPDF)
	api.POST("/email/notify-meeting/:id", emailHandler.NotifyMeeting)

	api.POST("/auth/token", authHandler.Token)
	api.POST("/auth/logout", middleware.RequireClaims(), authHandler.Logout)

	return &testAPI{engine: engine, sender: sender, storage: objects, jwt: jwtService}
}

// do sends a request as caller; an empty caller is anonymous
func (a *testAPI) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(middleware.CallerHeader, caller)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// createMeeting schedules a GM-responsible meeting with GM and AC as members
func (a *testAPI) createMeeting(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/meetings", "GM", map[string]any{
		"name":    "Reunião semanal",
		"date":    "2026-05-10",
		"members": []string{"gm@example.com", "ac"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[meeting.Meeting](t, w).ID.String()
}

// decodeData unwraps the success envelope into T
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

// decodeError unwraps the error envelope
func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}
