package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/orbita/backend/internal/application/minutes"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmailHandler_Config(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/email/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[minutes.SettingsView](t, w)
	assert.Equal(t, "smtp.example.com", view.Host)
	assert.Equal(t, minutes.PasswordMask, view.Pass)

	t.Run("sending the mask back keeps the password", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/v1/email/config", "", map[string]any{
			"enabled": true,
			"host":    "smtp.other.com",
			"port":    465,
			"secure":  true,
			"user":    "bot@example.com",
			"pass":    minutes.PasswordMask,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, minutes.PasswordMask, decodeData[minutes.SettingsView](t, w).Pass)

		api.sender.On("Send", mock.Anything, mock.MatchedBy(func(s mail.Settings) bool {
			return s.Host == "smtp.other.com" && s.Password == "secret"
		}), mock.Anything).Return(nil).Once()
		w = api.do(t, http.MethodPost, "/api/v1/email/test", "", map[string]any{"to": "qa@example.com"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, decodeData[SendResult](t, w).Sent)
		api.sender.AssertExpectations(t)
	})

	t.Run("port out of range", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/v1/email/config", "", map[string]any{"port": 70000})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmailHandler_Send(t *testing.T) {
	api := newTestAPI(t)

	t.Run("subject is required", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/email/send", "", map[string]any{"to": "qa@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
	})

	t.Run("delivery failure surfaces as a 500", func(t *testing.T) {
		api.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp: 535 authentication failed")).Once()
		w := api.do(t, http.MethodPost, "/api/v1/email/send", "", map[string]any{
			"to":      "qa@example.com",
			"subject": "Olá",
			"html":    "<p>oi</p>",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "535")
	})
}

func TestEmailHandler_MeetingEndpoints(t *testing.T) {
	api := newTestAPI(t)
	id := api.createMeeting(t)

	t.Run("preview html", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/email/preview-ata/"+id, "GM", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
		assert.Contains(t, w.Body.String(), "Reunião semanal")
	})

	t.Run("preview pdf", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/email/preview-ata-pdf/"+id, "AC", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))

		disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
		require.NoError(t, err)
		assert.Equal(t, "inline", disposition)
		assert.Equal(t, "Ata - Reunião semanal - 2026-05-10.pdf", params["filename"])
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/email/preview-ata-pdf/"+id, "BL", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "not_member", decodeError(t, w).Reason)
	})

	t.Run("send minutes needs recipients", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/email/send-ata/"+id, "GM", map[string]any{"to": []string{" "}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("send minutes", func(t *testing.T) {
		api.sender.On("Send", mock.Anything, testMailSettings, mock.MatchedBy(func(msg *mail.Message) bool {
			return len(msg.To) == 1 && msg.To[0] == "diretoria@example.com" && len(msg.Attachments) == 1
		})).Return(nil).Once()
		w := api.do(t, http.MethodPost, "/api/v1/email/send-ata/"+id, "GM", map[string]any{"to": []string{"Diretoria@Example.com"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		api.sender.AssertExpectations(t)
	})

	t.Run("notify members without a body", func(t *testing.T) {
		api.sender.On("Send", mock.Anything, testMailSettings, mock.MatchedBy(func(msg *mail.Message) bool {
			return assert.ObjectsAreEqual([]string{"gm@example.com", "ac@example.com"}, msg.To)
		})).Return(nil).Once()
		w := api.do(t, http.MethodPost, "/api/v1/email/notify-meeting/"+id, "GM", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		api.sender.AssertExpectations(t)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/email/preview-ata/nope", "GM", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
