package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orbita/backend/internal/application/minutes"
)

// SendResult acknowledges a delivered email
type SendResult struct {
	Sent bool `json:"sent"`
}

// EmailHandler handles email administration and the meeting email endpoints
type EmailHandler struct {
	BaseHandler
	mail *minutes.MailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(mail *minutes.MailService) *EmailHandler {
	return &EmailHandler{mail: mail}
}

// GetConfig godoc
// @ID           getEmailConfig
// @Summary      Get the SMTP settings
// @Description  The password is masked.
// @Tags         email
// @Produce      json
// @Success      200 {object} dto.Response{data=minutes.SettingsView}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/config [get]
func (h *EmailHandler) GetConfig(c *gin.Context) {
	h.Success(c, h.mail.Config())
}

// UpdateConfig godoc
// @ID           updateEmailConfig
// @Summary      Update the SMTP settings
// @Description  Sending back the mask or an empty password keeps the stored one.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body minutes.UpdateSettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=minutes.SettingsView}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/config [put]
func (h *EmailHandler) UpdateConfig(c *gin.Context) {
	var req minutes.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Success(c, h.mail.UpdateConfig(req))
}

// Test godoc
// @ID           testEmail
// @Summary      Send a test email
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body minutes.TestEmailRequest true "Recipient"
// @Success      200 {object} dto.Response{data=SendResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/test [post]
func (h *EmailHandler) Test(c *gin.Context) {
	var req minutes.TestEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.mail.Test(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SendResult{Sent: true})
}

// Send godoc
// @ID           sendEmail
// @Summary      Send a free-form email
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body minutes.SendEmailRequest true "Email"
// @Success      200 {object} dto.Response{data=SendResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	var req minutes.SendEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.mail.Send(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SendResult{Sent: true})
}

// SendMinutes godoc
// @ID           sendMinutes
// @Summary      Email the meeting minutes
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        request body minutes.RecipientsRequest true "Recipients"
// @Success      200 {object} dto.Response{data=SendResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/send-ata/{id} [post]
func (h *EmailHandler) SendMinutes(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req minutes.RecipientsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.mail.SendMinutes(c.Request.Context(), id, callerKey(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SendResult{Sent: true})
}

// NotifyMeeting godoc
// @ID           notifyMeeting
// @Summary      Email the meeting invitation
// @Description  The body is optional; members are notified by default.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        request body minutes.RecipientsRequest false "Recipients"
// @Success      200 {object} dto.Response{data=SendResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/notify-meeting/{id} [post]
func (h *EmailHandler) NotifyMeeting(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req minutes.RecipientsRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	if err := h.mail.NotifyMeeting(c.Request.Context(), id, callerKey(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SendResult{Sent: true})
}

// PreviewHTML godoc
// @ID           previewMinutesHTML
// @Summary      Preview the minutes as HTML
// @Tags         email
// @Produce      html
// @Param        id path string true "Meeting ID" format(uuid)
// @Success      200 {string} string "HTML document"
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/preview-ata/{id} [get]
func (h *EmailHandler) PreviewHTML(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	html, err := h.mail.PreviewHTML(c.Request.Context(), id, callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PreviewPDF godoc
// @ID           previewMinutesPDF
// @Summary      Preview the minutes as PDF
// @Tags         email
// @Produce      application/pdf
// @Param        id path string true "Meeting ID" format(uuid)
// @Success      200 {file} file "PDF document"
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /email/preview-ata-pdf/{id} [get]
func (h *EmailHandler) PreviewPDF(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.mail.PreviewPDF(c.Request.Context(), id, callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.FileName}))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}
