package handler

import (
	"github.com/gin-gonic/gin"
	notificationapp "github.com/orbita/backend/internal/application/notification"
)

// NotificationHandler serves the caller's notification feed
type NotificationHandler struct {
	BaseHandler
	feed *notificationapp.FeedService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(feed *notificationapp.FeedService) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List godoc
// @ID           listNotifications
// @Summary      List the caller notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=[]notification.View}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.feed.List(c.Request.Context(), callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// UnreadCount godoc
// @ID           countUnreadNotifications
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=notificationapp.UnreadCount}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.feed.UnreadCount(c.Request.Context(), callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// MarkRead godoc
// @ID           markNotificationRead
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} dto.Response{data=notification.View}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	view, err := h.feed.MarkRead(c.Request.Context(), id, callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// MarkAllRead godoc
// @ID           markAllNotificationsRead
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=notificationapp.ReadAllResult}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	result, err := h.feed.MarkAllRead(c.Request.Context(), callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
