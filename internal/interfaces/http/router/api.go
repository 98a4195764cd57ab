package router

import (
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/interfaces/http/handler"
	"github.com/orbita/backend/internal/interfaces/http/middleware"
)

// APIHandlers are the handlers mounted under /api/v1
type APIHandlers struct {
	Meetings      *handler.MeetingHandler
	Items         *handler.ItemHandler
	Participants  *handler.ParticipantHandler
	Notifications *handler.NotificationHandler
	Email         *handler.EmailHandler
	Auth          *handler.AuthHandler
}

// Groups builds the domain groups of the API
func (h APIHandlers) Groups() []*DomainGroup {
	meetings := NewDomainGroup("meetings", "/meetings")
	meetings.GET("", h.Meetings.List)
	meetings.POST("", h.Meetings.Create)
	meetings.GET("/:id", h.Meetings.Get)
	meetings.PUT("/:id", h.Meetings.Update)
	meetings.DELETE("/:id", h.Meetings.Delete)
	meetings.PUT("/:id/start", h.Meetings.Start)
	meetings.PUT("/:id/complete", h.Meetings.Complete)

	for segment, kind := range handler.ItemCollections {
		collection := "/:id/" + segment
		meetings.GET(collection, h.Items.List(kind))
		meetings.POST(collection, h.Items.Create(kind))
		if kind != meeting.KindAttachment {
			meetings.PUT(collection+"/:itemId", h.Items.Update(kind))
		}
		meetings.DELETE(collection+"/:itemId", h.Items.Delete(kind))
	}
	meetings.GET("/:id/attachments/:itemId/download", h.Items.Download)

	users := NewDomainGroup("users", "/users")
	users.GET("", h.Participants.List)
	users.PUT("/sync", h.Participants.Sync)

	notifications := NewDomainGroup("notifications", "/notifications")
	notifications.GET("", h.Notifications.List)
	notifications.GET("/unread-count", h.Notifications.UnreadCount)
	notifications.PUT("/read-all", h.Notifications.MarkAllRead)
	notifications.PUT("/:id/read", h.Notifications.MarkRead)

	email := NewDomainGroup("email", "/email")
	email.GET("/config", h.Email.GetConfig)
	email.PUT("/config", h.Email.UpdateConfig)
	email.POST("/test", h.Email.Test)
	email.POST("/send", h.Email.Send)
	email.POST("/send-ata/:id", h.Email.SendMinutes)
	email.GET("/preview-ata/:id", h.Email.PreviewHTML)
	email.GET("/preview-ata-pdf/:id", h.Email.PreviewPDF)
	email.POST("/notify-meeting/:id", h.Email.NotifyMeeting)

	groups := []*DomainGroup{meetings, users, notifications, email}

	if h.Auth != nil {
		authGroup := NewDomainGroup("auth", "/auth")
		authGroup.POST("/token", h.Auth.Token)
		authGroup.POST("/logout", middleware.RequireClaims(), h.Auth.Logout)
		groups = append(groups, authGroup)
	}
	return groups
}

// RegisterAPI registers every API group on r
func RegisterAPI(r *Router, h APIHandlers) {
	for _, g := range h.Groups() {
		r.Register(g)
	}
}

