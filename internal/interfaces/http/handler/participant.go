package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/orbita/backend/internal/application/identity"
)

// ParticipantHandler serves the participant directory
type ParticipantHandler struct {
	BaseHandler
	participants *identityapp.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participants *identityapp.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants}
}

// List godoc
// @ID           listUsers
// @Summary      List participants
// @Tags         users
// @Produce      json
// @Param        email query string false "Filter by email"
// @Success      200 {object} dto.Response{data=[]identity.Participant}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /users [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	users, err := h.participants.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Sync godoc
// @ID           syncUsers
// @Summary      Sync the participant directory
// @Description  Upserts participants by initials; entries without initials are skipped.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.SyncParticipantsRequest true "Participants"
// @Success      200 {object} dto.Response{data=identity.SyncResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /users/sync [put]
func (h *ParticipantHandler) Sync(c *gin.Context) {
	var req identityapp.SyncParticipantsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.participants.Sync(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
