package handler

import (
	"github.com/gin-gonic/gin"
	meetingapp "github.com/orbita/backend/internal/application/meeting"
)

// MeetingHandler handles meeting CRUD and lifecycle requests
type MeetingHandler struct {
	BaseHandler
	meetings  *meetingapp.Service
	lifecycle *meetingapp.LifecycleService
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(meetings *meetingapp.Service, lifecycle *meetingapp.LifecycleService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, lifecycle: lifecycle}
}

// List godoc
// @ID           listMeetings
// @Summary      List meetings
// @Description  Meetings the caller is a member of. Without a status filter only meetings that have not started are returned.
// @Tags         meetings
// @Produce      json
// @Param        status query string false "Status filter" Enums(not_started, in_progress, completed, all)
// @Param        type query string false "Meeting type"
// @Param        member query string false "Member key"
// @Param        responsible query string false "Responsible key"
// @Param        search query string false "Name or description search"
// @Success      200 {object} dto.Response{data=[]meeting.Meeting}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	var q meetingapp.ListMeetingsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	meetings, err := h.meetings.List(c.Request.Context(), callerKey(c), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, meetings)
}

// Get godoc
// @ID           getMeeting
// @Summary      Get a meeting
// @Tags         meetings
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Success      200 {object} dto.Response{data=meeting.Meeting}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	m, err := h.meetings.Get(c.Request.Context(), id, callerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Create godoc
// @ID           createMeeting
// @Summary      Create a meeting
// @Description  Members and the responsible are resolved against the participant directory.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        request body meetingapp.CreateMeetingRequest true "Meeting"
// @Success      201 {object} dto.Response{data=meeting.Meeting}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	var req meetingapp.CreateMeetingRequest
	if !h.BindJSON(c, &req) {
		return
	}
	m, err := h.meetings.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, m)
}

// Update godoc
// @ID           updateMeeting
// @Summary      Update a meeting
// @Description  Work item collections sent in the body are reconciled by id; every created, changed or removed item is authorized like the per-item endpoints.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        request body meetingapp.UpdateMeetingRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=meeting.Meeting}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id} [put]
func (h *MeetingHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req meetingapp.UpdateMeetingRequest
	if !h.BindJSON(c, &req) {
		return
	}
	m, err := h.meetings.Update(c.Request.Context(), id, callerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Delete godoc
// @ID           deleteMeeting
// @Summary      Delete a meeting
// @Tags         meetings
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.meetings.Delete(c.Request.Context(), id, callerKey(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Start godoc
// @ID           startMeeting
// @Summary      Start or resume a meeting
// @Description  Only the responsible may start. An empty body is accepted.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        request body meetingapp.StartMeetingRequest false "Present members"
// @Success      200 {object} dto.Response{data=meeting.Meeting}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/start [put]
func (h *MeetingHandler) Start(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req meetingapp.StartMeetingRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	m, err := h.lifecycle.Start(c.Request.Context(), id, callerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Complete godoc
// @ID           completeMeeting
// @Summary      Complete a meeting
// @Description  Closes the meeting and emails the minutes. A failed delivery is reported in emailSent and emailError and never fails the request.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        request body meetingapp.CompleteMeetingRequest false "Elapsed time"
// @Success      200 {object} dto.Response{data=meetingapp.CompleteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/complete [put]
func (h *MeetingHandler) Complete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req meetingapp.CompleteMeetingRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	result, err := h.lifecycle.Complete(c.Request.Context(), id, callerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, meetingapp.ToCompleteResponse(result))
}
