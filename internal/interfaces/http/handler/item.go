package handler

import (
	"github.com/gin-gonic/gin"
	meetingapp "github.com/orbita/backend/internal/application/meeting"
	"github.com/orbita/backend/internal/domain/meeting"
)

// ItemCollections maps the URL segment of each sub-resource to its kind
var ItemCollections = map[string]meeting.ItemKind{
	"highlights":  meeting.KindHighlight,
	"pautas":      meeting.KindPauta,
	"tasks":       meeting.KindTask,
	"notes":       meeting.KindNote,
	"attachments": meeting.KindAttachment,
}

// ItemHandler handles the sub-resource collections of a meeting
type ItemHandler struct {
	BaseHandler
	items *meetingapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *meetingapp.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// List godoc
// @ID           listMeetingItems
// @Summary      List the items of a collection
// @Tags         items
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        collection path string true "Item collection" Enums(highlights, pautas, tasks, notes, attachments)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/{collection} [get]
func (h *ItemHandler) List(kind meeting.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		items, err := h.items.List(c.Request.Context(), id, callerKey(c), kind)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, items)
	}
}

// Create godoc
// @ID           createMeetingItem
// @Summary      Add an item to a collection
// @Description  Attachments take a CreateAttachmentRequest with the content as a data URL; the other collections take a CreateItemRequest.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        collection path string true "Item collection" Enums(highlights, pautas, tasks, notes, attachments)
// @Param        request body meetingapp.CreateItemRequest true "Item"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/{collection} [post]
func (h *ItemHandler) Create(kind meeting.ItemKind) gin.HandlerFunc {
	if kind == meeting.KindAttachment {
		return h.addAttachment
	}
	return func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		var req meetingapp.CreateItemRequest
		if !h.BindJSON(c, &req) {
			return
		}
		item, err := h.items.Create(c.Request.Context(), id, callerKey(c), kind, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, item)
	}
}

// Update godoc
// @ID           updateMeetingItem
// @Summary      Edit or toggle an item
// @Description  Attachments cannot be edited.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        collection path string true "Item collection" Enums(highlights, pautas, tasks, notes)
// @Param        itemId path string true "Item ID"
// @Param        request body meetingapp.UpdateItemRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/{collection}/{itemId} [put]
func (h *ItemHandler) Update(kind meeting.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		var req meetingapp.UpdateItemRequest
		if !h.BindJSON(c, &req) {
			return
		}
		item, err := h.items.Update(c.Request.Context(), id, callerKey(c), kind, c.Param("itemId"), req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, item)
	}
}

// Delete godoc
// @ID           deleteMeetingItem
// @Summary      Remove an item
// @Tags         items
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        collection path string true "Item collection" Enums(highlights, pautas, tasks, notes, attachments)
// @Param        itemId path string true "Item ID"
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/{collection}/{itemId} [delete]
func (h *ItemHandler) Delete(kind meeting.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		if err := h.items.Remove(c.Request.Context(), id, callerKey(c), kind, c.Param("itemId")); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	}
}

// Download godoc
// @ID           downloadAttachment
// @Summary      Resolve an attachment download
// @Description  Offloaded attachments answer a presigned URL, inline ones their data URL.
// @Tags         items
// @Produce      json
// @Param        id path string true "Meeting ID" format(uuid)
// @Param        itemId path string true "Item ID"
// @Success      200 {object} dto.Response{data=meetingapp.AttachmentDownload}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     CallerKey
// @Security     BearerAuth
// @Router       /meetings/{id}/attachments/{itemId}/download [get]
func (h *ItemHandler) Download(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	download, err := h.items.Download(c.Request.Context(), id, callerKey(c), c.Param("itemId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, download)
}

func (h *ItemHandler) addAttachment(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req meetingapp.CreateAttachmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	attachment, err := h.items.AddAttachment(c.Request.Context(), id, callerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attachment)
}
