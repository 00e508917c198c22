package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// BulkHandler coordinates bulk todo mutation handlers.
type BulkHandler struct {
	bulkService *services.BulkService
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(bulkService *services.BulkService) *BulkHandler {
	return &BulkHandler{bulkService: bulkService}
}

// BulkUpdate applies one field set to a set of the current user's todos.
func (h *BulkHandler) BulkUpdate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BulkUpdateRequest struct {
		TodoIDs   []uint64   `json:"todo_ids" binding:"required,min=1"`
		Completed *bool      `json:"completed"`
		Priority  *string    `json:"priority"`
		DueDate   *time.Time `json:"due_date"`
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	input := services.BulkUpdateInput{
		Completed: req.Completed,
		DueDate:   req.DueDate,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		input.Priority = &priority
	}

	count, err := h.bulkService.BulkUpdate(req.TodoIDs, input, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todos updated successfully", gin.H{"updated_count": count})
}

// BulkDelete archives a set of the current user's todos.
func (h *BulkHandler) BulkDelete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BulkDeleteRequest struct {
		TodoIDs []uint64 `json:"todo_ids" binding:"required,min=1"`
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	count, err := h.bulkService.BulkDelete(req.TodoIDs, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todos deleted successfully", gin.H{"deleted_count": count})
}

// BulkAssignTags adds a tag set to each of the requested todos.
func (h *BulkHandler) BulkAssignTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BulkAssignTagsRequest struct {
		TodoIDs []uint64 `json:"todo_ids" binding:"required,min=1"`
		TagIDs  []uint64 `json:"tag_ids" binding:"required,min=1"`
	}

	var req BulkAssignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	if err := h.bulkService.BulkAssignTags(req.TodoIDs, req.TagIDs, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Tags assigned successfully", nil)
}
