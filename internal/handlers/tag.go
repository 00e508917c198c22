package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// TagHandler coordinates tag HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags returns all of the current user's tags.
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	tags, err := h.tagService.ListTags(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Tags retrieved successfully", tags)
}

// CreateTag creates a tag owned by the current user.
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRequest struct {
		Name  string `json:"name" binding:"required,max=255"`
		Color string `json:"color" binding:"omitempty,max=20"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	tag, err := h.tagService.CreateTag(req.Name, req.Color, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Created(c, "Tag created successfully", tag)
}

// GetTag returns one of the current user's tags.
func (h *TagHandler) GetTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	tag, err := h.tagService.GetTag(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Tag retrieved successfully", tag)
}

// UpdateTag applies a partial update to one of the current user's tags.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateRequest struct {
		Name  *string `json:"name" binding:"omitempty,max=255"`
		Color *string `json:"color" binding:"omitempty,max=20"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	tag, err := h.tagService.UpdateTag(id, services.UpdateTagInput{
		Name:  req.Name,
		Color: req.Color,
	}, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Tag updated successfully", tag)
}

// DeleteTag removes one of the current user's tags.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.tagService.DeleteTag(id, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Tag deleted successfully", nil)
}
