package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// ActivityHandler coordinates activity log HTTP handlers.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivityLogs returns the current user's activity entries, newest first.
func (h *ActivityHandler) ListActivityLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	logs, total, err := h.activityService.ListLogs(userID, params.Page, params.Limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Collection(c, "Activity logs retrieved successfully", logs, utils.NewPaginationResponse(params, total))
}

// GetActivityLog returns one of the current user's activity entries with the
// entity it points at, when that entity still exists.
func (h *ActivityHandler) GetActivityLog(c *gin.Context) {
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

	entry, err := h.activityService.GetLog(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	entity, err := h.activityService.ResolveEntity(entry)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Activity log retrieved successfully", gin.H{
		"log":    entry,
		"entity": entity,
	})
}
