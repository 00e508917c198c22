package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// ExportHandler coordinates export and import HTTP handlers.
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportTodos returns the current user's todos as an export payload.
func (h *ExportHandler) ExportTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	payload, err := h.exportService.ExportTodos(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todos exported successfully", payload)
}

// ExportTodoLists returns the current user's lists as an export payload.
func (h *ExportHandler) ExportTodoLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	payload, err := h.exportService.ExportTodoLists(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo lists exported successfully", payload)
}

// ImportTodos loads a todo payload into the current user's lists.
func (h *ExportHandler) ImportTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ImportRequest struct {
		Todos []services.ImportTodoItem `json:"todos" binding:"required"`
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	result, err := h.exportService.ImportTodos(req.Todos, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Import completed", result)
}

// ImportTodoLists loads a list payload for the current user.
func (h *ExportHandler) ImportTodoLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ImportRequest struct {
		TodoLists []services.ImportTodoListItem `json:"todo_lists" binding:"required"`
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	result, err := h.exportService.ImportTodoLists(req.TodoLists, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Import completed", result)
}
