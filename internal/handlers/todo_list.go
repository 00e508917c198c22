package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
	"gorm.io/gorm"
)

// TodoListHandler coordinates todo list HTTP handlers.
type TodoListHandler struct {
	listService *services.TodoListService
}

// NewTodoListHandler creates a new TodoListHandler.
func NewTodoListHandler(listService *services.TodoListService) *TodoListHandler {
	return &TodoListHandler{listService: listService}
}

// ListTodoLists returns the current user's todo lists with filtering and
// pagination.
func (h *TodoListHandler) ListTodoLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTodoListsInput{
		IsFavorite: parseBoolQuery(c, "is_favorite"),
		Shared:     c.Query("shared") == "true",
		Search:     c.Query("search"),
		Archived:   parseBoolQuery(c, "archived"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		Page:       params.Page,
		PerPage:    params.Limit,
	}

	lists, total, err := h.listService.ListTodoLists(userID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Collection(c, "Todo lists retrieved successfully", lists, utils.NewPaginationResponse(params, total))
}

// CreateTodoList creates a todo list owned by the current user.
func (h *TodoListHandler) CreateTodoList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
		IsFavorite  bool   `json:"is_favorite"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	list, err := h.listService.CreateTodoList(services.CreateTodoListInput{
		Title:       req.Title,
		Description: req.Description,
		IsFavorite:  req.IsFavorite,
	}, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Created(c, "Todo list created successfully", list)
}

// GetTodoList returns one of the current user's todo lists.
func (h *TodoListHandler) GetTodoList(c *gin.Context) {
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

	list, err := h.listService.GetTodoList(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list retrieved successfully", list)
}

// UpdateTodoList applies a partial update to one of the current user's lists.
func (h *TodoListHandler) UpdateTodoList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateRequest struct {
		Title       *string `json:"title" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		IsFavorite  *bool   `json:"is_favorite"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	updated, err := h.listService.UpdateTodoList(list, services.UpdateTodoListInput{
		Title:       req.Title,
		Description: req.Description,
		IsFavorite:  req.IsFavorite,
	}, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list updated successfully", updated)
}

// DeleteTodoList permanently removes one of the current user's lists.
func (h *TodoListHandler) DeleteTodoList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.listService.DeleteTodoList(list, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list deleted successfully", nil)
}

// ArchiveTodoList soft-deletes one of the current user's lists.
func (h *TodoListHandler) ArchiveTodoList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.listService.ArchiveTodoList(list, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list archived successfully", nil)
}

// RestoreTodoList brings an archived list back to the active set.
func (h *TodoListHandler) RestoreTodoList(c *gin.Context) {
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

	list, err := h.listService.RestoreTodoList(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list restored successfully", list)
}

// ToggleFavorite flips the list's favorite flag.
func (h *TodoListHandler) ToggleFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	updated, err := h.listService.ToggleFavorite(list, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo list updated successfully", updated)
}

// loadTodoList fetches the active list addressed by the :id parameter,
// regardless of owner. Ownership is checked by the service; a missing list is
// a 404 while a foreign one is a 403.
func loadTodoList(c *gin.Context) (*models.TodoList, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var list models.TodoList
	if err := database.GetDB().First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo list not found")
		}
		return nil, err
	}

	return &list, nil
}

// parseIDParam parses a numeric route parameter.
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("Invalid " + name)
	}
	return id, nil
}

// parseBoolQuery reads an optional boolean query parameter. Absent or
// unrecognized values yield nil, which drops the filter.
func parseBoolQuery(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
