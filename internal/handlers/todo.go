package handlers

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
	"gorm.io/gorm"
)

// TodoHandler coordinates todo HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListTodos returns the current user's todos with filtering and pagination.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTodosInput{
		Completed: parseBoolQuery(c, "completed"),
		Overdue:   c.Query("overdue") == "true",
		DueToday:  c.Query("due_today") == "true",
		TagIDs:    parseIDList(c.Query("tag_ids")),
		Search:    c.Query("search"),
		Archived:  parseBoolQuery(c, "archived"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      params.Page,
		PerPage:   params.Limit,
	}

	if raw := c.Query("priority"); raw != "" {
		priority := models.Priority(raw)
		input.Priority = &priority
	}
	if raw := c.Query("due_date_from"); raw != "" {
		t, err := parseDateQuery(raw)
		if err != nil {
			apperrors.Respond(c, apperrors.BadRequest("Invalid due_date_from"))
			return
		}
		input.DueDateFrom = &t
	}
	if raw := c.Query("due_date_to"); raw != "" {
		t, err := parseDateQuery(raw)
		if err != nil {
			apperrors.Respond(c, apperrors.BadRequest("Invalid due_date_to"))
			return
		}
		input.DueDateTo = &t
	}
	if raw := c.Query("todo_list_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apperrors.Respond(c, apperrors.BadRequest("Invalid todo_list_id"))
			return
		}
		input.TodoListID = &id
	}
	// parent_id accepts a numeric ID or the literal "null" to select
	// top-level todos.
	if raw, ok := c.GetQuery("parent_id"); ok {
		input.ParentID = &raw
	}

	todos, total, err := h.todoService.ListTodos(userID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Collection(c, "Todos retrieved successfully", todos, utils.NewPaginationResponse(params, total))
}

// CreateTodo creates a todo in one of the current user's lists. The request
// may be JSON or, when an image is attached, multipart form data.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	input, file, err := bindCreateTodo(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if file != nil {
		upload, closeFile, err := openUpload(file)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		defer closeFile()
		input.Image = upload
	}

	todo, err := h.todoService.CreateTodo(*input, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Created(c, "Todo created successfully", todo)
}

// GetTodo returns one of the current user's todos.
func (h *TodoHandler) GetTodo(c *gin.Context) {
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

	todo, err := h.todoService.GetTodo(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo retrieved successfully", todo)
}

// UpdateTodo applies a partial update to one of the current user's todos.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, err := loadTodo(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	input, file, err := bindUpdateTodo(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if file != nil {
		upload, closeFile, err := openUpload(file)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		defer closeFile()
		input.Image = upload
	}

	updated, err := h.todoService.UpdateTodo(todo, *input, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo updated successfully", updated)
}

// DeleteTodo permanently removes one of the current user's todos.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, err := loadTodo(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.todoService.DeleteTodo(todo, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo deleted successfully", nil)
}

// ArchiveTodo soft-deletes one of the current user's todos.
func (h *TodoHandler) ArchiveTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, err := loadTodo(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.todoService.ArchiveTodo(todo, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo archived successfully", nil)
}

// RestoreTodo brings an archived todo back to the active set.
func (h *TodoHandler) RestoreTodo(c *gin.Context) {
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

	todo, err := h.todoService.RestoreTodo(id, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Todo restored successfully", todo)
}

// loadTodo fetches the active todo addressed by the :id parameter with its
// list, regardless of owner.
func loadTodo(c *gin.Context) (*models.Todo, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var todo models.Todo
	if err := database.GetDB().Preload("TodoList").First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo not found")
		}
		return nil, err
	}

	return &todo, nil
}

func bindCreateTodo(c *gin.Context) (*services.CreateTodoInput, *multipart.FileHeader, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		type CreateForm struct {
			TodoListID  uint64  `form:"todo_list_id" binding:"required"`
			ParentID    *uint64 `form:"parent_id"`
			Title       string  `form:"title" binding:"required,max=255"`
			Description string  `form:"description"`
			Completed   bool    `form:"completed"`
			Priority    string  `form:"priority"`
			DueDate     string  `form:"due_date"`
			TagIDs      string  `form:"tag_ids"`
		}

		var form CreateForm
		if err := c.ShouldBind(&form); err != nil {
			return nil, nil, apperrors.New(apperrors.KindUnprocessable, "Invalid request body")
		}

		input := &services.CreateTodoInput{
			TodoListID:  form.TodoListID,
			ParentID:    form.ParentID,
			Title:       form.Title,
			Description: form.Description,
			Completed:   form.Completed,
			Priority:    models.Priority(form.Priority),
			TagIDs:      parseIDList(form.TagIDs),
		}
		if form.DueDate != "" {
			t, err := parseDateQuery(form.DueDate)
			if err != nil {
				return nil, nil, apperrors.BadRequest("Invalid due_date")
			}
			input.DueDate = &t
		}

		file, _ := c.FormFile("image")
		return input, file, nil
	}

	type CreateRequest struct {
		TodoListID  uint64     `json:"todo_list_id" binding:"required"`
		ParentID    *uint64    `json:"parent_id"`
		Title       string     `json:"title" binding:"required,max=255"`
		Description string     `json:"description"`
		Completed   bool       `json:"completed"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
		TagIDs      []uint64   `json:"tag_ids"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, nil, apperrors.New(apperrors.KindUnprocessable, "Invalid request body")
	}

	return &services.CreateTodoInput{
		TodoListID:  req.TodoListID,
		ParentID:    req.ParentID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    models.Priority(req.Priority),
		DueDate:     req.DueDate,
		TagIDs:      req.TagIDs,
	}, nil, nil
}

func bindUpdateTodo(c *gin.Context) (*services.UpdateTodoInput, *multipart.FileHeader, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		type UpdateForm struct {
			Title       *string `form:"title" binding:"omitempty,max=255"`
			Description *string `form:"description"`
			Completed   *bool   `form:"completed"`
			Priority    *string `form:"priority"`
			DueDate     *string `form:"due_date"`
			ParentID    *uint64 `form:"parent_id"`
			TagIDs      *string `form:"tag_ids"`
		}

		var form UpdateForm
		if err := c.ShouldBind(&form); err != nil {
			return nil, nil, apperrors.New(apperrors.KindUnprocessable, "Invalid request body")
		}

		input := &services.UpdateTodoInput{
			Title:       form.Title,
			Description: form.Description,
			Completed:   form.Completed,
			ParentID:    form.ParentID,
		}
		if form.Priority != nil {
			priority := models.Priority(*form.Priority)
			input.Priority = &priority
		}
		if form.DueDate != nil {
			if *form.DueDate == "" {
				input.ClearDueDate = true
			} else {
				t, err := parseDateQuery(*form.DueDate)
				if err != nil {
					return nil, nil, apperrors.BadRequest("Invalid due_date")
				}
				input.DueDate = &t
			}
		}
		if form.TagIDs != nil {
			ids := parseIDList(*form.TagIDs)
			input.TagIDs = &ids
		}

		file, _ := c.FormFile("image")
		return input, file, nil
	}

	type UpdateRequest struct {
		Title        *string    `json:"title" binding:"omitempty,max=255"`
		Description  *string    `json:"description"`
		Completed    *bool      `json:"completed"`
		Priority     *string    `json:"priority"`
		DueDate      *time.Time `json:"due_date"`
		ClearDueDate bool       `json:"clear_due_date"`
		ParentID     *uint64    `json:"parent_id"`
		TagIDs       *[]uint64  `json:"tag_ids"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, nil, apperrors.New(apperrors.KindUnprocessable, "Invalid request body")
	}

	input := &services.UpdateTodoInput{
		Title:        req.Title,
		Description:  req.Description,
		Completed:    req.Completed,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		ParentID:     req.ParentID,
		TagIDs:       req.TagIDs,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		input.Priority = &priority
	}

	return input, nil, nil
}

// openUpload opens a multipart file as a service-level image upload. The
// returned func closes the underlying file.
func openUpload(file *multipart.FileHeader) (*services.ImageUpload, func(), error) {
	f, err := file.Open()
	if err != nil {
		return nil, nil, apperrors.BadRequest("Invalid image upload")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	return &services.ImageUpload{Reader: f, Ext: ext}, func() { f.Close() }, nil
}

// parseIDList splits a comma-separated list of numeric IDs, skipping blanks
// and garbage.
func parseIDList(raw string) []uint64 {
	if raw == "" {
		return nil
	}

	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseDateQuery accepts RFC 3339 timestamps or bare dates.
func parseDateQuery(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
