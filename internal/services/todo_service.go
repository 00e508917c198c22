package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/marvinmino/todo-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrInvalidSortColumn = apperrors.New(apperrors.KindUnprocessable, "Invalid sort column")
	ErrInvalidSortOrder  = apperrors.New(apperrors.KindUnprocessable, "Invalid sort order")
	ErrInvalidPriority   = apperrors.New(apperrors.KindUnprocessable, "Invalid priority")
)

var todoSortColumns = map[string]struct{}{
	"title":      {},
	"created_at": {},
	"updated_at": {},
	"due_date":   {},
	"priority":   {},
}

// todoPreloads are the relations loaded onto todos returned by this service.
var todoPreloads = []string{"TodoList", "Tags", "Parent", "SubTodos"}

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
	listRepo repository.TodoListRepository
	tagRepo  repository.TagRepository
	guard    *AccessGuard
	images   storage.ImageStore
	activity *ActivityService
}

// NewTodoService creates a new TodoService
func NewTodoService(
	todoRepo repository.TodoRepository,
	listRepo repository.TodoListRepository,
	tagRepo repository.TagRepository,
	guard *AccessGuard,
	images storage.ImageStore,
	activity *ActivityService,
) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		listRepo: listRepo,
		tagRepo:  tagRepo,
		guard:    guard,
		images:   images,
		activity: activity,
	}
}

// ImageUpload carries an uploaded image blob into the service layer.
type ImageUpload struct {
	Reader io.Reader
	Ext    string
}

// ListTodosInput represents filters for listing todos
type ListTodosInput struct {
	Completed   *bool
	Priority    *models.Priority
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	Overdue     bool
	DueToday    bool
	TodoListID  *uint64
	ParentID    *string
	TagIDs      []uint64
	Search      string
	Archived    *bool
	SortBy      string
	SortOrder   string
	Page        int
	PerPage     int
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	TodoListID  uint64
	ParentID    *uint64
	Title       string
	Description string
	Completed   bool
	Priority    models.Priority
	DueDate     *time.Time
	TagIDs      []uint64
	Image       *ImageUpload
}

// UpdateTodoInput represents input for updating a todo; nil fields are left
// untouched
type UpdateTodoInput struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
	ParentID     *uint64
	TagIDs       *[]uint64
	Image        *ImageUpload
}

// ListTodos returns the acting user's todos matching the filters, with the
// total match count. Results never include todos outside the user's lists.
func (s *TodoService) ListTodos(userID uint64, input ListTodosInput) ([]models.Todo, int64, error) {
	sortBy, sortOrder, err := validateSort(input.SortBy, input.SortOrder, todoSortColumns)
	if err != nil {
		return nil, 0, err
	}
	if input.Priority != nil && !validPriority(*input.Priority) {
		return nil, 0, ErrInvalidPriority
	}

	page, perPage := clampPagination(input.Page, input.PerPage)

	filter := repository.TodoFilter{
		OwnerID:     userID,
		Completed:   input.Completed,
		Priority:    input.Priority,
		DueDateFrom: input.DueDateFrom,
		DueDateTo:   input.DueDateTo,
		Overdue:     input.Overdue,
		DueToday:    input.DueToday,
		TodoListID:  input.TodoListID,
		ParentID:    input.ParentID,
		TagIDs:      input.TagIDs,
		Search:      input.Search,
		Archived:    input.Archived,
		SortBy:      sortBy,
		SortOrder:   sortOrder,
		Page:        page,
		PerPage:     perPage,
	}

	todos, total, err := s.todoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, total, nil
}

// CreateTodo creates a todo in one of the acting user's lists
func (s *TodoService) CreateTodo(input CreateTodoInput, userID uint64) (*models.Todo, error) {
	// The target list must belong to the acting user. An archived or foreign
	// list is reported the same way as a missing one.
	if _, err := s.listRepo.FindOwnedByID(input.TodoListID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo list not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to find todo list: %w", err)
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !validPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	todo := &models.Todo{
		TodoListID:  input.TodoListID,
		ParentID:    input.ParentID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if input.Image != nil {
		path, err := s.images.Save(input.Image.Reader, input.Image.Ext)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		todo.ImagePath = path
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	if len(input.TagIDs) > 0 {
		tags, err := s.tagRepo.FindByIDs(input.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load tags: %w", err)
		}
		if err := s.todoRepo.AppendTags(todo, tags); err != nil {
			return nil, fmt.Errorf("failed to attach tags: %w", err)
		}
	}

	s.recordActivity(userID, todo, "created", nil, todoSnapshot(todo))

	return s.todoRepo.FindOwnedByID(todo.ID, userID, todoPreloads...)
}

// GetTodo returns a todo within the acting user's lists
func (s *TodoService) GetTodo(id, userID uint64) (*models.Todo, error) {
	preloads := append([]string{}, todoPreloads...)
	preloads = append(preloads, "Comments")

	todo, err := s.todoRepo.FindOwnedByID(id, userID, preloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo not found")
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	return todo, nil
}

// UpdateTodo applies a partial update to a todo owned by the acting user
func (s *TodoService) UpdateTodo(todo *models.Todo, input UpdateTodoInput, userID uint64) (*models.Todo, error) {
	if err := s.guard.MustOwnTodo(todo, userID); err != nil {
		return nil, err
	}

	oldValues := todoSnapshot(todo)

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Priority != nil {
		if !validPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		todo.Priority = *input.Priority
	}
	if input.ClearDueDate {
		todo.DueDate = nil
	} else if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	if input.ParentID != nil {
		todo.ParentID = input.ParentID
	}

	if input.Image != nil {
		// Replacing the image releases the previous blob first; blob and row
		// are not updated transactionally.
		if todo.ImagePath != "" {
			if err := s.images.Delete(todo.ImagePath); err != nil {
				log.Printf("failed to delete old image %s: %v", todo.ImagePath, err)
			}
		}
		path, err := s.images.Save(input.Image.Reader, input.Image.Ext)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		todo.ImagePath = path
	}

	if input.TagIDs != nil {
		tags, err := s.tagRepo.FindByIDs(*input.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load tags: %w", err)
		}
		if err := s.todoRepo.ReplaceTags(todo, tags); err != nil {
			return nil, fmt.Errorf("failed to sync tags: %w", err)
		}
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.recordActivity(userID, todo, "updated", oldValues, todoSnapshot(todo))

	return s.todoRepo.FindOwnedByID(todo.ID, userID, todoPreloads...)
}

// DeleteTodo permanently removes a todo owned by the acting user. Any stored
// image blob is released first, best-effort.
func (s *TodoService) DeleteTodo(todo *models.Todo, userID uint64) error {
	if err := s.guard.MustOwnTodo(todo, userID); err != nil {
		return err
	}

	if todo.ImagePath != "" {
		if err := s.images.Delete(todo.ImagePath); err != nil {
			log.Printf("failed to delete image %s: %v", todo.ImagePath, err)
		}
	}

	if err := s.todoRepo.Purge(todo); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.recordActivity(userID, todo, "deleted", todoSnapshot(todo), nil)

	return nil
}

// ArchiveTodo soft-deletes a todo owned by the acting user
func (s *TodoService) ArchiveTodo(todo *models.Todo, userID uint64) error {
	if err := s.guard.MustOwnTodo(todo, userID); err != nil {
		return err
	}

	if err := s.todoRepo.Archive(todo); err != nil {
		return fmt.Errorf("failed to archive todo: %w", err)
	}

	s.recordActivity(userID, todo, "archived", nil, nil)

	return nil
}

// RestoreTodo brings an archived todo back to the active set. The lookup is
// restricted to the archived todos of the acting user; an active todo, a
// missing ID, and another user's todo are all reported as not found.
func (s *TodoService) RestoreTodo(id, userID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindArchivedOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to find archived todo: %w", err)
	}

	if err := s.todoRepo.Restore(todo); err != nil {
		return nil, fmt.Errorf("failed to restore todo: %w", err)
	}

	s.recordActivity(userID, todo, "restored", nil, nil)

	return s.todoRepo.FindOwnedByID(todo.ID, userID, todoPreloads...)
}

func (s *TodoService) recordActivity(userID uint64, todo *models.Todo, action string, oldValues, newValues models.JSONMap) {
	if s.activity == nil {
		return
	}
	s.activity.Record(userID, models.EntityTodo, todo.ID, action, oldValues, newValues)
}

func todoSnapshot(todo *models.Todo) models.JSONMap {
	return models.JSONMap{
		"title":     todo.Title,
		"completed": todo.Completed,
		"priority":  string(todo.Priority),
	}
}

func validPriority(p models.Priority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return true
	}
	return false
}

func validateSort(sortBy, sortOrder string, allowed map[string]struct{}) (string, string, error) {
	if sortBy != "" {
		if _, ok := allowed[sortBy]; !ok {
			return "", "", ErrInvalidSortColumn
		}
	}
	switch sortOrder {
	case "", "asc", "desc":
	default:
		return "", "", ErrInvalidSortOrder
	}
	return sortBy, sortOrder, nil
}

func clampPagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}
	return page, perPage
}
