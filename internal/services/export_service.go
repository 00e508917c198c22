package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// TodoExport is the payload returned when exporting todos
type TodoExport struct {
	Todos      []models.Todo `json:"todos"`
	ExportedAt time.Time     `json:"exported_at"`
}

// TodoListExport is the payload returned when exporting todo lists
type TodoListExport struct {
	TodoLists  []models.TodoList `json:"todo_lists"`
	ExportedAt time.Time         `json:"exported_at"`
}

// ImportTodoItem is one todo row in an import payload
type ImportTodoItem struct {
	TodoListID  uint64          `json:"todo_list_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
}

// ImportTodoListItem is one list row in an import payload
type ImportTodoListItem struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsFavorite  bool   `json:"is_favorite"`
}

// ImportResult reports what an import committed and what it rejected. Valid
// items commit even when other items fail; each failure is reported with its
// payload index.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// ExportService copies a user's corpus out as JSON payloads and loads
// payloads back in. Imports run in a single transaction: valid items commit
// together while invalid ones are collected as per-item errors.
type ExportService struct {
	db       *gorm.DB
	todoRepo repository.TodoRepository
	listRepo repository.TodoListRepository
}

// NewExportService creates a new ExportService
func NewExportService(db *gorm.DB, todoRepo repository.TodoRepository, listRepo repository.TodoListRepository) *ExportService {
	return &ExportService{
		db:       db,
		todoRepo: todoRepo,
		listRepo: listRepo,
	}
}

// ExportTodos returns every active todo in the user's lists with relations
func (s *ExportService) ExportTodos(userID uint64) (*TodoExport, error) {
	todos, err := s.todoRepo.ListAllOwned(userID, "Tags", "TodoList")
	if err != nil {
		return nil, fmt.Errorf("failed to export todos: %w", err)
	}

	return &TodoExport{Todos: todos, ExportedAt: time.Now()}, nil
}

// ExportTodoLists returns every active list the user owns with its todos
func (s *ExportService) ExportTodoLists(userID uint64) (*TodoListExport, error) {
	lists, err := s.listRepo.ListAllOwned(userID, "Todos")
	if err != nil {
		return nil, fmt.Errorf("failed to export todo lists: %w", err)
	}

	return &TodoListExport{TodoLists: lists, ExportedAt: time.Now()}, nil
}

// ImportTodos inserts the payload's todos into the user's lists. A row that
// references a list the user does not own is skipped into the error list; it
// does not abort the rows around it.
func (s *ExportService) ImportTodos(items []ImportTodoItem, userID uint64) (*ImportResult, error) {
	if err := guardEmptyPayload(len(items)); err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			var list models.TodoList
			err := tx.Where("id = ? AND user_id = ?", item.TodoListID, userID).First(&list).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					result.Errors = append(result.Errors, fmt.Sprintf("item %d: todo list %d not found or unauthorized", i, item.TodoListID))
					continue
				}
				return err
			}

			priority := item.Priority
			if priority == "" {
				priority = models.PriorityMedium
			}
			if !validPriority(priority) {
				result.Errors = append(result.Errors, fmt.Sprintf("item %d: invalid priority %q", i, item.Priority))
				continue
			}

			todo := models.Todo{
				TodoListID:  item.TodoListID,
				Title:       item.Title,
				Description: item.Description,
				Completed:   item.Completed,
				Priority:    priority,
				DueDate:     item.DueDate,
			}
			if err := tx.Create(&todo).Error; err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import todos: %w", err)
	}

	return result, nil
}

// ImportTodoLists inserts the payload's lists for the user
func (s *ExportService) ImportTodoLists(items []ImportTodoListItem, userID uint64) (*ImportResult, error) {
	if err := guardEmptyPayload(len(items)); err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			if item.Title == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("item %d: title is required", i))
				continue
			}

			list := models.TodoList{
				UserID:      userID,
				Title:       item.Title,
				Description: item.Description,
				IsFavorite:  item.IsFavorite,
			}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import todo lists: %w", err)
	}

	return result, nil
}

// guardEmptyPayload rejects an empty import payload before opening a
// transaction
func guardEmptyPayload(n int) error {
	if n == 0 {
		return apperrors.BadRequest("Nothing to import")
	}
	return nil
}
