package services

import (
	"errors"
	"fmt"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

var listSortColumns = map[string]struct{}{
	"title":      {},
	"created_at": {},
	"updated_at": {},
}

var listPreloads = []string{"Todos", "Notes", "Reminders", "Shares"}

// TodoListService handles todo list business logic
type TodoListService struct {
	listRepo repository.TodoListRepository
	guard    *AccessGuard
	activity *ActivityService
}

// NewTodoListService creates a new TodoListService
func NewTodoListService(listRepo repository.TodoListRepository, guard *AccessGuard, activity *ActivityService) *TodoListService {
	return &TodoListService{
		listRepo: listRepo,
		guard:    guard,
		activity: activity,
	}
}

// ListTodoListsInput represents filters for listing todo lists
type ListTodoListsInput struct {
	IsFavorite *bool
	Shared     bool
	Search     string
	Archived   *bool
	SortBy     string
	SortOrder  string
	Page       int
	PerPage    int
}

// CreateTodoListInput represents input for creating a todo list
type CreateTodoListInput struct {
	Title       string
	Description string
	IsFavorite  bool
}

// UpdateTodoListInput represents input for updating a todo list; nil fields
// are left untouched
type UpdateTodoListInput struct {
	Title       *string
	Description *string
	IsFavorite  *bool
}

// ListTodoLists returns the acting user's lists matching the filters, with
// the total match count
func (s *TodoListService) ListTodoLists(userID uint64, input ListTodoListsInput) ([]models.TodoList, int64, error) {
	sortBy, sortOrder, err := validateSort(input.SortBy, input.SortOrder, listSortColumns)
	if err != nil {
		return nil, 0, err
	}

	page, perPage := clampPagination(input.Page, input.PerPage)

	filter := repository.TodoListFilter{
		OwnerID:    userID,
		IsFavorite: input.IsFavorite,
		Shared:     input.Shared,
		Search:     input.Search,
		Archived:   input.Archived,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Page:       page,
		PerPage:    perPage,
	}

	lists, total, err := s.listRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todo lists: %w", err)
	}

	return lists, total, nil
}

// CreateTodoList creates a list owned by the acting user
func (s *TodoListService) CreateTodoList(input CreateTodoListInput, userID uint64) (*models.TodoList, error) {
	list := &models.TodoList{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		IsFavorite:  input.IsFavorite,
	}

	if err := s.listRepo.Create(list); err != nil {
		return nil, fmt.Errorf("failed to create todo list: %w", err)
	}

	s.recordActivity(userID, list, "created", nil, listSnapshot(list))

	return s.listRepo.FindOwnedByID(list.ID, userID, listPreloads...)
}

// GetTodoList returns a list owned by the acting user
func (s *TodoListService) GetTodoList(id, userID uint64) (*models.TodoList, error) {
	list, err := s.listRepo.FindOwnedByID(id, userID, listPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo list not found")
		}
		return nil, fmt.Errorf("failed to find todo list: %w", err)
	}

	return list, nil
}

// UpdateTodoList applies a partial update to a list owned by the acting user
func (s *TodoListService) UpdateTodoList(list *models.TodoList, input UpdateTodoListInput, userID uint64) (*models.TodoList, error) {
	if err := s.guard.MustOwnList(list, userID); err != nil {
		return nil, err
	}

	oldValues := listSnapshot(list)

	if input.Title != nil {
		list.Title = *input.Title
	}
	if input.Description != nil {
		list.Description = *input.Description
	}
	if input.IsFavorite != nil {
		list.IsFavorite = *input.IsFavorite
	}

	if err := s.listRepo.Update(list); err != nil {
		return nil, fmt.Errorf("failed to update todo list: %w", err)
	}

	s.recordActivity(userID, list, "updated", oldValues, listSnapshot(list))

	return s.listRepo.FindOwnedByID(list.ID, userID, listPreloads...)
}

// DeleteTodoList permanently removes a list owned by the acting user
func (s *TodoListService) DeleteTodoList(list *models.TodoList, userID uint64) error {
	if err := s.guard.MustOwnList(list, userID); err != nil {
		return err
	}

	if err := s.listRepo.Purge(list); err != nil {
		return fmt.Errorf("failed to delete todo list: %w", err)
	}

	s.recordActivity(userID, list, "deleted", listSnapshot(list), nil)

	return nil
}

// ArchiveTodoList soft-deletes a list owned by the acting user. The list's
// todos keep their own archival state; archiving the list does not cascade.
func (s *TodoListService) ArchiveTodoList(list *models.TodoList, userID uint64) error {
	if err := s.guard.MustOwnList(list, userID); err != nil {
		return err
	}

	if err := s.listRepo.Archive(list); err != nil {
		return fmt.Errorf("failed to archive todo list: %w", err)
	}

	s.recordActivity(userID, list, "archived", nil, nil)

	return nil
}

// RestoreTodoList brings an archived list back to the active set. Active
// lists, missing IDs, and other users' lists are all reported as not found.
func (s *TodoListService) RestoreTodoList(id, userID uint64) (*models.TodoList, error) {
	list, err := s.listRepo.FindArchivedOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo list not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to find archived todo list: %w", err)
	}

	if err := s.listRepo.Restore(list); err != nil {
		return nil, fmt.Errorf("failed to restore todo list: %w", err)
	}

	s.recordActivity(userID, list, "restored", nil, nil)

	return s.listRepo.FindOwnedByID(list.ID, userID, listPreloads...)
}

// ToggleFavorite flips the list's favorite flag
func (s *TodoListService) ToggleFavorite(list *models.TodoList, userID uint64) (*models.TodoList, error) {
	if err := s.guard.MustOwnList(list, userID); err != nil {
		return nil, err
	}

	list.IsFavorite = !list.IsFavorite
	if err := s.listRepo.Update(list); err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return s.listRepo.FindOwnedByID(list.ID, userID, listPreloads...)
}

func (s *TodoListService) recordActivity(userID uint64, list *models.TodoList, action string, oldValues, newValues models.JSONMap) {
	if s.activity == nil {
		return
	}
	s.activity.Record(userID, models.EntityTodoList, list.ID, action, oldValues, newValues)
}

func listSnapshot(list *models.TodoList) models.JSONMap {
	return models.JSONMap{
		"title":       list.Title,
		"is_favorite": list.IsFavorite,
	}
}
