package services

import (
	"fmt"
	"time"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
)

// ErrBulkTodosNotFound is returned when any requested todo falls outside the
// acting user's ownership; missing and foreign IDs are indistinguishable.
var ErrBulkTodosNotFound = apperrors.NotFound("Some todos not found or unauthorized")

// BulkService applies one mutation to a caller-supplied set of todos under an
// all-or-nothing ownership precondition: if any requested ID is missing or
// foreign, nothing is mutated. The precondition check and the mutation are
// separate round-trips; an ownership change between the two is accepted, not
// mitigated.
type BulkService struct {
	todoRepo repository.TodoRepository
	tagRepo  repository.TagRepository
}

// NewBulkService creates a new BulkService
func NewBulkService(todoRepo repository.TodoRepository, tagRepo repository.TagRepository) *BulkService {
	return &BulkService{
		todoRepo: todoRepo,
		tagRepo:  tagRepo,
	}
}

// BulkUpdateInput represents the partial field set applied by BulkUpdate
type BulkUpdateInput struct {
	Completed *bool
	Priority  *models.Priority
	DueDate   *time.Time
}

// BulkUpdate applies the field set to all requested active todos in one
// statement and returns the number of rows affected
func (s *BulkService) BulkUpdate(todoIDs []uint64, input BulkUpdateInput, userID uint64) (int64, error) {
	if err := s.requireOwnership(todoIDs, userID); err != nil {
		return 0, err
	}

	fields := map[string]any{}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}
	if input.Priority != nil {
		if !validPriority(*input.Priority) {
			return 0, ErrInvalidPriority
		}
		fields["priority"] = *input.Priority
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}

	if len(fields) == 0 {
		return 0, nil
	}

	count, err := s.todoRepo.UpdateByIDs(todoIDs, fields)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update todos: %w", err)
	}

	return count, nil
}

// BulkDelete archives all requested todos, regardless of their current
// archival state, and returns the count
func (s *BulkService) BulkDelete(todoIDs []uint64, userID uint64) (int64, error) {
	if err := s.requireOwnership(todoIDs, userID); err != nil {
		return 0, err
	}

	count, err := s.todoRepo.ArchiveByIDs(todoIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete todos: %w", err)
	}

	return count, nil
}

// BulkAssignTags adds the tag set to each requested todo, preserving
// existing assignments. Re-assigning an already-assigned tag is a no-op, so
// the operation is an idempotent union.
func (s *BulkService) BulkAssignTags(todoIDs, tagIDs []uint64, userID uint64) error {
	todos, err := s.todoRepo.FindOwnedByIDs(todoIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve todos: %w", err)
	}
	if len(todos) != len(todoIDs) {
		return ErrBulkTodosNotFound
	}

	tags, err := s.tagRepo.FindByIDs(tagIDs)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	for i := range todos {
		if err := s.todoRepo.AppendTags(&todos[i], tags); err != nil {
			return fmt.Errorf("failed to assign tags: %w", err)
		}
	}

	return nil
}

// requireOwnership fails unless every requested ID resolves to a todo in the
// acting user's lists
func (s *BulkService) requireOwnership(todoIDs []uint64, userID uint64) error {
	count, err := s.todoRepo.CountOwned(todoIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to verify todo ownership: %w", err)
	}
	if count != int64(len(todoIDs)) {
		return ErrBulkTodosNotFound
	}
	return nil
}
