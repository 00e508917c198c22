package services

import (
	"errors"
	"fmt"
	"log"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// ActivityService records and reads the per-user mutation trail
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
	todoRepo     repository.TodoRepository
	listRepo     repository.TodoListRepository
	tagRepo      repository.TagRepository
	commentRepo  repository.CommentRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo repository.ActivityLogRepository,
	todoRepo repository.TodoRepository,
	listRepo repository.TodoListRepository,
	tagRepo repository.TagRepository,
	commentRepo repository.CommentRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		todoRepo:     todoRepo,
		listRepo:     listRepo,
		tagRepo:      tagRepo,
		commentRepo:  commentRepo,
	}
}

// Record appends a log entry. Recording is best-effort: a failure is logged
// and never surfaces to the mutation that triggered it.
func (s *ActivityService) Record(userID uint64, kind models.EntityKind, entityID uint64, action string, oldValues, newValues models.JSONMap) {
	entry := &models.ActivityLog{
		UserID:     userID,
		EntityKind: kind,
		EntityID:   entityID,
		Action:     action,
		OldValues:  oldValues,
		NewValues:  newValues,
	}

	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("failed to record activity (%s %s %d): %v", action, kind, entityID, err)
	}
}

// ListLogs returns the user's activity entries, newest first
func (s *ActivityService) ListLogs(userID uint64, page, perPage int) ([]models.ActivityLog, int64, error) {
	page, perPage = clampPagination(page, perPage)

	logs, total, err := s.activityRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}

	return logs, total, nil
}

// GetLog returns one of the user's activity entries
func (s *ActivityService) GetLog(id, userID uint64) (*models.ActivityLog, error) {
	entry, err := s.activityRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Activity log not found")
		}
		return nil, fmt.Errorf("failed to find activity log: %w", err)
	}

	return entry, nil
}

// ResolveEntity loads the entity a log entry points at. Each supported kind
// resolves through its own lookup; a purged entity yields nil without error.
func (s *ActivityService) ResolveEntity(entry *models.ActivityLog) (any, error) {
	var (
		entity any
		err    error
	)

	switch entry.EntityKind {
	case models.EntityTodo:
		entity, err = s.todoRepo.FindByID(entry.EntityID)
	case models.EntityTodoList:
		entity, err = s.listRepo.FindByID(entry.EntityID)
	case models.EntityTag:
		entity, err = s.tagRepo.FindOwnedByID(entry.EntityID, entry.UserID)
	case models.EntityComment:
		entity, err = s.commentRepo.FindByID(entry.EntityID)
	default:
		return nil, fmt.Errorf("unknown entity kind %q", entry.EntityKind)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve %s %d: %w", entry.EntityKind, entry.EntityID, err)
	}

	return entity, nil
}
