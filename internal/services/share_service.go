package services

import (
	"errors"
	"fmt"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// ErrSelfShare is returned when a list owner tries to share with themself
var ErrSelfShare = apperrors.BadRequest("Cannot share with yourself")

// ShareService manages per-(list, user) permission grants. Grants are
// created and stored here; the AccessGuard does not consult them when
// authorizing reads or writes.
type ShareService struct {
	shareRepo repository.ShareRepository
	userRepo  repository.UserRepository
	guard     *AccessGuard
}

// NewShareService creates a new ShareService
func NewShareService(shareRepo repository.ShareRepository, userRepo repository.UserRepository, guard *AccessGuard) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		userRepo:  userRepo,
		guard:     guard,
	}
}

// ListShares returns all grants for a list; owner-only
func (s *ShareService) ListShares(list *models.TodoList, userID uint64) ([]models.TodoListShare, error) {
	if err := s.guard.MustOwnList(list, userID); err != nil {
		return nil, err
	}

	shares, err := s.shareRepo.ListByTodoList(list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	return shares, nil
}

// Share grants a user access to a list. Creation is idempotent: an existing
// grant for the pair is returned unchanged even when a different permission
// was requested; upgrading requires UpdateShare.
func (s *ShareService) Share(list *models.TodoList, granteeID uint64, permission models.SharePermission, ownerID uint64) (*models.TodoListShare, error) {
	if err := s.guard.MustOwnList(list, ownerID); err != nil {
		return nil, err
	}

	if granteeID == ownerID {
		return nil, ErrSelfShare
	}

	if _, err := s.userRepo.FindByID(granteeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	share, err := s.shareRepo.FirstOrCreate(list.ID, granteeID, permission)
	if err != nil {
		return nil, fmt.Errorf("failed to share todo list: %w", err)
	}

	return share, nil
}

// UpdateShare sets the grant's permission; only the list owner may do so
func (s *ShareService) UpdateShare(share *models.TodoListShare, permission models.SharePermission, userID uint64) (*models.TodoListShare, error) {
	if err := s.guard.MustOwnList(&share.TodoList, userID); err != nil {
		return nil, err
	}

	if err := s.shareRepo.UpdatePermission(share, permission); err != nil {
		return nil, fmt.Errorf("failed to update share: %w", err)
	}

	return share, nil
}

// Revoke removes the grant; only the list owner may do so
func (s *ShareService) Revoke(share *models.TodoListShare, userID uint64) error {
	if err := s.guard.MustOwnList(&share.TodoList, userID); err != nil {
		return err
	}

	if err := s.shareRepo.Delete(share); err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}

	return nil
}
