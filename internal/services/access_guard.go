package services

import (
	"errors"
	"fmt"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// AccessGuard resolves authorization for a resource against an acting user.
// Authorization is ownership-only: a todo's effective owner is its list's
// owner. Share grants are stored by the ShareService but are not consulted
// here, so a grantee has no read or write path through these checks.
type AccessGuard struct {
	listRepo repository.TodoListRepository
}

// NewAccessGuard creates a new AccessGuard
func NewAccessGuard(listRepo repository.TodoListRepository) *AccessGuard {
	return &AccessGuard{listRepo: listRepo}
}

// OwnerOfTodo resolves the todo's effective owner via its list. The list is
// looked up without archival scoping: an archived list still owns its todos.
func (g *AccessGuard) OwnerOfTodo(todo *models.Todo) (uint64, error) {
	if todo.TodoList.ID != 0 {
		return todo.TodoList.UserID, nil
	}

	list, err := g.listRepo.FindAnyByID(todo.TodoListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("Todo list not found")
		}
		return 0, fmt.Errorf("failed to resolve todo owner: %w", err)
	}
	return list.UserID, nil
}

// CanViewList reports whether the user may read the list
func (g *AccessGuard) CanViewList(list *models.TodoList, userID uint64) bool {
	return list.UserID == userID
}

// CanViewTodo reports whether the user may read the todo
func (g *AccessGuard) CanViewTodo(todo *models.Todo, userID uint64) (bool, error) {
	ownerID, err := g.OwnerOfTodo(todo)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}

// MustOwnList fails with Forbidden unless the user owns the list
func (g *AccessGuard) MustOwnList(list *models.TodoList, userID uint64) error {
	if list.UserID != userID {
		return apperrors.Forbidden("Unauthorized")
	}
	return nil
}

// MustOwnTodo fails with Forbidden unless the user owns the todo's list
func (g *AccessGuard) MustOwnTodo(todo *models.Todo, userID uint64) error {
	ownerID, err := g.OwnerOfTodo(todo)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return apperrors.Forbidden("Unauthorized")
	}
	return nil
}
