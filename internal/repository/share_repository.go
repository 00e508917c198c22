package repository

import (
	"errors"

	"github.com/marvinmino/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormShareRepository is a GORM implementation of ShareRepository
type GormShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &GormShareRepository{db: db}
}

// ListByTodoList returns all grants for a list
func (r *GormShareRepository) ListByTodoList(todoListID uint64) ([]models.TodoListShare, error) {
	var shares []models.TodoListShare
	err := r.db.Where("todo_list_id = ?", todoListID).
		Preload("User").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// FirstOrCreate returns the existing grant for (todoListID, userID) or
// creates one with the given permission. Two concurrent calls for the same
// pair race on the unique index; the loser re-reads the winner's row.
func (r *GormShareRepository) FirstOrCreate(todoListID, userID uint64, permission models.SharePermission) (*models.TodoListShare, error) {
	var share models.TodoListShare
	err := r.db.
		Where(&models.TodoListShare{TodoListID: todoListID, UserID: userID}).
		Attrs(&models.TodoListShare{Permission: permission}).
		FirstOrCreate(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			findErr := r.db.
				Where("todo_list_id = ? AND user_id = ?", todoListID, userID).
				First(&share).Error
			if findErr != nil {
				return nil, findErr
			}
			return &share, nil
		}
		return nil, err
	}
	return &share, nil
}

// FindByID finds a grant with its list
func (r *GormShareRepository) FindByID(id uint64) (*models.TodoListShare, error) {
	var share models.TodoListShare
	if err := r.db.Preload("TodoList").Preload("User").First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// UpdatePermission sets the grant's permission
func (r *GormShareRepository) UpdatePermission(share *models.TodoListShare, permission models.SharePermission) error {
	return r.db.Model(share).Update("permission", permission).Error
}

// Delete hard-deletes the grant row
func (r *GormShareRepository) Delete(share *models.TodoListShare) error {
	return r.db.Delete(share).Error
}
