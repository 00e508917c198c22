package repository

import (
	"github.com/marvinmino/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// ListTopLevelByTodo returns a todo's top-level comments with replies
func (r *GormCommentRepository) ListTopLevelByTodo(todoID uint64) ([]models.TodoComment, error) {
	var comments []models.TodoComment
	err := r.db.Where("todo_id = ? AND parent_id IS NULL", todoID).
		Preload("User").
		Preload("Replies").
		Preload("Replies.User").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create creates a comment
func (r *GormCommentRepository) Create(comment *models.TodoComment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(id uint64) (*models.TodoComment, error) {
	var comment models.TodoComment
	if err := r.db.Preload("User").Preload("Replies").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindOwnedByID finds a comment whose todo sits in the owner's lists
func (r *GormCommentRepository) FindOwnedByID(id, ownerID uint64) (*models.TodoComment, error) {
	var comment models.TodoComment
	err := r.db.
		Where("todo_comments.id = ?", id).
		Where(`EXISTS (
			SELECT 1 FROM todos
			JOIN todo_lists ON todo_lists.id = todos.todo_list_id
			WHERE todos.id = todo_comments.todo_id AND todo_lists.user_id = ?
		)`, ownerID).
		Preload("User").
		Preload("Replies").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update saves a comment
func (r *GormCommentRepository) Update(comment *models.TodoComment) error {
	return r.db.Save(comment).Error
}

// Delete hard-deletes a comment
func (r *GormCommentRepository) Delete(comment *models.TodoComment) error {
	return r.db.Delete(comment).Error
}
