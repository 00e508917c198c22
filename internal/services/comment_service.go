package services

import (
	"errors"
	"fmt"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// CommentService handles todo comment business logic. Comments hang off a
// todo and may nest one level via a parent comment.
type CommentService struct {
	commentRepo repository.CommentRepository
	todoRepo    repository.TodoRepository
	guard       *AccessGuard
	activity    *ActivityService
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, todoRepo repository.TodoRepository, guard *AccessGuard, activity *ActivityService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		todoRepo:    todoRepo,
		guard:       guard,
		activity:    activity,
	}
}

// ListComments returns a todo's top-level comments with their replies
func (s *CommentService) ListComments(todoID, userID uint64) ([]models.TodoComment, error) {
	if _, err := s.ownedTodo(todoID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListTopLevelByTodo(todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// CreateComment adds a comment to a todo in the acting user's lists. When
// parentID is set the new comment is a reply to that comment.
func (s *CommentService) CreateComment(todoID uint64, parentID *uint64, body string, userID uint64) (*models.TodoComment, error) {
	if _, err := s.ownedTodo(todoID, userID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.commentRepo.FindByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Parent comment not found")
			}
			return nil, fmt.Errorf("failed to find parent comment: %w", err)
		}
		if parent.TodoID != todoID {
			return nil, apperrors.BadRequest("Parent comment belongs to a different todo")
		}
	}

	comment := &models.TodoComment{
		TodoID:   todoID,
		UserID:   userID,
		ParentID: parentID,
		Comment:  body,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.recordActivity(userID, comment, "created")

	return s.commentRepo.FindByID(comment.ID)
}

// GetComment returns a single comment with its replies. The comment must
// hang off a todo in the acting user's lists.
func (s *CommentService) GetComment(id, userID uint64) (*models.TodoComment, error) {
	comment, err := s.commentRepo.FindOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

// UpdateComment rewrites a comment's body. Only the comment's author may
// update it.
func (s *CommentService) UpdateComment(id uint64, body string, userID uint64) (*models.TodoComment, error) {
	comment, err := s.commentRepo.FindOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.UserID != userID {
		return nil, apperrors.Forbidden("Unauthorized")
	}

	comment.Comment = body
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.recordActivity(userID, comment, "updated")

	return comment, nil
}

// DeleteComment removes a comment; its replies go with it. Only the author
// may delete.
func (s *CommentService) DeleteComment(id, userID uint64) error {
	comment, err := s.commentRepo.FindOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Comment not found")
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.UserID != userID {
		return apperrors.Forbidden("Unauthorized")
	}

	if err := s.commentRepo.Delete(comment); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.recordActivity(userID, comment, "deleted")

	return nil
}

func (s *CommentService) ownedTodo(todoID, userID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindOwnedByID(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo not found")
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

func (s *CommentService) recordActivity(userID uint64, comment *models.TodoComment, action string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(userID, models.EntityComment, comment.ID, action, nil, nil)
}
