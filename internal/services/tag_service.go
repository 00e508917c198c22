package services

import (
	"errors"
	"fmt"

	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"gorm.io/gorm"
)

// TagService handles tag business logic. Tags belong to a user, not a list,
// and are shared across all of the user's todos.
type TagService struct {
	tagRepo  repository.TagRepository
	activity *ActivityService
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository, activity *ActivityService) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		activity: activity,
	}
}

// UpdateTagInput represents input for updating a tag; nil fields are left
// untouched
type UpdateTagInput struct {
	Name  *string
	Color *string
}

// ListTags returns all tags owned by the acting user
func (s *TagService) ListTags(userID uint64) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag owned by the acting user
func (s *TagService) CreateTag(name, color string, userID uint64) (*models.Tag, error) {
	tag := &models.Tag{
		UserID: userID,
		Name:   name,
		Color:  color,
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.recordActivity(userID, tag, "created", nil, tagSnapshot(tag))

	return tag, nil
}

// GetTag returns a tag owned by the acting user
func (s *TagService) GetTag(id, userID uint64) (*models.Tag, error) {
	tag, err := s.tagRepo.FindOwnedByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Tag not found")
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

// UpdateTag applies a partial update to a tag owned by the acting user
func (s *TagService) UpdateTag(id uint64, input UpdateTagInput, userID uint64) (*models.Tag, error) {
	tag, err := s.GetTag(id, userID)
	if err != nil {
		return nil, err
	}

	oldValues := tagSnapshot(tag)

	if input.Name != nil {
		tag.Name = *input.Name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	s.recordActivity(userID, tag, "updated", oldValues, tagSnapshot(tag))

	return tag, nil
}

// DeleteTag removes a tag owned by the acting user; todo assignments go with
// it
func (s *TagService) DeleteTag(id, userID uint64) error {
	tag, err := s.GetTag(id, userID)
	if err != nil {
		return err
	}

	if err := s.tagRepo.Delete(tag); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.recordActivity(userID, tag, "deleted", tagSnapshot(tag), nil)

	return nil
}

func (s *TagService) recordActivity(userID uint64, tag *models.Tag, action string, oldValues, newValues models.JSONMap) {
	if s.activity == nil {
		return
	}
	s.activity.Record(userID, models.EntityTag, tag.ID, action, oldValues, newValues)
}

func tagSnapshot(tag *models.Tag) models.JSONMap {
	return models.JSONMap{
		"name":  tag.Name,
		"color": tag.Color,
	}
}
