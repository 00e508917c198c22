package repository

import (
	"github.com/marvinmino/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends a log entry
func (r *GormActivityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// ListByUser returns the user's log entries, newest first
func (r *GormActivityLogRepository) ListByUser(userID uint64, page, perPage int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog

	query := r.db.Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC, id DESC")
	if page > 0 && perPage > 0 {
		listQuery = listQuery.Offset((page - 1) * perPage).Limit(perPage)
	}

	if err := listQuery.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// FindByID finds a log entry belonging to userID
func (r *GormActivityLogRepository) FindByID(id, userID uint64) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
