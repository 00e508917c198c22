package repository

import (
	"github.com/marvinmino/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoListRepository is a GORM implementation of TodoListRepository
type GormTodoListRepository struct {
	db *gorm.DB
}

// NewTodoListRepository creates a new TodoListRepository
func NewTodoListRepository(db *gorm.DB) TodoListRepository {
	return &GormTodoListRepository{db: db}
}

// Create creates a new todo list
func (r *GormTodoListRepository) Create(list *models.TodoList) error {
	return r.db.Create(list).Error
}

// FindByID finds an active list by ID regardless of owner
func (r *GormTodoListRepository) FindByID(id uint64, preload ...string) (*models.TodoList, error) {
	var list models.TodoList
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&list, id).Error; err != nil {
		return nil, err
	}

	return &list, nil
}

// FindAnyByID finds a list by ID regardless of owner or archival state.
// Used to resolve a todo's effective owner even while its list is archived.
func (r *GormTodoListRepository) FindAnyByID(id uint64) (*models.TodoList, error) {
	var list models.TodoList
	if err := r.db.Unscoped().First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindOwnedByID finds an active list owned by ownerID
func (r *GormTodoListRepository) FindOwnedByID(id, ownerID uint64, preload ...string) (*models.TodoList, error) {
	var list models.TodoList
	query := r.db.Where("user_id = ?", ownerID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&list, id).Error; err != nil {
		return nil, err
	}

	return &list, nil
}

// FindArchivedOwnedByID finds an archived list owned by ownerID
func (r *GormTodoListRepository) FindArchivedOwnedByID(id, ownerID uint64) (*models.TodoList, error) {
	var list models.TodoList
	err := r.db.Unscoped().
		Where("user_id = ?", ownerID).
		Where("deleted_at IS NOT NULL").
		First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// List retrieves todo lists with filtering and pagination
func (r *GormTodoListRepository) List(filter TodoListFilter) ([]models.TodoList, int64, error) {
	var lists []models.TodoList

	query := r.db.Model(&models.TodoList{}).Where("todo_lists.user_id = ?", filter.OwnerID)

	if filter.IsFavorite != nil {
		query = query.Where("todo_lists.is_favorite = ?", *filter.IsFavorite)
	}
	if filter.Shared {
		query = query.Where(
			"EXISTS (SELECT 1 FROM todo_list_shares WHERE todo_list_shares.todo_list_id = todo_lists.id)",
		)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(todo_lists.title LIKE ? OR todo_lists.description LIKE ?)", pattern, pattern)
	}
	if filter.Archived != nil && *filter.Archived {
		query = query.Unscoped().Where("todo_lists.deleted_at IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	listQuery := query.Order("todo_lists." + sortBy + " " + sortOrder)

	if filter.Page > 0 && filter.PerPage > 0 {
		offset := (filter.Page - 1) * filter.PerPage
		listQuery = listQuery.Offset(offset).Limit(filter.PerPage)
	}

	err := listQuery.
		Preload("Todos").
		Preload("Notes").
		Preload("Reminders").
		Preload("Shares").
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}

	return lists, total, nil
}

// ListAllOwned retrieves every active list owned by ownerID
func (r *GormTodoListRepository) ListAllOwned(ownerID uint64, preload ...string) ([]models.TodoList, error) {
	var lists []models.TodoList
	query := r.db.Where("user_id = ?", ownerID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}

	return lists, nil
}

// Update saves a list
func (r *GormTodoListRepository) Update(list *models.TodoList) error {
	return r.db.Save(list).Error
}

// Archive soft deletes a list. Child todos keep their own archival state;
// there is no cascade.
func (r *GormTodoListRepository) Archive(list *models.TodoList) error {
	return r.db.Delete(list).Error
}

// Restore clears a list's archival timestamp
func (r *GormTodoListRepository) Restore(list *models.TodoList) error {
	return r.db.Unscoped().Model(list).Update("deleted_at", nil).Error
}

// Purge permanently removes a list row
func (r *GormTodoListRepository) Purge(list *models.TodoList) error {
	return r.db.Unscoped().Delete(list).Error
}
