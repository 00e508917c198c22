package repository

import (
	"time"

	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds an active todo by ID regardless of owner
func (r *GormTodoRepository) FindByID(id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// FindOwnedByID finds an active todo by ID within the owner's lists
func (r *GormTodoRepository) FindOwnedByID(id, ownerID uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db.Scopes(database.OwnedTodos(ownerID))

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// FindArchivedOwnedByID finds an archived todo by ID within the owner's
// lists. An active todo, or one owned by someone else, is a miss either way.
func (r *GormTodoRepository) FindArchivedOwnedByID(id, ownerID uint64) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.Unscoped().
		Scopes(database.OwnedTodos(ownerID)).
		Where("todos.deleted_at IS NOT NULL").
		First(&todo, id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves todos with filtering and pagination
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, int64, error) {
	var todos []models.Todo

	query := r.db.Model(&models.Todo{}).Scopes(database.OwnedTodos(filter.OwnerID))
	query = applyTodoFilters(query, filter, time.Now())

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

	listQuery := query.Order("todos." + sortBy + " " + sortOrder)

	if filter.Page > 0 && filter.PerPage > 0 {
		offset := (filter.Page - 1) * filter.PerPage
		listQuery = listQuery.Offset(offset).Limit(filter.PerPage)
	}

	err := listQuery.
		Preload("TodoList").
		Preload("Tags").
		Preload("Parent").
		Preload("SubTodos").
		Find(&todos).Error
	if err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

func applyTodoFilters(query *gorm.DB, filter TodoFilter, now time.Time) *gorm.DB {
	if filter.Completed != nil {
		query = query.Where("todos.completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("todos.priority = ?", *filter.Priority)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("todos.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("todos.due_date <= ?", *filter.DueDateTo)
	}
	if filter.Overdue {
		query = query.Where("todos.due_date < ? AND todos.completed = ?", now, false)
	}
	if filter.DueToday {
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		query = query.Where("todos.due_date >= ? AND todos.due_date < ? AND todos.completed = ?",
			startOfDay, endOfDay, false)
	}
	if filter.TodoListID != nil {
		query = query.Where("todos.todo_list_id = ?", *filter.TodoListID)
	}
	if filter.ParentID != nil {
		if *filter.ParentID == "null" {
			query = query.Where("todos.parent_id IS NULL")
		} else {
			query = query.Where("todos.parent_id = ?", *filter.ParentID)
		}
	}
	if len(filter.TagIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM todo_tags WHERE todo_tags.todo_id = todos.id AND todo_tags.tag_id IN ?)",
			filter.TagIDs,
		)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(todos.title LIKE ? OR todos.description LIKE ?)", pattern, pattern)
	}
	if filter.Archived != nil && *filter.Archived {
		query = query.Unscoped().Where("todos.deleted_at IS NOT NULL")
	}
	// Archived nil or false: the soft-delete default scope already restricts
	// the result to active rows.

	return query
}

// ListAllOwned retrieves every active todo in the owner's lists
func (r *GormTodoRepository) ListAllOwned(ownerID uint64, preload ...string) ([]models.Todo, error) {
	var todos []models.Todo
	query := r.db.Scopes(database.OwnedTodos(ownerID))

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Find(&todos).Error; err != nil {
		return nil, err
	}

	return todos, nil
}

// Update saves a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Archive soft deletes a todo
func (r *GormTodoRepository) Archive(todo *models.Todo) error {
	return r.db.Delete(todo).Error
}

// Restore clears a todo's archival timestamp
func (r *GormTodoRepository) Restore(todo *models.Todo) error {
	return r.db.Unscoped().Model(todo).Update("deleted_at", nil).Error
}

// Purge permanently removes a todo row and its tag links
func (r *GormTodoRepository) Purge(todo *models.Todo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(todo).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(todo).Error
	})
}

// ReplaceTags replaces the todo's tag set
func (r *GormTodoRepository) ReplaceTags(todo *models.Todo, tags []models.Tag) error {
	return r.db.Model(todo).Association("Tags").Replace(&tags)
}

// AppendTags adds tags to the todo's existing set. The join table insert
// runs with an on-conflict no-op, so re-appending an assigned tag is harmless.
func (r *GormTodoRepository) AppendTags(todo *models.Todo, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.Model(todo).Association("Tags").Append(&tags)
}

// CountOwned counts how many of the given IDs sit in the owner's lists,
// regardless of archival state
func (r *GormTodoRepository) CountOwned(ids []uint64, ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Unscoped().
		Model(&models.Todo{}).
		Scopes(database.OwnedTodos(ownerID)).
		Where("todos.id IN ?", ids).
		Count(&count).Error
	return count, err
}

// FindOwnedByIDs fetches the given todos within the owner's lists,
// regardless of archival state
func (r *GormTodoRepository) FindOwnedByIDs(ids []uint64, ownerID uint64) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.Unscoped().
		Scopes(database.OwnedTodos(ownerID)).
		Where("todos.id IN ?", ids).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateByIDs applies a partial field set to all active todos in ids in a
// single statement and returns the number of rows affected
func (r *GormTodoRepository) UpdateByIDs(ids []uint64, fields map[string]any) (int64, error) {
	result := r.db.Model(&models.Todo{}).Where("id IN ?", ids).Updates(fields)
	return result.RowsAffected, result.Error
}

// ArchiveByIDs stamps an archival timestamp on every todo in ids, including
// ones that were already archived
func (r *GormTodoRepository) ArchiveByIDs(ids []uint64) (int64, error) {
	result := r.db.Unscoped().
		Model(&models.Todo{}).
		Where("id IN ?", ids).
		Update("deleted_at", time.Now())
	return result.RowsAffected, result.Error
}
