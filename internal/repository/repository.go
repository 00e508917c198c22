package repository

import (
	"time"

	"github.com/marvinmino/todo-api/internal/models"
)

// TodoFilter holds filtering options for listing todos. All options combine
// with AND; zero values mean "not set".
type TodoFilter struct {
	OwnerID     uint64
	Completed   *bool
	Priority    *models.Priority
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	Overdue     bool
	DueToday    bool
	TodoListID  *uint64
	ParentID    *string // literal "null" selects top-level todos
	TagIDs      []uint64
	Search      string
	Archived    *bool // nil ⇒ active only, true ⇒ archived only, false ⇒ active only
	SortBy      string
	SortOrder   string
	Page        int
	PerPage     int
}

// TodoListFilter holds filtering options for listing todo lists.
type TodoListFilter struct {
	OwnerID    uint64
	IsFavorite *bool
	Shared     bool
	Search     string
	Archived   *bool
	SortBy     string
	SortOrder  string
	Page       int
	PerPage    int
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds an active todo by ID regardless of owner
	FindByID(id uint64, preload ...string) (*models.Todo, error)

	// FindOwnedByID finds an active todo by ID within the owner's lists
	FindOwnedByID(id, ownerID uint64, preload ...string) (*models.Todo, error)

	// FindArchivedOwnedByID finds an archived todo by ID within the owner's lists
	FindArchivedOwnedByID(id, ownerID uint64) (*models.Todo, error)

	// List retrieves todos with filtering and pagination
	List(filter TodoFilter) ([]models.Todo, int64, error)

	// ListAllOwned retrieves every active todo in the owner's lists
	ListAllOwned(ownerID uint64, preload ...string) ([]models.Todo, error)

	// Update saves a todo
	Update(todo *models.Todo) error

	// Archive soft deletes a todo
	Archive(todo *models.Todo) error

	// Restore clears a todo's archival timestamp
	Restore(todo *models.Todo) error

	// Purge permanently removes a todo row and its tag links
	Purge(todo *models.Todo) error

	// ReplaceTags replaces the todo's tag set
	ReplaceTags(todo *models.Todo, tags []models.Tag) error

	// AppendTags adds tags to the todo's existing set without duplicating
	AppendTags(todo *models.Todo, tags []models.Tag) error

	// CountOwned counts how many of the given IDs sit in the owner's lists,
	// regardless of archival state
	CountOwned(ids []uint64, ownerID uint64) (int64, error)

	// FindOwnedByIDs fetches the given todos within the owner's lists,
	// regardless of archival state
	FindOwnedByIDs(ids []uint64, ownerID uint64) ([]models.Todo, error)

	// UpdateByIDs applies a partial field set to all active todos in ids
	UpdateByIDs(ids []uint64, fields map[string]any) (int64, error)

	// ArchiveByIDs stamps an archival timestamp on every todo in ids
	ArchiveByIDs(ids []uint64) (int64, error)
}

// TodoListRepository defines the interface for todo list data access
type TodoListRepository interface {
	// Create creates a new todo list
	Create(list *models.TodoList) error

	// FindByID finds an active list by ID regardless of owner
	FindByID(id uint64, preload ...string) (*models.TodoList, error)

	// FindAnyByID finds a list by ID regardless of owner or archival state
	FindAnyByID(id uint64) (*models.TodoList, error)

	// FindOwnedByID finds an active list owned by ownerID
	FindOwnedByID(id, ownerID uint64, preload ...string) (*models.TodoList, error)

	// FindArchivedOwnedByID finds an archived list owned by ownerID
	FindArchivedOwnedByID(id, ownerID uint64) (*models.TodoList, error)

	// List retrieves todo lists with filtering and pagination
	List(filter TodoListFilter) ([]models.TodoList, int64, error)

	// ListAllOwned retrieves every active list owned by ownerID
	ListAllOwned(ownerID uint64, preload ...string) ([]models.TodoList, error)

	// Update saves a list
	Update(list *models.TodoList) error

	// Archive soft deletes a list
	Archive(list *models.TodoList) error

	// Restore clears a list's archival timestamp
	Restore(list *models.TodoList) error

	// Purge permanently removes a list row
	Purge(list *models.TodoList) error
}

// ShareRepository defines the interface for share grant data access
type ShareRepository interface {
	// ListByTodoList returns all grants for a list
	ListByTodoList(todoListID uint64) ([]models.TodoListShare, error)

	// FirstOrCreate returns the existing grant for (todoListID, userID) or
	// creates one with the given permission. An existing grant's permission
	// is left untouched.
	FirstOrCreate(todoListID, userID uint64, permission models.SharePermission) (*models.TodoListShare, error)

	// FindByID finds a grant with its list
	FindByID(id uint64) (*models.TodoListShare, error)

	// UpdatePermission sets the grant's permission
	UpdatePermission(share *models.TodoListShare, permission models.SharePermission) error

	// Delete hard-deletes the grant row
	Delete(share *models.TodoListShare) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// ListByUser returns all tags owned by userID
	ListByUser(userID uint64) ([]models.Tag, error)

	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindOwnedByID finds a tag owned by userID
	FindOwnedByID(id, userID uint64) (*models.Tag, error)

	// FindByIDs fetches tags by ID
	FindByIDs(ids []uint64) ([]models.Tag, error)

	// Update saves a tag
	Update(tag *models.Tag) error

	// Delete hard-deletes a tag
	Delete(tag *models.Tag) error
}

// CommentRepository defines the interface for todo comment data access
type CommentRepository interface {
	// ListTopLevelByTodo returns a todo's top-level comments with replies
	ListTopLevelByTodo(todoID uint64) ([]models.TodoComment, error)

	// Create creates a comment
	Create(comment *models.TodoComment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.TodoComment, error)

	// FindOwnedByID finds a comment whose todo sits in the owner's lists
	FindOwnedByID(id, ownerID uint64) (*models.TodoComment, error)

	// Update saves a comment
	Update(comment *models.TodoComment) error

	// Delete hard-deletes a comment
	Delete(comment *models.TodoComment) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ActivityLogRepository defines the interface for activity log data access
type ActivityLogRepository interface {
	// Create appends a log entry
	Create(entry *models.ActivityLog) error

	// ListByUser returns the user's log entries, newest first
	ListByUser(userID uint64, page, perPage int) ([]models.ActivityLog, int64, error)

	// FindByID finds a log entry belonging to userID
	FindByID(id, userID uint64) (*models.ActivityLog, error)
}
