package database

import (
	"gorm.io/gorm"

	"github.com/marvinmino/todo-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedTodos scopes a todos query to lists owned by userID. Ownership only:
// the list's own archival state is deliberately not checked, so todos remain
// visible while their parent list is archived.
func OwnedTodos(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"EXISTS (SELECT 1 FROM todo_lists WHERE todo_lists.id = todos.todo_list_id AND todo_lists.user_id = ?)",
			userID,
		)
	}
}
