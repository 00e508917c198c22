package models

import (
	"time"
)

type SharePermission string

const (
	PermissionView   SharePermission = "view"
	PermissionEdit   SharePermission = "edit"
	PermissionDelete SharePermission = "delete"
)

// TodoListShare grants a user one permission level on a list. The composite
// unique index makes the database the arbiter of at-most-one-grant-per-pair;
// concurrent share calls race on the constraint, not on application locks.
type TodoListShare struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	TodoListID uint64          `gorm:"not null;uniqueIndex:idx_list_user" json:"todo_list_id"`
	UserID     uint64          `gorm:"not null;uniqueIndex:idx_list_user" json:"user_id"`
	Permission SharePermission `gorm:"type:varchar(20);not null;default:'view'" json:"permission"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	TodoList TodoList `gorm:"foreignKey:TodoListID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
