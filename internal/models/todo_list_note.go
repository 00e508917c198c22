package models

import (
	"time"
)

type TodoListNote struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TodoListID uint64    `gorm:"not null;index" json:"todo_list_id"`
	Note       string    `gorm:"type:text;not null" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
