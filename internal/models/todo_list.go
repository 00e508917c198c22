package models

import (
	"time"

	"gorm.io/gorm"
)

type TodoList struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsFavorite  bool           `gorm:"not null;default:false" json:"is_favorite"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"archived_at,omitempty"`

	// Relations
	User      User               `gorm:"foreignKey:UserID" json:"-"`
	Todos     []Todo             `gorm:"foreignKey:TodoListID" json:"todos,omitempty"`
	Notes     []TodoListNote     `gorm:"foreignKey:TodoListID" json:"notes,omitempty"`
	Reminders []TodoListReminder `gorm:"foreignKey:TodoListID" json:"reminders,omitempty"`
	Shares    []TodoListShare    `gorm:"foreignKey:TodoListID" json:"shares,omitempty"`
}
