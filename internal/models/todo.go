package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Todo struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	TodoListID  uint64         `gorm:"not null;index" json:"todo_list_id"`
	ParentID    *uint64        `gorm:"index" json:"parent_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	Priority    Priority       `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	ImagePath   string         `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"archived_at,omitempty"`

	// Relations. Parent is not constrained to the same list; cross-list
	// parenting is representable and unguarded.
	TodoList TodoList      `gorm:"foreignKey:TodoListID" json:"todo_list,omitempty"`
	Parent   *Todo         `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	SubTodos []Todo        `gorm:"foreignKey:ParentID" json:"sub_todos,omitempty"`
	Tags     []Tag         `gorm:"many2many:todo_tags" json:"tags,omitempty"`
	Comments []TodoComment `gorm:"foreignKey:TodoID" json:"comments,omitempty"`
}
