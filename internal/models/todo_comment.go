package models

import (
	"time"
)

type TodoComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TodoID    uint64    `gorm:"not null;index" json:"todo_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	ParentID  *uint64   `gorm:"index" json:"parent_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Replies nest one level: a reply's ParentID points at a
	// top-level comment.
	User    User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []TodoComment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}
