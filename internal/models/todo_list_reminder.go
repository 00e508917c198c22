package models

import (
	"time"
)

// TodoListReminder is a stored reminder row. Dispatching reminders is
// external to this service; IsSent is flipped by whatever delivers them.
type TodoListReminder struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TodoListID   uint64    `gorm:"not null;index" json:"todo_list_id"`
	ReminderDate time.Time `gorm:"not null" json:"reminder_date"`
	IsSent       bool      `gorm:"not null;default:false" json:"is_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
