package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// EntityKind tags the entity an activity log entry refers to. The set is
// closed; resolving a (kind, id) pair back to a row is an explicit switch in
// the activity service, never reflection.
type EntityKind string

const (
	EntityTodo     EntityKind = "todo"
	EntityTodoList EntityKind = "todo_list"
	EntityTag      EntityKind = "tag"
	EntityComment  EntityKind = "todo_comment"
)

// JSONMap stores an opaque structured snapshot as a JSON column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

type ActivityLog struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	EntityKind  EntityKind `gorm:"type:varchar(30);not null" json:"entity_kind"`
	EntityID    uint64     `gorm:"not null" json:"entity_id"`
	Action      string     `gorm:"type:varchar(50);not null" json:"action"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	OldValues   JSONMap    `gorm:"type:json" json:"old_values,omitempty"`
	NewValues   JSONMap    `gorm:"type:json" json:"new_values,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
