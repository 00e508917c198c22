package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "todo_session"
)

// Pagination limits
const (
	DefaultPerPage = 15
	MinPage        = 1
	MaxPerPage     = 100
)
