package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/utils"
	"gorm.io/gorm"
)

// ReminderHandler coordinates list reminder HTTP handlers. Like notes, this
// is a thin owner-only CRUD surface over the database.
type ReminderHandler struct{}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler() *ReminderHandler {
	return &ReminderHandler{}
}

// ListReminders returns all reminders on one of the current user's lists.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var reminders []models.TodoListReminder
	if err := database.GetDB().
		Where("todo_list_id = ?", list.ID).
		Order("reminder_date ASC").
		Find(&reminders).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to fetch reminders"))
		return
	}

	utils.OK(c, "Reminders retrieved successfully", reminders)
}

// CreateReminder adds a reminder to one of the current user's lists.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type CreateRequest struct {
		ReminderDate time.Time `json:"reminder_date" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	reminder := models.TodoListReminder{
		TodoListID:   list.ID,
		ReminderDate: req.ReminderDate,
	}
	if err := database.GetDB().Create(&reminder).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to create reminder"))
		return
	}

	utils.Created(c, "Reminder created successfully", reminder)
}

// GetReminder returns one reminder on one of the current user's lists.
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	reminder, err := loadReminder(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Reminder retrieved successfully", reminder)
}

// UpdateReminder reschedules a reminder or marks it sent.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	reminder, err := loadReminder(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateRequest struct {
		ReminderDate *time.Time `json:"reminder_date"`
		IsSent       *bool      `json:"is_sent"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	if req.ReminderDate != nil {
		reminder.ReminderDate = *req.ReminderDate
	}
	if req.IsSent != nil {
		reminder.IsSent = *req.IsSent
	}

	if err := database.GetDB().Save(reminder).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to update reminder"))
		return
	}

	utils.OK(c, "Reminder updated successfully", reminder)
}

// DeleteReminder removes a reminder.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	reminder, err := loadReminder(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := database.GetDB().Delete(reminder).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to delete reminder"))
		return
	}

	utils.OK(c, "Reminder deleted successfully", nil)
}

// loadReminder fetches the reminder addressed by :reminderId, verifying it
// belongs to the owned list in the route.
func loadReminder(c *gin.Context) (*models.TodoListReminder, error) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		return nil, err
	}

	reminderID, err := parseIDParam(c, "reminderId")
	if err != nil {
		return nil, err
	}

	var reminder models.TodoListReminder
	if err := database.GetDB().
		Where("id = ? AND todo_list_id = ?", reminderID, list.ID).
		First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Reminder not found")
		}
		return nil, err
	}

	return &reminder, nil
}
