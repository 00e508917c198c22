package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/utils"
	"gorm.io/gorm"
)

// NoteHandler coordinates list note HTTP handlers. Notes are a thin CRUD
// surface nested under a list, so the handler talks to the database directly.
type NoteHandler struct{}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler() *NoteHandler {
	return &NoteHandler{}
}

// ListNotes returns all notes on one of the current user's lists.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var notes []models.TodoListNote
	if err := database.GetDB().
		Where("todo_list_id = ?", list.ID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to fetch notes"))
		return
	}

	utils.OK(c, "Notes retrieved successfully", notes)
}

// CreateNote adds a note to one of the current user's lists.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type CreateRequest struct {
		Note string `json:"note" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	note := models.TodoListNote{
		TodoListID: list.ID,
		Note:       req.Note,
	}
	if err := database.GetDB().Create(&note).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to create note"))
		return
	}

	utils.Created(c, "Note created successfully", note)
}

// GetNote returns one note on one of the current user's lists.
func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := loadNote(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Note retrieved successfully", note)
}

// UpdateNote rewrites a note's body.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	note, err := loadNote(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateRequest struct {
		Note string `json:"note" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	note.Note = req.Note
	if err := database.GetDB().Save(note).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to update note"))
		return
	}

	utils.OK(c, "Note updated successfully", note)
}

// DeleteNote removes a note.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	note, err := loadNote(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := database.GetDB().Delete(note).Error; err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to delete note"))
		return
	}

	utils.OK(c, "Note deleted successfully", nil)
}

// loadOwnedTodoList fetches the list addressed by :id and requires the
// current user to own it.
func loadOwnedTodoList(c *gin.Context) (*models.TodoList, error) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return nil, apperrors.New(apperrors.KindUnauthorized, "Not authenticated")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var list models.TodoList
	if err := database.GetDB().First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Todo list not found")
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, apperrors.Forbidden("Unauthorized")
	}

	return &list, nil
}

// loadNote fetches the note addressed by :noteId, verifying it belongs to
// the owned list in the route.
func loadNote(c *gin.Context) (*models.TodoListNote, error) {
	list, err := loadOwnedTodoList(c)
	if err != nil {
		return nil, err
	}

	noteID, err := parseIDParam(c, "noteId")
	if err != nil {
		return nil, err
	}

	var note models.TodoListNote
	if err := database.GetDB().
		Where("id = ? AND todo_list_id = ?", noteID, list.ID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Note not found")
		}
		return nil, err
	}

	return &note, nil
}
