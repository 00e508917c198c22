package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// CommentHandler coordinates todo comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments returns a todo's top-level comments with replies.
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	comments, err := h.commentService.ListComments(todoID, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Comments retrieved successfully", comments)
}

// CreateComment adds a comment or reply to a todo.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type CreateRequest struct {
		Comment  string  `json:"comment" binding:"required"`
		ParentID *uint64 `json:"parent_id"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	comment, err := h.commentService.CreateComment(todoID, req.ParentID, req.Comment, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Created(c, "Comment created successfully", comment)
}

// GetComment returns a single comment with its replies.
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	comment, err := h.commentService.GetComment(commentID, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Comment retrieved successfully", comment)
}

// UpdateComment rewrites a comment's body.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateRequest struct {
		Comment string `json:"comment" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, req.Comment, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Comment updated successfully", comment)
}

// DeleteComment removes a comment and its replies.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.commentService.DeleteComment(commentID, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Comment deleted successfully", nil)
}
