package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
	"gorm.io/gorm"
)

// ShareHandler coordinates list share HTTP handlers.
type ShareHandler struct {
	shareService *services.ShareService
	shareRepo    repository.ShareRepository
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService *services.ShareService, shareRepo repository.ShareRepository) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		shareRepo:    shareRepo,
	}
}

// ListShares returns a list's share grants.
func (h *ShareHandler) ListShares(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	shares, err := h.shareService.ListShares(list, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Shares retrieved successfully", shares)
}

// Share grants a user access to a list.
func (h *ShareHandler) Share(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := loadTodoList(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type ShareRequest struct {
		UserID     uint64 `json:"user_id" binding:"required"`
		Permission string `json:"permission" binding:"omitempty,oneof=view edit delete"`
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	permission := models.SharePermission(req.Permission)
	if permission == "" {
		permission = models.PermissionView
	}

	share, err := h.shareService.Share(list, req.UserID, permission, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Created(c, "Todo list shared successfully", share)
}

// UpdateShare sets a grant's permission.
func (h *ShareHandler) UpdateShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	share, err := h.loadShare(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	type UpdateShareRequest struct {
		Permission string `json:"permission" binding:"required,oneof=view edit delete"`
	}

	var req UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.KindUnprocessable, "Invalid request body"))
		return
	}

	updated, err := h.shareService.UpdateShare(share, models.SharePermission(req.Permission), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Share updated successfully", updated)
}

// RevokeShare removes a grant.
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	share, err := h.loadShare(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.shareService.Revoke(share, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Share revoked successfully", nil)
}

// loadShare fetches the grant addressed by the :shareId parameter, verifying
// it belongs to the list in the route.
func (h *ShareHandler) loadShare(c *gin.Context) (*models.TodoListShare, error) {
	listID, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	shareID, err := parseIDParam(c, "shareId")
	if err != nil {
		return nil, err
	}

	share, err := h.shareRepo.FindByID(shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Share not found")
		}
		return nil, err
	}
	if share.TodoListID != listID {
		return nil, apperrors.NotFound("Share not found")
	}

	return share, nil
}
