package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/utils"
)

// StatisticsHandler coordinates dashboard statistics handlers.
type StatisticsHandler struct {
	statsService *services.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// Dashboard returns the current user's aggregate counters.
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.statsService.Dashboard(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.OK(c, "Statistics retrieved successfully", stats)
}
