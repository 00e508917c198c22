package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// GetPaginationParams extracts and clamps pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(constants.DefaultPerPage)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if limit < 1 || limit > constants.MaxPerPage {
		limit = constants.DefaultPerPage
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// NewPaginationResponse builds page metadata from a total row count.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	lastPage := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	return PaginationResponse{
		CurrentPage: params.Page,
		LastPage:    lastPage,
		PerPage:     params.Limit,
		Total:       total,
	}
}
