package services

import (
	"fmt"
	"math"
	"time"

	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
)

// DashboardStats is the aggregate snapshot returned by the dashboard endpoint
type DashboardStats struct {
	TotalLists      int64            `json:"total_lists"`
	TotalTodos      int64            `json:"total_todos"`
	CompletedTodos  int64            `json:"completed_todos"`
	PendingTodos    int64            `json:"pending_todos"`
	OverdueTodos    int64            `json:"overdue_todos"`
	DueToday        int64            `json:"due_today"`
	DueThisWeek     int64            `json:"due_this_week"`
	CompletionRate  float64          `json:"completion_rate"`
	TodosByPriority map[string]int64 `json:"todos_by_priority"`
	FavoriteLists   int64            `json:"favorite_lists"`
}

// StatisticsService aggregates dashboard counters over the acting user's
// active corpus. The corpus is materialized and counted in memory rather than
// aggregated in SQL.
type StatisticsService struct {
	listRepo repository.TodoListRepository
	todoRepo repository.TodoRepository
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(listRepo repository.TodoListRepository, todoRepo repository.TodoRepository) *StatisticsService {
	return &StatisticsService{
		listRepo: listRepo,
		todoRepo: todoRepo,
	}
}

// Dashboard computes the user's aggregate counters. Archived lists and
// archived todos are excluded throughout; the completion rate is a percentage
// rounded to two decimals, 0 when the user has no active todos.
func (s *StatisticsService) Dashboard(userID uint64) (*DashboardStats, error) {
	lists, err := s.listRepo.ListAllOwned(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todo lists: %w", err)
	}

	todos, err := s.todoRepo.ListAllOwned(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	stats := &DashboardStats{
		TotalLists: int64(len(lists)),
		TotalTodos: int64(len(todos)),
		TodosByPriority: map[string]int64{
			string(models.PriorityLow):    0,
			string(models.PriorityMedium): 0,
			string(models.PriorityHigh):   0,
			string(models.PriorityUrgent): 0,
		},
	}

	for _, list := range lists {
		if list.IsFavorite {
			stats.FavoriteLists++
		}
	}

	// due_today spans the calendar day; due_this_week is a rolling window
	// from now, so an already-overdue todo never counts toward it.
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekEnd := now.Add(7 * 24 * time.Hour)

	for _, todo := range todos {
		if todo.Completed {
			stats.CompletedTodos++
		} else {
			stats.PendingTodos++
		}

		stats.TodosByPriority[string(todo.Priority)]++

		if todo.DueDate == nil || todo.Completed {
			continue
		}
		due := *todo.DueDate
		if due.Before(now) {
			stats.OverdueTodos++
		}
		if !due.Before(todayStart) && due.Before(todayEnd) {
			stats.DueToday++
		}
		if !due.Before(now) && !due.After(weekEnd) {
			stats.DueThisWeek++
		}
	}

	if stats.TotalTodos > 0 {
		rate := float64(stats.CompletedTodos) / float64(stats.TotalTodos) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
