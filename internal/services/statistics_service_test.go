package services

import (
	"testing"
	"time"

	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// StatisticsServiceTestSuite defines the test suite for StatisticsService
type StatisticsServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *StatisticsService
}

// SetupTest runs before each test
func (suite *StatisticsServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.Todo{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	listRepo := repository.NewTodoListRepository(suite.db)
	todoRepo := repository.NewTodoRepository(suite.db)
	suite.service = NewStatisticsService(listRepo, todoRepo)
}

// TearDownTest runs after each test
func (suite *StatisticsServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *StatisticsServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hashedpassword"}
	suite.db.Create(user)
	return user
}

func (suite *StatisticsServiceTestSuite) createTestList(title string, userID uint64, favorite bool) *models.TodoList {
	list := &models.TodoList{UserID: userID, Title: title, IsFavorite: favorite}
	suite.db.Create(list)
	return list
}

func (suite *StatisticsServiceTestSuite) createTestTodo(listID uint64, completed bool, priority models.Priority, due *time.Time) *models.Todo {
	todo := &models.Todo{
		TodoListID: listID,
		Title:      "todo",
		Completed:  completed,
		Priority:   priority,
		DueDate:    due,
	}
	suite.db.Create(todo)
	return todo
}

func (suite *StatisticsServiceTestSuite) TestDashboardEmptyCorpus() {
	user := suite.createTestUser("empty@example.com")

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), stats.TotalTodos)
	suite.Equal(float64(0), stats.CompletionRate)
}

func (suite *StatisticsServiceTestSuite) TestDashboardCompletionRate() {
	user := suite.createTestUser("user@example.com")
	list := suite.createTestList("Mine", user.ID, false)

	// 4 of 5 completed = 80%
	for i := 0; i < 4; i++ {
		suite.createTestTodo(list.ID, true, models.PriorityMedium, nil)
	}
	suite.createTestTodo(list.ID, false, models.PriorityMedium, nil)

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(5), stats.TotalTodos)
	suite.Equal(int64(4), stats.CompletedTodos)
	suite.Equal(int64(1), stats.PendingTodos)
	suite.Equal(80.0, stats.CompletionRate)
}

func (suite *StatisticsServiceTestSuite) TestDashboardCompletionRateRounded() {
	user := suite.createTestUser("user@example.com")
	list := suite.createTestList("Mine", user.ID, false)

	// 1 of 3 completed = 33.333... rounds to 33.33
	suite.createTestTodo(list.ID, true, models.PriorityMedium, nil)
	suite.createTestTodo(list.ID, false, models.PriorityMedium, nil)
	suite.createTestTodo(list.ID, false, models.PriorityMedium, nil)

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)
	suite.Equal(33.33, stats.CompletionRate)
}

func (suite *StatisticsServiceTestSuite) TestDashboardExcludesArchived() {
	user := suite.createTestUser("user@example.com")
	list := suite.createTestList("Mine", user.ID, false)
	archivedList := suite.createTestList("Old", user.ID, false)

	suite.createTestTodo(list.ID, false, models.PriorityMedium, nil)
	archivedTodo := suite.createTestTodo(list.ID, true, models.PriorityMedium, nil)
	suite.Require().NoError(suite.db.Delete(archivedTodo).Error)
	suite.Require().NoError(suite.db.Delete(archivedList).Error)

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), stats.TotalLists)
	suite.Equal(int64(1), stats.TotalTodos)
	suite.Equal(int64(0), stats.CompletedTodos)
}

func (suite *StatisticsServiceTestSuite) TestDashboardPriorityAndDueBuckets() {
	user := suite.createTestUser("user@example.com")
	list := suite.createTestList("Mine", user.ID, true)

	past := time.Now().Add(-24 * time.Hour)
	today := time.Now().Add(time.Minute)
	nextWeek := time.Now().Add(5 * 24 * time.Hour)

	suite.createTestTodo(list.ID, false, models.PriorityUrgent, &past)
	suite.createTestTodo(list.ID, false, models.PriorityHigh, &today)
	suite.createTestTodo(list.ID, false, models.PriorityLow, &nextWeek)
	suite.createTestTodo(list.ID, true, models.PriorityLow, &past) // completed, never overdue

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), stats.OverdueTodos)
	suite.Equal(int64(1), stats.DueToday)
	suite.Equal(int64(2), stats.DueThisWeek)
	suite.Equal(int64(1), stats.FavoriteLists)
	suite.Equal(int64(1), stats.TodosByPriority["urgent"])
	suite.Equal(int64(1), stats.TodosByPriority["high"])
	suite.Equal(int64(2), stats.TodosByPriority["low"])
	suite.Equal(int64(0), stats.TodosByPriority["medium"])
}

func (suite *StatisticsServiceTestSuite) TestDashboardDueThisWeekRollingWindow() {
	user := suite.createTestUser("user@example.com")
	list := suite.createTestList("Mine", user.ID, false)

	justPassed := time.Now().Add(-time.Second)
	weekEdge := time.Now().Add(7*24*time.Hour - time.Minute)
	beyondWeek := time.Now().Add(8 * 24 * time.Hour)

	suite.createTestTodo(list.ID, false, models.PriorityMedium, &justPassed)
	suite.createTestTodo(list.ID, false, models.PriorityMedium, &weekEdge)
	suite.createTestTodo(list.ID, false, models.PriorityMedium, &beyondWeek)

	stats, err := suite.service.Dashboard(user.ID)
	suite.Require().NoError(err)

	// The week window starts at now: an overdue todo stays out of it, and a
	// due date in the final hours of day seven stays in.
	suite.Equal(int64(1), stats.OverdueTodos)
	suite.Equal(int64(1), stats.DueThisWeek)
}

func TestStatisticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatisticsServiceTestSuite))
}
