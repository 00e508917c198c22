package services

import (
	"testing"
	"time"

	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/marvinmino/todo-api/internal/storage"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoServiceTestSuite defines the test suite for TodoService
type TodoServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TodoService
}

// SetupTest runs before each test
func (suite *TodoServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.Todo{},
		&models.Tag{},
		&models.TodoComment{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	todoRepo := repository.NewTodoRepository(suite.db)
	listRepo := repository.NewTodoListRepository(suite.db)
	tagRepo := repository.NewTagRepository(suite.db)
	guard := NewAccessGuard(listRepo)
	images := storage.NewLocalImageStore(suite.T().TempDir())

	suite.service = NewTodoService(todoRepo, listRepo, tagRepo, guard, images, nil)
}

// TearDownTest runs after each test
func (suite *TodoServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TodoServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TodoServiceTestSuite) createTestList(title string, userID uint64) *models.TodoList {
	list := &models.TodoList{
		UserID: userID,
		Title:  title,
	}
	suite.db.Create(list)
	return list
}

func (suite *TodoServiceTestSuite) createTestTodo(title string, listID uint64) *models.Todo {
	todo := &models.Todo{
		TodoListID: listID,
		Title:      title,
		Priority:   models.PriorityMedium,
	}
	suite.db.Create(todo)
	return todo
}

func (suite *TodoServiceTestSuite) TestListTodosScopedToOwner() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	ownList := suite.createTestList("Mine", owner.ID)
	otherList := suite.createTestList("Theirs", other.ID)

	suite.createTestTodo("own todo", ownList.ID)
	suite.createTestTodo("foreign todo", otherList.ID)

	todos, total, err := suite.service.ListTodos(owner.ID, ListTodosInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(todos, 1)
	suite.Equal("own todo", todos[0].Title)
}

func (suite *TodoServiceTestSuite) TestListTodosArchivedDisjoint() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	active := suite.createTestTodo("active", list.ID)
	archived := suite.createTestTodo("archived", list.ID)
	suite.Require().NoError(suite.service.ArchiveTodo(archived, owner.ID))

	// Default listing returns only active todos
	todos, _, err := suite.service.ListTodos(owner.ID, ListTodosInput{})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 1)
	suite.Equal(active.ID, todos[0].ID)

	// archived=true returns only the archived set
	archivedFlag := true
	todos, _, err = suite.service.ListTodos(owner.ID, ListTodosInput{Archived: &archivedFlag})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 1)
	suite.Equal(archived.ID, todos[0].ID)
}

func (suite *TodoServiceTestSuite) TestListTodosSearchMatchesTitleOrDescription() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "Buy groceries", Priority: models.PriorityMedium})
	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "Call plumber", Description: "about the groceries fridge", Priority: models.PriorityMedium})
	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "Unrelated", Priority: models.PriorityMedium})

	todos, total, err := suite.service.ListTodos(owner.ID, ListTodosInput{Search: "groceries"})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(todos, 2)
}

func (suite *TodoServiceTestSuite) TestListTodosInvalidSortColumn() {
	owner := suite.createTestUser("owner@example.com")

	_, _, err := suite.service.ListTodos(owner.ID, ListTodosInput{SortBy: "id; DROP TABLE todos"})
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindUnprocessable))
}

func (suite *TodoServiceTestSuite) TestCreateTodoRejectsForeignList() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	otherList := suite.createTestList("Theirs", other.ID)

	_, err := suite.service.CreateTodo(CreateTodoInput{
		TodoListID: otherList.ID,
		Title:      "sneaky",
	}, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func (suite *TodoServiceTestSuite) TestCreateTodoDefaultsPriority() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	todo, err := suite.service.CreateTodo(CreateTodoInput{
		TodoListID: list.ID,
		Title:      "no priority given",
	}, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(models.PriorityMedium, todo.Priority)
}

func (suite *TodoServiceTestSuite) TestUpdateTodoForeignForbidden() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	otherList := suite.createTestList("Theirs", other.ID)
	todo := suite.createTestTodo("theirs", otherList.ID)

	title := "hijacked"
	_, err := suite.service.UpdateTodo(todo, UpdateTodoInput{Title: &title}, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindForbidden))
}

func (suite *TodoServiceTestSuite) TestArchiveRestoreRoundTrip() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)
	todo := suite.createTestTodo("cycled", list.ID)

	suite.Require().NoError(suite.service.ArchiveTodo(todo, owner.ID))

	// Archived todo is gone from the active set
	_, err := suite.service.GetTodo(todo.ID, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))

	restored, err := suite.service.RestoreTodo(todo.ID, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(todo.ID, restored.ID)

	// Back in the active set
	found, err := suite.service.GetTodo(todo.ID, owner.ID)
	suite.Require().NoError(err)
	suite.Equal("cycled", found.Title)
}

func (suite *TodoServiceTestSuite) TestRestoreActiveTodoNotFound() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)
	todo := suite.createTestTodo("still active", list.ID)

	_, err := suite.service.RestoreTodo(todo.ID, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func (suite *TodoServiceTestSuite) TestRestoreForeignTodoNotFound() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	otherList := suite.createTestList("Theirs", other.ID)
	todo := suite.createTestTodo("theirs", otherList.ID)
	suite.Require().NoError(suite.db.Delete(todo).Error)

	_, err := suite.service.RestoreTodo(todo.ID, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func (suite *TodoServiceTestSuite) TestDeleteTodoPurgesRow() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)
	todo := suite.createTestTodo("doomed", list.ID)

	suite.Require().NoError(suite.service.DeleteTodo(todo, owner.ID))

	var count int64
	suite.db.Unscoped().Model(&models.Todo{}).Where("id = ?", todo.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TodoServiceTestSuite) TestListTodosOverdueFilter() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "late", DueDate: &past, Priority: models.PriorityMedium})
	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "on track", DueDate: &future, Priority: models.PriorityMedium})
	suite.db.Create(&models.Todo{TodoListID: list.ID, Title: "late but done", DueDate: &past, Completed: true, Priority: models.PriorityMedium})

	todos, _, err := suite.service.ListTodos(owner.ID, ListTodosInput{Overdue: true})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 1)
	suite.Equal("late", todos[0].Title)
}

func TestTodoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TodoServiceTestSuite))
}
