package services

import (
	"testing"

	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ExportServiceTestSuite defines the test suite for ExportService
type ExportServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ExportService
}

// SetupTest runs before each test
func (suite *ExportServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.Todo{},
		&models.Tag{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	todoRepo := repository.NewTodoRepository(suite.db)
	listRepo := repository.NewTodoListRepository(suite.db)
	suite.service = NewExportService(suite.db, todoRepo, listRepo)
}

// TearDownTest runs after each test
func (suite *ExportServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ExportServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hashedpassword"}
	suite.db.Create(user)
	return user
}

func (suite *ExportServiceTestSuite) createTestList(title string, userID uint64) *models.TodoList {
	list := &models.TodoList{UserID: userID, Title: title}
	suite.db.Create(list)
	return list
}

func (suite *ExportServiceTestSuite) TestExportTodosScopedToOwner() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	ownList := suite.createTestList("Mine", owner.ID)
	otherList := suite.createTestList("Theirs", other.ID)

	suite.db.Create(&models.Todo{TodoListID: ownList.ID, Title: "mine", Priority: models.PriorityMedium})
	suite.db.Create(&models.Todo{TodoListID: otherList.ID, Title: "theirs", Priority: models.PriorityMedium})

	payload, err := suite.service.ExportTodos(owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(payload.Todos, 1)
	suite.Equal("mine", payload.Todos[0].Title)
	suite.False(payload.ExportedAt.IsZero())
}

func (suite *ExportServiceTestSuite) TestImportTodosCommitsValidSkipsInvalid() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	ownList := suite.createTestList("Mine", owner.ID)
	otherList := suite.createTestList("Theirs", other.ID)

	result, err := suite.service.ImportTodos([]ImportTodoItem{
		{TodoListID: ownList.ID, Title: "good one"},
		{TodoListID: otherList.ID, Title: "unauthorized ref"},
		{TodoListID: ownList.ID, Title: "good two"},
		{TodoListID: 99999, Title: "dangling ref"},
	}, owner.ID)
	suite.Require().NoError(err)

	// Valid rows commit even though others failed
	suite.Equal(2, result.Imported)
	suite.Len(result.Errors, 2)

	var count int64
	suite.db.Model(&models.Todo{}).Count(&count)
	suite.Equal(int64(2), count)
}

func (suite *ExportServiceTestSuite) TestImportTodosDefaultsPriority() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	_, err := suite.service.ImportTodos([]ImportTodoItem{
		{TodoListID: list.ID, Title: "plain"},
	}, owner.ID)
	suite.Require().NoError(err)

	var todo models.Todo
	suite.db.First(&todo)
	suite.Equal(models.PriorityMedium, todo.Priority)
}

func (suite *ExportServiceTestSuite) TestImportEmptyPayloadRejected() {
	owner := suite.createTestUser("owner@example.com")

	_, err := suite.service.ImportTodos(nil, owner.ID)
	suite.Require().Error(err)

	_, err = suite.service.ImportTodoLists(nil, owner.ID)
	suite.Require().Error(err)
}

func (suite *ExportServiceTestSuite) TestImportTodoLists() {
	owner := suite.createTestUser("owner@example.com")

	result, err := suite.service.ImportTodoLists([]ImportTodoListItem{
		{Title: "Imported", IsFavorite: true},
		{Title: ""},
	}, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)
	suite.Len(result.Errors, 1)

	var list models.TodoList
	suite.Require().NoError(suite.db.First(&list).Error)
	suite.Equal("Imported", list.Title)
	suite.Equal(owner.ID, list.UserID)
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
