package services

import (
	"testing"

	"github.com/marvinmino/todo-api/internal/database"
	apperrors "github.com/marvinmino/todo-api/internal/errors"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CommentServiceTestSuite defines the test suite for CommentService
type CommentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CommentService
}

// SetupTest runs before each test
func (suite *CommentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.Todo{},
		&models.TodoComment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	commentRepo := repository.NewCommentRepository(suite.db)
	todoRepo := repository.NewTodoRepository(suite.db)
	listRepo := repository.NewTodoListRepository(suite.db)
	guard := NewAccessGuard(listRepo)
	suite.service = NewCommentService(commentRepo, todoRepo, guard, nil)
}

// TearDownTest runs after each test
func (suite *CommentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CommentServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hashedpassword"}
	suite.db.Create(user)
	return user
}

func (suite *CommentServiceTestSuite) createTestTodo(userID uint64) *models.Todo {
	list := &models.TodoList{UserID: userID, Title: "List"}
	suite.db.Create(list)
	todo := &models.Todo{TodoListID: list.ID, Title: "todo", Priority: models.PriorityMedium}
	suite.db.Create(todo)
	return todo
}

func (suite *CommentServiceTestSuite) TestGetComment() {
	user := suite.createTestUser("user@example.com")
	todo := suite.createTestTodo(user.ID)

	comment, err := suite.service.CreateComment(todo.ID, nil, "top level", user.ID)
	suite.Require().NoError(err)
	_, err = suite.service.CreateComment(todo.ID, &comment.ID, "a reply", user.ID)
	suite.Require().NoError(err)

	found, err := suite.service.GetComment(comment.ID, user.ID)
	suite.Require().NoError(err)
	suite.Equal("top level", found.Comment)
	suite.Require().Len(found.Replies, 1)
	suite.Equal("a reply", found.Replies[0].Comment)
}

func (suite *CommentServiceTestSuite) TestGetForeignCommentNotFound() {
	user := suite.createTestUser("user@example.com")
	other := suite.createTestUser("other@example.com")
	todo := suite.createTestTodo(other.ID)

	comment, err := suite.service.CreateComment(todo.ID, nil, "theirs", other.ID)
	suite.Require().NoError(err)

	_, err = suite.service.GetComment(comment.ID, user.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func (suite *CommentServiceTestSuite) TestGetMissingCommentNotFound() {
	user := suite.createTestUser("user@example.com")

	_, err := suite.service.GetComment(999, user.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
