package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoListHandlerTestSuite defines the test suite for TodoListHandler
type TodoListHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TodoListHandler
}

// SetupTest runs before each test
func (suite *TodoListHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.Todo{},
		&models.TodoListNote{},
		&models.TodoListReminder{},
		&models.TodoListShare{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	listRepo := repository.NewTodoListRepository(suite.db)
	guard := services.NewAccessGuard(listRepo)
	listService := services.NewTodoListService(listRepo, guard, nil)
	suite.handler = NewTodoListHandler(listService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TodoListHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TodoListHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TodoListHandlerTestSuite) createTestList(title string, userID uint64) *models.TodoList {
	list := &models.TodoList{
		UserID: userID,
		Title:  title,
	}
	suite.db.Create(list)
	return list
}

// Helper function to create authenticated context
func (suite *TodoListHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func (suite *TodoListHandlerTestSuite) TestCreateTodoList() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]any{"title": "Groceries"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/todo-lists", body, user.ID)

	suite.handler.CreateTodoList(c)

	suite.Equal(http.StatusCreated, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Todo list created successfully", resp["message"])
	data := resp["data"].(map[string]any)
	suite.Equal("Groceries", data["title"])
}

func (suite *TodoListHandlerTestSuite) TestCreateTodoListMissingTitle() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]any{"description": "no title"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/todo-lists", body, user.ID)

	suite.handler.CreateTodoList(c)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Invalid request body", resp["message"])
}

func (suite *TodoListHandlerTestSuite) TestGetTodoListNotFound() {
	user := suite.createTestUser("user@example.com")

	c, w := suite.createAuthContext(http.MethodGet, "/api/todo-lists/999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.GetTodoList(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TodoListHandlerTestSuite) TestGetForeignTodoListNotFound() {
	user := suite.createTestUser("user@example.com")
	other := suite.createTestUser("other@example.com")
	list := suite.createTestList("Theirs", other.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/todo-lists/"+strconv.FormatUint(list.ID, 10), nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(list.ID, 10)}}

	suite.handler.GetTodoList(c)

	// Foreign lists are indistinguishable from missing ones on read
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TodoListHandlerTestSuite) TestUpdateForeignTodoListForbidden() {
	user := suite.createTestUser("user@example.com")
	other := suite.createTestUser("other@example.com")
	list := suite.createTestList("Theirs", other.ID)

	body, _ := json.Marshal(map[string]any{"title": "hijacked"})
	c, w := suite.createAuthContext(http.MethodPut, "/api/todo-lists/"+strconv.FormatUint(list.ID, 10), body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(list.ID, 10)}}

	suite.handler.UpdateTodoList(c)

	// The list exists, so a write by a non-owner is a 403, not a 404
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TodoListHandlerTestSuite) TestListTodoListsEnvelope() {
	user := suite.createTestUser("user@example.com")
	suite.createTestList("One", user.ID)
	suite.createTestList("Two", user.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/todo-lists?per_page=1", nil, user.ID)

	suite.handler.ListTodoLists(c)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp["data"], 1)

	pagination := resp["pagination"].(map[string]any)
	suite.Equal(float64(1), pagination["current_page"])
	suite.Equal(float64(2), pagination["last_page"])
	suite.Equal(float64(1), pagination["per_page"])
	suite.Equal(float64(2), pagination["total"])
}

func (suite *TodoListHandlerTestSuite) TestUnparseableBoolFilterIgnored() {
	user := suite.createTestUser("user@example.com")
	suite.db.Create(&models.TodoList{UserID: user.ID, Title: "Fav", IsFavorite: true})
	suite.createTestList("Plain", user.ID)

	// An unrecognized token drops the filter instead of coercing to false
	c, w := suite.createAuthContext(http.MethodGet, "/api/todo-lists?is_favorite=junk", nil, user.ID)
	suite.handler.ListTodoLists(c)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp["data"], 2)

	c, w = suite.createAuthContext(http.MethodGet, "/api/todo-lists?is_favorite=true", nil, user.ID)
	suite.handler.ListTodoLists(c)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp["data"], 1)
}

func (suite *TodoListHandlerTestSuite) TestInvalidSortColumnUnprocessable() {
	user := suite.createTestUser("user@example.com")

	c, w := suite.createAuthContext(http.MethodGet, "/api/todo-lists?sort_by=owner", nil, user.ID)

	suite.handler.ListTodoLists(c)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func TestTodoListHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoListHandlerTestSuite))
}
