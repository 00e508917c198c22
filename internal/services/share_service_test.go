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

// ShareServiceTestSuite defines the test suite for ShareService
type ShareServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ShareService
}

// SetupTest runs before each test
func (suite *ShareServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TodoList{},
		&models.TodoListShare{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	listRepo := repository.NewTodoListRepository(suite.db)
	shareRepo := repository.NewShareRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	guard := NewAccessGuard(listRepo)

	suite.service = NewShareService(shareRepo, userRepo, guard)
}

// TearDownTest runs after each test
func (suite *ShareServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ShareServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hashedpassword"}
	suite.db.Create(user)
	return user
}

func (suite *ShareServiceTestSuite) createTestList(title string, userID uint64) *models.TodoList {
	list := &models.TodoList{UserID: userID, Title: title}
	suite.db.Create(list)
	return list
}

func (suite *ShareServiceTestSuite) TestShareCreatesGrant() {
	owner := suite.createTestUser("owner@example.com")
	grantee := suite.createTestUser("grantee@example.com")
	list := suite.createTestList("Mine", owner.ID)

	share, err := suite.service.Share(list, grantee.ID, models.PermissionEdit, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(models.PermissionEdit, share.Permission)
	suite.Equal(grantee.ID, share.UserID)
}

func (suite *ShareServiceTestSuite) TestShareWithSelfRejected() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	_, err := suite.service.Share(list, owner.ID, models.PermissionView, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindBadRequest))
	suite.Equal("Cannot share with yourself", err.Error())
}

func (suite *ShareServiceTestSuite) TestReShareKeepsExistingPermission() {
	owner := suite.createTestUser("owner@example.com")
	grantee := suite.createTestUser("grantee@example.com")
	list := suite.createTestList("Mine", owner.ID)

	first, err := suite.service.Share(list, grantee.ID, models.PermissionView, owner.ID)
	suite.Require().NoError(err)

	// Re-sharing with a higher permission returns the existing grant unchanged
	second, err := suite.service.Share(list, grantee.ID, models.PermissionDelete, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
	suite.Equal(models.PermissionView, second.Permission)

	var count int64
	suite.db.Model(&models.TodoListShare{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *ShareServiceTestSuite) TestShareByNonOwnerForbidden() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	grantee := suite.createTestUser("grantee@example.com")
	list := suite.createTestList("Mine", owner.ID)

	_, err := suite.service.Share(list, grantee.ID, models.PermissionView, intruder.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindForbidden))
}

func (suite *ShareServiceTestSuite) TestShareWithUnknownUserNotFound() {
	owner := suite.createTestUser("owner@example.com")
	list := suite.createTestList("Mine", owner.ID)

	_, err := suite.service.Share(list, 99999, models.PermissionView, owner.ID)
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.KindNotFound))
}

func (suite *ShareServiceTestSuite) TestUpdateShareChangesPermission() {
	owner := suite.createTestUser("owner@example.com")
	grantee := suite.createTestUser("grantee@example.com")
	list := suite.createTestList("Mine", owner.ID)

	share, err := suite.service.Share(list, grantee.ID, models.PermissionView, owner.ID)
	suite.Require().NoError(err)
	share.TodoList = *list

	updated, err := suite.service.UpdateShare(share, models.PermissionEdit, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(models.PermissionEdit, updated.Permission)
}

func (suite *ShareServiceTestSuite) TestRevokeRemovesGrant() {
	owner := suite.createTestUser("owner@example.com")
	grantee := suite.createTestUser("grantee@example.com")
	list := suite.createTestList("Mine", owner.ID)

	share, err := suite.service.Share(list, grantee.ID, models.PermissionView, owner.ID)
	suite.Require().NoError(err)
	share.TodoList = *list

	suite.Require().NoError(suite.service.Revoke(share, owner.ID))

	var count int64
	suite.db.Model(&models.TodoListShare{}).Count(&count)
	suite.Equal(int64(0), count)
}

func TestShareServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShareServiceTestSuite))
}
