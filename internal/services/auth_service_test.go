package services

import (
	"testing"

	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/models"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) TestRegisterHashesPassword() {
	user, err := suite.service.Register(RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)
	suite.NotEqual("correct horse battery", user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.service.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	suite.Require().NoError(err)

	_, err = suite.service.Register(RegisterInput{Name: "Imposter", Email: "alice@example.com", Password: "password456"})
	suite.Require().Error(err)
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestAuthenticate() {
	_, err := suite.service.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	suite.Require().NoError(err)

	user, err := suite.service.Authenticate("alice@example.com", "password123")
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", user.Email)

	_, err = suite.service.Authenticate("alice@example.com", "wrong")
	suite.ErrorIs(err, ErrInvalidCredentials)

	// Unknown user and wrong password look the same
	_, err = suite.service.Authenticate("nobody@example.com", "password123")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
