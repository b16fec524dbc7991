package services_test

import (
	"fmt"
	"testing"

	"campusbazaar/internal/models"
	"campusbazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepo is a testify mock implementation of repositories.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test-secret")

	newUser := &models.User{Username: "asha", Email: "asha@example.com", Password: "plaintext123"}

	mockRepo.On("GetByUsername", "asha").Return(nil, fmt.Errorf("record not found")).Once()
	mockRepo.On("GetByEmail", "asha@example.com").Return(nil, fmt.Errorf("record not found")).Once()
	mockRepo.On("Create", newUser).Return(nil).Once()

	err := service.RegisterUser(newUser)
	assert.NoError(t, err)

	// The stored password must be a bcrypt hash of the original.
	assert.NotEqual(t, "plaintext123", newUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newUser.Password), []byte("plaintext123")))

	// Unspecified role defaults to customer.
	assert.Equal(t, models.RoleCustomer, newUser.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test-secret")

	existing := &models.User{ID: "user-1", Username: "asha"}
	mockRepo.On("GetByUsername", "asha").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Username: "asha", Email: "other@example.com", Password: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test-secret")

	existing := &models.User{ID: "user-1", Email: "asha@example.com"}
	mockRepo.On("GetByUsername", "asha2").Return(nil, fmt.Errorf("record not found")).Once()
	mockRepo.On("GetByEmail", "asha@example.com").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Username: "asha2", Email: "asha@example.com", Password: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_KeepsExplicitRole(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test-secret")

	seller := &models.User{Username: "hub", Email: "hub@example.com", Password: "x", Role: models.RoleWholesaler}
	mockRepo.On("GetByUsername", "hub").Return(nil, fmt.Errorf("record not found")).Once()
	mockRepo.On("GetByEmail", "hub@example.com").Return(nil, fmt.Errorf("record not found")).Once()
	mockRepo.On("Create", seller).Return(nil).Once()

	assert.NoError(t, service.RegisterUser(seller))
	assert.Equal(t, models.RoleWholesaler, seller.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "user-1", Username: "asha", Password: string(hashed), Role: models.RoleRetailer}

	// Successful login yields a token whose claims carry id, name and role.
	mockRepo.On("GetByUsername", "asha").Return(user, nil).Once()
	token, err := service.LoginUser("asha", "correct-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "asha", claims["username"])
	assert.Equal(t, string(models.RoleRetailer), claims["role"])

	// Wrong password
	mockRepo.On("GetByUsername", "asha").Return(user, nil).Once()
	_, err = service.LoginUser("asha", "wrong-password")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Unknown user gets the same opaque error.
	mockRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("record not found")).Once()
	_, err = service.LoginUser("ghost", "whatever")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_RejectsForeignSignature(t *testing.T) {
	mockRepo := new(MockUserRepo)
	issuer := services.NewAuthService(mockRepo, "secret-a")
	verifier := services.NewAuthService(mockRepo, "secret-b")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Username: "asha", Password: string(hashed)}
	mockRepo.On("GetByUsername", "asha").Return(user, nil).Once()

	token, err := issuer.LoginUser("asha", "pw")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)

	_, err = verifier.ValidateToken("not-a-jwt-at-all")
	assert.Error(t, err)
}
