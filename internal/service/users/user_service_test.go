package users

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/jetcharter/internal/auth"
	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error) {
	args := m.Called(ctx, id, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

const testSecret = "test-secret"

func newTestService(repo *MockUserRepository) *UserService {
	return NewUserService(repo, testSecret, 15*time.Minute, 24*time.Hour)
}

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, tokens, err := service.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := auth.Parse(tokens.AccessToken, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "client", claims.Role)

	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_Validation(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.c", Password: "secret123"}},
		{"missing email", RegisterInput{Name: "Alice", Password: "secret123"}},
		{"short password", RegisterInput{Name: "Alice", Email: "a@b.c", Password: "123"}},
		{"bad role", RegisterInput{Name: "Alice", Email: "a@b.c", Password: "secret123", Role: "superuser"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, tokens, err := service.Register(ctx, tc.input)
			assert.Nil(t, user)
			assert.Nil(t, tokens)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken).Once()

	user, tokens, err := service.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	assert.Nil(t, user)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserService_Login_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)

	stored := &domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
		Role:         domain.RoleClient,
	}

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	user, tokens, err := service.Login(ctx, "alice@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)

	stored := &domain.User{ID: "user-1", Email: "alice@example.com", PasswordHash: hashed}

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	user, tokens, err := service.Login(ctx, "alice@example.com", "wrong")

	assert.Nil(t, user)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Unknown emails produce the same error as a bad password.
func TestUserService_Login_UnknownEmail(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound).Once()

	_, _, err := service.Login(ctx, "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_Refresh_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	stored := &domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleClient}
	refresh, err := auth.Issue(testSecret, auth.Claims{UserID: "user-1", Role: "client"}, time.Hour)
	assert.NoError(t, err)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "user-1").Return(stored, nil).Once()

	access, err := service.Refresh(ctx, refresh)

	assert.NoError(t, err)
	assert.NotEmpty(t, access)

	claims, err := auth.Parse(access, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestUserService_Refresh_InvalidToken(t *testing.T) {
	service := newTestService(nil)

	access, err := service.Refresh(context.Background(), "not-a-token")

	assert.Empty(t, access)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)

	stored := &domain.User{ID: "user-1", PasswordHash: hashed}

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "user-1").Return(stored, nil).Once()

	err = service.ChangePassword(ctx, "user-1", "wrong", "newsecret")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "UpdatePassword")
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newTestService(mockRepo)

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)

	stored := &domain.User{ID: "user-1", PasswordHash: hashed}

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "user-1").Return(stored, nil).Once()
	mockRepo.On("UpdatePassword", ctx, "user-1", mock.AnythingOfType("string")).Return(nil).Once()

	err = service.ChangePassword(ctx, "user-1", "secret123", "newsecret")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ChangePassword_TooShort(t *testing.T) {
	service := newTestService(nil)

	err := service.ChangePassword(context.Background(), "user-1", "secret123", "123")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
