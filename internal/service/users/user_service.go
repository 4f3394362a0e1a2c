package users

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/jetcharter/internal/auth"
	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/repository"
	"github.com/google/uuid"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	repo       repository.UserRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewUserService(repo repository.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *UserService {
	return &UserService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	if input.Name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Email == "" {
		return nil, nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !role.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid role", domain.ErrValidation)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The user
// is re-read so revoked accounts and role changes take effect immediately.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.Parse(refreshToken, s.jwtSecret)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return auth.Issue(s.jwtSecret, userClaims(user), s.accessTTL)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, id, name, phone)
}

func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hashed)
}

func (s *UserService) issueTokens(user *domain.User) (*TokenPair, error) {
	claims := userClaims(user)

	access, err := auth.Issue(s.jwtSecret, claims, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.Issue(s.jwtSecret, claims, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func userClaims(user *domain.User) auth.Claims {
	return auth.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Email:  user.Email,
		Name:   user.Name,
	}
}

var _ UserUseCase = (*UserService)(nil)
