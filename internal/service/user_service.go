package service

import (
	"context"
	"errors"

	"github.com/prepstack/prepstack-backend/internal/model"
	"github.com/prepstack/prepstack-backend/internal/repository"
)

var (
	// ErrEmailExists indicates a registration with an already-used email.
	ErrEmailExists = errors.New("email already registered")
	// ErrBadCredentials indicates a failed email/password check.
	ErrBadCredentials = errors.New("invalid credentials")
)

// UserService handles account registration and credential checks.
type UserService struct {
	users *repository.UserRepository
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// Register creates a new account. The email must not be in use.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrBadCredentials
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// GetByID fetches a user by primary key.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
