package service

import (
	"context"
	"errors"
	"fmt"

	"books_api/internal/model"
	"books_api/internal/repository"
	"books_api/internal/utils"

	"github.com/rs/zerolog/log"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService provides registration and credential verification
type UserService interface {
	Register(ctx context.Context, req model.RegisterUserRequest) error
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates a new user account. The plaintext password is hashed before
// storage and discarded; the generated ID and hash are not returned.
func (s *userService) Register(ctx context.Context, req model.RegisterUserRequest) error {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Authority:    req.Authority,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A racing registration can slip past the pre-check; the unique
		// constraint still rejects it and keeps the first user intact.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user in repository: %w", err)
	}

	log.Info().Str("username", user.Username).Str("authority", user.Authority).Msg("New user registered")
	return nil
}

// Authenticate verifies a username/password pair against the stored hash
func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns all registered users
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
