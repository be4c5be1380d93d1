package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// UserService manages the placeholder user model. No credentials are
// checked anywhere.
type UserService struct {
	store repository.Store
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store) *UserService {
	return &UserService{
		store: store,
	}
}

// RegisterInput holds the data required to register a user.
type RegisterInput struct {
	Username string
	Password string
}

// Register stores a new user with the password as given.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	user, err := s.store.CreateUser(ctx, models.User{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
