package service

import (
	"context"
	"fmt"

	"github.com/lpz8/Backend-splitwise-back/internal/entities"
	"github.com/lpz8/Backend-splitwise-back/internal/models"
	"github.com/lpz8/Backend-splitwise-back/internal/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser persists a new user
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	user, err := s.userRepo.Create(ctx, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user sorted by name
func (s *userService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.userRepo.FindAll(ctx)
}
