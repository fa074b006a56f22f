package service

import (
	"context"
	"errors"
	"fmt"

	"book_manager/internal/model"
	"book_manager/internal/pagination"
	"book_manager/internal/repository"
	"book_manager/internal/utils"
)

var ErrUserNotFound = errors.New("no user with that ID was found")

// UserService provides user management operations
type UserService interface {
	ListUsers(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.User], error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.User], error) {
	users, err := s.userRepo.FindAll(ctx, page, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser applies a partial update. A supplied password is re-hashed
// before it reaches the repository.
func (s *userService) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) error {
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		req.Password = hashed
	}

	affected, err := s.userRepo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNoUpdateFields) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) error {
	affected, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
