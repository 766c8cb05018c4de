package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

type UserService interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserListResponse, error)
	UpdateUser(ctx context.Context, id int, input UserUpdateInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserUpdateInput struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	return &models.UserListResponse{
		Users:      users,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int, input UserUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	if input.Role != nil {
		role := models.UserRole(*input.Role)
		if role != models.RoleUser && role != models.RoleAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) error {
	err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
