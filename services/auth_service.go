package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var phonePattern = regexp.MustCompile(`^0\d{9,10}$`)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type RegisterInput struct {
	MSV      string `json:"msv"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginInput struct {
	MSV      string `json:"msv"`
	Password string `json:"password"`
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	// Student ids are stored uppercase so logins are case-insensitive.
	msv := strings.ToUpper(strings.TrimSpace(input.MSV))
	if msv == "" {
		return nil, ErrMSVRequired
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	phone := strings.TrimSpace(input.Phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		MSV:          msv,
		FullName:     fullName,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserMSVConflict) {
			return nil, ErrUserMSVConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	msv := strings.ToUpper(strings.TrimSpace(input.MSV))
	user, err := s.userRepo.GetByMSV(ctx, msv)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by msv: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	user.PasswordHash = ""
	return user, nil
}
