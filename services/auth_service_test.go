package services

import (
	"context"
	"errors"
	"testing"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterNormalizesMSV(t *testing.T) {
	var created *models.User
	svc := NewAuthService(&stubUserRepo{
		create: func(user *models.User) error {
			created = user
			return nil
		},
	})

	user, err := svc.Register(context.Background(), RegisterInput{
		MSV:      "  bh00123  ",
		FullName: "Nguyen Van A",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.MSV != "BH00123" {
		t.Fatalf("MSV = %q, want uppercase BH00123", user.MSV)
	}
	if user.Role != models.RoleUser || !user.IsActive {
		t.Fatalf("defaults = role %q, active %v", user.Role, user.IsActive)
	}
	if created == nil || created.PasswordHash == "" || created.PasswordHash == "secret123" {
		t.Fatal("password was not hashed before storage")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{})

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing msv", RegisterInput{FullName: "A", Password: "secret123"}, ErrMSVRequired},
		{"missing name", RegisterInput{MSV: "BH001", Password: "secret123"}, ErrFullNameRequired},
		{"short password", RegisterInput{MSV: "BH001", FullName: "A", Password: "abc"}, ErrPasswordTooShort},
		{"bad phone", RegisterInput{MSV: "BH001", FullName: "A", Password: "secret123", Phone: "12345"}, ErrInvalidPhone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterMapsConflict(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{
		create: func(user *models.User) error {
			return repositories.ErrUserMSVConflict
		},
	})

	_, err := svc.Register(context.Background(), RegisterInput{
		MSV:      "BH001",
		FullName: "Nguyen Van A",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUserMSVConflict) {
		t.Fatalf("Register() error = %v, want ErrUserMSVConflict", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &models.User{
		ID:           1,
		MSV:          "BH001",
		FullName:     "Nguyen Van A",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	repo := &stubUserRepo{
		getByMSV: func(msv string) (*models.User, error) {
			if msv != "BH001" {
				return nil, repositories.ErrUserNotFound
			}
			u := *stored
			return &u, nil
		},
	}
	svc := NewAuthService(repo)

	t.Run("lowercase msv matches", func(t *testing.T) {
		user, err := svc.Login(context.Background(), LoginInput{MSV: "bh001", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login() unexpected error: %v", err)
		}
		if user.PasswordHash != "" {
			t.Fatal("password hash leaked from Login()")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{MSV: "BH001", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown msv", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{MSV: "BH999", Password: "secret123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		stored.IsActive = false
		defer func() { stored.IsActive = true }()
		_, err := svc.Login(context.Background(), LoginInput{MSV: "BH001", Password: "secret123"})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Fatalf("Login() error = %v, want ErrAccountDisabled", err)
		}
	})
}
