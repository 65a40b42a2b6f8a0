package service

import (
	"errors"
	"testing"
	"time"

	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegister(t *testing.T) {
	svc, cfg := newAuthFixture(t)

	user := &model.User{
		Email:     "new@example.com",
		Password:  "secret123",
		FirstName: "New",
		LastName:  "User",
		Role:      model.Student,
	}
	token, err := svc.Register(user)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if token == "" {
		t.Fatal("Register() returned an empty token")
	}
	if user.Password == "secret123" {
		t.Error("Register() stored the password in plain text")
	}

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student || claims.Email != user.Email {
		t.Errorf("claims = %+v, want user %d with role %s", claims, user.ID, model.Student)
	}

	t.Run("duplicate email", func(t *testing.T) {
		dup := &model.User{Email: "new@example.com", Password: "other", Role: model.Student}
		if _, err := svc.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
			t.Errorf("Register() error = %v, want ErrEmailRegistered", err)
		}
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	registered := &model.User{
		Email:    "login@example.com",
		Password: "secret123",
		Role:     model.Instructor,
	}
	if _, err := svc.Register(registered); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login("login@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Error("Login() returned an empty token")
		}
		if user.Email != "login@example.com" {
			t.Errorf("user email = %q, want %q", user.Email, "login@example.com")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login("login@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := svc.Login("ghost@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
