package service

import (
	"context"
	"testing"

	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 8
	cfg.Security.PasswordPolicy.RequireLower = true
	cfg.Security.PasswordPolicy.RequireNumber = true
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestSignupThenLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	ctx := context.Background()

	user, token, _, err := svc.Signup(ctx, "nour", "nour@example.com", "password123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token on signup")
	}
	if user.IsSuperuser {
		t.Fatalf("new user should not be superuser")
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.PasswordHash == "password123" {
		t.Fatalf("password must be hashed")
	}

	loggedIn, token, _, err := svc.Login(ctx, "nour", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login user mismatch")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "nour" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login(ctx, "nour", "wrong-pass-1"); err != ErrInvalidCredentials {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ghost", "password123"); err != ErrInvalidCredentials {
		t.Fatalf("want ErrInvalidCredentials for unknown user got %v", err)
	}
}

func TestSignupRejectsDuplicateUsernameAndWeakPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	if _, _, _, err := svc.Signup(ctx, "nour", "", "password123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, _, err := svc.Signup(ctx, "nour", "", "password456"); err != ErrUsernameExists {
		t.Fatalf("want ErrUsernameExists got %v", err)
	}
	if _, _, _, err := svc.Signup(ctx, "other", "", "short1"); err != ErrWeakPassword {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	if _, _, _, err := svc.Signup(ctx, "other", "", "PASSWORD123"); err != ErrWeakPassword {
		t.Fatalf("want ErrWeakPassword for missing lowercase got %v", err)
	}
}
