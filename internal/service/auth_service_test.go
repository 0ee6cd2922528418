package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/prepstack/prepstack-backend/internal/config"
)

func newTestAuthService(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
	return NewAuthService(cfg, rdb), mr
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	hash, err := svc.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash equals plaintext")
	}

	if err := svc.CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong-password"); err == nil {
		t.Error("CheckPassword accepted wrong password")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("claims have no JTI")
	}

	if err := svc.ValidateSession(ctx, 42, claims.ID); err != nil {
		t.Errorf("ValidateSession for fresh login: %v", err)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newTestAuthService(t)

	token, err := svc.GenerateToken(context.Background(), 1, "a@b.c")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Error("ValidateToken accepted tampered token")
	}
}

func TestNewLoginDisplacesOldSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.GenerateToken(ctx, 7, "user@example.com")
	if err != nil {
		t.Fatalf("first GenerateToken: %v", err)
	}
	firstClaims, _ := svc.ValidateToken(first)

	second, err := svc.GenerateToken(ctx, 7, "user@example.com")
	if err != nil {
		t.Fatalf("second GenerateToken: %v", err)
	}
	secondClaims, _ := svc.ValidateToken(second)

	if err := svc.ValidateSession(ctx, 7, firstClaims.ID); err == nil {
		t.Error("old device session still valid after new login")
	}
	if err := svc.ValidateSession(ctx, 7, secondClaims.ID); err != nil {
		t.Errorf("new device session rejected: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 9, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, _ := svc.ValidateToken(token)

	if err := svc.Logout(ctx, 9); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if err := svc.ValidateSession(ctx, 9, claims.ID); err == nil {
		t.Error("session still valid after logout")
	}
}
