package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"leadboard_backend/internal/auth/transport"
	"leadboard_backend/platform/logger"
)

type testConfig struct {
	secret string
	hash   string
	ttl    time.Duration
}

func (c testConfig) GetJWTAccessSecret() string       { return c.secret }
func (c testConfig) GetAdminPasswordHash() string     { return c.hash }
func (c testConfig) GetAccessTokenTTL() time.Duration { return c.ttl }

func newTestService(t *testing.T, password string) (*Service, testConfig) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cfg := testConfig{secret: "test-secret", hash: string(hash), ttl: time.Hour}
	return New(cfg, logger.New("test")), cfg
}

func TestLogin(t *testing.T) {
	svc, cfg := newTestService(t, "correct horse")

	resp, err := svc.Login(context.Background(), transport.LoginRequest{Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject != "admin" {
		t.Errorf("subject = %q, %v", subject, err)
	}

	expiry, err := token.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("expiration: %v", err)
	}
	if expiry.Unix() != resp.ExpiresAt {
		t.Errorf("expiresAt mismatch: claim %d, response %d", expiry.Unix(), resp.ExpiresAt)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, "correct horse")

	_, err := svc.Login(context.Background(), transport.LoginRequest{Password: "battery staple"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnconfigured(t *testing.T) {
	svc := New(testConfig{secret: "s", ttl: time.Hour}, logger.New("test"))

	_, err := svc.Login(context.Background(), transport.LoginRequest{Password: "anything"})
	if !errors.Is(err, ErrAuthDisabled) {
		t.Fatalf("err = %v, want ErrAuthDisabled", err)
	}
}
