// Package service implements the single-admin authentication flow. The
// dashboard has no user accounts; one admin password unlocks mutations.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"leadboard_backend/internal/auth/transport"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/httpkit"
	"leadboard_backend/platform/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("admin access is not configured")
)

type Service struct {
	cfg config.AuthServiceConfig
	log *logger.Logger
}

func New(cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Login verifies the admin password against the configured bcrypt hash and
// issues a signed access token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	hash := s.cfg.GetAdminPasswordHash()
	if hash == "" {
		s.log.AuthEvent("login", false, "admin password hash not configured")
		return transport.AuthResponse{}, ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", false, "password mismatch")
		return transport.AuthResponse{}, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())

	claims := jwt.MapClaims{
		"sub": httpkit.AdminSubject,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("login", true, "")
	return transport.AuthResponse{AccessToken: signed, ExpiresAt: expiresAt.Unix()}, nil
}
