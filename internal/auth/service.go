// Package auth authenticates the storefront administrator.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nourzaidi/nourfashion-backend/pkg/auth"
	"github.com/nourzaidi/nourfashion-backend/pkg/auth/session"
	"github.com/nourzaidi/nourfashion-backend/pkg/config"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
	"github.com/nourzaidi/nourfashion-backend/pkg/security"
)

type sessionManager interface {
	Create(ctx context.Context, accessID, email string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes admin login and logout.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

// LoginInput is the credential pair presented by the admin client.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the minted access token.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Email       string    `json:"email"`
}

type service struct {
	adminCfg config.AdminConfig
	jwtCfg   config.JWTConfig
	sessions sessionManager
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the admin auth service. The storefront has a
// single administrator whose credentials come from configuration.
func NewService(adminCfg config.AdminConfig, jwtCfg config.JWTConfig, sessions *session.Manager, logg *logger.Logger) (Service, error) {
	return newService(adminCfg, jwtCfg, sessions, logg)
}

func newService(adminCfg config.AdminConfig, jwtCfg config.JWTConfig, sessions sessionManager, logg *logger.Logger) (Service, error) {
	if adminCfg.Email == "" || adminCfg.PasswordHash == "" {
		return nil, fmt.Errorf("admin credentials required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		adminCfg: adminCfg,
		jwtCfg:   jwtCfg,
		sessions: sessions,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login checks the credentials against the configured admin and mints
// a revocable access token. Wrong email and wrong password produce the
// same response.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if !strings.EqualFold(email, s.adminCfg.Email) {
		return nil, invalidCredentials()
	}

	ok, err := security.VerifyPassword(input.Password, s.adminCfg.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	accessID := session.NewAccessID()
	now := s.now().UTC()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		Email: s.adminCfg.Email,
		Role:  auth.RoleAdmin,
		JTI:   accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Create(ctx, accessID, s.adminCfg.Email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create access session")
	}

	ctx = s.logg.WithAdmin(ctx, s.adminCfg.Email)
	s.logg.Info(ctx, "admin logged in")

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.AccessTokenTTL()),
		Email:       s.adminCfg.Email,
	}, nil
}

// Logout revokes the access session behind the token. Revoking an
// already revoked session succeeds.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke access session")
	}
	s.logg.Info(ctx, "admin logged out")
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}
