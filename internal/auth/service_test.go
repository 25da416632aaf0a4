package auth

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	pkgauth "github.com/nourzaidi/nourfashion-backend/pkg/auth"
	"github.com/nourzaidi/nourfashion-backend/pkg/config"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
	"github.com/nourzaidi/nourfashion-backend/pkg/security"
)

type stubSessions struct {
	created map[string]string
	revoked []string

	createErr error
}

func newStubSessions() *stubSessions {
	return &stubSessions{created: map[string]string{}}
}

func (s *stubSessions) Create(_ context.Context, accessID, email string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created[accessID] = email
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "nourfashion-test",
		ExpirationMinutes: 15,
	}
}

func testAdminConfig(t *testing.T, password string) config.AdminConfig {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return config.AdminConfig{
		Email:        "admin@nourfashion.tn",
		PasswordHash: hash,
	}
}

func testAuthLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "auth-test",
		Level:       zerolog.ErrorLevel,
		Output:      &bytes.Buffer{},
	})
}

func TestLoginMintsParsableTokenAndCreatesSession(t *testing.T) {
	sessions := newStubSessions()
	jwtCfg := testJWTConfig()
	svc, err := newService(testAdminConfig(t, "s3cret-pass"), jwtCfg, sessions, testAuthLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Admin@NourFashion.tn",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "admin@nourfashion.tn" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.Role != pkgauth.RoleAdmin {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}
	if _, ok := sessions.created[claims.ID]; !ok {
		t.Fatalf("expected session created for jti %q, got %v", claims.ID, sessions.created)
	}
}

func TestLoginRejectsWrongCredentialsUniformly(t *testing.T) {
	sessions := newStubSessions()
	svc, _ := newService(testAdminConfig(t, "s3cret-pass"), testJWTConfig(), sessions, testAuthLogger())
	ctx := context.Background()

	wrongEmail, err1 := svc.Login(ctx, LoginInput{Email: "other@example.com", Password: "s3cret-pass"})
	wrongPassword, err2 := svc.Login(ctx, LoginInput{Email: "admin@nourfashion.tn", Password: "nope"})

	if wrongEmail != nil || wrongPassword != nil {
		t.Fatalf("expected no result for bad credentials")
	}
	for _, err := range []error{err1, err2} {
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if appErr.Message() != "invalid credentials" {
			t.Fatalf("expected uniform message, got %q", appErr.Message())
		}
	}
	if len(sessions.created) != 0 {
		t.Fatalf("expected no sessions created, got %v", sessions.created)
	}
}

func TestLoginSessionFailureSurfacesDependencyError(t *testing.T) {
	sessions := newStubSessions()
	sessions.createErr = fmt.Errorf("redis down")
	svc, _ := newService(testAdminConfig(t, "s3cret-pass"), testJWTConfig(), sessions, testAuthLogger())

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@nourfashion.tn",
		Password: "s3cret-pass",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newStubSessions()
	svc, _ := newService(testAdminConfig(t, "s3cret-pass"), testJWTConfig(), sessions, testAuthLogger())

	if err := svc.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-1" {
		t.Fatalf("expected jti-1 revoked, got %v", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), " "); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for blank access id")
	}
}
