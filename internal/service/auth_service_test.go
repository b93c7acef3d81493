package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-report-service/internal/config"
	"github.com/spec-kit/civic-report-service/internal/domain"
	apperrors "github.com/spec-kit/civic-report-service/pkg/util"
)

func newTestAuthService(users *fakeUserRepository) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    4,
	}, users)
}

func assertDomainError(t *testing.T, err error, code string, status int) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	assert.Equal(t, code, domainErr.Code)
	assert.Equal(t, status, domainErr.HTTPStatus)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "a@x.com", "123", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, domain.RoleCitizen, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)

	loggedIn, loginToken, _, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
	assert.NotEmpty(t, loginToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "a@x.com", "123", "secret1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "a@x.com", "456", "secret2")
	assertDomainError(t, err, "DUPLICATE_KEY", 400)
	assert.Len(t, users.users, 1)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())
	ctx := context.Background()

	cases := []struct {
		name                   string
		email, phone, password string
	}{
		{"missing email", "", "123", "secret1"},
		{"missing phone", "a@x.com", "", "secret1"},
		{"missing password", "a@x.com", "123", ""},
		{"bad email format", "not-an-email", "123", "secret1"},
		{"short password", "a@x.com", "123", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Register(ctx, tc.email, tc.phone, tc.password)
			assertDomainError(t, err, "VALIDATION_FAILED", 400)
		})
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "a@x.com", "123", "secret1")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "a@x.com", "wrongpassword")
	assertDomainError(t, err, "UNAUTHORIZED", 401)
	assert.Equal(t, "Invalid credentials", err.Error())

	// Unknown email is indistinguishable from a wrong password.
	_, _, _, err = svc.Login(ctx, "nobody@x.com", "secret1")
	assertDomainError(t, err, "UNAUTHORIZED", 401)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestAuthService_CurrentUser_DeletedAfterIssuance(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "a@x.com", "123", "secret1")
	require.NoError(t, err)

	found, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	users.delete(user.ID)
	_, err = svc.CurrentUser(ctx, user.ID)
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestAuthService_SeedAdmin_Idempotent(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)
	ctx := context.Background()

	seed := config.AdminSeedConfig{Email: "admin@x.com", Phone: "999", Password: "adminpass"}

	created, err := svc.SeedAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, users.users, 1)

	admin, _, _, err := svc.Login(ctx, "admin@x.com", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestAuthService_SeedAdmin_Skipped(t *testing.T) {
	users := newFakeUserRepository()
	svc := newTestAuthService(users)

	created, err := svc.SeedAdmin(context.Background(), config.AdminSeedConfig{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, users.users)
}

func TestAuthService_CurrentUser_Unknown(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())

	_, err := svc.CurrentUser(context.Background(), uuid.NewString())
	assertDomainError(t, err, "NOT_FOUND", 404)
}
