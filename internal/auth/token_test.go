package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/civic-report-service/internal/domain"
)

func TestTokenManager_GenerateToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	tokenString, expiresAt, err := tm.GenerateToken("user-1", domain.RoleCitizen)

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	_, expiresAt, err := tm.GenerateToken("user-1", domain.RoleCitizen)

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiresAt, 5*time.Second)
}

func TestTokenManager_ParseToken_Invalid(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	_, err := tm.ParseToken("invalid.token.string")
	assert.Error(t, err)
}

func TestTokenManager_ParseToken_Expired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	claims := &Claims{
		UserID: "user-1",
		Role:   domain.RoleCitizen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = tm.ParseToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_ParseToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret1", time.Hour)
	verifier := NewTokenManager("secret2", time.Hour)

	tokenString, _, err := issuer.GenerateToken("user-1", domain.RoleAdmin)
	assert.NoError(t, err)

	_, err = verifier.ParseToken(tokenString)
	assert.Error(t, err)
}

func TestTokenManager_ParseToken_WrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	claims := &Claims{
		UserID: "user-1",
		Role:   domain.RoleCitizen,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, err := token.SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = tm.ParseToken(tokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}
