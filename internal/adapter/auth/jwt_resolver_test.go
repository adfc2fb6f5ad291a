package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) Claims {
	return Claims{
		Email: "reader@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTResolver_Resolve(t *testing.T) {
	resolver := NewJWTResolver(testSecret)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("8f14e45f-ea5e-4a4b-9c1d-000000000001"))

		identity, err := resolver.Resolve(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, "8f14e45f-ea5e-4a4b-9c1d-000000000001", identity.UserID)
		assert.Equal(t, "reader@example.com", identity.Email)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims("user-1")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

		_, err := resolver.Resolve(context.Background(), token)

		assert.True(t, errors.Is(err, service.ErrAuthentication))
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, "another-secret", validClaims("user-1"))

		_, err := resolver.Resolve(context.Background(), token)

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, testSecret, validClaims("user-1"))

		_, err := resolver.Resolve(context.Background(), token)

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims("user-1")
		claims.ExpiresAt = nil
		token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

		_, err := resolver.Resolve(context.Background(), token)

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(""))

		_, err := resolver.Resolve(context.Background(), token)

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "not-a-jwt")

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "")

		assert.True(t, errors.Is(err, service.ErrAuthentication))
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewJWTResolver("").Resolve(context.Background(), "anything")

		assert.True(t, errors.Is(err, service.ErrConfiguration))
	})
}
