package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// Claims are the access token claims issued by Supabase auth
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256 access tokens locally with the project's JWT secret
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a new JWTResolver
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve validates the token signature and expiry and returns its subject
func (r *JWTResolver) Resolve(_ context.Context, token string) (*service.Identity, error) {
	if len(r.secret) == 0 {
		return nil, fmt.Errorf("%w: SUPABASE_JWT_SECRET not configured", service.ErrConfiguration)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", service.ErrAuthentication)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %w", service.ErrAuthentication, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", service.ErrAuthentication)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", service.ErrAuthentication)
	}

	return &service.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
