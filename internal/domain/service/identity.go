package service

import "context"

// Identity is the authenticated owner of a request
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// IdentityResolver resolves a bearer token to the caller's identity
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
