package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// gotrueUser is the subset of the /auth/v1/user response we read
type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GoTrueResolver resolves tokens remotely through the Supabase auth API
type GoTrueResolver struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewGoTrueResolver creates a new GoTrueResolver
func NewGoTrueResolver(supabaseURL, anonKey string, timeout time.Duration) *GoTrueResolver {
	return &GoTrueResolver{
		baseURL: strings.TrimRight(supabaseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve asks the auth server which user the token belongs to
func (r *GoTrueResolver) Resolve(ctx context.Context, token string) (*service.Identity, error) {
	if r.baseURL == "" || r.anonKey == "" {
		return nil, fmt.Errorf("%w: SUPABASE_URL and SUPABASE_ANON_KEY must be configured", service.ErrConfiguration)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", service.ErrAuthentication)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/auth/v1/user", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", r.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reach auth server: %w", service.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: auth server returned status %d: %s",
			service.ErrAuthentication, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode user: %w", service.ErrAuthentication, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: user not authenticated", service.ErrAuthentication)
	}

	return &service.Identity{UserID: user.ID, Email: user.Email}, nil
}
