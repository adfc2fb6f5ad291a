package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

const identityKeyPrefix = "fakenews:identity:"

// CachedResolver memoizes successful resolutions in Redis for a short TTL so
// remote token lookups are not repeated for every request of a session.
// Redis failures fall back to the wrapped resolver.
type CachedResolver struct {
	next   service.IdentityResolver
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedResolver wraps next. A nil client or non-positive ttl disables caching.
func NewCachedResolver(next service.IdentityResolver, client *redis.Client, ttl time.Duration, logger *zap.Logger) service.IdentityResolver {
	if client == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResolver{next: next, redis: client, ttl: ttl, logger: logger}
}

// Resolve returns a cached identity or delegates and caches the result
func (r *CachedResolver) Resolve(ctx context.Context, token string) (*service.Identity, error) {
	if token == "" {
		return r.next.Resolve(ctx, token)
	}

	key := identityKey(token)
	if cached, err := r.redis.Get(ctx, key).Bytes(); err == nil {
		var identity service.Identity
		if err := json.Unmarshal(cached, &identity); err == nil && identity.UserID != "" {
			return &identity, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("Identity cache read failed", zap.Error(err))
	}

	identity, err := r.next.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(identity); err == nil {
		if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("Identity cache write failed", zap.Error(err))
		}
	}

	return identity, nil
}

// identityKey never stores the raw token
func identityKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return identityKeyPrefix + hex.EncodeToString(sum[:])
}
