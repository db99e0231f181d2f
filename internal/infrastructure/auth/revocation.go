package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker invalidates JWT tokens before their natural expiry,
// for logout and forced session termination.
type TokenRevoker interface {
	// RevokeToken marks a token's JTI as revoked. ttl should be the
	// remaining lifetime of the token.
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error

	// IsTokenRevoked reports whether a token's JTI has been revoked.
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUserTokens invalidates every token issued to a user before now.
	RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked reports whether tokens issued to the user at the given
	// time should be rejected.
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenRevoker implements TokenRevoker on Redis
type RedisTokenRevoker struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenRevoker creates a token revoker backed by an existing Redis client
func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{
		client:    client,
		keyPrefix: "token:revoked:",
	}
}

func (r *RedisTokenRevoker) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisTokenRevoker) userKey(userID string) string {
	return r.keyPrefix + "user:" + userID
}

func (r *RedisTokenRevoker) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.jtiKey(jti), "1", ttl).Err()
}

func (r *RedisTokenRevoker) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisTokenRevoker) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return r.client.Set(ctx, r.userKey(userID), now, ttl).Err()
}

func (r *RedisTokenRevoker) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, nil
	}
	return issuedAt.Unix() <= revokedAt, nil
}

// InMemoryTokenRevoker implements TokenRevoker for tests and single-node
// deployments without Redis.
type InMemoryTokenRevoker struct {
	mu     sync.RWMutex
	tokens map[string]time.Time // jti -> expiry of the revocation entry
	users  map[string]time.Time // userID -> revocation timestamp
}

// NewInMemoryTokenRevoker creates an in-process token revoker
func NewInMemoryTokenRevoker() *InMemoryTokenRevoker {
	return &InMemoryTokenRevoker{
		tokens: make(map[string]time.Time),
		users:  make(map[string]time.Time),
	}
}

func (r *InMemoryTokenRevoker) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[jti] = time.Now().Add(ttl)
	return nil
}

func (r *InMemoryTokenRevoker) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	expiry, ok := r.tokens[jti]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		r.mu.Lock()
		delete(r.tokens, jti)
		r.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (r *InMemoryTokenRevoker) RevokeUserTokens(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = time.Now()
	return nil
}

func (r *InMemoryTokenRevoker) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	r.mu.RLock()
	revokedAt, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return !issuedAt.After(revokedAt), nil
}
