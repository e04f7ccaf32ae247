package session

import (
	"context"
	"errors"
	"time"

	"tasktracker/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// Revoker remembers session ids that were cleared before they expired.
type Revoker interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

const revokedKeyPrefix = "session:revoked:"

// RedisRevoker keeps revoked ids as Redis keys that expire with the session.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker connects to Redis. It returns nil when addr is empty or the
// server does not answer, in which case sessions are not revocable.
func NewRedisRevoker(addr, password string, db int) *RedisRevoker {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, session revocation disabled", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("redis connected", "addr", addr)
	return &RedisRevoker{client: client}
}

func NewRedisRevokerFromClient(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+id, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, id string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+id).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping is used by the readiness probe.
func (r *RedisRevoker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRevoker) Close() error {
	return r.client.Close()
}
