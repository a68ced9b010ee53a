package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepo keeps revoked token JTIs until their natural expiry; the
// auth gate treats a present key as a revoked token.
type RedisTokenRepo struct {
	client *redis.Client
}

func NewRedisTokenRepo(client *redis.Client) *RedisTokenRepo {
	return &RedisTokenRepo{
		client: client,
	}
}

func (r *RedisTokenRepo) Revoke(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "revoked:"+jti, 1, safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, "revoked:"+jti).Result()
	if err != nil {
		// fail closed: treat as revoked and surface the error
		return true, err
	}
	return n > 0, nil
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// minimal TTL so the key still disappears eventually
		return time.Hour
	}
	return ttl
}
