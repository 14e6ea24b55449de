package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Login throttling. A nil redis client disables throttling entirely so the
// service still runs on installs without redis.

func loginAttemptKey(identifier string) string {
	return fmt.Sprintf("login_attempts:%s", identifier)
}

// RecordFailedLogin bumps the failure counter for an account and returns the
// new count. The window starts at the first failure.
func RecordFailedLogin(ctx context.Context, rdb *redis.Client, identifier string, window time.Duration) (int64, error) {
	if rdb == nil {
		return 0, nil
	}

	key := loginAttemptKey(identifier)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record login attempt in redis: %w", err)
	}

	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("failed to set login attempt expiry: %w", err)
		}
	}

	return count, nil
}

func FailedLoginCount(ctx context.Context, rdb *redis.Client, identifier string) (int64, error) {
	if rdb == nil {
		return 0, nil
	}

	count, err := rdb.Get(ctx, loginAttemptKey(identifier)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read login attempts from redis: %w", err)
	}

	return count, nil
}

func ClearFailedLogins(ctx context.Context, rdb *redis.Client, identifier string) error {
	if rdb == nil {
		return nil
	}

	_, err := rdb.Del(ctx, loginAttemptKey(identifier)).Result()
	return err
}
