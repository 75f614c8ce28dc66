package redis

import (
	"context"
	"time"

	redisclient "github.com/souqhub/marketplace/cmd/redis"
)

// Repository defines the Redis-backed concerns: auth sessions keyed by JWT
// jti and the OTP resend throttle keyed by phone.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SetOTPThrottle(ctx context.Context, phone string, ttl time.Duration) error
	OTPThrottled(ctx context.Context, phone string) (bool, error)
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Set(ctx, key, userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, nil
	}
	key := "session:" + sessionID
	val, err := client.Get(ctx, key).Uint64()
	if err != nil {
		return 0, err
	}
	return val, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Del(ctx, key).Err()
}

// SetOTPThrottle marks a phone as recently served a code
func (r *redis) SetOTPThrottle(ctx context.Context, phone string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "otp_throttle:" + phone
	return client.Set(ctx, key, 1, ttl).Err()
}

// OTPThrottled reports whether a phone asked for a code too recently
func (r *redis) OTPThrottled(ctx context.Context, phone string) (bool, error) {
	client := redisclient.Get()
	if client == nil {
		return false, nil
	}
	key := "otp_throttle:" + phone
	n, err := client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
