// Package ratelimit caps OTP requests per mobile number.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpCounterPrefix = "otp_requests:"

// RedisLimiter counts OTP requests per mobile in a rolling window.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter builds a limiter allowing limit requests per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

// Allow records one request for the mobile number and reports whether it is
// within the cap. The window starts at the first request.
func (l *RedisLimiter) Allow(ctx context.Context, mobile string) (bool, error) {
	key := otpCounterPrefix + mobile

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.limit), nil
}
