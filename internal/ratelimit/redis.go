// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// fixedWindowScript increments the window counter and starts its expiry on
// the first hit. It returns the counter and the remaining TTL in ms.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

type redisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
	now    func() time.Time
}

// RedisConfig configures [NewRedisLimiter].
type RedisConfig struct {
	Requests int
	Window   time.Duration
	Now      func() time.Time
}

// NewRedisLimiter returns a fixed window limiter whose counters live in
// Redis, so every replica shares the same budget per key.
func NewRedisLimiter(client redis.Scripter, cfg RedisConfig) (Limiter, error) {
	if client == nil {
		return nil, ErrRedisClientMissing
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &redisLimiter{
		client: client,
		limit:  cfg.Requests,
		window: cfg.Window,
		now:    cfg.Now,
	}, nil
}

func (r *redisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if r.limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	windowMillis := r.window.Milliseconds()
	if windowMillis <= 0 {
		windowMillis = 1000
	}

	reply, err := fixedWindowScript.Run(ctx, r.client, []string{redisKeyPrefix + key}, windowMillis).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("error running rate limit script: %w", err)
	}

	return decisionFromReply(reply, r.limit, r.now())
}

// decisionFromReply converts the {counter, ttl} script reply to a Decision.
func decisionFromReply(reply any, limit int, now time.Time) (Decision, error) {
	values, ok := reply.([]any)
	if !ok || len(values) < 2 {
		return Decision{}, ErrUnexpectedReply
	}
	current, ok := values[0].(int64)
	if !ok {
		return Decision{}, ErrUnexpectedReply
	}
	ttlMillis, _ := values[1].(int64)

	resetAt := now
	if ttlMillis > 0 {
		resetAt = now.Add(time.Duration(ttlMillis) * time.Millisecond)
	}
	remaining := limit - int(current)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   current <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
