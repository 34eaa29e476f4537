// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package ratelimit

import (
	"fmt"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// New builds the limiter selected by cfg.Backend. client is only consulted
// for the redis backend and may be nil otherwise.
func New(cfg config.RateLimit, client redis.UniversalClient) (Limiter, error) {
	switch cfg.Backend {
	case config.RateLimitBackendMemory, "":
		return NewMemoryLimiter(MemoryConfig{Requests: cfg.Requests, Window: cfg.Window}), nil
	case config.RateLimitBackendRedis:
		if client == nil {
			return nil, ErrRedisClientMissing
		}
		return NewRedisLimiter(client, RedisConfig{Requests: cfg.Requests, Window: cfg.Window})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
