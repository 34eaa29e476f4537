// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"fmt"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client for cfg.URL, or nil when Redis is not
// configured. No connection is made until the first command.
func NewRedisClient(cfg config.Redis) (redis.UniversalClient, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRedisURL, err)
	}

	return redis.NewClient(opts), nil
}
