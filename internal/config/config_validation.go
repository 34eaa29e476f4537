// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidServerConfigs, cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout <= 0 || cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: shutdown timeout and body limit must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Watchdog.Interval <= 0 || cfg.Storage.Watchdog.Failures < 1 {
		return fmt.Errorf("%w: watchdog interval and failures must be positive", ErrInvalidStorageConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	switch cfg.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if cfg.Storage.Redis.URL == "" {
			return fmt.Errorf("%w: redis backend requires STORAGE_REDIS_URL", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Backend)
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: requests and window must be positive", ErrInvalidRateLimitConfigs)
	}

	return nil
}
