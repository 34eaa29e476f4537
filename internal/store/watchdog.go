// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
)

// Watch returns a task that checks [Storages.Ready] every cfg.Interval and
// fails once cfg.Failures checks in a row did not pass. Checks issued before
// Connect succeeded are skipped. The task ends with ctx.Err() when ctx is
// cancelled.
func (s *Storages) Watch(cfg config.Watchdog) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}

			err := s.check(ctx, cfg.Interval)
			if ctx.Err() != nil {
				return ctx.Err()
			}

			switch {
			case err == nil:
				if failures > 0 {
					s.logger.Info().Str("func", "Storages.Watch").Int("failures", failures).Msg("storage recovered")
				}
				failures = 0
			case errors.Is(err, ErrNotConnected):
				continue
			default:
				failures++
				s.logger.Warn().
					Err(err).
					Str("func", "Storages.Watch").
					Int("failures", failures).
					Int("max_failures", cfg.Failures).
					Msg("storage check failed")

				if failures >= cfg.Failures {
					return fmt.Errorf("storage failed %d consecutive checks: %w", failures, err)
				}
			}
		}
	}
}

func (s *Storages) check(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ready(ctx)
}
