// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package ratelimit

//go:generate mockgen -source=interfaces.go -destination=../mock/limiter_mock.go -package=mock

import (
	"context"
	"time"
)

// Limiter decides whether one more request identified by key may proceed.
// Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Decision is the outcome of a single [Limiter.Allow] call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}
