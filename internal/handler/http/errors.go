// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import "errors"

// Startup errors returned by [Handler.Init].
var (
	// ErrInvalidPipeline is returned when the declared global stage list
	// breaks an ordering or cardinality rule.
	ErrInvalidPipeline = errors.New("invalid middleware pipeline")

	// ErrDuplicateGroup is returned when two route groups share a name.
	ErrDuplicateGroup = errors.New("route group mounted twice")

	// ErrInvalidGroup is returned for a group without a name or handler.
	ErrInvalidGroup = errors.New("invalid route group")
)

// Request errors forwarded to the error funnel.
var (
	// ErrRateLimiterUnavailable is forwarded when the limiter fails and the
	// limiter is configured to fail closed.
	ErrRateLimiterUnavailable = errors.New("rate limiter unavailable")

	// ErrRequestTooLarge is forwarded when a body exceeds the size limit.
	ErrRequestTooLarge = errors.New("request entity too large")
)
