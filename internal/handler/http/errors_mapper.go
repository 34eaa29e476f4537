// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"errors"
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/store"
)

var errorStatusMap = map[error]int{
	ErrRateLimiterUnavailable: http.StatusServiceUnavailable,
	ErrRequestTooLarge:        http.StatusRequestEntityTooLarge,
	store.ErrStoreUnavailable: http.StatusServiceUnavailable,
	store.ErrNotConnected:     http.StatusServiceUnavailable,
}

func statusFromError(err error) (int, bool) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, true
		}
	}
	return http.StatusInternalServerError, false
}

// asFault classifies any error reaching the funnel. Faults pass through,
// mapped sentinels become operational faults with the status text as
// message, everything else is a non-operational 500.
func asFault(err error) *fault.Fault {
	if f, ok := fault.As(err); ok {
		return f
	}
	if status, ok := statusFromError(err); ok {
		return fault.Wrap(err, http.StatusText(status), status)
	}
	return fault.Internal(err)
}
