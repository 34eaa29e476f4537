// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
)

const tooManyRequestsMessage = "Too many requests, please try again later."

// withRateLimit consults the limiter with the client IP as key. Denied
// requests get a 429 fault; limiter failures let the request through unless
// the limiter is configured to fail closed.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		decision, err := h.deps.Limiter.Allow(r.Context(), key)
		if err != nil {
			logger.FromRequest(r).Warn().
				Err(err).
				Bool("fail_closed", h.settings.RateLimit.FailClosed).
				Msg("rate limiter failed")
			if h.settings.RateLimit.FailClosed {
				fault.Forward(w, r, fmt.Errorf("%w: %w", ErrRateLimiterUnavailable, err))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		resetSeconds := int(math.Ceil(time.Until(decision.ResetAt).Seconds()))
		if resetSeconds < 0 {
			resetSeconds = 0
		}
		w.Header().Set("RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		w.Header().Set("RateLimit-Reset", strconv.Itoa(resetSeconds))

		if !decision.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(resetSeconds))
			logger.FromRequest(r).Warn().
				Str("client_ip", key).
				Str("uri", r.URL.Path).
				Msg("rate limit exceeded")
			fault.Forward(w, r, fault.New(tooManyRequestsMessage, http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP is the address left by the real-ip stage, without a port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
