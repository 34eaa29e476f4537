// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package ratelimit

import "errors"

var (
	ErrUnexpectedReply    = errors.New("unexpected redis rate limit reply")
	ErrRedisClientMissing = errors.New("redis backend requires a redis client")
	ErrUnknownBackend     = errors.New("unknown rate limiter backend")
)
