// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxKeys = 10000

type memoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	limit   int
	every   rate.Limit
	window  time.Duration
	buckets map[string]*memoryBucket
	maxKeys int
}

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryConfig configures [NewMemoryLimiter].
type MemoryConfig struct {
	Requests int
	Window   time.Duration
	MaxKeys  int
	Now      func() time.Time
}

// NewMemoryLimiter returns a process-local token bucket limiter. Each key
// holds up to Requests tokens refilled evenly over Window.
func NewMemoryLimiter(cfg MemoryConfig) Limiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = defaultMaxKeys
	}
	return &memoryLimiter{
		now:     cfg.Now,
		limit:   cfg.Requests,
		every:   rate.Every(cfg.Window / time.Duration(max(cfg.Requests, 1))),
		window:  cfg.Window,
		buckets: make(map[string]*memoryBucket),
		maxKeys: cfg.MaxKeys,
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	if m.limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.buckets[key]
	if !ok {
		if len(m.buckets) >= m.maxKeys {
			m.gc(now)
		}
		if len(m.buckets) >= m.maxKeys {
			m.evictOldest()
		}
		bucket = &memoryBucket{limiter: rate.NewLimiter(m.every, m.limit)}
		m.buckets[key] = bucket
	}
	bucket.lastSeen = now

	allowed := bucket.limiter.AllowN(now, 1)
	tokens := bucket.limiter.TokensAt(now)

	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}
	missing := float64(m.limit) - tokens
	resetAt := now
	if missing > 0 {
		resetAt = now.Add(time.Duration(missing / float64(m.every) * float64(time.Second)))
	}

	return Decision{
		Allowed:   allowed,
		Limit:     m.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// gc drops buckets idle for a full window; such buckets are full again and
// indistinguishable from fresh ones.
func (m *memoryLimiter) gc(now time.Time) {
	for key, bucket := range m.buckets {
		if now.Sub(bucket.lastSeen) >= m.window {
			delete(m.buckets, key)
		}
	}
}

// evictOldest drops the least recently seen bucket.
func (m *memoryLimiter) evictOldest() {
	var (
		oldestKey  string
		oldestSeen time.Time
		found      bool
	)
	for key, bucket := range m.buckets {
		if !found || bucket.lastSeen.Before(oldestSeen) {
			oldestKey, oldestSeen, found = key, bucket.lastSeen, true
		}
	}
	if found {
		delete(m.buckets, oldestKey)
	}
}
