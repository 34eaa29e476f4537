// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import "errors"

// Sentinel errors returned by the storage bootstrap. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStoreUnavailable is returned when a backend cannot be reached,
	// either during startup or by a readiness check.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotConnected is returned by readiness checks issued before
	// [Storages.Connect] succeeded.
	ErrNotConnected = errors.New("store is not connected")

	// ErrMigration is returned when applying goose migrations fails.
	ErrMigration = errors.New("migration error")

	// ErrInvalidRedisURL is returned when STORAGE_REDIS_URL cannot be parsed.
	ErrInvalidRedisURL = errors.New("invalid redis url")
)
