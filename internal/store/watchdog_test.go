// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWatch(t *testing.T, ctx context.Context, s *Storages, cfg config.Watchdog) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Watch(cfg)(ctx) }()
	return done
}

func waitWatch(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not return")
		return nil
	}
}

func TestWatch_GivesUpAfterConsecutiveFailures(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestStorages(config.Storage{}, db, nil)
	require.NoError(t, s.Connect(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	mock.ExpectPing().WillReturnError(errors.New("connection reset"))

	err := waitWatch(t, runWatch(t, context.Background(), s, config.Watchdog{Interval: time.Millisecond, Failures: 2}))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "2 consecutive checks")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWatch_SuccessResetsFailures(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestStorages(config.Storage{}, db, nil)
	require.NoError(t, s.Connect(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	mock.ExpectPing().WillReturnError(errors.New("connection reset"))

	err := waitWatch(t, runWatch(t, context.Background(), s, config.Watchdog{Interval: time.Millisecond, Failures: 2}))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWatch_SkipsUntilConnectedAndStopsOnCancel(t *testing.T) {
	s := newTestStorages(config.Storage{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := runWatch(t, ctx, s, config.Watchdog{Interval: time.Millisecond, Failures: 1})

	time.Sleep(20 * time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("watchdog returned before cancel: %v", err)
	default:
	}

	cancel()
	assert.ErrorIs(t, waitWatch(t, done), context.Canceled)
}
