// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages owns the process-wide database pool and Redis client.
type Storages struct {
	cfg    config.Storage
	logger *logger.Logger

	// Redis is nil when STORAGE_REDIS_URL is empty.
	Redis redis.UniversalClient

	mu sync.RWMutex
	db *DB

	connectDB func(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error)
}

func NewStorages(cfg config.Storage, log *logger.Logger) (*Storages, error) {
	redisClient, err := NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	return &Storages{
		cfg:       cfg,
		logger:    log,
		Redis:     redisClient,
		connectDB: NewConnectPostgres,
	}, nil
}

// Connect opens the database pool, applies migrations when a directory is
// configured and verifies Redis. It must succeed before the listener binds.
// On failure every backend is released, Redis included.
func (s *Storages) Connect(ctx context.Context) error {
	db, err := s.connectDB(ctx, s.cfg.DB, s.logger)
	if err != nil {
		s.closeRedis()
		return err
	}

	if s.cfg.DB.MigrationsDir != "" {
		if err := db.Migrate(ctx, s.cfg.DB.MigrationsDir); err != nil {
			_ = db.Close()
			s.closeRedis()
			return err
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			_ = db.Close()
			s.closeRedis()
			s.logger.Err(err).Str("func", "Storages.Connect").Msg("error connecting redis")
			return fmt.Errorf("%w: redis: %w", ErrStoreUnavailable, err)
		}
		s.logger.Info().Str("func", "Storages.Connect").Msg("connected to redis successfully")
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()

	return nil
}

func (s *Storages) closeRedis() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Close(); err != nil {
		s.logger.Warn().Err(err).Str("func", "Storages.closeRedis").Msg("error closing redis client")
	}
}

// Ready reports whether every configured backend answers a ping.
func (s *Storages) Ready(ctx context.Context) error {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()

	if db == nil {
		return ErrNotConnected
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: redis: %w", ErrStoreUnavailable, err)
		}
	}

	return nil
}

// Close releases the pool and the Redis client.
func (s *Storages) Close() error {
	s.mu.Lock()
	db := s.db
	s.db = nil
	s.mu.Unlock()

	var errs []error
	if db != nil {
		errs = append(errs, db.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}

	return errors.Join(errs...)
}
