// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// pingRetryDelays are the pauses between ping attempts for retryable errors.
var pingRetryDelays = []time.Duration{time.Second, 3 * time.Second}

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := db.ping(ctx, pingRetryDelays); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return db, nil
}

// ping checks the connection, repeating after each delay while the failure
// is classified as retryable.
func (db *DB) ping(ctx context.Context, delays []time.Duration) error {
	for attempt := 0; ; attempt++ {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}

		retryable := db.errorClassificator.Classify(err) == Retryable
		db.logger.Err(err).
			Str("func", "DB.ping").
			Str("pg_code", postgresError(err)).
			Int("attempt", attempt+1).
			Bool("retryable", retryable).
			Msg("error connecting database (ping)")

		if !retryable || attempt >= len(delays) {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, ctx.Err())
		case <-time.After(delays[attempt]):
		}
	}
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
