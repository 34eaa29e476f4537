// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/pressly/goose/v3"
)

// DB wraps the shared *sql.DB pool together with the classifier used to
// decide whether a failed connection attempt is worth repeating.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies every pending goose migration found in dir.
func (db *DB) Migrate(ctx context.Context, dir string) error {
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("%w: setting dialect for db: %w", ErrMigration, err)
	}

	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("%w: %w", ErrMigration, err)
	}

	db.logger.Info().Str("dir", dir).Msg("migrations applied")
	return nil
}
