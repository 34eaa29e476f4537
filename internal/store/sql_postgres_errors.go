// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the connection bootstrap whether a failed
// attempt should be repeated.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, bad credentials
	// and unknown databases.
	NonRetryable ErrorClassification = iota

	// Retryable marks failures that may clear on their own, such as a server
	// that is still starting up.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify inspects err for a *pgconn.PgError and falls back to treating a
// dial failure as retryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return Retryable
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
//
// Retryable codes:
//   - Class 08, connection exceptions
//   - Class 53, insufficient resources (too many connections)
//   - Class 57, cannot connect now and admin shutdown
//
// Authentication failures (28P01) and unknown databases (3D000) never are.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection:
		return Retryable

	case pgerrcode.TooManyConnections,
		pgerrcode.InsufficientResources:
		return Retryable

	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return Retryable
	}

	return NonRetryable
}
