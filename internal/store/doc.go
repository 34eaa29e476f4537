// Package store bootstraps the persistence backends of the API server: the
// PostgreSQL pool opened through the pgx database/sql driver and the optional
// Redis client. It owns connection, readiness and teardown; no queries live
// here.
package store
