// Package config provides the runtime configuration of the circulation service:
// settings read from the environment (optionally from a .env file), connection pools
// for the three supported PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB) and the
// OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
