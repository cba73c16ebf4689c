// Package pgsql holds the pieces shared by the gorm repositories: column types,
// row locking and translation of PostgreSQL errors into the engine's error kinds.
package pgsql
