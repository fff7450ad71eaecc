package database

import (
	"context"
	"database/sql"
)

// Database is the backend-neutral interface over SQLite and PostgreSQL.
// Queries are written with ? placeholders and converted per driver.
type Database interface {
	// Connection
	Open() error
	Close() error
	Ping() error
	GetDB() *sql.DB

	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Begin(ctx context.Context) (*sql.Tx, error)

	// CreateTables creates the schema if it does not exist yet.
	CreateTables() error
}

// DB is the global database instance, set by Initialize.
var DB Database
