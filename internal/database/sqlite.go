package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase implements Database for SQLite.
type SQLiteDatabase struct {
	connString string
	db         *sql.DB
}

// NewSQLiteDatabase creates a new SQLite database instance.
func NewSQLiteDatabase(connString string) *SQLiteDatabase {
	return &SQLiteDatabase{
		connString: connString,
	}
}

// Open opens the database connection.
func (s *SQLiteDatabase) Open() error {
	db, err := sql.Open("sqlite3", s.connString)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks that the connection is alive.
func (s *SQLiteDatabase) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	return s.db.Ping()
}

// GetDB returns the underlying *sql.DB.
func (s *SQLiteDatabase) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteDatabase) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

func (s *SQLiteDatabase) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *SQLiteDatabase) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s *SQLiteDatabase) Begin(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// CreateTables creates the SQLite schema.
func (s *SQLiteDatabase) CreateTables() error {
	createPlayersSQL := `CREATE TABLE IF NOT EXISTS players (
		"id" INTEGER NOT NULL PRIMARY KEY,
		"battle_tag" TEXT NOT NULL UNIQUE,
		"mmr" INTEGER DEFAULT 0,
		"league" TEXT DEFAULT '',
		"division" INTEGER DEFAULT 0,
		"blocked" BOOLEAN DEFAULT FALSE,
		"season" TEXT DEFAULT '',
		"points" INTEGER DEFAULT 0,
		"win" INTEGER DEFAULT 0,
		"lose" INTEGER DEFAULT 0,
		"winstreak" INTEGER DEFAULT 0,
		"max_winstreak" INTEGER DEFAULT 0
	);`
	if _, err := s.db.Exec(createPlayersSQL); err != nil {
		return err
	}

	createSessionsSQL := `CREATE TABLE IF NOT EXISTS sessions (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"room_id" TEXT NOT NULL,
		"type" TEXT NOT NULL,
		"map" TEXT DEFAULT '',
		"blue" TEXT NOT NULL,
		"red" TEXT NOT NULL,
		"delta_mmr" INTEGER DEFAULT 0,
		"win_points" INTEGER DEFAULT 0,
		"lose_points" INTEGER DEFAULT 0,
		"winner" TEXT DEFAULT '',
		"state" TEXT NOT NULL,
		"created_at" DATETIME
	);`
	if _, err := s.db.Exec(createSessionsSQL); err != nil {
		return err
	}

	// One active session per room, enforced by the database as well.
	createActiveIdxSQL := `CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_active_room
		ON sessions(room_id) WHERE state = 'active';`
	if _, err := s.db.Exec(createActiveIdxSQL); err != nil {
		return err
	}

	createPredictionsSQL := `CREATE TABLE IF NOT EXISTS predictions (
		"session_id" INTEGER NOT NULL,
		"player_id" INTEGER NOT NULL,
		"side" TEXT NOT NULL,
		"correct" BOOLEAN,
		PRIMARY KEY (session_id, player_id)
	);`
	if _, err := s.db.Exec(createPredictionsSQL); err != nil {
		return err
	}

	createMatchLogSQL := `CREATE TABLE IF NOT EXISTS match_log (
		"session_id" INTEGER NOT NULL,
		"player_id" INTEGER NOT NULL,
		"season" TEXT DEFAULT '',
		"won" BOOLEAN NOT NULL,
		"points" INTEGER DEFAULT 0,
		"delta_mmr" INTEGER DEFAULT 0,
		"map" TEXT DEFAULT '',
		PRIMARY KEY (session_id, player_id)
	);`
	if _, err := s.db.Exec(createMatchLogSQL); err != nil {
		return err
	}

	createChangeLogSQL := `CREATE TABLE IF NOT EXISTS change_log (
		"id" TEXT NOT NULL PRIMARY KEY,
		"player_id" INTEGER NOT NULL,
		"admin_id" INTEGER NOT NULL,
		"type" TEXT NOT NULL,
		"message" TEXT DEFAULT '',
		"created_at" DATETIME
	);`
	if _, err := s.db.Exec(createChangeLogSQL); err != nil {
		return err
	}

	return nil
}
