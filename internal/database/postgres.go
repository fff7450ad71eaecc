package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// PostgresDatabase implements Database for PostgreSQL using the pgx driver.
type PostgresDatabase struct {
	connString string
	db         *sql.DB
}

// NewPostgresDatabase creates a new PostgreSQL database instance.
func NewPostgresDatabase(connString string) *PostgresDatabase {
	return &PostgresDatabase{
		connString: connString,
	}
}

// Open opens the database connection.
func (p *PostgresDatabase) Open() error {
	log.Info().Str("conn", maskPassword(p.connString)).Msg("connecting to PostgreSQL via pgx")

	db, err := sql.Open("pgx", p.connString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Keep the pool small; the bot serves one community.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	p.db = db
	return nil
}

// maskPassword hides the password in a connection string for logging.
func maskPassword(connString string) string {
	result := connString
	if idx := indexOf(result, "://"); idx >= 0 {
		start := idx + 3
		if atIdx := indexOf(result[start:], "@"); atIdx >= 0 {
			userPass := result[start : start+atIdx]
			if colonIdx := indexOf(userPass, ":"); colonIdx >= 0 {
				user := userPass[:colonIdx]
				result = result[:start] + user + ":****@" + result[start+atIdx+1:]
			}
		}
	}
	return result
}

func indexOf(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// Close closes the database connection.
func (p *PostgresDatabase) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Ping checks that the connection is alive.
func (p *PostgresDatabase) Ping() error {
	if p.db == nil {
		return fmt.Errorf("database not connected")
	}
	return p.db.Ping()
}

// GetDB returns the underlying *sql.DB.
func (p *PostgresDatabase) GetDB() *sql.DB {
	return p.db
}

func (p *PostgresDatabase) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return p.db.QueryContext(ctx, query, args...)
}

func (p *PostgresDatabase) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return p.db.QueryRowContext(ctx, query, args...)
}

func (p *PostgresDatabase) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return p.db.ExecContext(ctx, query, args...)
}

func (p *PostgresDatabase) Begin(ctx context.Context) (*sql.Tx, error) {
	return p.db.BeginTx(ctx, nil)
}

// CreateTables creates the PostgreSQL schema.
func (p *PostgresDatabase) CreateTables() error {
	createPlayersSQL := `CREATE TABLE IF NOT EXISTS players (
		id BIGINT NOT NULL PRIMARY KEY,
		battle_tag TEXT NOT NULL UNIQUE,
		mmr INTEGER DEFAULT 0,
		league TEXT DEFAULT '',
		division INTEGER DEFAULT 0,
		blocked BOOLEAN DEFAULT FALSE,
		season TEXT DEFAULT '',
		points INTEGER DEFAULT 0,
		win INTEGER DEFAULT 0,
		lose INTEGER DEFAULT 0,
		winstreak INTEGER DEFAULT 0,
		max_winstreak INTEGER DEFAULT 0
	);`
	if _, err := p.db.Exec(createPlayersSQL); err != nil {
		return err
	}

	createSessionsSQL := `CREATE TABLE IF NOT EXISTS sessions (
		id BIGSERIAL PRIMARY KEY,
		room_id TEXT NOT NULL,
		type TEXT NOT NULL,
		map TEXT DEFAULT '',
		blue TEXT NOT NULL,
		red TEXT NOT NULL,
		delta_mmr INTEGER DEFAULT 0,
		win_points INTEGER DEFAULT 0,
		lose_points INTEGER DEFAULT 0,
		winner TEXT DEFAULT '',
		state TEXT NOT NULL,
		created_at TIMESTAMP
	);`
	if _, err := p.db.Exec(createSessionsSQL); err != nil {
		return err
	}

	// One active session per room, enforced by the database as well.
	createActiveIdxSQL := `CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_active_room
		ON sessions(room_id) WHERE state = 'active';`
	if _, err := p.db.Exec(createActiveIdxSQL); err != nil {
		return err
	}

	createPredictionsSQL := `CREATE TABLE IF NOT EXISTS predictions (
		session_id BIGINT NOT NULL,
		player_id BIGINT NOT NULL,
		side TEXT NOT NULL,
		correct BOOLEAN,
		PRIMARY KEY (session_id, player_id)
	);`
	if _, err := p.db.Exec(createPredictionsSQL); err != nil {
		return err
	}

	createMatchLogSQL := `CREATE TABLE IF NOT EXISTS match_log (
		session_id BIGINT NOT NULL,
		player_id BIGINT NOT NULL,
		season TEXT DEFAULT '',
		won BOOLEAN NOT NULL,
		points INTEGER DEFAULT 0,
		delta_mmr INTEGER DEFAULT 0,
		map TEXT DEFAULT '',
		PRIMARY KEY (session_id, player_id)
	);`
	if _, err := p.db.Exec(createMatchLogSQL); err != nil {
		return err
	}

	createChangeLogSQL := `CREATE TABLE IF NOT EXISTS change_log (
		id TEXT NOT NULL PRIMARY KEY,
		player_id BIGINT NOT NULL,
		admin_id BIGINT NOT NULL,
		type TEXT NOT NULL,
		message TEXT DEFAULT '',
		created_at TIMESTAMP
	);`
	if _, err := p.db.Exec(createChangeLogSQL); err != nil {
		return err
	}

	return nil
}
