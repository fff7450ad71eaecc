package database

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"samuro/pkg/config"
)

// Initialize opens the database selected by the configuration and creates
// the schema.
func Initialize() error {
	var err error

	switch config.DBType {
	case "postgres":
		log.Info().Msg("initializing PostgreSQL database")
		DB, err = NewPostgres(config.ConnString)
	case "sqlite":
		fallthrough
	default:
		log.Info().Msg("initializing SQLite database")
		DB, err = NewSQLite(config.ConnString)
	}
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	log.Info().Str("type", config.DBType).Msg("database initialized")
	return nil
}

// ShouldSkipTableCreation lets deployments with managed migrations opt out
// of the startup schema pass.
func ShouldSkipTableCreation() bool {
	return os.Getenv("DB_SKIP_TABLE_CREATION") == "true"
}

// NewSQLite creates and initializes a SQLite database.
func NewSQLite(connString string) (Database, error) {
	db := NewSQLiteDatabase(connString)
	if err := db.Open(); err != nil {
		return nil, err
	}
	if !ShouldSkipTableCreation() {
		if err := db.CreateTables(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// NewPostgres creates and initializes a PostgreSQL database.
func NewPostgres(connString string) (Database, error) {
	db := NewPostgresDatabase(connString)
	if err := db.Open(); err != nil {
		return nil, err
	}
	if !ShouldSkipTableCreation() {
		if err := db.CreateTables(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// prepareQuery converts a ?-placeholder query to the driver's format.
func prepareQuery(query string) string {
	if config.DBType == "postgres" {
		return convertPlaceholders(query)
	}
	return query
}

// convertPlaceholders rewrites ? placeholders as $N for PostgreSQL.
func convertPlaceholders(query string) string {
	result := ""
	placeholderIndex := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result += fmt.Sprintf("$%d", placeholderIndex)
			placeholderIndex++
		} else {
			result += string(query[i])
		}
	}
	return result
}
