package database

import (
	"context"

	"samuro/internal/ladder"
)

// ChangeLogStore implements ladder.ChangeLogRepository.
type ChangeLogStore struct {
	db Database
}

// NewChangeLogStore creates a change log store over db.
func NewChangeLogStore(db Database) *ChangeLogStore {
	return &ChangeLogStore{db: db}
}

func (s *ChangeLogStore) Add(ctx context.Context, e ladder.ChangeLogEntry) error {
	query := prepareQuery(`INSERT INTO change_log
		(id, player_id, admin_id, type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.Exec(ctx, query,
		e.ID, e.PlayerID, e.AdminID, e.Type, e.Message, e.CreatedAt)
	return err
}
