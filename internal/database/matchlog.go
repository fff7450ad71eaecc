package database

import (
	"context"

	"samuro/internal/ladder"
)

// MatchLogStore implements ladder.MatchLogRepository. The (session_id,
// player_id) primary key is what makes session conclusion re-runnable.
type MatchLogStore struct {
	db Database
}

// NewMatchLogStore creates a match log store over db.
func NewMatchLogStore(db Database) *MatchLogStore {
	return &MatchLogStore{db: db}
}

func (s *MatchLogStore) Has(ctx context.Context, sessionID, playerID int64) (bool, error) {
	query := prepareQuery(`SELECT COUNT(1) FROM match_log
		WHERE session_id = ? AND player_id = ?`)
	var n int
	if err := s.db.QueryRow(ctx, query, sessionID, playerID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MatchLogStore) Record(ctx context.Context, e ladder.MatchLogEntry) error {
	query := prepareQuery(`INSERT INTO match_log
		(session_id, player_id, season, won, points, delta_mmr, map)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.Exec(ctx, query,
		e.SessionID, e.PlayerID, e.Season, e.Won, e.Points, e.DeltaMMR, e.Map)
	return err
}

func (s *MatchLogStore) ByPlayer(ctx context.Context, playerID int64, limit int) ([]ladder.MatchLogEntry, error) {
	query := prepareQuery(`SELECT session_id, player_id, season, won, points, delta_mmr, map
		FROM match_log WHERE player_id = ? ORDER BY session_id DESC LIMIT ?`)
	rows, err := s.db.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ladder.MatchLogEntry
	for rows.Next() {
		var e ladder.MatchLogEntry
		if err := rows.Scan(&e.SessionID, &e.PlayerID, &e.Season, &e.Won,
			&e.Points, &e.DeltaMMR, &e.Map); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
