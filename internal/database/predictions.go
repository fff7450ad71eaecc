package database

import (
	"context"
	"database/sql"

	"samuro/internal/ladder"
	"samuro/pkg/config"
)

// PredictionStore implements ladder.PredictionRepository.
type PredictionStore struct {
	db Database
}

// NewPredictionStore creates a prediction store over db.
func NewPredictionStore(db Database) *PredictionStore {
	return &PredictionStore{db: db}
}

func (s *PredictionStore) Upsert(ctx context.Context, sessionID, playerID int64, side ladder.Winner) error {
	if config.DBType == "postgres" {
		query := `INSERT INTO predictions (session_id, player_id, side, correct)
			VALUES ($1, $2, $3, NULL)
			ON CONFLICT(session_id, player_id) DO UPDATE SET side = $3, correct = NULL`
		_, err := s.db.Exec(ctx, query, sessionID, playerID, string(side))
		return err
	}
	query := `INSERT INTO predictions (session_id, player_id, side, correct)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT(session_id, player_id) DO UPDATE SET side = ?, correct = NULL`
	_, err := s.db.Exec(ctx, query, sessionID, playerID, string(side), string(side))
	return err
}

func (s *PredictionStore) AllFor(ctx context.Context, sessionID int64) ([]ladder.Prediction, error) {
	query := prepareQuery(`SELECT session_id, player_id, side, correct
		FROM predictions WHERE session_id = ? ORDER BY player_id`)
	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preds []ladder.Prediction
	for rows.Next() {
		var p ladder.Prediction
		var correct sql.NullBool
		if err := rows.Scan(&p.SessionID, &p.PlayerID, &p.Side, &correct); err != nil {
			return nil, err
		}
		if correct.Valid {
			c := correct.Bool
			p.Correct = &c
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

func (s *PredictionStore) MarkCorrectness(ctx context.Context, sessionID, playerID int64, correct bool) error {
	query := prepareQuery(`UPDATE predictions SET correct = ?
		WHERE session_id = ? AND player_id = ?`)
	_, err := s.db.Exec(ctx, query, correct, sessionID, playerID)
	return err
}

func (s *PredictionStore) StatsFor(ctx context.Context, playerID int64) (correct, wrong int, err error) {
	query := prepareQuery(`SELECT
		COUNT(CASE WHEN correct THEN 1 END),
		COUNT(CASE WHEN NOT correct THEN 1 END)
		FROM predictions WHERE player_id = ? AND correct IS NOT NULL`)
	err = s.db.QueryRow(ctx, query, playerID).Scan(&correct, &wrong)
	return correct, wrong, err
}
