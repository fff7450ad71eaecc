package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"samuro/internal/ladder"
	"samuro/pkg/config"
)

// SessionStore implements ladder.SessionRepository. Rosters are stored as
// space-separated id lists; the partial unique index on (room_id) backs up
// the one-active-session-per-room rule.
type SessionStore struct {
	db Database
}

// NewSessionStore creates a session store over db.
func NewSessionStore(db Database) *SessionStore {
	return &SessionStore{db: db}
}

const sessionColumns = `id, room_id, type, map, blue, red,
	delta_mmr, win_points, lose_points, winner, state, created_at`

func encodeRoster(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, " ")
}

func decodeRoster(s string) []int64 {
	if s == "" {
		return nil
	}
	parts := strings.Fields(s)
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func scanSession(row interface{ Scan(dest ...interface{}) error }) (*ladder.MatchSession, error) {
	var s ladder.MatchSession
	var blue, red string
	var winner sql.NullString
	var createdAt sql.NullTime
	err := row.Scan(&s.ID, &s.RoomID, &s.Type, &s.Map, &blue, &red,
		&s.DeltaMMR, &s.WinPoints, &s.LosePoints, &winner, &s.State, &createdAt)
	if err != nil {
		return nil, err
	}
	s.Blue = decodeRoster(blue)
	s.Red = decodeRoster(red)
	s.Winner = ladder.Winner(winner.String)
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}
	return &s, nil
}

func (s *SessionStore) Add(ctx context.Context, sess *ladder.MatchSession) error {
	if config.DBType == "postgres" {
		query := `INSERT INTO sessions (room_id, type, map, blue, red,
			delta_mmr, win_points, lose_points, winner, state, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
		return s.db.QueryRow(ctx, query,
			sess.RoomID, string(sess.Type), sess.Map,
			encodeRoster(sess.Blue), encodeRoster(sess.Red),
			sess.DeltaMMR, sess.WinPoints, sess.LosePoints,
			string(sess.Winner), string(sess.State), sess.CreatedAt).Scan(&sess.ID)
	}

	query := `INSERT INTO sessions (room_id, type, map, blue, red,
		delta_mmr, win_points, lose_points, winner, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.Exec(ctx, query,
		sess.RoomID, string(sess.Type), sess.Map,
		encodeRoster(sess.Blue), encodeRoster(sess.Red),
		sess.DeltaMMR, sess.WinPoints, sess.LosePoints,
		string(sess.Winner), string(sess.State), sess.CreatedAt)
	if err != nil {
		return err
	}
	sess.ID, err = res.LastInsertId()
	return err
}

func (s *SessionStore) Get(ctx context.Context, id int64) (*ladder.MatchSession, error) {
	query := prepareQuery("SELECT " + sessionColumns + " FROM sessions WHERE id = ?")
	sess, err := scanSession(s.db.QueryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sess, err
}

func (s *SessionStore) GetActiveByRoom(ctx context.Context, roomID string) (*ladder.MatchSession, error) {
	query := prepareQuery("SELECT " + sessionColumns + ` FROM sessions
		WHERE room_id = ? AND state = 'active'`)
	sess, err := scanSession(s.db.QueryRow(ctx, query, roomID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sess, err
}

func (s *SessionStore) Save(ctx context.Context, sess *ladder.MatchSession) error {
	query := prepareQuery(`UPDATE sessions SET room_id = ?, type = ?, map = ?,
		blue = ?, red = ?, delta_mmr = ?, win_points = ?, lose_points = ?,
		winner = ?, state = ? WHERE id = ?`)
	_, err := s.db.Exec(ctx, query,
		sess.RoomID, string(sess.Type), sess.Map,
		encodeRoster(sess.Blue), encodeRoster(sess.Red),
		sess.DeltaMMR, sess.WinPoints, sess.LosePoints,
		string(sess.Winner), string(sess.State), sess.ID)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, id int64) error {
	query := prepareQuery("DELETE FROM sessions WHERE id = ?")
	_, err := s.db.Exec(ctx, query, id)
	return err
}
