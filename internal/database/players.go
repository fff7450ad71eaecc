package database

import (
	"context"
	"database/sql"

	"samuro/internal/ladder"
)

// PlayerStore implements ladder.PlayerRepository on top of the SQL schema.
type PlayerStore struct {
	db Database
}

// NewPlayerStore creates a player store over db.
func NewPlayerStore(db Database) *PlayerStore {
	return &PlayerStore{db: db}
}

const playerColumns = `id, battle_tag, mmr, league, division, blocked,
	season, points, win, lose, winstreak, max_winstreak`

func scanPlayer(row interface{ Scan(dest ...interface{}) error }) (*ladder.Player, error) {
	var p ladder.Player
	err := row.Scan(&p.ID, &p.BattleTag, &p.MMR, &p.League, &p.Division, &p.Blocked,
		&p.Stats.Season, &p.Stats.Points, &p.Stats.Win, &p.Stats.Lose,
		&p.Stats.Winstreak, &p.Stats.MaxWinstreak)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlayerStore) Get(ctx context.Context, id int64) (*ladder.Player, error) {
	query := prepareQuery("SELECT " + playerColumns + " FROM players WHERE id = ?")
	p, err := scanPlayer(s.db.QueryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *PlayerStore) GetByTag(ctx context.Context, tag string) (*ladder.Player, error) {
	query := prepareQuery("SELECT " + playerColumns + " FROM players WHERE battle_tag = ?")
	p, err := scanPlayer(s.db.QueryRow(ctx, query, tag))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *PlayerStore) Add(ctx context.Context, p *ladder.Player) error {
	query := prepareQuery(`INSERT INTO players (` + playerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.Exec(ctx, query,
		p.ID, p.BattleTag, p.MMR, p.League, p.Division, p.Blocked,
		p.Stats.Season, p.Stats.Points, p.Stats.Win, p.Stats.Lose,
		p.Stats.Winstreak, p.Stats.MaxWinstreak)
	return err
}

func (s *PlayerStore) Save(ctx context.Context, p *ladder.Player) error {
	query := prepareQuery(`UPDATE players SET battle_tag = ?, mmr = ?, league = ?,
		division = ?, blocked = ?, season = ?, points = ?, win = ?, lose = ?,
		winstreak = ?, max_winstreak = ? WHERE id = ?`)
	_, err := s.db.Exec(ctx, query,
		p.BattleTag, p.MMR, p.League, p.Division, p.Blocked,
		p.Stats.Season, p.Stats.Points, p.Stats.Win, p.Stats.Lose,
		p.Stats.Winstreak, p.Stats.MaxWinstreak, p.ID)
	return err
}

func (s *PlayerStore) Top(ctx context.Context, season string, league ladder.League, limit int) ([]*ladder.Player, error) {
	var rows *sql.Rows
	var err error
	if league != "" {
		query := prepareQuery("SELECT " + playerColumns + ` FROM players
			WHERE season = ? AND league = ? ORDER BY points DESC, mmr DESC LIMIT ?`)
		rows, err = s.db.Query(ctx, query, season, string(league), limit)
	} else {
		query := prepareQuery("SELECT " + playerColumns + ` FROM players
			WHERE season = ? ORDER BY points DESC, mmr DESC LIMIT ?`)
		rows, err = s.db.Query(ctx, query, season, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*ladder.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
