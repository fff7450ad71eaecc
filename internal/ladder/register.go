package ladder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RatingFloor is the lowest initial MMR a looked-up rating can produce.
// External profiles below it enter the ladder at the floor.
const RatingFloor = 2200

// RegisterPlayer creates a new ladder player. When mmr is zero the
// configured RatingLookup resolves the initial rating from the player's
// battle tag, clamped to RatingFloor.
func (m *Manager) RegisterPlayer(ctx context.Context, id int64, battleTag string, mmr int) (*Player, error) {
	existing, err := m.repos.Players.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlayerExists
	}

	if mmr == 0 {
		if m.lookup == nil {
			return nil, ErrNoStormRating
		}
		mmr, err = m.lookup.Lookup(ctx, battleTag)
		if err != nil {
			return nil, err
		}
		if mmr < RatingFloor {
			mmr = RatingFloor
		}
	}

	p := &Player{
		ID:        id,
		BattleTag: battleTag,
		MMR:       mmr,
		Stats:     PlayerStats{Season: m.season},
	}
	p.League, p.Division = LeagueOf(p.MMR)
	if err := m.repos.Players.Add(ctx, p); err != nil {
		return nil, err
	}
	m.log.Info().Int64("player", id).Str("tag", battleTag).Int("mmr", mmr).Msg("player registered")
	return p, nil
}

// SetRating overwrites a player's MMR, re-derives the league band and
// writes an audit entry naming the admin who made the change.
func (m *Manager) SetRating(ctx context.Context, adminID, playerID int64, mmr int) (*Player, error) {
	lock := m.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	p, err := m.repos.Players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	old := p.MMR
	p.MMR = mmr
	p.League, p.Division = LeagueOf(p.MMR)
	if err := m.repos.Players.Save(ctx, p); err != nil {
		return nil, err
	}
	err = m.repos.ChangeLog.Add(ctx, ChangeLogEntry{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		AdminID:   adminID,
		Type:      "mmr",
		Message:   fmt.Sprintf("mmr %d -> %d", old, mmr),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	m.log.Info().Int64("player", playerID).Int64("admin", adminID).Int("mmr", mmr).Msg("rating changed")
	return p, nil
}

// SetBlocked toggles a player's roster eligibility with an audit entry.
// Blocked players keep their profile and history but cannot join rosters.
func (m *Manager) SetBlocked(ctx context.Context, adminID, playerID int64, blocked bool) (*Player, error) {
	lock := m.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	p, err := m.repos.Players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	p.Blocked = blocked
	if err := m.repos.Players.Save(ctx, p); err != nil {
		return nil, err
	}
	msg := "unblocked"
	if blocked {
		msg = "blocked"
	}
	err = m.repos.ChangeLog.Add(ctx, ChangeLogEntry{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		AdminID:   adminID,
		Type:      "block",
		Message:   msg,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	m.log.Info().Int64("player", playerID).Int64("admin", adminID).Bool("blocked", blocked).Msg("block flag changed")
	return p, nil
}

// GetPlayer returns a player by id.
func (m *Manager) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	p, err := m.repos.Players.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// GetPlayerByTag returns a player by battle tag.
func (m *Manager) GetPlayerByTag(ctx context.Context, tag string) (*Player, error) {
	p, err := m.repos.Players.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// History returns a player's most recent match log entries, newest first.
func (m *Manager) History(ctx context.Context, playerID int64, limit int) ([]MatchLogEntry, error) {
	return m.repos.MatchLog.ByPlayer(ctx, playerID, limit)
}

// Leaderboard returns the season's top players, optionally restricted to
// one league. An empty league means all leagues.
func (m *Manager) Leaderboard(ctx context.Context, league League, limit int) ([]*Player, error) {
	return m.repos.Players.Top(ctx, m.season, league, limit)
}
