package ladder

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Manager drives the session lifecycle: it forms teams, enforces the
// one-active-session-per-room rule and applies results to player ratings.
type Manager struct {
	repos  Repositories
	lookup RatingLookup // optional, used only at registration
	season string
	tally  *PredictionTally
	log    zerolog.Logger

	mu          sync.Mutex
	roomLocks   map[string]*sync.Mutex
	playerLocks map[int64]*sync.Mutex
}

// NewManager wires the engine. lookup may be nil when initial ratings are
// always supplied by the operator.
func NewManager(repos Repositories, lookup RatingLookup, season string, log zerolog.Logger) *Manager {
	return &Manager{
		repos:       repos,
		lookup:      lookup,
		season:      season,
		tally:       NewPredictionTally(repos.Sessions, repos.Predictions, log),
		log:         log.With().Str("component", "ladder").Logger(),
		roomLocks:   make(map[string]*sync.Mutex),
		playerLocks: make(map[int64]*sync.Mutex),
	}
}

// Tally exposes the prediction tally bound to this manager.
func (m *Manager) Tally() *PredictionTally {
	return m.tally
}

// Season returns the configured season name.
func (m *Manager) Season() string {
	return m.season
}

// roomLock returns the mutex guarding a room's check-and-insert window.
func (m *Manager) roomLock(roomID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		m.roomLocks[roomID] = l
	}
	return l
}

func (m *Manager) playerLock(id int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.playerLocks[id]
	if !ok {
		l = &sync.Mutex{}
		m.playerLocks[id] = l
	}
	return l
}

// CreateSession forms the two teams for the roster and persists a new
// active session for the room. The room may hold at most one active
// session; concurrent creates for the same room cannot both succeed.
func (m *Manager) CreateSession(ctx context.Context, roomID string, t MatchType, playerIDs []int64, mapName string, params ScoringParams) (*MatchSession, error) {
	lock := m.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := m.repos.Sessions.GetActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSessionAlreadyActive
	}

	if len(playerIDs) != RequiredRosterSize(t) {
		return nil, ErrInvalidRosterSize
	}

	roster := make([]RosterEntry, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := m.repos.Players.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrPlayerNotFound
		}
		if p.Blocked {
			return nil, &PlayerBlockedError{PlayerID: p.ID, BattleTag: p.BattleTag}
		}
		roster = append(roster, RosterEntry{PlayerID: p.ID, Rating: p.MMR})
	}

	blue, red, err := SplitTeams(t, roster)
	if err != nil {
		return nil, err
	}

	sess := &MatchSession{
		RoomID:     roomID,
		Type:       t,
		Map:        mapName,
		Blue:       playerIDsOf(blue),
		Red:        playerIDsOf(red),
		DeltaMMR:   params.DeltaMMR,
		WinPoints:  params.WinPoints,
		LosePoints: params.LosePoints,
		State:      StateActive,
		CreatedAt:  time.Now(),
	}
	if err := m.repos.Sessions.Add(ctx, sess); err != nil {
		return nil, err
	}
	m.log.Info().
		Int64("session", sess.ID).
		Str("room", roomID).
		Str("type", string(t)).
		Str("map", mapName).
		Msg("session created")
	return sess, nil
}

// CancelSession removes the room's active session without touching any
// rating. The returned session is marked Cancelled.
func (m *Manager) CancelSession(ctx context.Context, roomID string) (*MatchSession, error) {
	lock := m.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.repos.Sessions.GetActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if err := m.repos.Sessions.Delete(ctx, sess.ID); err != nil {
		return nil, err
	}
	sess.State = StateCancelled
	m.log.Info().Int64("session", sess.ID).Str("room", roomID).Msg("session cancelled")
	return sess, nil
}

// ConcludeSession sets the winner, applies rating/stat updates to every
// player and finalizes the predictions. A re-run after a partial failure
// skips players whose result is already in the match log, so the
// operation never double-applies a delta.
func (m *Manager) ConcludeSession(ctx context.Context, roomID string, winner Winner) (*MatchSession, error) {
	lock := m.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.repos.Sessions.GetActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	for _, id := range sess.Blue {
		if err := m.applyResult(ctx, sess, id, winner == WinnerBlue); err != nil {
			return nil, err
		}
	}
	for _, id := range sess.Red {
		if err := m.applyResult(ctx, sess, id, winner == WinnerRed); err != nil {
			return nil, err
		}
	}

	sess.Winner = winner
	sess.State = StateConcluded
	if err := m.repos.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	if err := m.tally.Finalize(ctx, sess.ID, winner); err != nil {
		return nil, err
	}

	m.log.Info().
		Int64("session", sess.ID).
		Str("room", roomID).
		Str("winner", string(winner)).
		Msg("session concluded")
	return sess, nil
}

// applyResult updates one player for a concluded session: rating delta
// (rated types only), league/division, streak and counters, then the
// match log row that makes the update idempotent.
func (m *Manager) applyResult(ctx context.Context, sess *MatchSession, playerID int64, won bool) error {
	lock := m.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	done, err := m.repos.MatchLog.Has(ctx, sess.ID, playerID)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	p, err := m.repos.Players.Get(ctx, playerID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPlayerNotFound
	}

	delta := 0
	if sess.Type.Rated() {
		delta = Delta(sess.DeltaMMR, p.Stats.Winstreak, p.MMR, won)
	}

	if won {
		if p.Stats.Winstreak >= 0 {
			p.Stats.Winstreak++
		} else {
			p.Stats.Winstreak = 1
		}
		if p.Stats.Winstreak > p.Stats.MaxWinstreak {
			p.Stats.MaxWinstreak = p.Stats.Winstreak
		}
		p.Stats.Win++
		p.Stats.Points += sess.WinPoints
		p.MMR += delta
	} else {
		if p.Stats.Winstreak <= 0 {
			p.Stats.Winstreak--
		} else {
			p.Stats.Winstreak = -1
		}
		p.Stats.Lose++
		p.Stats.Points += sess.LosePoints
		p.MMR -= delta
	}
	p.League, p.Division = LeagueOf(p.MMR)
	p.Stats.Season = m.season

	if err := m.repos.Players.Save(ctx, p); err != nil {
		return err
	}
	return m.repos.MatchLog.Record(ctx, MatchLogEntry{
		SessionID: sess.ID,
		PlayerID:  playerID,
		Season:    m.season,
		Won:       won,
		Points:    pickPoints(sess, won),
		DeltaMMR:  delta,
		Map:       sess.Map,
	})
}

// GetActiveSession returns the room's active session, if any.
func (m *Manager) GetActiveSession(ctx context.Context, roomID string) (*MatchSession, error) {
	sess, err := m.repos.Sessions.GetActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// GetSession returns a session by id regardless of state.
func (m *Manager) GetSession(ctx context.Context, id int64) (*MatchSession, error) {
	sess, err := m.repos.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func pickPoints(sess *MatchSession, won bool) int {
	if won {
		return sess.WinPoints
	}
	return sess.LosePoints
}

func playerIDsOf(entries []RosterEntry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.PlayerID
	}
	return ids
}
