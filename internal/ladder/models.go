package ladder

import (
	"context"
	"time"
)

// League is the human-facing rank band derived from MMR.
type League string

const (
	LeagueBronze      League = "Bronze"
	LeagueSilver      League = "Silver"
	LeagueGold        League = "Gold"
	LeaguePlatinum    League = "Platinum"
	LeagueDiamond     League = "Diamond"
	LeagueMaster      League = "Master"
	LeagueGrandmaster League = "Grandmaster"
)

// MatchType selects roster size and whether the session is rated.
type MatchType string

const (
	MatchRanked5v5 MatchType = "5x5"
	MatchManual5v5 MatchType = "5x5 manual"
	MatchUnranked  MatchType = "unranked"
	MatchOneVsFour MatchType = "1x4"
	MatchDuel      MatchType = "duel"
)

// Winner identifies the winning side of a session.
type Winner string

const (
	WinnerBlue Winner = "blue"
	WinnerRed  Winner = "red"
)

// SessionState is the lifecycle state of a MatchSession.
type SessionState string

const (
	StateActive    SessionState = "active"
	StateConcluded SessionState = "concluded"
	StateCancelled SessionState = "cancelled"
)

// PlayerStats holds the per-season counters of a player.
type PlayerStats struct {
	Season       string
	Points       int
	Win          int
	Lose         int
	Winstreak    int // positive = consecutive wins, negative = consecutive losses
	MaxWinstreak int
}

// Player is a registered ladder player. Created once at registration and
// mutated only by the session engine after a match concludes.
type Player struct {
	ID        int64
	BattleTag string
	MMR       int
	League    League
	Division  int // 1 = highest within league, 0 for Master/Grandmaster
	Blocked   bool
	Stats     PlayerStats
}

// ScoringParams are the per-session scoring knobs chosen at creation.
type ScoringParams struct {
	DeltaMMR   int
	WinPoints  int
	LosePoints int
}

// MatchSession is one match: two rosters, scoring parameters and a
// lifecycle from Active to Concluded or Cancelled.
type MatchSession struct {
	ID         int64
	RoomID     string
	Type       MatchType
	Map        string
	Blue       []int64
	Red        []int64
	DeltaMMR   int
	WinPoints  int
	LosePoints int
	Winner     Winner // empty until concluded
	State      SessionState
	CreatedAt  time.Time
}

// Prediction is a spectator's guess of the winning side, scored once the
// session concludes.
type Prediction struct {
	SessionID int64
	PlayerID  int64
	Side      Winner
	Correct   *bool // nil until finalized
}

// MatchLogEntry is the per-player record of a concluded session. Its
// (SessionID, PlayerID) key makes Conclude safely re-runnable.
type MatchLogEntry struct {
	SessionID int64
	PlayerID  int64
	Season    string
	Won       bool
	Points    int
	DeltaMMR  int
	Map       string
}

// ChangeLogEntry is an audit row for operator edits to a player profile.
type ChangeLogEntry struct {
	ID        string
	PlayerID  int64
	AdminID   int64
	Type      string
	Message   string
	CreatedAt time.Time
}

// PlayerRepository persists players. Get and GetByTag return (nil, nil)
// when the player does not exist.
type PlayerRepository interface {
	Get(ctx context.Context, id int64) (*Player, error)
	GetByTag(ctx context.Context, tag string) (*Player, error)
	Add(ctx context.Context, p *Player) error
	Save(ctx context.Context, p *Player) error
	Top(ctx context.Context, season string, league League, limit int) ([]*Player, error)
}

// SessionRepository persists match sessions. Add assigns the session id.
// Get and GetActiveByRoom return (nil, nil) when there is no match.
type SessionRepository interface {
	Add(ctx context.Context, s *MatchSession) error
	Get(ctx context.Context, id int64) (*MatchSession, error)
	GetActiveByRoom(ctx context.Context, roomID string) (*MatchSession, error)
	Save(ctx context.Context, s *MatchSession) error
	Delete(ctx context.Context, id int64) error
}

// PredictionRepository persists spectator predictions keyed by
// (session, predictor); Upsert overwrites a prior choice.
type PredictionRepository interface {
	Upsert(ctx context.Context, sessionID, playerID int64, side Winner) error
	AllFor(ctx context.Context, sessionID int64) ([]Prediction, error)
	MarkCorrectness(ctx context.Context, sessionID, playerID int64, correct bool) error
	StatsFor(ctx context.Context, playerID int64) (correct, wrong int, err error)
}

// MatchLogRepository persists per-player match results.
type MatchLogRepository interface {
	Has(ctx context.Context, sessionID, playerID int64) (bool, error)
	Record(ctx context.Context, e MatchLogEntry) error
	ByPlayer(ctx context.Context, playerID int64, limit int) ([]MatchLogEntry, error)
}

// ChangeLogRepository persists profile audit entries.
type ChangeLogRepository interface {
	Add(ctx context.Context, e ChangeLogEntry) error
}

// RatingLookup resolves an initial MMR for a battle tag from an external
// stats site. Optional; used only at registration.
type RatingLookup interface {
	Lookup(ctx context.Context, battleTag string) (int, error)
}

// Repositories bundles the persistence collaborators of the Manager.
type Repositories struct {
	Players     PlayerRepository
	Sessions    SessionRepository
	Predictions PredictionRepository
	MatchLog    MatchLogRepository
	ChangeLog   ChangeLogRepository
}

// Rated reports whether the session type applies MMR deltas on conclusion.
func (t MatchType) Rated() bool {
	return t == MatchRanked5v5 || t == MatchManual5v5
}

// Manual reports whether the operator supplies the teams in roster order
// instead of letting the balancer split them.
func (t MatchType) Manual() bool {
	return t == MatchManual5v5 || t == MatchUnranked
}

// Opponent returns the other side.
func (w Winner) Opponent() Winner {
	if w == WinnerBlue {
		return WinnerRed
	}
	return WinnerBlue
}
