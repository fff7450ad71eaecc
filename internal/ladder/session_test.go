package ladder

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, Repositories) {
	t.Helper()
	repos := newMemRepos()
	return NewManager(repos, nil, "season-1", zerolog.Nop()), repos
}

// seedPlayers registers players 1..n with ratings 2200, 2210, 2220, ...
func seedPlayers(t *testing.T, repos Repositories, n int) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		p := &Player{
			ID:        id,
			BattleTag: "Player#" + string(rune('A'+i)),
			MMR:       2200 + i*10,
			Stats:     PlayerStats{Season: "season-1"},
		}
		p.League, p.Division = LeagueOf(p.MMR)
		require.NoError(t, repos.Players.Add(context.Background(), p))
		ids[i] = id
	}
	return ids
}

var testParams = ScoringParams{DeltaMMR: 4, WinPoints: 10, LosePoints: 5}

func TestCreateSession(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "Cursed Hollow", testParams)
	require.NoError(t, err)
	assert.Equal(t, StateActive, sess.State)
	assert.Len(t, sess.Blue, 5)
	assert.Len(t, sess.Red, 5)
	assert.Equal(t, "Cursed Hollow", sess.Map)
	assert.NotZero(t, sess.ID)

	got, err := m.GetActiveSession(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestCreateSessionRoomBusy(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	_, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)

	_, err = m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	assert.ErrorIs(t, err, ErrSessionAlreadyActive)

	// A different room is unaffected.
	_, err = m.CreateSession(ctx, "room-2", MatchRanked5v5, ids, "", testParams)
	assert.NoError(t, err)
}

func TestCreateSessionValidation(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	_, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids[:8], "", testParams)
	assert.ErrorIs(t, err, ErrInvalidRosterSize)

	unknown := append(append([]int64(nil), ids[:9]...), 999)
	_, err = m.CreateSession(ctx, "room-1", MatchRanked5v5, unknown, "", testParams)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	// A failed create leaves the room free.
	_, err = m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	assert.NoError(t, err)
}

func TestCreateSessionBlockedPlayer(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	p, err := repos.Players.Get(ctx, ids[3])
	require.NoError(t, err)
	p.Blocked = true
	require.NoError(t, repos.Players.Save(ctx, p))

	_, err = m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	var blocked *PlayerBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, ids[3], blocked.PlayerID)
}

func TestCancelSession(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)

	cancelled, err := m.CancelSession(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, cancelled.ID)
	assert.Equal(t, StateCancelled, cancelled.State)

	// No rating moved.
	for i, id := range ids {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2200+i*10, p.MMR)
		assert.Zero(t, p.Stats.Win)
		assert.Zero(t, p.Stats.Lose)
	}

	// The room is free again.
	_, err = m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	assert.NoError(t, err)
}

func TestCancelSessionWithoutActive(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.CancelSession(context.Background(), "room-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcludeSessionAppliesResults(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "Braxis Holdout", testParams)
	require.NoError(t, err)

	before := make(map[int64]*Player)
	for _, id := range ids {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		before[id] = p
	}

	done, err := m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)
	assert.Equal(t, StateConcluded, done.State)
	assert.Equal(t, WinnerBlue, done.Winner)

	for _, id := range sess.Blue {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before[id].MMR+4, p.MMR, "winner %d", id)
		assert.Equal(t, 1, p.Stats.Win)
		assert.Equal(t, 0, p.Stats.Lose)
		assert.Equal(t, 1, p.Stats.Winstreak)
		assert.Equal(t, 1, p.Stats.MaxWinstreak)
		assert.Equal(t, 10, p.Stats.Points)
	}
	for _, id := range sess.Red {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before[id].MMR-4, p.MMR, "loser %d", id)
		assert.Equal(t, 0, p.Stats.Win)
		assert.Equal(t, 1, p.Stats.Lose)
		assert.Equal(t, -1, p.Stats.Winstreak)
		assert.Equal(t, 5, p.Stats.Points)
	}
}

func TestConcludeSessionWithoutActive(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ConcludeSession(context.Background(), "room-1", WinnerBlue)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcludeSessionTwice(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	_, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)
	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	// The session is no longer active, so a second conclude cannot touch it.
	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	for _, id := range ids {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Stats.Win+p.Stats.Lose, "player %d applied once", id)
	}
}

// A conclude that died half way is re-run: players already in the match log
// keep their state, the rest get theirs applied exactly once.
func TestConcludeSessionRetryAfterPartialFailure(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)

	// Simulate the first run having applied one blue player before dying.
	firstID := sess.Blue[0]
	p, err := repos.Players.Get(ctx, firstID)
	require.NoError(t, err)
	preMMR := p.MMR
	p.MMR += 4
	p.Stats.Win = 1
	p.Stats.Winstreak = 1
	p.Stats.MaxWinstreak = 1
	p.Stats.Points = 10
	require.NoError(t, repos.Players.Save(ctx, p))
	require.NoError(t, repos.MatchLog.Record(ctx, MatchLogEntry{
		SessionID: sess.ID, PlayerID: firstID, Season: "season-1",
		Won: true, Points: 10, DeltaMMR: 4,
	}))

	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	p, err = repos.Players.Get(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, preMMR+4, p.MMR, "pre-applied player must not move again")
	assert.Equal(t, 1, p.Stats.Win)
	assert.Equal(t, 10, p.Stats.Points)

	for _, id := range sess.Blue[1:] {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Stats.Win, "player %d", id)
	}
}

func TestConcludeUnrankedLeavesRatingAlone(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	_, err := m.CreateSession(ctx, "room-1", MatchUnranked, ids, "", testParams)
	require.NoError(t, err)
	sess, err := m.ConcludeSession(ctx, "room-1", WinnerRed)
	require.NoError(t, err)

	for i, id := range ids {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2200+i*10, p.MMR, "player %d rating must not move", id)
	}
	// Counters and points still move.
	winner, err := repos.Players.Get(ctx, sess.Red[0])
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Stats.Win)
	assert.Equal(t, 10, winner.Stats.Points)
	assert.Equal(t, 1, winner.Stats.Winstreak)
}

func TestConcludeDuelLeavesRatingAlone(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 2)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchDuel, ids, "", testParams)
	require.NoError(t, err)
	require.Len(t, sess.Blue, 1)
	require.Len(t, sess.Red, 1)

	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	for i, id := range ids {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2200+i*10, p.MMR)
	}
}

// Streak bonus uses the streak before the match: a player on a long run
// gains more than the base delta.
func TestConcludeStreakBonus(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	// Put every future blue player on a 6-game run.
	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)
	before := make(map[int64]int)
	for _, id := range sess.Blue {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		p.Stats.Winstreak = 6
		p.Stats.MaxWinstreak = 6
		before[id] = p.MMR
		require.NoError(t, repos.Players.Save(ctx, p))
	}

	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	for _, id := range sess.Blue {
		p, err := repos.Players.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before[id]+8, p.MMR, "player %d gets base 4 plus bonus 4", id)
		assert.Equal(t, 7, p.Stats.Winstreak)
		assert.Equal(t, 7, p.Stats.MaxWinstreak)
	}
}

func TestConcludeUpdatesLeague(t *testing.T) {
	m, repos := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		id := int64(i + 1)
		p := &Player{ID: id, BattleTag: "P#0", MMR: 2448, Stats: PlayerStats{Season: "season-1"}}
		p.League, p.Division = LeagueOf(p.MMR)
		require.NoError(t, repos.Players.Add(ctx, p))
	}
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)
	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	// 2448 + 4 = 2452 crosses into Silver 5.
	p, err := repos.Players.Get(ctx, sess.Blue[0])
	require.NoError(t, err)
	assert.Equal(t, LeagueSilver, p.League)
	assert.Equal(t, 5, p.Division)
}

func TestConcludeFinalizesPredictions(t *testing.T) {
	m, repos := newTestManager(t)
	ids := seedPlayers(t, repos, 10)
	ctx := context.Background()

	sess, err := m.CreateSession(ctx, "room-1", MatchRanked5v5, ids, "", testParams)
	require.NoError(t, err)

	require.NoError(t, m.Tally().Record(ctx, 100, sess.ID, WinnerBlue))
	require.NoError(t, m.Tally().Record(ctx, 101, sess.ID, WinnerRed))

	_, err = m.ConcludeSession(ctx, "room-1", WinnerBlue)
	require.NoError(t, err)

	correct, wrong, err := m.Tally().StatsFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, correct)
	assert.Equal(t, 0, wrong)

	correct, wrong, err = m.Tally().StatsFor(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 0, correct)
	assert.Equal(t, 1, wrong)
}
