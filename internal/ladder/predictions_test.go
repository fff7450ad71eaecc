package ladder

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTally(t *testing.T) (*PredictionTally, *memSessions, *memPredictions) {
	t.Helper()
	sessions := newMemSessions()
	predictions := newMemPredictions()
	return NewPredictionTally(sessions, predictions, zerolog.Nop()), sessions, predictions
}

func activeSession(t *testing.T, sessions *memSessions) *MatchSession {
	t.Helper()
	s := &MatchSession{RoomID: "room-1", Type: MatchRanked5v5, State: StateActive}
	require.NoError(t, sessions.Add(context.Background(), s))
	return s
}

func TestRecordPrediction(t *testing.T) {
	tally, sessions, predictions := newTestTally(t)
	sess := activeSession(t, sessions)
	ctx := context.Background()

	require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerBlue))

	preds, err := predictions.AllFor(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, WinnerBlue, preds[0].Side)
	assert.Nil(t, preds[0].Correct)
}

func TestRecordPredictionOverwrites(t *testing.T) {
	tally, sessions, predictions := newTestTally(t)
	sess := activeSession(t, sessions)
	ctx := context.Background()

	require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerBlue))
	require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerRed))

	preds, err := predictions.AllFor(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, WinnerRed, preds[0].Side)
}

func TestRecordPredictionRequiresActiveSession(t *testing.T) {
	tally, sessions, _ := newTestTally(t)
	ctx := context.Background()

	err := tally.Record(ctx, 100, 42, WinnerBlue)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := activeSession(t, sessions)
	sess.State = StateConcluded
	require.NoError(t, sessions.Save(ctx, sess))

	err = tally.Record(ctx, 100, sess.ID, WinnerBlue)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFinalizeScoresPredictions(t *testing.T) {
	tally, sessions, _ := newTestTally(t)
	sess := activeSession(t, sessions)
	ctx := context.Background()

	require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerBlue))
	require.NoError(t, tally.Record(ctx, 101, sess.ID, WinnerRed))
	require.NoError(t, tally.Record(ctx, 102, sess.ID, WinnerBlue))

	require.NoError(t, tally.Finalize(ctx, sess.ID, WinnerBlue))

	for _, c := range []struct {
		player  int64
		correct int
		wrong   int
	}{
		{100, 1, 0},
		{101, 0, 1},
		{102, 1, 0},
	} {
		correct, wrong, err := tally.StatsFor(ctx, c.player)
		require.NoError(t, err)
		assert.Equal(t, c.correct, correct, "player %d", c.player)
		assert.Equal(t, c.wrong, wrong, "player %d", c.player)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	tally, sessions, _ := newTestTally(t)
	sess := activeSession(t, sessions)
	ctx := context.Background()

	require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerBlue))
	require.NoError(t, tally.Finalize(ctx, sess.ID, WinnerBlue))
	// A second pass, even with the opposite winner, changes nothing.
	require.NoError(t, tally.Finalize(ctx, sess.ID, WinnerRed))

	correct, wrong, err := tally.StatsFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, correct)
	assert.Equal(t, 0, wrong)
}

func TestStatsAccumulateAcrossSessions(t *testing.T) {
	tally, sessions, _ := newTestTally(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sess := activeSession(t, sessions)
		require.NoError(t, tally.Record(ctx, 100, sess.ID, WinnerBlue))
		winner := WinnerBlue
		if i == 2 {
			winner = WinnerRed
		}
		require.NoError(t, tally.Finalize(ctx, sess.ID, winner))
		sess.State = StateConcluded
		require.NoError(t, sessions.Save(ctx, sess))
	}

	correct, wrong, err := tally.StatsFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, correct)
	assert.Equal(t, 1, wrong)
}
