package ladder

import (
	"context"

	"github.com/rs/zerolog"
)

// PredictionTally records spectator predictions against active sessions
// and scores them once the session concludes.
type PredictionTally struct {
	sessions    SessionRepository
	predictions PredictionRepository
	log         zerolog.Logger
}

// NewPredictionTally creates a tally over the given repositories.
func NewPredictionTally(sessions SessionRepository, predictions PredictionRepository, log zerolog.Logger) *PredictionTally {
	return &PredictionTally{
		sessions:    sessions,
		predictions: predictions,
		log:         log.With().Str("component", "predictions").Logger(),
	}
}

// Record upserts a predictor's choice for a session. Only active sessions
// accept predictions; the last choice per predictor wins.
func (t *PredictionTally) Record(ctx context.Context, predictorID, sessionID int64, side Winner) error {
	sess, err := t.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil || sess.State != StateActive {
		return ErrSessionNotFound
	}
	return t.predictions.Upsert(ctx, sessionID, predictorID, side)
}

// Finalize marks every prediction of the session correct or incorrect
// against the winner. Calling it again for an already finalized session is
// a no-op: rows that carry a correctness value are left alone.
func (t *PredictionTally) Finalize(ctx context.Context, sessionID int64, winner Winner) error {
	preds, err := t.predictions.AllFor(ctx, sessionID)
	if err != nil {
		return err
	}
	finalized := 0
	for _, p := range preds {
		if p.Correct != nil {
			continue
		}
		if err := t.predictions.MarkCorrectness(ctx, sessionID, p.PlayerID, p.Side == winner); err != nil {
			return err
		}
		finalized++
	}
	if finalized > 0 {
		t.log.Info().Int64("session", sessionID).Int("votes", finalized).Msg("predictions finalized")
	}
	return nil
}

// StatsFor returns the predictor's lifetime correct/incorrect counts.
func (t *PredictionTally) StatsFor(ctx context.Context, predictorID int64) (correct, wrong int, err error) {
	return t.predictions.StatsFor(ctx, predictorID)
}
