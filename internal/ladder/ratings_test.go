package ladder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeagueOfBoundaries(t *testing.T) {
	cases := []struct {
		rating   int
		league   League
		division int
	}{
		{0, LeagueBronze, 5},
		{2199, LeagueBronze, 5},
		{2249, LeagueBronze, 5},
		{2250, LeagueBronze, 4},
		{2449, LeagueBronze, 1},
		{2450, LeagueSilver, 5},
		{2550, LeagueGold, 5},
		{2675, LeaguePlatinum, 5},
		{2775, LeagueDiamond, 5},
		{2899, LeagueDiamond, 1},
		{2900, LeagueMaster, 0},
		{3099, LeagueMaster, 0},
		{3100, LeagueGrandmaster, 0},
		{4000, LeagueGrandmaster, 0},
	}
	for _, c := range cases {
		league, division := LeagueOf(c.rating)
		assert.Equal(t, c.league, league, "rating %d", c.rating)
		assert.Equal(t, c.division, division, "rating %d", c.rating)
	}
}

func TestLeagueOfNegativeClampsToBottom(t *testing.T) {
	league, division := LeagueOf(-50)
	assert.Equal(t, LeagueBronze, league)
	assert.Equal(t, 5, division)
}

// Band order must be monotonic: a higher rating never maps to a lower band.
func TestLeagueOfMonotonic(t *testing.T) {
	bandIndex := func(rating int) int {
		league, division := LeagueOf(rating)
		for i, th := range RatingThresholds {
			if th.League == league && th.Division == division {
				return i
			}
		}
		t.Fatalf("no band for rating %d", rating)
		return -1
	}
	prev := bandIndex(0)
	for r := 1; r <= 3200; r++ {
		cur := bandIndex(r)
		assert.GreaterOrEqual(t, cur, prev, "rating %d", r)
		prev = cur
	}
}

func TestDeltaStreakBonus(t *testing.T) {
	// No streak, no bonus.
	assert.Equal(t, 4, Delta(4, 0, 2000, true))
	assert.Equal(t, 4, Delta(4, 2, 2000, true))
	// Short run adds 2, long run adds 4.
	assert.Equal(t, 6, Delta(4, 3, 2000, true))
	assert.Equal(t, 6, Delta(4, 5, 2000, true))
	assert.Equal(t, 8, Delta(4, 6, 2000, true))
	// Losing runs count the same by magnitude.
	assert.Equal(t, 6, Delta(4, -3, 2000, false))
	assert.Equal(t, 8, Delta(4, -6, 2000, false))
}

func TestDeltaHalvedAboveMaster(t *testing.T) {
	// Damping applies after the bonus, on the combined value.
	assert.Equal(t, 4, Delta(4, 6, 2950, true))
	assert.Equal(t, 2, Delta(4, 0, 2901, true))
	assert.Equal(t, 3, Delta(4, 3, 3100, false))
	// Exactly 2900 is not damped.
	assert.Equal(t, 4, Delta(4, 0, 2900, true))
}

func TestDeltaSameMagnitudeForWinAndLoss(t *testing.T) {
	for _, ws := range []int{0, 3, 6, -3, -6} {
		for _, mmr := range []int{2400, 2901} {
			assert.Equal(t, Delta(4, ws, mmr, true), Delta(4, ws, mmr, false),
				"ws %d mmr %d", ws, mmr)
		}
	}
}
