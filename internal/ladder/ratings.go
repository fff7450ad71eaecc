package ladder

// RatingThreshold opens a league/division band at MinRating. A rating
// belongs to the greatest threshold not exceeding it, so boundary values
// open the new band rather than close the old one.
type RatingThreshold struct {
	League    League
	Division  int
	MinRating int
}

// RatingThresholds is the full ascending band table. Divisions run from 5
// (lowest) to 1 (highest); Master and Grandmaster are undivided (0).
var RatingThresholds = []RatingThreshold{
	{LeagueBronze, 5, 0},
	{LeagueBronze, 4, 2250},
	{LeagueBronze, 3, 2300},
	{LeagueBronze, 2, 2350},
	{LeagueBronze, 1, 2400},
	{LeagueSilver, 5, 2450},
	{LeagueSilver, 4, 2470},
	{LeagueSilver, 3, 2490},
	{LeagueSilver, 2, 2510},
	{LeagueSilver, 1, 2530},
	{LeagueGold, 5, 2550},
	{LeagueGold, 4, 2575},
	{LeagueGold, 3, 2600},
	{LeagueGold, 2, 2625},
	{LeagueGold, 1, 2650},
	{LeaguePlatinum, 5, 2675},
	{LeaguePlatinum, 4, 2695},
	{LeaguePlatinum, 3, 2715},
	{LeaguePlatinum, 2, 2735},
	{LeaguePlatinum, 1, 2755},
	{LeagueDiamond, 5, 2775},
	{LeagueDiamond, 4, 2800},
	{LeagueDiamond, 3, 2825},
	{LeagueDiamond, 2, 2850},
	{LeagueDiamond, 1, 2875},
	{LeagueMaster, 0, 2900},
	{LeagueGrandmaster, 0, 3100},
}

// LeagueOf maps a rating to its league and division. Total over the whole
// int domain: ratings below the first threshold clamp to Bronze 5, ratings
// above the last stay Grandmaster.
func LeagueOf(rating int) (League, int) {
	band := RatingThresholds[0]
	for _, t := range RatingThresholds[1:] {
		if rating < t.MinRating {
			break
		}
		band = t
	}
	return band.League, band.Division
}

// streak bonus tiers: a run longer than 5 adds 4, longer than 2 adds 2.
func streakBonus(winStreak int) int {
	m := winStreak
	if m < 0 {
		m = -m
	}
	switch {
	case m > 5:
		return 4
	case m > 2:
		return 2
	}
	return 0
}

// Delta computes the unsigned MMR change for one player of a concluded
// match. winStreak and priorRating are the player's values before the
// match is applied. The magnitude is the same for wins and losses; the
// caller applies the sign. Players already above 2900 have the combined
// delta halved to slow inflation at the top of the ladder.
func Delta(baseDelta, winStreak, priorRating int, won bool) int {
	d := baseDelta + streakBonus(winStreak)
	if priorRating > 2900 {
		d /= 2
	}
	return d
}
