package ladder

import "sort"

// RosterEntry pairs a player with the rating used for balancing.
type RosterEntry struct {
	PlayerID int64
	Rating   int
}

// RequiredRosterSize returns the roster length a match type expects.
func RequiredRosterSize(t MatchType) int {
	switch t {
	case MatchRanked5v5, MatchManual5v5, MatchUnranked:
		return 10
	case MatchOneVsFour:
		return 4
	default:
		return 2
	}
}

// SplitTeams partitions a roster into blue and red teams of equal size.
// Manual types keep the operator's order: first half blue, second half
// red. Balanced types minimize the absolute difference of team rating
// sums. The returned entries carry the original ratings; collision
// adjustments are local to the search.
func SplitTeams(t MatchType, roster []RosterEntry) (blue, red []RosterEntry, err error) {
	if len(roster) != RequiredRosterSize(t) {
		return nil, nil, ErrInvalidRosterSize
	}
	if t.Manual() {
		half := len(roster) / 2
		return roster[:half], roster[half:], nil
	}
	blue, red = balancedSplit(roster)
	return blue, red, nil
}

// dedupRatings returns a copy of the roster with strictly distinct
// ratings. Entries are walked in ascending rating order (ties by input
// position) and any rating not above its predecessor is bumped to
// predecessor+1, so duplicates move up without leapfrogging a distinct
// rating.
func dedupRatings(roster []RosterEntry) []RosterEntry {
	out := make([]RosterEntry, len(roster))
	copy(out, roster)

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return out[idx[a]].Rating < out[idx[b]].Rating
	})
	for k := 1; k < len(idx); k++ {
		prev, cur := idx[k-1], idx[k]
		if out[cur].Rating <= out[prev].Rating {
			out[cur].Rating = out[prev].Rating + 1
		}
	}
	return out
}

// balancedSplit fixes the two highest-rated players on opposite sides and
// exhaustively searches every split of the remaining players, keeping the
// one with the smallest rating-sum difference. The remainder is enumerated
// by player id ascending in lexicographic combination order, so ties break
// on the earliest-found split and the result is deterministic.
func balancedSplit(roster []RosterEntry) (blue, red []RosterEntry) {
	players := dedupRatings(roster)
	sort.Slice(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	anchorBlue, anchorRed := players[0], players[1]
	rest := players[2:]
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].PlayerID < rest[j].PlayerID
	})

	restSum := 0
	for _, p := range rest {
		restSum += p.Rating
	}

	k := len(players)/2 - 1
	var bestSel []int
	bestDiff := -1
	eachCombination(len(rest), k, func(sel []int) {
		blueSum := anchorBlue.Rating
		for _, i := range sel {
			blueSum += rest[i].Rating
		}
		redSum := anchorRed.Rating + restSum - (blueSum - anchorBlue.Rating)
		diff := blueSum - redSum
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			bestSel = append(bestSel[:0], sel...)
		}
	})

	onBlue := make(map[int]bool, k)
	for _, i := range bestSel {
		onBlue[i] = true
	}

	// Rebuild the teams with the original, unadjusted ratings.
	orig := make(map[int64]int, len(roster))
	for _, p := range roster {
		orig[p.PlayerID] = p.Rating
	}
	withOrig := func(p RosterEntry) RosterEntry {
		return RosterEntry{PlayerID: p.PlayerID, Rating: orig[p.PlayerID]}
	}

	blue = append(blue, withOrig(anchorBlue))
	red = append(red, withOrig(anchorRed))
	for i, p := range rest {
		if onBlue[i] {
			blue = append(blue, withOrig(p))
		} else {
			red = append(red, withOrig(p))
		}
	}
	return blue, red
}

// eachCombination visits every k-subset of [0,n) in lexicographic order.
func eachCombination(n, k int, visit func(sel []int)) {
	sel := make([]int, k)
	for i := range sel {
		sel[i] = i
	}
	for {
		visit(sel)
		i := k - 1
		for i >= 0 && sel[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		sel[i]++
		for j := i + 1; j < k; j++ {
			sel[j] = sel[j-1] + 1
		}
	}
}
