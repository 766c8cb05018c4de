// Package scoring implements the partial-credit rule for scoreline
// predictions and the leaderboard aggregation built on top of it. Everything
// here is pure: no clock, no I/O, no shared state.
package scoring

import (
	"strconv"
	"strings"
)

type Outcome int8

const (
	OutcomeDraw Outcome = iota
	OutcomeHome
	OutcomeAway
)

func outcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return OutcomeHome
	case home < away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// Point values, from exact hit down to nothing.
const (
	PointsExact        = 100
	PointsOutcomeDiff  = 70
	PointsOutcome      = 50
	PointsNearMiss     = 30
	PointsDistantMiss  = 10
	PointsNone         = 0
	pickSeparatorRunes = "-:x"
)

// Score rates one prediction against the final result. The rules are checked
// in order and the first hit wins:
//
//	exact scoreline                          -> 100
//	right outcome and right goal difference  -> 70
//	right outcome                            -> 50
//	total goal error of 1                    -> 30
//	total goal error of 2                    -> 10
//	anything else                            -> 0
func Score(predHome, predAway, actualHome, actualAway int) int {
	if predHome == actualHome && predAway == actualAway {
		return PointsExact
	}
	sameOutcome := outcomeOf(predHome, predAway) == outcomeOf(actualHome, actualAway)
	if sameOutcome && predHome-predAway == actualHome-actualAway {
		return PointsOutcomeDiff
	}
	if sameOutcome {
		return PointsOutcome
	}
	switch abs(predHome-actualHome) + abs(predAway-actualAway) {
	case 1:
		return PointsNearMiss
	case 2:
		return PointsDistantMiss
	}
	return PointsNone
}

// ParsePick extracts a predicted scoreline from a free-form string such as
// "2-1", "2:1" or "2x1". It reports ok=false for anything that does not split
// into exactly two integers; callers skip those predictions instead of
// failing.
func ParsePick(pick string) (home, away int, ok bool) {
	parts := strings.FieldsFunc(pick, func(r rune) bool {
		return strings.ContainsRune(pickSeparatorRunes, r)
	})
	if len(parts) != 2 {
		return 0, 0, false
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return home, away, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
