package models

import "testing"

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		match  Match
		want   MatchStatus
	}{
		{"explicit live", Match{Status: "live"}, StatusLive},
		{"explicit upcoming", Match{Status: "upcoming"}, StatusUpcoming},
		{"explicit finished", Match{Status: "ft"}, StatusFinished},
		{"explicit wins over lock", Match{Status: "live", IsLocked: true}, StatusLive},
		{"locked without status", Match{IsLocked: true}, StatusFinished},
		{"unlocked without status", Match{}, StatusUpcoming},
		{"garbage status falls back", Match{Status: "paused", IsLocked: true}, StatusFinished},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.match.ResolveStatus(); got != tc.want {
				t.Fatalf("ResolveStatus() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHasResult(t *testing.T) {
	two, one := 2, 1
	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{"finished with scores", Match{Status: "ft", ScoreA: &two, ScoreB: &one}, true},
		{"locked with scores", Match{IsLocked: true, ScoreA: &two, ScoreB: &one}, true},
		{"finished missing a score", Match{Status: "ft", ScoreA: &two}, false},
		{"upcoming with scores", Match{Status: "upcoming", ScoreA: &two, ScoreB: &one}, false},
		{"live with scores", Match{Status: "live", ScoreA: &two, ScoreB: &one}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.match.HasResult(); got != tc.want {
				t.Fatalf("HasResult() = %v, want %v", got, tc.want)
			}
		})
	}
}
