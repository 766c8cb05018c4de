package feed

import (
	"reflect"
	"testing"
	"time"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/scoring"
)

var testNow = time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

func at(day, hour int) *time.Time {
	t := time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func match(id int, date string, start *time.Time, status string) models.Match {
	return models.Match{
		ID:          id,
		Competition: "Bảng A",
		TeamA:       "Home FC",
		TeamB:       "Away FC",
		Date:        date,
		StartTime:   start,
		Status:      status,
	}
}

func flatten(days []DayBucket) []int {
	var ids []int
	for _, d := range days {
		for _, m := range d.Matches {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func TestBuildDaysEmptyInput(t *testing.T) {
	if got := BuildDays(nil, testNow); len(got) != 0 {
		t.Fatalf("expected no buckets, got %d", len(got))
	}
	if got := BuildDays([]models.Match{}, testNow); len(got) != 0 {
		t.Fatalf("expected no buckets, got %d", len(got))
	}
}

func TestBuildDaysEveryMatchInExactlyOneBucket(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 14), "live"),
		match(2, "2025-01-20", at(20, 16), "upcoming"),
		match(3, "2025-01-21", at(21, 10), "upcoming"),
		match(4, "2025-01-18", at(18, 10), "ft"),
		match(5, "", nil, ""),
		match(6, "", at(19, 9), "ft"),
	}
	days := BuildDays(matches, testNow)

	seen := map[int]int{}
	total := 0
	for _, d := range days {
		for _, m := range d.Matches {
			seen[m.ID]++
			total++
		}
	}
	if total != len(matches) {
		t.Fatalf("bucket total %d, want %d", total, len(matches))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("match %d appears %d times", id, n)
		}
	}
}

func TestBuildDaysDerivesKeyFromStartTime(t *testing.T) {
	days := BuildDays([]models.Match{match(6, "", at(19, 9), "ft")}, testNow)
	if len(days) != 1 || days[0].Key != "2025-01-19" {
		t.Fatalf("expected key derived from start time, got %+v", days)
	}
}

func TestBuildDaysUnknownBucket(t *testing.T) {
	days := BuildDays([]models.Match{match(5, "", nil, "")}, testNow)
	if len(days) != 1 {
		t.Fatalf("expected one bucket, got %d", len(days))
	}
	if days[0].Key != UnknownDayKey {
		t.Fatalf("expected %q key, got %q", UnknownDayKey, days[0].Key)
	}
	// Unparseable keys fall back to the literal key as the label.
	if days[0].Label != UnknownDayKey {
		t.Fatalf("expected literal label, got %q", days[0].Label)
	}
}

func TestBuildDaysDayOrdering(t *testing.T) {
	matches := []models.Match{
		// Two finished days, one current day with a live match, one future day.
		match(1, "2025-01-17", at(17, 10), "ft"),
		match(2, "2025-01-18", at(18, 10), "ft"),
		match(3, "2025-01-20", at(20, 14), "live"),
		match(4, "2025-01-22", at(22, 10), "upcoming"),
	}
	days := BuildDays(matches, testNow)

	var keys []string
	for _, d := range days {
		keys = append(keys, d.Key)
	}
	// Days with live/upcoming matches first, soonest day first; then finished
	// days, most recent first.
	want := []string{"2025-01-20", "2025-01-22", "2025-01-18", "2025-01-17"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("day order = %v, want %v", keys, want)
	}
}

func TestBuildDaysMatchOrderingWithinDay(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 9), "ft"),       // finished in the morning
		match(2, "2025-01-20", at(20, 18), "upcoming"), // later today
		match(3, "2025-01-20", at(20, 14), "live"),
		match(4, "2025-01-20", at(20, 15), "upcoming"), // sooner than 18:00
		match(5, "2025-01-20", at(20, 11), "ft"), // finished most recently
	}
	days := BuildDays(matches, testNow)
	if len(days) != 1 {
		t.Fatalf("expected one bucket, got %d", len(days))
	}
	got := flatten(days)
	// live, then upcoming soonest-first, then finished most-recent-first.
	want := []int{3, 4, 2, 5, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match order = %v, want %v", got, want)
	}
}

func TestBuildDaysNoFinishedBeforeLive(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 9), "ft"),
		match(2, "2025-01-20", at(20, 14), "live"),
		match(3, "2025-01-20", at(20, 10), "ft"),
	}
	for _, d := range BuildDays(matches, testNow) {
		sawFinished := false
		for _, m := range d.Matches {
			if m.Status == models.StatusFinished {
				sawFinished = true
			}
			if m.Status == models.StatusLive && sawFinished {
				t.Fatalf("live match after finished match in %s: %v", d.Key, flatten([]DayBucket{d}))
			}
		}
	}
}

func TestBuildDaysUpcomingPastDueSortsAsSettled(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 9), "upcoming"), // kickoff passed, status never flipped
		match(2, "2025-01-20", at(20, 15), "upcoming"),
	}
	got := flatten(BuildDays(matches, testNow))
	want := []int{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match order = %v, want %v", got, want)
	}
}

func TestBuildDaysMissingStartTimeSortsAtEpoch(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", nil, "upcoming"),       // no time at all: epoch, past due
		match(2, "2025-01-20", at(20, 15), "upcoming"),
	}
	got := flatten(BuildDays(matches, testNow))
	// The epoch-timed match counts as past due and sorts behind the real one.
	want := []int{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match order = %v, want %v", got, want)
	}
}

func TestBuildDaysDeterministic(t *testing.T) {
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 14), "live"),
		match(2, "2025-01-18", at(18, 10), "ft"),
		match(3, "", nil, ""),
		match(4, "2025-01-22", at(22, 10), "upcoming"),
	}
	first := BuildDays(matches, testNow)
	second := BuildDays(matches, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildDaysDoesNotMutateInput(t *testing.T) {
	matches := []models.Match{
		match(2, "2025-01-20", at(20, 16), "upcoming"),
		match(1, "2025-01-20", at(20, 14), "live"),
	}
	BuildDays(matches, testNow)
	if matches[0].ID != 2 || matches[1].ID != 1 {
		t.Fatal("input slice was reordered")
	}
}

func TestBuildDaysLabels(t *testing.T) {
	days := BuildDays([]models.Match{match(1, "2025-01-20", at(20, 14), "live")}, testNow)
	if days[0].Label != "Monday, 20 January 2025" {
		t.Fatalf("unexpected label %q", days[0].Label)
	}
}

func TestKickoffDisplayPriority(t *testing.T) {
	tests := []struct {
		name  string
		match models.Match
		want  string
	}{
		{"raw kickoff wins", models.Match{Kickoff: "17:30", StartTime: at(20, 14)}, "17:30"},
		{"start time formatted", models.Match{StartTime: at(20, 14)}, "20/01 14:00"},
		{"nothing available", models.Match{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := kickoffDisplay(tc.match); got != tc.want {
				t.Fatalf("kickoffDisplay = %q, want %q", got, tc.want)
			}
		})
	}
}

// Full scenario: a live and a finished match share a day, tomorrow has an
// upcoming match, and the finished match carries one exact prediction.
func TestFeedAndLeaderboardScenario(t *testing.T) {
	two, one := 2, 1
	finished := match(2, "2025-01-20", at(20, 9), "ft")
	finished.ScoreA, finished.ScoreB = &two, &one
	finished.IsLocked = true
	finished.Predictions = []models.Prediction{
		{MSV: "u1", ScoreA: 2, ScoreB: 1},
	}
	matches := []models.Match{
		match(1, "2025-01-20", at(20, 14), "live"),
		finished,
		match(3, "2025-01-21", at(21, 14), "upcoming"),
	}

	days := BuildDays(matches, testNow)
	if len(days) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(days))
	}
	if days[0].Key != "2025-01-20" || days[1].Key != "2025-01-21" {
		t.Fatalf("day order = %s, %s", days[0].Key, days[1].Key)
	}
	if days[0].Matches[0].ID != 1 || days[0].Matches[1].ID != 2 {
		t.Fatalf("live match must precede finished one, got %v", flatten(days[:1]))
	}

	board := scoring.BuildLeaderboard(matches)
	if len(board) != 1 {
		t.Fatalf("expected one leaderboard entry, got %d", len(board))
	}
	if board[0].MSV != "u1" || board[0].TotalPoints != 100 {
		t.Fatalf("unexpected entry: %+v", board[0])
	}
}
