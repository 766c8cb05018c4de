package scoring

import (
	"reflect"
	"testing"

	"github.com/trungvq/football-predictions/models"
)

func settledMatch(id, scoreA, scoreB int, preds ...models.Prediction) models.Match {
	return models.Match{
		ID:          id,
		Status:      string(models.StatusFinished),
		IsLocked:    true,
		ScoreA:      &scoreA,
		ScoreB:      &scoreB,
		Predictions: preds,
	}
}

func pred(msv, name string, a, b int) models.Prediction {
	return models.Prediction{MSV: msv, FullName: name, ScoreA: a, ScoreB: b}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	if got := BuildLeaderboard(nil); len(got) != 0 {
		t.Fatalf("expected empty leaderboard, got %d entries", len(got))
	}
}

func TestBuildLeaderboardSkipsUnsettledMatches(t *testing.T) {
	two := 2
	matches := []models.Match{
		{ID: 1, Status: string(models.StatusUpcoming), Predictions: []models.Prediction{pred("BH001", "An", 1, 0)}},
		// Locked but without both scores: not scorable yet.
		{ID: 2, IsLocked: true, ScoreA: &two, Predictions: []models.Prediction{pred("BH001", "An", 1, 0)}},
	}
	if got := BuildLeaderboard(matches); len(got) != 0 {
		t.Fatalf("unsettled matches must not contribute, got %d entries", len(got))
	}
}

func TestBuildLeaderboardAggregatesPerUser(t *testing.T) {
	matches := []models.Match{
		settledMatch(1, 2, 1,
			pred("BH001", "An", 2, 1),   // 100
			pred("BH002", "Binh", 1, 0), // 70: home win, diff +1
		),
		settledMatch(2, 0, 0,
			pred("BH001", "An", 1, 1),   // 70: draw, same diff... exact diff both 0
			pred("BH002", "Binh", 2, 0), // 10: error sum 2
		),
	}
	got := BuildLeaderboard(matches)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].MSV != "BH001" || got[0].TotalPoints != 170 || got[0].ExactCount != 1 || got[0].PredictionCount != 2 {
		t.Fatalf("unexpected leader: %+v", got[0])
	}
	if got[1].MSV != "BH002" || got[1].TotalPoints != 80 {
		t.Fatalf("unexpected runner-up: %+v", got[1])
	}
	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Fatalf("ranks not filled: %d, %d", got[0].Rank, got[1].Rank)
	}
}

func TestBuildLeaderboardTieBrokenByExactHits(t *testing.T) {
	// Both users end on 100 points; the one with an exact hit ranks first
	// even though they appear later in the input.
	matches := []models.Match{
		settledMatch(1, 2, 1,
			pred("BH001", "An", 3, 1),   // 50: home win, wrong difference
			pred("BH002", "Binh", 2, 1), // 100 exact
		),
		settledMatch(2, 0, 2,
			pred("BH001", "An", 0, 1), // 50: away win, wrong difference
		),
	}
	got := BuildLeaderboard(matches)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].TotalPoints != 100 || got[1].TotalPoints != 100 {
		t.Fatalf("expected a 100-point tie, got %d and %d", got[0].TotalPoints, got[1].TotalPoints)
	}
	if got[0].MSV != "BH002" {
		t.Fatalf("exact hit must win the tie, got %s on top", got[0].MSV)
	}
}

func TestBuildLeaderboardStableOrderOnFullTie(t *testing.T) {
	// Two users with identical points and exact counts keep their
	// input-encounter order.
	matches := []models.Match{
		settledMatch(1, 2, 1,
			pred("BH009", "Zed", 2, 1),
			pred("BH001", "An", 2, 1),
		),
	}
	got := BuildLeaderboard(matches)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].MSV != "BH009" || got[1].MSV != "BH001" {
		t.Fatalf("full tie must keep encounter order, got %s then %s", got[0].MSV, got[1].MSV)
	}
}

func TestBuildLeaderboardExcludesAdminAccounts(t *testing.T) {
	matches := []models.Match{
		settledMatch(1, 2, 1,
			pred("Admin01", "Quản trị", 2, 1),
			pred("BH777", "system_admin", 2, 1),
			pred("BH001", "An", 2, 1),
		),
	}
	got := BuildLeaderboard(matches)
	if len(got) != 1 {
		t.Fatalf("admin accounts must be excluded, got %d entries", len(got))
	}
	if got[0].MSV != "BH001" || got[0].TotalPoints != 100 {
		t.Fatalf("unexpected surviving entry: %+v", got[0])
	}
}

func TestBuildLeaderboardMergesIdentityCase(t *testing.T) {
	matches := []models.Match{
		settledMatch(1, 1, 0, pred("bh001", "An", 1, 0)),
		settledMatch(2, 2, 2, pred("BH001", "An", 2, 2)),
	}
	got := BuildLeaderboard(matches)
	if len(got) != 1 {
		t.Fatalf("case-differing handles must merge, got %d entries", len(got))
	}
	if got[0].TotalPoints != 200 || got[0].ExactCount != 2 {
		t.Fatalf("unexpected merged totals: %+v", got[0])
	}
}

func TestBuildLeaderboardDeterministic(t *testing.T) {
	matches := []models.Match{
		settledMatch(1, 2, 1,
			pred("BH001", "An", 2, 1),
			pred("BH002", "Binh", 0, 0),
			pred("BH003", "Chi", 2, 0),
		),
		settledMatch(2, 0, 3,
			pred("BH002", "Binh", 1, 2),
			pred("BH001", "An", 0, 3),
		),
	}
	first := BuildLeaderboard(matches)
	second := BuildLeaderboard(matches)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}

func TestResolveIdentityPrefersHandle(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		key   string
		shown string
	}{
		{"handle over name", Entry{Handle: " BH001 ", FullName: "An"}, "bh001", "An"},
		{"id when no handle", Entry{UserID: "42", FullName: "An"}, "42", "An"},
		{"name as last resort", Entry{FullName: "An Nguyen"}, "an nguyen", "An Nguyen"},
		{"anonymous fallback", Entry{}, "ẩn danh", "Ẩn danh"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := ResolveIdentity(tc.entry)
			if id.Key != tc.key || id.Name != tc.shown {
				t.Fatalf("ResolveIdentity(%+v) = %+v, want key %q name %q", tc.entry, id, tc.key, tc.shown)
			}
		})
	}
}

func TestResolvePickFallsBackToString(t *testing.T) {
	a, b, ok := resolvePick(Entry{Pick: "2:1"})
	if !ok || a != 2 || b != 1 {
		t.Fatalf("resolvePick string fallback = (%d,%d,%v)", a, b, ok)
	}
	if _, _, ok := resolvePick(Entry{Pick: "abc"}); ok {
		t.Fatal("unparseable pick must not resolve")
	}
}
