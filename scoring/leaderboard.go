package scoring

import (
	"sort"
	"strconv"
	"strings"

	"github.com/trungvq/football-predictions/models"
)

const anonymousName = "Ẩn danh"

// Entry is one raw prediction as attached to a settled match. Picks arrive
// either as a pair of integers or as a free-form string; the pair wins when
// both are present.
type Entry struct {
	UserID   string
	Handle   string
	FullName string
	Pick     string
	PickA    *int
	PickB    *int
}

// Identity is the canonical owner of a prediction, resolved exactly once.
// Key is what predictions are grouped by; Name is what the leaderboard shows.
type Identity struct {
	Key  string
	Name string
}

// ResolveIdentity normalizes the differently-named owner fields into one
// identity: an explicit handle or id is preferred over the display name, and
// the key is trimmed and lowercased so casing differences collapse.
func ResolveIdentity(e Entry) Identity {
	name := firstNonEmpty(e.FullName, e.Handle, e.UserID, anonymousName)
	key := firstNonEmpty(e.Handle, e.UserID, e.FullName, anonymousName)
	return Identity{
		Key:  strings.ToLower(strings.TrimSpace(key)),
		Name: name,
	}
}

// IsAdminIdentity reports whether a resolved identity belongs to an
// administrative or test account. Those never appear in public rankings.
func IsAdminIdentity(id Identity) bool {
	return containsAdmin(id.Key) || containsAdmin(id.Name)
}

func containsAdmin(s string) bool {
	return strings.Contains(strings.ToLower(s), "admin")
}

// BuildLeaderboard recomputes the ranking from the match list alone. It is
// the fallback used when the prediction store cannot supply the authoritative
// leaderboard: only settled matches count, unparseable picks are skipped, and
// ties beyond (points, exact hits) keep input-encounter order.
func BuildLeaderboard(matches []models.Match) []models.LeaderboardEntry {
	type tally struct {
		name   string
		msv    string
		points int
		count  int
		exact  int
	}

	tallies := make(map[string]*tally)
	var order []string

	for _, m := range matches {
		if !m.HasResult() {
			continue
		}
		actualA, actualB := *m.ScoreA, *m.ScoreB
		for _, p := range m.Predictions {
			e := entryFromPrediction(p)
			id := ResolveIdentity(e)
			if IsAdminIdentity(id) {
				continue
			}
			pickA, pickB, ok := resolvePick(e)
			if !ok {
				continue
			}
			t, seen := tallies[id.Key]
			if !seen {
				t = &tally{name: id.Name, msv: e.Handle}
				tallies[id.Key] = t
				order = append(order, id.Key)
			}
			points := Score(pickA, pickB, actualA, actualB)
			t.count++
			t.points += points
			if points == PointsExact {
				t.exact++
			}
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, key := range order {
		t := tallies[key]
		entries = append(entries, models.LeaderboardEntry{
			MSV:             t.msv,
			FullName:        t.name,
			TotalPoints:     t.points,
			PredictionCount: t.count,
			ExactCount:      t.exact,
		})
	}
	stableRank(entries)
	return entries
}

// stableRank orders entries by points then exact hits, both descending,
// leaving further ties in their existing order, and fills in ranks.
func stableRank(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].ExactCount > entries[j].ExactCount
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func entryFromPrediction(p models.Prediction) Entry {
	e := Entry{
		Handle:   p.MSV,
		FullName: p.FullName,
		PickA:    intPtr(p.ScoreA),
		PickB:    intPtr(p.ScoreB),
	}
	if p.UserID > 0 {
		e.UserID = strconv.Itoa(p.UserID)
	}
	return e
}

func resolvePick(e Entry) (int, int, bool) {
	if e.PickA != nil && e.PickB != nil {
		return *e.PickA, *e.PickB, true
	}
	return ParsePick(e.Pick)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func intPtr(v int) *int { return &v }
