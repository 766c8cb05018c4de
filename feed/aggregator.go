// Package feed turns the flat match list into the day-grouped view the
// results page renders: one bucket per calendar day, days and matches ordered
// so the most relevant thing is always on top.
package feed

import (
	"sort"
	"time"

	"github.com/trungvq/football-predictions/models"
)

// UnknownDayKey groups matches that carry neither a date nor a start time.
const UnknownDayKey = "unknown"

const (
	dayKeyLayout  = "2006-01-02"
	dayLabel      = "Monday, 2 January 2006"
	kickoffLayout = "02/01 15:04"
)

type TeamView struct {
	Name  string  `json:"name"`
	Score *int    `json:"score,omitempty"`
	Logo  *string `json:"logo,omitempty"`
	Color *string `json:"color,omitempty"`
}

// MatchView is a single match as the feed presents it. Status is resolved
// once here; consumers never re-derive it.
type MatchView struct {
	ID          int                 `json:"id"`
	Competition string              `json:"competition"`
	Status      models.MatchStatus  `json:"status"`
	Kickoff     string              `json:"kickoff"`
	RawKickoff  string              `json:"raw_kickoff,omitempty"`
	Minute      *string             `json:"minute,omitempty"`
	Date        string              `json:"date"`
	StartTime   *time.Time          `json:"start_time,omitempty"`
	Home        TeamView            `json:"home"`
	Away        TeamView            `json:"away"`
	Events      []models.MatchEvent `json:"events"`
	Predictions []models.Prediction `json:"predictions"`
	Stage       *string             `json:"stage,omitempty"`
	Group       *string             `json:"group,omitempty"`
	MatchCode   *string             `json:"match_code,omitempty"`
}

type DayBucket struct {
	Key     string      `json:"id"`
	Label   string      `json:"label"`
	Matches []MatchView `json:"matches"`
}

// BuildDays groups matches into day buckets and orders both levels. It is a
// pure function of its arguments: the same input and clock always produce the
// same output, and no input shape makes it fail. Malformed dates degrade into
// the "unknown" bucket and missing start times sort at epoch.
func BuildDays(matches []models.Match, now time.Time) []DayBucket {
	if len(matches) == 0 {
		return []DayBucket{}
	}

	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := priorityClass(sorted[i], now), priorityClass(sorted[j], now)
		if ci != cj {
			return ci < cj
		}
		ti, tj := effectiveTime(sorted[i]), effectiveTime(sorted[j])
		if ci == classSettled {
			// Finished matches: most recent first.
			return tj.Before(ti)
		}
		// Live and upcoming: soonest first.
		return ti.Before(tj)
	})

	grouped := make(map[string][]MatchView)
	var keys []string
	for _, m := range sorted {
		key := dayKey(m)
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], toView(m, key))
	}

	hasUpcoming := make(map[string]bool, len(keys))
	for key, views := range grouped {
		for _, v := range views {
			if v.Status == models.StatusLive || v.Status == models.StatusUpcoming {
				hasUpcoming[key] = true
				break
			}
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if hasUpcoming[a] != hasUpcoming[b] {
			return hasUpcoming[a]
		}
		ta, errA := time.Parse(dayKeyLayout, a)
		tb, errB := time.Parse(dayKeyLayout, b)
		if errA == nil && errB == nil && !ta.Equal(tb) {
			if hasUpcoming[a] {
				return ta.Before(tb)
			}
			return tb.Before(ta)
		}
		return a < b
	})

	days := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		days = append(days, DayBucket{
			Key:     key,
			Label:   dayLabelFor(key),
			Matches: grouped[key],
		})
	}
	return days
}

// Priority classes for ordering within a day. Upcoming matches already past
// their scheduled time fall into the settled class until the status flips;
// that mirrors how the site has always ordered them.
const (
	classLive     = 0
	classUpcoming = 1
	classSettled  = 2
)

func priorityClass(m models.Match, now time.Time) int {
	switch m.ResolveStatus() {
	case models.StatusLive:
		return classLive
	case models.StatusUpcoming:
		if !effectiveTime(m).Before(now) {
			return classUpcoming
		}
	}
	return classSettled
}

// effectiveTime is the best available timestamp for ordering. Matches without
// a usable start time sort at the epoch.
func effectiveTime(m models.Match) time.Time {
	if m.StartTime != nil {
		return *m.StartTime
	}
	return time.Unix(0, 0).UTC()
}

func dayKey(m models.Match) string {
	if m.Date != "" {
		return m.Date
	}
	if m.StartTime != nil {
		return m.StartTime.Format(dayKeyLayout)
	}
	return UnknownDayKey
}

func dayLabelFor(key string) string {
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(dayLabel)
}

// kickoffDisplay prefers the raw kickoff string the admin entered, then a
// day/month hour:minute rendering of the start time, then nothing.
func kickoffDisplay(m models.Match) string {
	if m.Kickoff != "" {
		return m.Kickoff
	}
	if m.StartTime != nil {
		return m.StartTime.Format(kickoffLayout)
	}
	return ""
}

func toView(m models.Match, key string) MatchView {
	events := m.Events
	if events == nil {
		events = []models.MatchEvent{}
	}
	predictions := m.Predictions
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	return MatchView{
		ID:          m.ID,
		Competition: m.Competition,
		Status:      m.ResolveStatus(),
		Kickoff:     kickoffDisplay(m),
		RawKickoff:  m.Kickoff,
		Minute:      m.Minute,
		Date:        key,
		StartTime:   m.StartTime,
		Home:        TeamView{Name: m.TeamA, Score: m.ScoreA, Logo: m.TeamALogo, Color: m.TeamAColor},
		Away:        TeamView{Name: m.TeamB, Score: m.ScoreB, Logo: m.TeamBLogo, Color: m.TeamBColor},
		Events:      events,
		Predictions: predictions,
		Stage:       m.Stage,
		Group:       m.Group,
		MatchCode:   m.MatchCode,
	}
}
