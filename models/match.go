package models

import "time"

type MatchStatus string

const (
	StatusLive     MatchStatus = "live"
	StatusUpcoming MatchStatus = "upcoming"
	StatusFinished MatchStatus = "ft"
)

// Match mirrors what the public API serves for a single fixture. Team names,
// logos and colors are stored denormalized on the match row so the feed can be
// rendered without joins.
type Match struct {
	ID          int     `json:"id"`
	Competition string  `json:"competition"`
	Stage       *string `json:"stage,omitempty"`
	Group       *string `json:"group,omitempty"`
	MatchCode   *string `json:"match_code,omitempty"`

	TeamA      string  `json:"team_a"`
	TeamALogo  *string `json:"team_a_logo,omitempty"`
	TeamAColor *string `json:"team_a_color,omitempty"`
	TeamB      string  `json:"team_b"`
	TeamBLogo  *string `json:"team_b_logo,omitempty"`
	TeamBColor *string `json:"team_b_color,omitempty"`

	// Date ("2006-01-02") and Kickoff ("15:04") are kept as strings exactly
	// as entered by the admin; StartTime is derived from them on write and
	// used for ordering and prediction locking.
	Date      string     `json:"date"`
	Kickoff   string     `json:"kickoff"`
	StartTime *time.Time `json:"start_time,omitempty"`

	Status   string  `json:"status,omitempty"`
	Minute   *string `json:"minute,omitempty"`
	IsLocked bool    `json:"is_locked"`
	ScoreA   *int    `json:"score_a,omitempty"`
	ScoreB   *int    `json:"score_b,omitempty"`

	Events      []MatchEvent `json:"events,omitempty"`
	Predictions []Prediction `json:"predictions,omitempty"`
}

type MatchEvent struct {
	ID       int    `json:"id,omitempty"`
	MatchID  int    `json:"match_id,omitempty"`
	Minute   string `json:"minute"`
	Player   string `json:"player"`
	Type     string `json:"type"`
	TeamSide string `json:"team_side"`
}

// ResolveStatus is the single place the effective match status is derived.
// An explicit status wins; otherwise a locked match counts as finished and an
// unlocked one as upcoming.
func (m Match) ResolveStatus() MatchStatus {
	switch MatchStatus(m.Status) {
	case StatusLive, StatusUpcoming, StatusFinished:
		return MatchStatus(m.Status)
	}
	if m.IsLocked {
		return StatusFinished
	}
	return StatusUpcoming
}

// HasResult reports whether the match is settled and therefore scorable:
// finished or locked, with both scores recorded.
func (m Match) HasResult() bool {
	if m.ScoreA == nil || m.ScoreB == nil {
		return false
	}
	return m.ResolveStatus() == StatusFinished || m.IsLocked
}
