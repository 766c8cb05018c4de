package models

import "time"

type Prediction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MSV       string    `json:"user_msv"`
	FullName  string    `json:"full_name,omitempty"`
	MatchID   int       `json:"match_id"`
	ScoreA    int       `json:"score_a"`
	ScoreB    int       `json:"score_b"`
	CreatedAt time.Time `json:"created_at"`
}

// PredictionStats is the aggregate shown on the match detail view. The draw
// percentage absorbs rounding so the three always sum to 100.
type PredictionStats struct {
	HomePercent int `json:"home_percent"`
	DrawPercent int `json:"draw_percent"`
	AwayPercent int `json:"away_percent"`
	Total       int `json:"total"`
}

type PredictorInfo struct {
	Name string `json:"name"`
	Pick string `json:"pick"`
}

type MatchDetail struct {
	Match
	Stats      PredictionStats `json:"stats"`
	Predictors []PredictorInfo `json:"predictors"`
}
