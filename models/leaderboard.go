package models

type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	MSV             string `json:"user_msv"`
	FullName        string `json:"full_name"`
	TotalPoints     int    `json:"total_points"`
	PredictionCount int    `json:"prediction_count"`
	ExactCount      int    `json:"exact_count"`
	// TotalTimeSeconds accumulates how long before kickoff each scored
	// prediction was placed. Larger means earlier overall.
	TotalTimeSeconds int64 `json:"total_time_seconds,omitempty"`
}
