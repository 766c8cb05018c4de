package models

type DashboardStats struct {
	UsersTotal       int `json:"users_total"`
	TeamsTotal       int `json:"teams_total"`
	MatchesTotal     int `json:"matches_total"`
	LiveMatches      int `json:"live_matches"`
	LockedMatches    int `json:"locked_matches"`
	PredictionsTotal int `json:"predictions_total"`
}
