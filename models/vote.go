package models

import "time"

// FavoriteTeamVote records a user's one-off pick of three favorite teams for
// the tournament.
type FavoriteTeamVote struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Teams     []string  `json:"teams"`
	CreatedAt time.Time `json:"created_at"`
}
