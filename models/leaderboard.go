package models

// LeaderboardEntry is the cached detail record behind the earnings ranking.
type LeaderboardEntry struct {
	UserID         int64    `json:"userId"`
	Username       string   `json:"username"`
	Country        string   `json:"country"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Matches        int      `json:"matches"`
	Kills          int      `json:"kills"`
	Wins           int      `json:"wins"`
	Earnings       float64  `json:"earnings"`
	Currency       Currency `json:"currency"`
	Rank           int      `json:"rank,omitempty"`
}
