package models

import "time"

// Match status mirrors (or lags) the tournament status; "verifying" is the
// pending-review state entered when a result screenshot is submitted.
const (
	MatchUpcoming  = "upcoming"
	MatchLive      = "live"
	MatchVerifying = "verifying"
	MatchCompleted = "completed"
)

// Match is one user's (or team's) participation record in a Tournament.
// It always references exactly one existing Tournament, and the owning user
// is always present in the roster.
type Match struct {
	ID               int64        `json:"id"`
	TournamentID     int64        `json:"tournamentId"`
	TournamentTitle  string       `json:"tournamentTitle"`
	Date             time.Time    `json:"date"`
	Status           string       `json:"status"`
	Mode             string       `json:"mode"`
	Map              string       `json:"map"`
	Position         int          `json:"position,omitempty"`
	Kills            int          `json:"kills,omitempty"`
	TeamMembers      []TeamMember `json:"teamMembers"`
	RoomDetails      *RoomDetails `json:"roomDetails,omitempty"`
	ResultSubmitted  bool         `json:"resultSubmitted"`
	ResultApproved   bool         `json:"resultApproved"`
	ResultScreenshot string       `json:"resultScreenshot,omitempty"`
	Prize            float64      `json:"prize,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
}

type TeamMember struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	GameID         string `json:"gameId"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Kills          int    `json:"kills,omitempty"`
	IsOwner        bool   `json:"isOwner"`
}
