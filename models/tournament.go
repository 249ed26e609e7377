package models

import "time"

const (
	ModeSolo  = "SOLO"
	ModeDuo   = "DUO"
	ModeSquad = "SQUAD"
	ModeTDM   = "TDM"
)

const (
	GamePUBG = "PUBG"
	GameBGMI = "BGMI"
)

// Tournament status transitions are monotonic: upcoming → live → completed.
// Cancelled is terminal and may replace any state before completed.
const (
	TournamentUpcoming  = "upcoming"
	TournamentLive      = "live"
	TournamentCompleted = "completed"
	TournamentCancelled = "cancelled"
)

var GameMaps = []string{"Erangel", "Miramar", "Sanhok", "Vikendi", "Livik"}

// Tournament is a scheduled event. Shared/global — referenced by many Matches.
type Tournament struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Slug              string             `json:"slug"`
	Description       string             `json:"description,omitempty"`
	Image             string             `json:"image"`
	Mode              string             `json:"mode"`
	GameMode          string             `json:"gameMode"`
	Map               string             `json:"map"`
	EntryFee          float64            `json:"entryFee"`
	PrizePool         float64            `json:"prizePool"`
	PerKill           float64            `json:"perKill"`
	Date              time.Time          `json:"date"`
	MaxPlayers        int                `json:"maxPlayers"`
	RegisteredPlayers int                `json:"registeredPlayers"`
	Status            string             `json:"status"`
	RoomDetails       *RoomDetails       `json:"roomDetails,omitempty"`
	Results           *TournamentResult  `json:"results,omitempty"`
}

// RoomDetails are the game-session credentials, revealed near match start.
type RoomDetails struct {
	RoomID    string    `json:"roomId"`
	Password  string    `json:"password"`
	VisibleAt time.Time `json:"visibleAt"`
}

type TournamentResult struct {
	Winners    []TeamResult   `json:"winners"`
	TopKillers []KillerResult `json:"topKillers"`
}

type TeamResult struct {
	TeamID   int64   `json:"teamId"`
	TeamName string  `json:"teamName"`
	Position int     `json:"position"`
	Kills    int     `json:"kills"`
	Prize    float64 `json:"prize"`
}

type KillerResult struct {
	UserID   int64   `json:"userId"`
	Username string  `json:"username"`
	Kills    int     `json:"kills"`
	Prize    float64 `json:"prize"`
}

// TournamentFilters are ANDed; a nil/empty field imposes no constraint.
type TournamentFilters struct {
	Status      string     `json:"status,omitempty"`
	Mode        string     `json:"mode,omitempty"`
	GameMode    string     `json:"gameMode,omitempty"`
	Map         string     `json:"map,omitempty"`
	MinEntryFee *float64   `json:"minEntryFee,omitempty"`
	MaxEntryFee *float64   `json:"maxEntryFee,omitempty"`
	DateFrom    *time.Time `json:"dateFrom,omitempty"`
	DateTo      *time.Time `json:"dateTo,omitempty"`
	Search      string     `json:"search,omitempty"`
}
