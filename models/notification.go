package models

import "time"

const (
	NotifMatch  = "match"
	NotifWallet = "wallet"
	NotifAdmin  = "admin"
	NotifPromo  = "promo"
)

// Notification is append-only per user. Only the read flag is ever mutated.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
