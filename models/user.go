package models

import "time"

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
)

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Aggregate KYC status carried on the user record. The per-document statuses
// live in KycDocument; this field is the one withdrawal checks read.
const (
	KycNotSubmitted = "not_submitted"
	KycPending      = "pending"
	KycApproved     = "approved"
	KycRejected     = "rejected"
)

// User is the identity + profile record. Created at signup/OTP verification,
// mutated by profile updates, KYC submission and wallet writes. Logout clears
// the session, never the record.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PhoneNumber    string    `json:"phoneNumber"`
	CountryCode    string    `json:"countryCode"`
	Email          string    `json:"email,omitempty"`
	GameID         string    `json:"gameId,omitempty"`
	GameMode       string    `json:"gameMode"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	KycStatus      string    `json:"kycStatus"`
	Currency       Currency  `json:"currency"`
	WalletBalance  float64   `json:"walletBalance"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SignupData is the draft profile stashed until OTP confirmation.
type SignupData struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
	Email       string `json:"email,omitempty"`
	GameID      string `json:"gameId,omitempty"`
	GameMode    string `json:"gameMode"`
}

type LoginCredentials struct {
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
}

type OtpVerification struct {
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
	Otp         string `json:"otp"`
}
