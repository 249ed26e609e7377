// Package store is the key-value store adapter: a persistent string-keyed
// store holding JSON-serialized records under fixed namespaced keys. It is
// the only persistence surface in the system.
package store

import (
	"encoding/json"
	"log"
)

// Fixed store keys. These are the external interface of the persisted state;
// renaming one is a breaking change for every stored profile.
const (
	KeyAuthToken     = "netwin_auth_token"
	KeyUser          = "netwin_user"
	KeyTheme         = "netwin_theme"
	KeyCurrency      = "netwin_currency"
	KeyGameMode      = "netwin_game_mode"
	KeyTournaments   = "netwin_tournaments"
	KeyMatches       = "netwin_matches"
	KeyNotifications = "netwin_notifications"
	KeyWallet        = "netwin_wallet"
	KeyTransactions  = "netwin_transactions"
	KeyLeaderboard   = "netwin_leaderboard"
	KeySquad         = "netwin_squad"
	KeyKyc           = "netwin_kyc"

	// Transient keys used between OTP request and verification.
	KeyTempOtp    = "temp_otp"
	KeyTempPhone  = "temp_phone"
	KeyTempSignup = "temp_signup"
)

// Store is a string-keyed store of JSON-serialized values.
type Store interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// GetJSON loads and decodes the value under key. A missing key returns the
// zero value with ok=false. Malformed persisted JSON is logged and treated
// as absent — corrupted state is discarded rather than blocking the caller.
func GetJSON[T any](s Store, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(key)
	if err != nil {
		return v, false, err
	}
	if !ok || raw == "" {
		return v, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("⚠️  store: discarding malformed value under %q: %v", key, err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON[T any](s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(raw))
}
