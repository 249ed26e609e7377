package services

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"netwin-platform/models"
	"netwin-platform/store"
	"netwin-platform/utils"
)

// AuthService is the session/identity store. Login, signup and OTP
// verification simulate server round trips against the local store: the
// generated code is logged in place of being sent, and any well-formed code
// verifies. The persisted user record outlives the session.
type AuthService struct {
	mu    sync.Mutex
	store store.Store
}

func NewAuthService(s store.Store) *AuthService {
	return &AuthService{store: s}
}

// UserUpdate carries partial profile fields; nil fields are left untouched.
type UserUpdate struct {
	Username       *string          `json:"username,omitempty"`
	Email          *string          `json:"email,omitempty"`
	GameID         *string          `json:"gameId,omitempty"`
	GameMode       *string          `json:"gameMode,omitempty"`
	ProfilePicture *string          `json:"profilePicture,omitempty"`
	KycStatus      *string          `json:"kycStatus,omitempty"`
	Currency       *models.Currency `json:"currency,omitempty"`
	Country        *string          `json:"country,omitempty"`
}

func generateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// RequestOTP generates a one-time code for a login attempt and stashes it
// under the transient keys. The code is returned (and logged) in place of an
// SMS delivery. Identifier existence is never checked — there is no account
// list to check against.
func (s *AuthService) RequestOTP(creds models.LoginCredentials) (string, error) {
	if !utils.ValidPhoneNumber(creds.PhoneNumber, creds.CountryCode) {
		return "", ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	otp := generateOTP()
	if err := s.store.Set(store.KeyTempOtp, otp); err != nil {
		return "", err
	}
	if err := s.store.Set(store.KeyTempPhone, creds.CountryCode+creds.PhoneNumber); err != nil {
		return "", err
	}

	log.Printf("📨 OTP for %s%s: %s", creds.CountryCode, creds.PhoneNumber, otp)
	return otp, nil
}

// Signup stashes the draft profile pending OTP confirmation and issues a code.
func (s *AuthService) Signup(data models.SignupData) (string, error) {
	if !utils.ValidPhoneNumber(data.PhoneNumber, data.CountryCode) {
		return "", ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.SetJSON(s.store, store.KeyTempSignup, data); err != nil {
		return "", err
	}
	otp := generateOTP()
	if err := s.store.Set(store.KeyTempOtp, otp); err != nil {
		return "", err
	}

	log.Printf("📨 OTP for %s%s: %s", data.CountryCode, data.PhoneNumber, otp)
	return otp, nil
}

// VerifyOTP completes a pending signup or login. Any 6-digit numeric code is
// accepted as valid. On success the user record and a fresh session token are
// persisted and the transient state is cleared; on failure nothing changes.
func (s *AuthService) VerifyOTP(v models.OtpVerification) (*models.User, string, error) {
	if !utils.ValidOTPFormat(v.Otp) {
		return nil, "", ErrInvalidOTP
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, hasDraft, err := store.GetJSON[models.SignupData](s.store, store.KeyTempSignup)
	if err != nil {
		return nil, "", err
	}
	_, hasLogin, err := s.store.Get(store.KeyTempPhone)
	if err != nil {
		return nil, "", err
	}

	var user models.User
	switch {
	case hasDraft:
		user = models.User{
			ID:             utils.NewID(),
			Username:       draft.Username,
			PhoneNumber:    draft.PhoneNumber,
			CountryCode:    draft.CountryCode,
			Email:          draft.Email,
			GameID:         draft.GameID,
			GameMode:       draft.GameMode,
			Role:           models.RolePlayer,
			ProfilePicture: utils.AvatarURL(draft.Username),
			KycStatus:      models.KycNotSubmitted,
			Currency:       utils.CurrencyForCountryCode(draft.CountryCode),
			WalletBalance:  0,
			Country:        utils.CountryForCode(draft.CountryCode),
			CreatedAt:      time.Now(),
		}
	case hasLogin:
		// No account store to look the caller up in, so a login mint gets a
		// promotional starting balance.
		username := fmt.Sprintf("Player%d", rand.Intn(1000))
		user = models.User{
			ID:             utils.NewID(),
			Username:       username,
			PhoneNumber:    v.PhoneNumber,
			CountryCode:    v.CountryCode,
			GameMode:       models.GamePUBG,
			Role:           models.RolePlayer,
			ProfilePicture: utils.AvatarURL(username),
			KycStatus:      models.KycNotSubmitted,
			Currency:       utils.CurrencyForCountryCode(v.CountryCode),
			WalletBalance:  500,
			Country:        utils.CountryForCode(v.CountryCode),
			CreatedAt:      time.Now(),
		}
	default:
		return nil, "", ErrNoPendingVerification
	}

	if err := store.SetJSON(s.store, store.KeyUser, user); err != nil {
		return nil, "", err
	}
	token := uuid.NewString()
	if err := s.store.Set(store.KeyAuthToken, token); err != nil {
		return nil, "", err
	}

	s.store.Remove(store.KeyTempOtp)
	s.store.Remove(store.KeyTempPhone)
	s.store.Remove(store.KeyTempSignup)

	log.Printf("✅ Session opened for user %d (%s)", user.ID, user.Username)
	return &user, token, nil
}

// Logout clears the session token and current-user pointer. The user record
// itself is never deleted.
func (s *AuthService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(store.KeyAuthToken); err != nil {
		return err
	}
	return s.store.Remove(store.KeyUser)
}

// UpdateUser merges partial fields into the current user record and persists
// it. No field-level validation beyond what callers perform.
func (s *AuthService) UpdateUser(update UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok, err := store.GetJSON[models.User](s.store, store.KeyUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.GameID != nil {
		user.GameID = *update.GameID
	}
	if update.GameMode != nil {
		user.GameMode = *update.GameMode
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.KycStatus != nil {
		user.KycStatus = *update.KycStatus
	}
	if update.Currency != nil {
		user.Currency = *update.Currency
	}
	if update.Country != nil {
		user.Country = *update.Country
	}

	if err := store.SetJSON(s.store, store.KeyUser, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the persisted current-user record, if any.
func (s *AuthService) CurrentUser() (*models.User, bool, error) {
	user, ok, err := store.GetJSON[models.User](s.store, store.KeyUser)
	if err != nil || !ok {
		return nil, false, err
	}
	return &user, true, nil
}

// Token returns the active session token, if any.
func (s *AuthService) Token() (string, bool, error) {
	return s.store.Get(store.KeyAuthToken)
}
