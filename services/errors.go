package services

import "errors"

// Business-rule and not-found failures carry a distinct user-facing reason.
// Handlers translate these into {"error": reason} responses; anything else
// is logged and surfaced as a generic failure.
var (
	ErrInvalidPhone          = errors.New("please enter a valid phone number for the selected country")
	ErrInvalidOTP            = errors.New("invalid OTP, please try again")
	ErrNoPendingVerification = errors.New("no pending verification found")
	ErrNotAuthenticated      = errors.New("you are not authorized to perform this action")
	ErrUserNotFound          = errors.New("user not found")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrInvalidTransition  = errors.New("invalid tournament status transition")

	ErrInvalidAmount       = errors.New("please enter a valid amount")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrBelowMinWithdrawal  = errors.New("amount is below the minimum withdrawal for your currency")
	ErrKycRequired         = errors.New("KYC verification is required for withdrawal")

	ErrDocumentNotFound = errors.New("KYC document not found")
)
