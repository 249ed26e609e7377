package utils

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	otpPattern        = regexp.MustCompile(`^\d{6}$`)
	digitsOnly        = regexp.MustCompile(`\D`)
	gameIDPatternPUBG = regexp.MustCompile(`^\d{9,12}$`)
	gameIDPatternBGMI = regexp.MustCompile(`^\d{8,10}$`)
)

// ValidOTPFormat reports whether code looks like a one-time passcode.
// Any 6-digit numeric string is accepted — there is no secret comparison,
// a stated simplification of the simulated auth flow.
func ValidOTPFormat(code string) bool {
	return otpPattern.MatchString(code)
}

// ValidPhoneNumber checks the number length for the given country code.
func ValidPhoneNumber(phone, countryCode string) bool {
	clean := digitsOnly.ReplaceAllString(phone, "")
	switch countryCode {
	case "+91", "+1":
		return len(clean) == 10
	case "+234":
		return len(clean) == 10 || len(clean) == 11
	default:
		return len(clean) >= 7 && len(clean) <= 15
	}
}

// ValidGameID checks the in-game id format for the given game variant.
func ValidGameID(id, game string) bool {
	if game == "BGMI" {
		return gameIDPatternBGMI.MatchString(id)
	}
	return gameIDPatternPUBG.MatchString(id)
}

// AvatarURL builds a generated-avatar URL from a username.
func AvatarURL(username string) string {
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=6C3AFF&color=fff&size=200",
		url.QueryEscape(username),
	)
}

// RequiredKycDocuments lists the accepted document types per country.
func RequiredKycDocuments(country string) []string {
	switch country {
	case "India":
		return []string{"Aadhaar Card", "PAN Card", "Voter ID (Optional)"}
	case "Nigeria":
		return []string{"NIN", "Voter ID", "Passport (Optional)"}
	default:
		return []string{"Passport", "Government ID"}
	}
}
