package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOTPFormat(t *testing.T) {
	assert.True(t, ValidOTPFormat("123456"))
	assert.True(t, ValidOTPFormat("000000"))

	assert.False(t, ValidOTPFormat("12345"))
	assert.False(t, ValidOTPFormat("1234567"))
	assert.False(t, ValidOTPFormat("12a456"))
	assert.False(t, ValidOTPFormat(""))
}

func TestValidPhoneNumber(t *testing.T) {
	assert.True(t, ValidPhoneNumber("9876543210", "+91"))
	assert.False(t, ValidPhoneNumber("987654321", "+91"))

	// Formatting characters are stripped before the length check.
	assert.True(t, ValidPhoneNumber("987-654-3210", "+1"))

	// Nigeria accepts 10 or 11 digits.
	assert.True(t, ValidPhoneNumber("8031234567", "+234"))
	assert.True(t, ValidPhoneNumber("08031234567", "+234"))
	assert.False(t, ValidPhoneNumber("803123456", "+234"))

	// Other countries: a sane length window.
	assert.True(t, ValidPhoneNumber("12345678", "+65"))
	assert.False(t, ValidPhoneNumber("123456", "+65"))
}

func TestValidGameID(t *testing.T) {
	assert.True(t, ValidGameID("512345678", "PUBG"))
	assert.True(t, ValidGameID("512345678901", "PUBG"))
	assert.False(t, ValidGameID("51234567", "PUBG"))

	assert.True(t, ValidGameID("51234567", "BGMI"))
	assert.True(t, ValidGameID("5123456789", "BGMI"))
	assert.False(t, ValidGameID("51234567890", "BGMI"))

	assert.False(t, ValidGameID("abc123456", "PUBG"))
}

func TestAvatarURLEscapesUsername(t *testing.T) {
	url := AvatarURL("Pro Gamer")
	assert.Contains(t, url, "name=Pro+Gamer")
	assert.Contains(t, url, "ui-avatars.com")
}

func TestRequiredKycDocuments(t *testing.T) {
	assert.Contains(t, RequiredKycDocuments("India"), "Aadhaar Card")
	assert.Contains(t, RequiredKycDocuments("Nigeria"), "NIN")
	assert.Contains(t, RequiredKycDocuments("Japan"), "Passport")
}
