package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// bookingCodeBytes controls the entropy of a booking code.  Five
// random bytes yield ten hex characters, enough to make collisions
// astronomically rare while keeping codes short enough to read over
// the phone.
const bookingCodeBytes = 5

// NewBookingCode generates a collision-resistant, human-readable
// booking code of the form "BKG-7F2A9C01DD".  The randomness comes
// from crypto/rand; an error is returned only if the system entropy
// source fails.
func NewBookingCode() (string, error) {
	b := make([]byte, bookingCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "BKG-" + strings.ToUpper(hex.EncodeToString(b)), nil
}
