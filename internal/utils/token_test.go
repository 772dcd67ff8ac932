package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingCodeFormat(t *testing.T) {
	code, err := NewBookingCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BKG-[0-9A-F]{10}$`), code)
}

func TestNewBookingCodeUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code, err := NewBookingCode()
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "generated a duplicate code in 1000 draws: %s", code)
		seen[code] = struct{}{}
	}
}
