// internal/workflow/dates_test.go
package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsDate(t *testing.T) {
	day := time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"padded day", "Profile last updated on Jan 05, 2025", true},
		{"unpadded day", "Profile last updated on Jan 5, 2025", true},
		{"exact padded", "Jan 05, 2025", true},
		{"exact unpadded", "Jan 5, 2025", true},
		{"different day", "Profile last updated on Jan 04, 2025", false},
		{"different year", "Jan 05, 2024", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsDate(tt.text, day))
		})
	}
}

func TestContainsDateDoubleDigitDay(t *testing.T) {
	day := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	// Both layouts render identically for two-digit days.
	assert.True(t, containsDate("Updated on Dec 25, 2025", day))
	assert.False(t, containsDate("Updated on Dec 2, 2025", day))
}
