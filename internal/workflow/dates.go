// internal/workflow/dates.go
package workflow

import (
	"strings"
	"time"
)

// Naukri renders the profile timestamp with a zero-padded day on some
// platforms and an unpadded day on others, so both layouts are accepted.
const (
	dateLayoutPadded   = "Jan 02, 2006"
	dateLayoutUnpadded = "Jan 2, 2006"
)

// containsDate reports whether text contains day's date in either the
// padded ("Jan 05, 2025") or unpadded ("Jan 5, 2025") rendering.
func containsDate(text string, day time.Time) bool {
	return strings.Contains(text, day.Format(dateLayoutPadded)) ||
		strings.Contains(text, day.Format(dateLayoutUnpadded))
}
