package content

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Epoch is the sort position of documents whose date cannot be parsed.
var Epoch = time.Unix(0, 0).UTC()

// ParseDate parses a hand-authored calendar date. Values without a zone are
// read as UTC. Anything unparseable yields Epoch and false.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Epoch, false
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return Epoch, false
	}
	return t, true
}

// SortDate is ParseDate without the ok flag, for ordering.
func SortDate(value string) time.Time {
	t, _ := ParseDate(value)
	return t
}

// FormatDate renders a date in the short en-US form ("Jan 2, 2006"). An
// unparseable value is returned unchanged.
func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format("Jan 2, 2006")
}
