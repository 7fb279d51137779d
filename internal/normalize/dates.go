package normalize

import (
	"strings"
	"time"
)

// Accepted date layouts, tried in order. A trailing "Z" or "+00:00" is
// stripped first, so the UTC-marked encodings share the plain layouts.
// The slash layouts are ambiguous: day-first wins over month-first.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"2/1/2006",
	"1/2/2006",
}

// ParseDate parses the date encodings Cin7 has been seen to return.
// Anything else, including non-string values, is reported as absent.
func ParseDate(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "+00:00", "")
	cleaned = strings.TrimRight(cleaned, "Z")
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CalendarDate truncates t to midnight UTC of its own calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
