package table

import (
	"strings"
	"time"
)

// Slash dates are month-first. The day-first layouts come after every
// month-first one, so they only accept values whose first field exceeds 12.
var timeLayouts = []string{
	time.RFC3339, time.RFC3339Nano, time.DateOnly, time.DateTime,
	"2006-01-02 15:04", "2006-01-02T15:04:05", "2006/01/02",
	"1/2/2006", "1/2/06", "1/2/2006 15:04", "1/2/2006 15:04:05", "1/2/06 15:04",
	"01-02-06", "1-2-06", "01-02-2006",
	"2/1/2006", "2/1/2006 15:04", "2/1/2006 15:04:05",
	"02-Jan-2006", "2-Jan-06", "02-Jan-06", "Jan 2, 2006", "January 2, 2006", "2 Jan 2006",
}

// ParseTime tries the supported date layouts in order.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
