package app

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatTimeUntil renders the distance between now and eventDate as whole days, hours and minutes,
// e.g. "1 day 2 hours 5 minutes ". Zero-valued units are left out and every unit is followed by a
// single space. Distances under a minute render as an empty string.
func FormatTimeUntil(eventDate, now time.Time) string {
	diff := eventDate.Sub(now)
	if diff < 0 {
		diff = -diff
	}

	days := int64(diff / day)
	hours := int64((diff % day) / time.Hour)
	minutes := int64((diff % time.Hour) / time.Minute)

	var b strings.Builder
	writeUnit(&b, days, "day")
	writeUnit(&b, hours, "hour")
	writeUnit(&b, minutes, "minute")
	return b.String()
}

func writeUnit(b *strings.Builder, n int64, unit string) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(b, "%d %s", n, unit)
	if n != 1 {
		b.WriteByte('s')
	}
	b.WriteByte(' ')
}
