package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTimeUntil(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		event time.Time
		want  string
	}{
		{name: "days hours minutes", event: now.Add(day + 2*time.Hour + 5*time.Minute), want: "1 day 2 hours 5 minutes "},
		{name: "minutes only", event: now.Add(5 * time.Minute), want: "5 minutes "},
		{name: "singular units", event: now.Add(day + time.Hour + time.Minute), want: "1 day 1 hour 1 minute "},
		{name: "plural days only", event: now.Add(3 * day), want: "3 days "},
		{name: "zero hours omitted", event: now.Add(2*day + 45*time.Minute), want: "2 days 45 minutes "},
		{name: "seconds are floored away", event: now.Add(10*time.Minute + 59*time.Second), want: "10 minutes "},
		{name: "under a minute", event: now.Add(30 * time.Second), want: ""},
		{name: "same instant", event: now, want: ""},
		{name: "event in the past uses absolute distance", event: now.Add(-(time.Hour + 2*time.Minute)), want: "1 hour 2 minutes "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatTimeUntil(tc.event, now))
		})
	}
}
