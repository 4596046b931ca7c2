package app

import (
	"testing"
	"time"

	"event_planner/internal/domain/event"
	"event_planner/internal/domain/user"

	"github.com/stretchr/testify/require"
)

func TestComposeReminderMessage(t *testing.T) {
	now := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	ev := &event.Event{
		Name:        "Fireworks",
		Description: "Meet at the pier",
		Date:        now.Add(2*time.Hour + 30*time.Minute),
	}
	u := &user.User{Name: "Grace", Email: "grace@example.com"}

	msg := ComposeReminderMessage(ev, u, now, time.UTC)

	assert := require.New(t)
	assert.Equal("grace@example.com", msg.To)
	assert.Equal("Reminder: Fireworks", msg.Subject)
	assert.Equal(
		"Hello Grace,\n\n"+
			"This is a reminder that your event \"Fireworks\" is scheduled in 2 hours 30 minutes .\n\n"+
			"Event Details:\n"+
			"Description: Meet at the pier\n"+
			"Date: 7/4/2026, 8:30:00 PM\n\n"+
			"Regards,\n"+
			"Your Event Planner App",
		msg.Body,
	)
}

func TestComposeReminderMessageUsesLocation(t *testing.T) {
	now := time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC)
	ev := &event.Event{Name: "Call", Date: now.Add(90 * time.Minute)}
	u := &user.User{Name: "Lin", Email: "lin@example.com"}
	plus3 := time.FixedZone("UTC+3", 3*60*60)

	msg := ComposeReminderMessage(ev, u, now, plus3)

	require.Contains(t, msg.Body, "Date: 1/16/2026, 3:30:00 AM")
	require.Contains(t, msg.Body, "scheduled in 1 hour 30 minutes .")
}
