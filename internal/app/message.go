package app

import (
	"fmt"
	"time"

	"event_planner/internal/domain/event"
	"event_planner/internal/domain/mail"
	"event_planner/internal/domain/user"
)

// EventDateLayout renders an event date the way en-US locales print a date and time.
const EventDateLayout = "1/2/2006, 3:04:05 PM"

const reminderBodyTemplate = `Hello %s,

This is a reminder that your event "%s" is scheduled in %s.

Event Details:
Description: %s
Date: %s

Regards,
Your Event Planner App`

// ComposeReminderMessage builds the notification email for one reminder.
func ComposeReminderMessage(ev *event.Event, u *user.User, now time.Time, loc *time.Location) mail.Message {
	if loc == nil {
		loc = time.Local
	}
	return mail.Message{
		To:      u.Email,
		Subject: fmt.Sprintf("Reminder: %s", ev.Name),
		Body: fmt.Sprintf(reminderBodyTemplate,
			u.Name,
			ev.Name,
			FormatTimeUntil(ev.Date, now),
			ev.Description,
			ev.Date.In(loc).Format(EventDateLayout),
		),
	}
}
