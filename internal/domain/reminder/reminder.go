// internal/domain/reminder/reminder.go
package reminder

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Reminder is a time-based notification attached to a user's event.
// Corresponds to the 'reminders' table.
type Reminder struct {
	ID           uuid.UUID
	EventID      uuid.UUID // Foreign Key to events.id
	UserID       uuid.UUID // Foreign Key to users.id, the owner
	ReminderTime time.Time
	Notified     bool
	ClaimedAt    sql.NullTime // Set while a dispatch cycle holds the reminder
	CreatedAt    time.Time
}

// IsDue reports whether the reminder fired at or before now and has not been sent yet.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Notified && !r.ReminderTime.After(now)
}

// IsClaimed reports whether a claim taken at ClaimedAt is still inside its lease at now.
func (r *Reminder) IsClaimed(now time.Time, lease time.Duration) bool {
	return r.ClaimedAt.Valid && r.ClaimedAt.Time.After(now.Add(-lease))
}
