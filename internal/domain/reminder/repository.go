// internal/domain/reminder/repository.go
package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrReminderNotFound = errors.New("reminder not found")

// Repository defines operations for persisting reminders and driving their dispatch.
type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error)

	// FindDueUnsent returns every reminder with ReminderTime <= now that is not notified yet.
	FindDueUnsent(ctx context.Context, now time.Time) ([]*Reminder, error)
	// MarkNotified flips Notified to true. Marking an already notified reminder is a no-op.
	MarkNotified(ctx context.Context, id uuid.UUID) error

	// Claim takes an exclusive lease on an unsent reminder. It returns false when the reminder
	// is already notified or another caller holds an unexpired claim.
	Claim(ctx context.Context, id uuid.UUID, now time.Time, lease time.Duration) (bool, error)
	// Release drops a claim so the reminder is picked up again by a later cycle.
	Release(ctx context.Context, id uuid.UUID) error
}
