package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a user's planned event. Reminders point at events.
type Event struct {
	ID          uuid.UUID
	Name        string
	Description string
	Date        time.Time
	CategoryID  uuid.UUID
	UserID      uuid.UUID
	CreatedAt   time.Time
}
