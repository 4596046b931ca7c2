package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of events and reminders. Only the name and email matter for notifications.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
