package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrEventNotFound = errors.New("event not found")

// Repository defines the read operations on events needed by the reminder subsystem.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
}
