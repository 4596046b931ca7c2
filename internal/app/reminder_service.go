package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_planner/internal/domain/event"
	"event_planner/internal/domain/reminder"

	"github.com/google/uuid"
)

// Application-level errors for reminder creation
var ErrNotEventOwner = errors.New("not authorized to create reminder for this event")
var ErrReminderTimeRequired = errors.New("reminder time is required")
var ErrReminderAfterEvent = errors.New("reminder time must be before event time")

type ReminderService struct {
	reminderRepo reminder.Repository
	eventRepo    event.Repository
	now          func() time.Time
}

func NewReminderService(rr reminder.Repository, er event.Repository, now func() time.Time) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{
		reminderRepo: rr,
		eventRepo:    er,
		now:          now,
	}
}

// CreateReminder schedules a reminder for an event owned by userID.
func (s *ReminderService) CreateReminder(ctx context.Context, userID, eventID uuid.UUID, reminderTime time.Time) (*reminder.Reminder, error) {
	if reminderTime.IsZero() {
		return nil, ErrReminderTimeRequired
	}

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	if ev.UserID != userID {
		return nil, ErrNotEventOwner
	}

	if !reminderTime.Before(ev.Date) {
		return nil, ErrReminderAfterEvent
	}

	newReminder := &reminder.Reminder{
		ID:           uuid.New(),
		EventID:      ev.ID,
		UserID:       userID,
		ReminderTime: reminderTime,
		Notified:     false, // Reminders start unsent
		CreatedAt:    s.now(),
	}
	if err := s.reminderRepo.Create(ctx, newReminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder in repository: %w", err)
	}
	return newReminder, nil
}
