// internal/app/dispatch_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_planner/internal/domain/event"
	"event_planner/internal/domain/mail"
	"event_planner/internal/domain/reminder"
	"event_planner/internal/domain/user"

	"github.com/sirupsen/logrus"
)

const (
	DefaultSendTimeout = 10 * time.Second
	DefaultClaimLease  = 5 * time.Minute
)

// Dispatcher runs dispatch cycles. The scheduler depends on this interface.
type Dispatcher interface {
	// RunCycle sends every due reminder once. Per-reminder failures are recorded in the
	// report and never stop the cycle.
	RunCycle(ctx context.Context) Report
}

type DispatchOptions struct {
	SendTimeout time.Duration
	ClaimLease  time.Duration
	Location    *time.Location // for the event date printed in the email
	Now         func() time.Time
}

// DispatchService implements the Dispatcher interface.
type DispatchService struct {
	reminderRepo reminder.Repository
	eventRepo    event.Repository
	userRepo     user.Repository
	mailer       mail.Sender
	logger       *logrus.Entry
	sendTimeout  time.Duration
	claimLease   time.Duration
	location     *time.Location
	now          func() time.Time
}

func NewDispatchService(
	rr reminder.Repository,
	er event.Repository,
	ur user.Repository,
	mailer mail.Sender,
	logger *logrus.Entry,
	opts DispatchOptions,
) *DispatchService {
	s := &DispatchService{
		reminderRepo: rr,
		eventRepo:    er,
		userRepo:     ur,
		mailer:       mailer,
		logger:       logger,
		sendTimeout:  opts.SendTimeout,
		claimLease:   opts.ClaimLease,
		location:     opts.Location,
		now:          opts.Now,
	}
	if s.sendTimeout <= 0 {
		s.sendTimeout = DefaultSendTimeout
	}
	if s.claimLease <= 0 {
		s.claimLease = DefaultClaimLease
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *DispatchService) RunCycle(ctx context.Context) Report {
	now := s.now()
	report := Report{StartedAt: now}

	due, err := s.reminderRepo.FindDueUnsent(ctx, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load due reminders")
		report.Err = fmt.Errorf("failed to load due reminders: %w", err)
		report.FinishedAt = s.now()
		return report
	}
	report.Found = len(due)
	s.logger.WithField("count", len(due)).Debug("Found due reminders")

	report.Items = make([]ItemResult, 0, len(due))
	for _, rem := range due {
		if err := ctx.Err(); err != nil {
			s.logger.WithError(err).WithField("remaining", len(due)-len(report.Items)).
				Warn("Dispatch cycle interrupted, remaining reminders stay due")
			report.Err = err
			break
		}
		report.Items = append(report.Items, s.processReminder(ctx, rem, now))
	}

	report.FinishedAt = s.now()
	return report
}

// processReminder resolves, claims, sends and marks a single reminder.
func (s *DispatchService) processReminder(ctx context.Context, rem *reminder.Reminder, now time.Time) (result ItemResult) {
	result.ReminderID = rem.ID
	log := s.logger.WithFields(logrus.Fields{
		"reminder_id": rem.ID,
		"event_id":    rem.EventID,
		"user_id":     rem.UserID,
	})

	claimed := false
	defer func() {
		if p := recover(); p != nil {
			result.Outcome = OutcomeCrashed
			result.Err = fmt.Errorf("panic while processing reminder %s: %v", rem.ID, p)
			log.WithError(result.Err).Error("Recovered from panic")
			if claimed {
				s.release(ctx, rem, log)
			}
		}
		log.WithField("outcome", result.Outcome).Debug("Reminder processed")
	}()

	ev, err := s.eventRepo.GetByID(ctx, rem.EventID)
	if err != nil {
		return s.lookupFailed(log, rem, fmt.Errorf("failed to resolve event %s: %w", rem.EventID, err))
	}
	owner, err := s.userRepo.GetByID(ctx, rem.UserID)
	if err != nil {
		return s.lookupFailed(log, rem, fmt.Errorf("failed to resolve user %s: %w", rem.UserID, err))
	}

	msg := ComposeReminderMessage(ev, owner, now, s.location)

	won, err := s.reminderRepo.Claim(ctx, rem.ID, now, s.claimLease)
	if err != nil {
		log.WithError(err).Error("Failed to claim reminder")
		result.Outcome = OutcomePersistFailed
		result.Err = fmt.Errorf("failed to claim reminder %s: %w", rem.ID, err)
		return result
	}
	if !won {
		log.Info("Reminder is claimed by another dispatch cycle. Skipping.")
		result.Outcome = OutcomeSkipped
		return result
	}
	claimed = true

	if err := s.send(ctx, msg); err != nil {
		log.WithError(err).WithField("to", msg.To).Error("Failed to send reminder email")
		s.release(ctx, rem, log)
		claimed = false
		result.Outcome = OutcomeSendFailed
		result.Err = fmt.Errorf("failed to send reminder %s: %w", rem.ID, err)
		return result
	}
	log.WithFields(logrus.Fields{"to": msg.To, "event": ev.Name}).Info("Reminder email sent")

	if err := s.reminderRepo.MarkNotified(ctx, rem.ID); err != nil {
		// The claim lease expires on its own, so the reminder may be sent again later.
		log.WithError(err).Error("Reminder sent but could not be marked as notified")
		result.Outcome = OutcomePersistFailed
		result.Err = fmt.Errorf("failed to mark reminder %s notified: %w", rem.ID, err)
		return result
	}

	result.Outcome = OutcomeSent
	return result
}

func (s *DispatchService) send(ctx context.Context, msg mail.Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	return s.mailer.Send(sendCtx, msg)
}

func (s *DispatchService) release(ctx context.Context, rem *reminder.Reminder, log *logrus.Entry) {
	if err := s.reminderRepo.Release(ctx, rem.ID); err != nil {
		log.WithError(err).Error("Failed to release reminder claim; it is retried after the lease expires")
	}
}

func (s *DispatchService) lookupFailed(log *logrus.Entry, rem *reminder.Reminder, err error) ItemResult {
	entry := log.WithError(err)
	if errors.Is(err, event.ErrEventNotFound) || errors.Is(err, user.ErrUserNotFound) {
		entry.Warn("Reminder references a missing record. Will retry next cycle.")
	} else {
		entry.Error("Failed to resolve reminder references")
	}
	return ItemResult{ReminderID: rem.ID, Outcome: OutcomeLookupFailed, Err: err}
}
