package app

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of processing a single reminder within a dispatch cycle.
type Outcome string

const (
	OutcomeSent          Outcome = "SENT"
	OutcomeSkipped       Outcome = "SKIPPED"        // claimed by a concurrent cycle
	OutcomeLookupFailed  Outcome = "LOOKUP_FAILED"  // event or user did not resolve
	OutcomeSendFailed    Outcome = "SEND_FAILED"    // mail transport error, claim released
	OutcomePersistFailed Outcome = "PERSIST_FAILED" // claim or mark-notified write failed
	OutcomeCrashed       Outcome = "CRASHED"        // recovered panic
)

// Failed reports whether the outcome leaves the reminder for a later cycle because of an error.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeLookupFailed, OutcomeSendFailed, OutcomePersistFailed, OutcomeCrashed:
		return true
	default:
		return false
	}
}

type ItemResult struct {
	ReminderID uuid.UUID
	Outcome    Outcome
	Err        error
}

// Report summarises one dispatch cycle.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Found      int
	Items      []ItemResult
	// Err is set when the cycle could not load its due reminders or was cut short.
	Err error
}

func (r Report) Count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

func (r Report) Sent() int {
	return r.Count(OutcomeSent)
}

func (r Report) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome.Failed() {
			n++
		}
	}
	return n
}

func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
