package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_planner/internal/app"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	report  app.Report
	calls   int
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (d *fakeDispatcher) RunCycle(ctx context.Context) app.Report {
	d.calls++
	if d.started != nil {
		close(d.started)
	}
	if d.release != nil {
		select {
		case <-d.release:
		case <-ctx.Done():
		}
	}
	if d.ctxErr != nil {
		d.ctxErr <- ctx.Err()
	}
	return d.report
}

func newTestScheduler(d app.Dispatcher, spec string, timeout time.Duration) (*ReminderScheduler, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewReminderScheduler(d, logrus.NewEntry(logger), spec, timeout), hook
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(&fakeDispatcher{}, "not a cron spec", time.Second)

	err := s.Start()

	require.Error(t, err)
	s.Stop() // no-op when never started
}

func TestStartTwice(t *testing.T) {
	s, _ := newTestScheduler(&fakeDispatcher{}, "* * * * *", time.Second)

	require.NoError(t, s.Start())
	defer s.Stop()
	require.ErrorIs(t, s.Start(), ErrAlreadyStarted)
}

func TestRunOnceLogsReport(t *testing.T) {
	// Setup ---
	started := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	d := &fakeDispatcher{report: app.Report{
		StartedAt:  started,
		FinishedAt: started.Add(250 * time.Millisecond),
		Found:      3,
		Items: []app.ItemResult{
			{ReminderID: uuid.New(), Outcome: app.OutcomeSent},
			{ReminderID: uuid.New(), Outcome: app.OutcomeSkipped},
			{ReminderID: uuid.New(), Outcome: app.OutcomeSendFailed, Err: errors.New("smtp down")},
		},
	}}
	s, hook := newTestScheduler(d, "* * * * *", time.Second)

	// Exercise ---
	report, err := s.RunOnce(context.Background())

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, 1, d.calls)
	require.Equal(t, 3, report.Found)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, 3, entry.Data["found"])
	require.Equal(t, 1, entry.Data["sent"])
	require.Equal(t, 1, entry.Data["skipped"])
	require.Equal(t, 1, entry.Data["failed"])
	require.Equal(t, int64(250), entry.Data["duration_ms"])
}

func TestRunOnceLogsCycleError(t *testing.T) {
	d := &fakeDispatcher{report: app.Report{Err: errors.New("db unavailable")}}
	s, hook := newTestScheduler(d, "* * * * *", time.Second)

	_, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRunOnceIsSingleFlight(t *testing.T) {
	// Setup ---
	d := &fakeDispatcher{started: make(chan struct{}), release: make(chan struct{})}
	s, _ := newTestScheduler(d, "* * * * *", time.Minute)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.RunOnce(context.Background())
	}()
	<-d.started

	// Exercise ---
	_, err := s.RunOnce(context.Background())

	// Verify ---
	require.ErrorIs(t, err, ErrCycleInProgress)
	close(d.release)
	<-done
	require.Equal(t, 1, d.calls)
}

func TestRunOnceAppliesCycleTimeout(t *testing.T) {
	d := &fakeDispatcher{release: make(chan struct{}), ctxErr: make(chan error, 1)}
	s, _ := newTestScheduler(d, "* * * * *", 20*time.Millisecond)

	_, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	require.ErrorIs(t, <-d.ctxErr, context.DeadlineExceeded)
}

func TestStopCancelsRunningCycle(t *testing.T) {
	// Setup ---
	d := &fakeDispatcher{started: make(chan struct{}), release: make(chan struct{}), ctxErr: make(chan error, 1)}
	s, _ := newTestScheduler(d, "* * * * *", time.Hour)
	require.NoError(t, s.Start())

	go func() { _, _ = s.RunOnce(s.baseCtx) }()
	<-d.started

	// Exercise ---
	s.Stop()

	// Verify ---
	require.ErrorIs(t, <-d.ctxErr, context.Canceled)
}

func TestCronLogAdapter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	adapter := cronLogAdapter{logger: logrus.NewEntry(logger)}

	adapter.Error(errors.New("boom"), "panic", "stack", "trace")

	entry := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "cron: panic", entry.Message)
	require.Equal(t, "trace", entry.Data["stack"])
}
