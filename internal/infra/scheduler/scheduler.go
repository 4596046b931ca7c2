package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"event_planner/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var (
	ErrCycleInProgress = errors.New("a dispatch cycle is already running")
	ErrAlreadyStarted  = errors.New("scheduler already started")
)

// ReminderScheduler triggers dispatch cycles on a cron schedule. At most one cycle runs at a time.
type ReminderScheduler struct {
	cronEngine   *cron.Cron
	dispatcher   app.Dispatcher
	logger       *logrus.Entry
	cronSpec     string
	cycleTimeout time.Duration

	running atomic.Bool

	mu      sync.Mutex
	started bool
	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewReminderScheduler(
	dispatcher app.Dispatcher,
	logger *logrus.Entry,
	cronSpec string, // e.g., "* * * * *" (every minute)
	cycleTimeout time.Duration,
) *ReminderScheduler {
	cronLogger := cronLogAdapter{logger: logger}
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		dispatcher:   dispatcher,
		logger:       logger,
		cronSpec:     cronSpec,
		cycleTimeout: cycleTimeout,
	}
}

// Start registers the dispatch job and starts the cron engine. It does not block.
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}

	s.logger.Info("Starting reminder scheduler...")
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Debug("Cron job triggered for reminder dispatch.")
		if _, err := s.RunOnce(s.baseCtx); err != nil {
			s.logger.WithError(err).Warn("Skipping scheduled dispatch cycle")
		}
	})
	if err != nil {
		return fmt.Errorf("could not add dispatch cron job %q: %w", s.cronSpec, err)
	}

	s.baseCtx, s.cancel = context.WithCancel(context.Background())
	s.started = true
	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Reminder scheduler started.")
	return nil
}

// RunOnce runs a single dispatch cycle bounded by the cycle timeout and logs its report.
// It returns ErrCycleInProgress instead of overlapping a cycle that is still running.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (app.Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return app.Report{}, ErrCycleInProgress
	}
	defer s.running.Store(false)

	if s.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cycleTimeout)
		defer cancel()
	}

	report := s.dispatcher.RunCycle(ctx)
	s.logReport(report)
	return report, nil
}

func (s *ReminderScheduler) logReport(report app.Report) {
	fields := logrus.Fields{
		"found":       report.Found,
		"sent":        report.Sent(),
		"skipped":     report.Count(app.OutcomeSkipped),
		"failed":      report.Failed(),
		"duration_ms": report.Duration().Milliseconds(),
	}
	if report.Err != nil {
		s.logger.WithFields(fields).WithError(report.Err).Error("Dispatch cycle did not complete")
		return
	}
	if report.Failed() > 0 {
		s.logger.WithFields(fields).Warn("Dispatch cycle finished with failures")
		return
	}
	if report.Found == 0 {
		s.logger.WithFields(fields).Debug("Dispatch cycle found no due reminders")
		return
	}
	s.logger.WithFields(fields).Info("Dispatch cycle finished")
}

// Stop cancels any in-flight cycle and waits for it to return.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}

	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs.
	s.cancel()
	<-ctx.Done() // Wait for the running job, if any, to return
	s.started = false
	s.logger.Info("Reminder scheduler gracefully stopped.")
}

// cronLogAdapter lets cron report skipped runs and recovered panics through logrus.
type cronLogAdapter struct {
	logger *logrus.Entry
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.WithFields(toFields(keysAndValues)).Debug("cron: " + msg)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.WithFields(toFields(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
