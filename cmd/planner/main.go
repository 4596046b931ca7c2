package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event_planner/internal/app"
	"event_planner/internal/infra/config"
	idb "event_planner/internal/infra/database"
	"event_planner/internal/infra/logger"
	"event_planner/internal/infra/scheduler"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "planner",
		Usage: "Event planner reminder service.",
		Commands: []*cli.Command{
			runCommand(),
			dispatchCommand(),
			migrateCommand(),
			remindCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logrus.WithError(err).Error("Application failed")
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the reminder scheduler and dispatch due reminders until interrupted.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-migrations", Usage: "Do not apply database migrations on startup."},
		},
		Action: func(c *cli.Context) error {
			d, err := loadDeps(c.Context)
			if err != nil {
				return err
			}
			defer d.Close()

			if !c.Bool("skip-migrations") {
				if err := migrate(d.cfg, d.log); err != nil {
					return err
				}
			}

			reminderScheduler := scheduler.NewReminderScheduler(
				d.dispatcher(),
				logger.Component(d.log, "scheduler"),
				d.cfg.DispatchCronSpec,
				d.cfg.DispatchCycleTimeout,
			)
			if err := reminderScheduler.Start(); err != nil {
				return err
			}
			d.log.Info("Application setup complete. Scheduler is running.")

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit // Block until a signal is received

			d.log.Info("Shutting down application...")
			reminderScheduler.Stop()
			d.log.Info("Application shut down gracefully.")
			return nil
		},
	}
}

func dispatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "dispatch",
		Usage: "Run a single dispatch cycle and print its report.",
		Action: func(c *cli.Context) error {
			d, err := loadDeps(c.Context)
			if err != nil {
				return err
			}
			defer d.Close()

			reminderScheduler := scheduler.NewReminderScheduler(
				d.dispatcher(),
				logger.Component(d.log, "scheduler"),
				d.cfg.DispatchCronSpec,
				d.cfg.DispatchCycleTimeout,
			)
			report, err := reminderScheduler.RunOnce(c.Context)
			if err != nil {
				return err
			}
			printReport(report)
			return report.Err
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load application configuration: %w", err)
			}
			return migrate(cfg, logger.New(cfg))
		},
	}
}

func remindCommand() *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Schedule a reminder for one of a user's events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Required: true, Usage: "ID of the user who owns the event."},
			&cli.StringFlag{Name: "event", Required: true, Usage: "ID of the event."},
			&cli.TimestampFlag{Name: "at", Required: true, Layout: time.RFC3339, Usage: "When to send the reminder (RFC3339)."},
		},
		Action: func(c *cli.Context) error {
			userID, err := uuid.Parse(c.String("user"))
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			eventID, err := uuid.Parse(c.String("event"))
			if err != nil {
				return fmt.Errorf("invalid --event: %w", err)
			}
			at := c.Timestamp("at")
			if at == nil {
				return fmt.Errorf("--at is required")
			}

			d, err := loadDeps(c.Context)
			if err != nil {
				return err
			}
			defer d.Close()

			reminderService := app.NewReminderService(d.reminderRepo, d.eventRepo, time.Now)
			rem, err := reminderService.CreateReminder(c.Context, userID, eventID, *at)
			if err != nil {
				return err
			}
			fmt.Printf("Reminder %s scheduled for %s\n", rem.ID, rem.ReminderTime.Format(time.RFC3339))
			return nil
		},
	}
}

func migrate(cfg *config.AppConfig, log *logrus.Logger) error {
	version, err := idb.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	log.WithField("version", version).Info("Database schema is up to date.")
	return nil
}

func printReport(report app.Report) {
	fmt.Printf("found=%d sent=%d skipped=%d failed=%d duration=%s\n",
		report.Found, report.Sent(), report.Count(app.OutcomeSkipped), report.Failed(), report.Duration())
	for _, item := range report.Items {
		if item.Err != nil {
			fmt.Printf("  %s %s: %v\n", item.ReminderID, item.Outcome, item.Err)
			continue
		}
		fmt.Printf("  %s %s\n", item.ReminderID, item.Outcome)
	}
}
