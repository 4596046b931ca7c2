package main

import (
	"context"
	"database/sql"
	"fmt"

	"event_planner/internal/app"
	domainMail "event_planner/internal/domain/mail"
	"event_planner/internal/infra/config"
	idb "event_planner/internal/infra/database"
	"event_planner/internal/infra/logger"
	"event_planner/internal/infra/mail"

	"github.com/sirupsen/logrus"
)

// deps holds everything the commands need, built once from configuration.
type deps struct {
	cfg    *config.AppConfig
	log    *logrus.Logger
	db     *sql.DB
	mailer domainMail.Sender

	reminderRepo *idb.PostgresReminderRepository
	eventRepo    *idb.PostgresEventRepository
	userRepo     *idb.PostgresUserRepository
}

func loadDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load application configuration: %w", err)
	}
	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"mail_driver": cfg.MailDriver,
		"cron_spec":   cfg.DispatchCronSpec,
	}).Info("Configuration loaded.")

	db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	log.Info("Database connection established successfully.")

	mailer, err := newMailer(ctx, cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &deps{
		cfg:          cfg,
		log:          log,
		db:           db,
		mailer:       mailer,
		reminderRepo: idb.NewPostgresReminderRepository(db),
		eventRepo:    idb.NewPostgresEventRepository(db),
		userRepo:     idb.NewPostgresUserRepository(db),
	}, nil
}

func newMailer(ctx context.Context, cfg *config.AppConfig, log *logrus.Logger) (domainMail.Sender, error) {
	switch cfg.MailDriver {
	case config.MailDriverLog:
		log.Warn("MAIL_DRIVER=log: reminder emails are written to the log, not delivered.")
		return mail.NewLogSender(logger.Component(log, "mailer")), nil
	default:
		awsCfg, err := mail.LoadAWSConfig(ctx, cfg.AwsRegion, cfg.AwsAccessKeyID, cfg.AwsSecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("could not load AWS configuration: %w", err)
		}
		return mail.NewSESSender(awsCfg, cfg.MailFrom), nil
	}
}

func (d *deps) dispatcher() *app.DispatchService {
	return app.NewDispatchService(
		d.reminderRepo,
		d.eventRepo,
		d.userRepo,
		d.mailer,
		logger.Component(d.log, "dispatcher"),
		app.DispatchOptions{
			SendTimeout: d.cfg.MailSendTimeout,
			ClaimLease:  d.cfg.ReminderClaimLease,
			Location:    d.cfg.Location(),
		},
	)
}

func (d *deps) Close() {
	if err := d.db.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close database connection")
	}
}
