// internal/infra/database/postgres_reminder_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"event_planner/internal/domain/reminder"

	"github.com/google/uuid"
)

const reminderColumns = `id, event_id, user_id, reminder_time, notified, claimed_at, created_at`

type PostgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminderRepository(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

func (r *PostgresReminderRepository) Create(ctx context.Context, rem *reminder.Reminder) error {
	if rem.ID == uuid.Nil {
		rem.ID = uuid.New()
	}
	if rem.CreatedAt.IsZero() {
		rem.CreatedAt = time.Now()
	}
	query := `INSERT INTO reminders (id, event_id, user_id, reminder_time, notified, created_at)
               VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, rem.ID, rem.EventID, rem.UserID, rem.ReminderTime, rem.Notified, rem.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating reminder: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) GetByID(ctx context.Context, id uuid.UUID) (*reminder.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reminder.ErrReminderNotFound
		}
		return nil, fmt.Errorf("error getting reminder by ID: %w", err)
	}
	return rem, nil
}

func (r *PostgresReminderRepository) FindDueUnsent(ctx context.Context, now time.Time) ([]*reminder.Reminder, error) {
	query := `SELECT ` + reminderColumns + `
               FROM reminders
               WHERE reminder_time <= $1 AND notified = FALSE
               ORDER BY reminder_time ASC` // Oldest first
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error querying due reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]*reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning due reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due reminders: %w", err)
	}
	return reminders, nil
}

func (r *PostgresReminderRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reminders SET notified = TRUE, claimed_at = NULL WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error marking reminder notified: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return reminder.ErrReminderNotFound
	}
	return nil
}

func (r *PostgresReminderRepository) Claim(ctx context.Context, id uuid.UUID, now time.Time, lease time.Duration) (bool, error) {
	query := `UPDATE reminders
               SET claimed_at = $2
               WHERE id = $1
                 AND notified = FALSE
                 AND (claimed_at IS NULL OR claimed_at <= $3)`
	res, err := r.db.ExecContext(ctx, query, id, now, now.Add(-lease))
	if err != nil {
		return false, fmt.Errorf("error claiming reminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected == 1, nil
}

func (r *PostgresReminderRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reminders SET claimed_at = NULL WHERE id = $1 AND notified = FALSE`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error releasing reminder claim: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (*reminder.Reminder, error) {
	rem := &reminder.Reminder{}
	err := row.Scan(&rem.ID, &rem.EventID, &rem.UserID, &rem.ReminderTime, &rem.Notified, &rem.ClaimedAt, &rem.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rem, nil
}
