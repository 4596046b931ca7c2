package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"event_planner/internal/domain/event"

	"github.com/google/uuid"
)

type PostgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	query := `SELECT id, name, description, date, category_id, user_id, created_at
               FROM events WHERE id = $1`
	e := &event.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.CategoryID, &e.UserID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}
	return e, nil
}
