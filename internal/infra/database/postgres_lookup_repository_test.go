package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"event_planner/internal/domain/event"
	"event_planner/internal/domain/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPostgresEventRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresEventRepository(db)

	id, categoryID, userID := uuid.New(), uuid.New(), uuid.New()
	date := Now.Add(24 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "date", "category_id", "user_id", "created_at"}).
			AddRow(id.String(), "Concert", "Front row", date, categoryID.String(), userID.String(), Now))

	ev, err := repo.GetByID(context.Background(), id)

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal(&event.Event{
		ID:          id,
		Name:        "Concert",
		Description: "Front row",
		Date:        date,
		CategoryID:  categoryID,
		UserID:      userID,
		CreatedAt:   Now,
	}, ev)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestPostgresEventRepositoryNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ev, err := repo.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, event.ErrEventNotFound)
	require.Nil(t, ev)
}

func TestPostgresUserRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, created_at FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(id.String(), "Ada", "ada@example.com", Now))

	u, err := repo.GetByID(context.Background(), id)

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal(&user.User{ID: id, Name: "Ada", Email: "ada@example.com", CreatedAt: Now}, u)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestPostgresUserRepositoryNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, user.ErrUserNotFound)
	require.Nil(t, u)
}
