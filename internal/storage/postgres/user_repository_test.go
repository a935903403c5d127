package postgres

import (
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

func TestPgUserRepository_Create_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	user := &models.User{ID: uuid.New(), Username: "aditya", Email: "a@b.c", PasswordHash: "hash"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Username, user.Email, user.PasswordHash).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "created_at", "updated_at"}).
			AddRow(user.ID, user.Username, user.Email, now, now))

	created, err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, user.ID, created.ID)
	assert.Equal(t, "hash", created.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_Create_Duplicates(t *testing.T) {
	cases := map[string]error{
		"users_username_key": custom_err.ErrUsernameExists,
		"users_email_key":    custom_err.ErrEmailExists,
	}

	for constraint, want := range cases {
		t.Run(constraint, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})

			_, err = NewUserRepository(mock).Create(context.Background(), &models.User{ID: uuid.New()})

			assert.ErrorIs(t, err, want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPgUserRepository_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("aditya").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(id, "aditya", "a@b.c", "hash", now, now))

	user, err := NewUserRepository(mock).GetByUsername(context.Background(), "aditya")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewUserRepository(mock).GetByID(context.Background(), id)

	assert.ErrorIs(t, err, custom_err.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_GetByID_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnError(errors.New("connection reset"))

	_, err = NewUserRepository(mock).GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, custom_err.ErrNotFound)
	assert.Contains(t, err.Error(), "storage.GetUserByID")
}
