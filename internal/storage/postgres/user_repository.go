package postgres

import (
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type PgUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *PgUserRepository {
	return &PgUserRepository{db: db}
}

func (r *PgUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "storage.CreateUser"

	var created models.User
	err := r.db.QueryRow(
		ctx,
		storage.CreateUserQuery,
		user.ID, user.Username, user.Email, user.PasswordHash,
	).Scan(
		&created.ID,
		&created.Username,
		&created.Email,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, custom_err.ErrUsernameExists
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, custom_err.ErrEmailExists
			}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created.PasswordHash = user.PasswordHash
	return &created, nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.GetUserByID"
	return r.getOne(ctx, op, storage.GetUserByIDQuery, id)
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	return r.getOne(ctx, op, storage.GetUserByUsernameQuery, username)
}

func (r *PgUserRepository) getOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
