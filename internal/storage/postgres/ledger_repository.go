package postgres

import (
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository журнал сумм: только добавление, порядок по id.
type LedgerRepository interface {
	LockUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
	AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount float64) (*models.Transaction, error)
	HistoryTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]models.Transaction, error)

	Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Summary(ctx context.Context, userID uuid.UUID, highValueThreshold float64) (*models.AnalyticsSummary, error)
}

type PgLedgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) *PgLedgerRepository {
	return &PgLedgerRepository{db: db}
}

func (r *PgLedgerRepository) LockUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	const op = "storage.LockUserTx"

	var id uuid.UUID
	if err := tx.QueryRow(ctx, storage.LockUserQuery, userID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return custom_err.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PgLedgerRepository) AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	return r.execAppend(ctx, tx, userID, amount)
}

func (r *PgLedgerRepository) Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	return r.execAppend(ctx, r.db, userID, amount)
}

func (r *PgLedgerRepository) execAppend(ctx context.Context, q DBTX, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	const op = "storage.AppendTransaction"

	var t models.Transaction
	err := q.QueryRow(ctx, storage.AppendTransactionQuery, userID, amount).Scan(
		&t.ID,
		&t.UserID,
		&t.Amount,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

func (r *PgLedgerRepository) HistoryTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]models.Transaction, error) {
	return r.execHistory(ctx, tx, userID)
}

func (r *PgLedgerRepository) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return r.execHistory(ctx, r.db, userID)
}

func (r *PgLedgerRepository) execHistory(ctx context.Context, q DBTX, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "storage.TransactionHistory"

	rows, err := q.Query(ctx, storage.GetUserTransactionsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	history := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		history = append(history, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

func (r *PgLedgerRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	const op = "storage.CountTransactions"

	var count int
	if err := r.db.QueryRow(ctx, storage.CountUserTransactionsQuery, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func (r *PgLedgerRepository) Summary(ctx context.Context, userID uuid.UUID, highValueThreshold float64) (*models.AnalyticsSummary, error) {
	const op = "storage.TransactionSummary"

	s := models.AnalyticsSummary{HighValueThreshold: highValueThreshold}
	err := r.db.QueryRow(ctx, storage.TransactionSummaryQuery, userID, highValueThreshold).Scan(
		&s.TotalTransactions,
		&s.TotalAmount,
		&s.AverageAmount,
		&s.MaxAmount,
		&s.HighValueCount,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
