package postgres

import (
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
	"artha-pay/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PaymentRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, p *models.PaymentRequest) error
	Create(ctx context.Context, p *models.PaymentRequest) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.PaymentRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PaymentRequest, error)
}

type PgPaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PgPaymentRepository {
	return &PgPaymentRepository{db: db}
}

func (r *PgPaymentRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *models.PaymentRequest) error {
	return r.execCreate(ctx, tx, p)
}

func (r *PgPaymentRepository) Create(ctx context.Context, p *models.PaymentRequest) error {
	return r.execCreate(ctx, r.db, p)
}

func (r *PgPaymentRepository) execCreate(ctx context.Context, q DBTX, p *models.PaymentRequest) error {
	const op = "storage.CreatePaymentRequest"

	err := q.QueryRow(ctx, storage.CreatePaymentRequestQuery,
		p.ID,
		p.UserID,
		p.TransactionID,
		p.PayeeVPA,
		p.PayeeName,
		p.Note,
		p.Amount,
		string(p.Mode),
		p.UPILink,
		string(p.RiskPhase),
		p.RiskPercent,
		string(p.RiskLevel),
		string(p.Status),
	).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: payment %s already exists: %w", op, p.ID, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PgPaymentRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.PaymentRequest, error) {
	const op = "storage.GetPaymentRequest"

	p, err := scanPayment(r.db.QueryRow(ctx, storage.GetPaymentRequestQuery, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *PgPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PaymentRequest, error) {
	const op = "storage.ListPaymentRequests"

	rows, err := r.db.Query(ctx, storage.ListPaymentRequestsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	payments := make([]*models.PaymentRequest, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (*models.PaymentRequest, error) {
	var (
		p                       models.PaymentRequest
		mode, phase, lvl, state string
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.TransactionID,
		&p.PayeeVPA,
		&p.PayeeName,
		&p.Note,
		&p.Amount,
		&mode,
		&p.UPILink,
		&phase,
		&p.RiskPercent,
		&lvl,
		&state,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Mode = models.PaymentMode(mode)
	p.RiskPhase = risk.Phase(phase)
	p.RiskLevel = risk.Level(lvl)
	p.Status = models.PaymentStatus(state)
	return &p, nil
}
