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
)

type RiskRepository interface {
	UpsertTx(ctx context.Context, tx pgx.Tx, rec *models.RiskRecord) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.RiskRecord, error)
}

type PgRiskRepository struct {
	db DBTX
}

func NewRiskRepository(db DBTX) *PgRiskRepository {
	return &PgRiskRepository{db: db}
}

// UpsertTx сохраняет оценку, только если она относится к более новой транзакции,
// чем уже сохранённая. Устаревшая оценка молча пропускается, AssessedAt остаётся нулевым.
func (r *PgRiskRepository) UpsertTx(ctx context.Context, tx pgx.Tx, rec *models.RiskRecord) error {
	const op = "storage.UpsertRiskAssessment"

	err := tx.QueryRow(ctx, storage.UpsertRiskAssessmentQuery,
		rec.UserID,
		rec.TransactionID,
		string(rec.Phase),
		rec.RiskPercent,
		rec.ConfidencePercent,
		rec.DeviationScore,
		rec.Mean,
		rec.StdDev,
		string(rec.Level),
		rec.SampleSize,
	).Scan(&rec.AssessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PgRiskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.RiskRecord, error) {
	const op = "storage.GetRiskAssessment"

	var (
		rec   models.RiskRecord
		phase string
		level string
	)
	err := r.db.QueryRow(ctx, storage.GetRiskAssessmentQuery, userID).Scan(
		&rec.UserID,
		&rec.TransactionID,
		&phase,
		&rec.RiskPercent,
		&rec.ConfidencePercent,
		&rec.DeviationScore,
		&rec.Mean,
		&rec.StdDev,
		&level,
		&rec.SampleSize,
		&rec.AssessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec.Phase = risk.Phase(phase)
	rec.Level = risk.Level(level)
	return &rec, nil
}
