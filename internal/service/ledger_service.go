package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/storage/postgres"
)

// Ledger журнал сумм пользователя: только добавление, порядок вставки сохраняется.
type Ledger interface {
	Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	AppendAndHistory(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, []models.Transaction, error)
}

type LedgerService struct {
	ledgerRepo postgres.LedgerRepository
	txManager  TxManager
	log        *slog.Logger
}

func NewLedgerService(ledgerRepo postgres.LedgerRepository, txManager TxManager, log *slog.Logger) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		log:        log,
	}
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %v", custom_err.ErrInvalidAmount, amount)
	}
	if amount > models.MaxPaymentAmount {
		return fmt.Errorf("%w: %v exceeds %.2f", custom_err.ErrInvalidAmount, amount, models.MaxPaymentAmount)
	}
	return nil
}

func (s *LedgerService) Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	const op = "service.LedgerAppend"

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Append(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("транзакция добавлена в журнал",
		slog.String("user_id", userID.String()),
		slog.Int64("transaction_id", tx.ID),
		slog.Float64("amount", tx.Amount))

	return tx, nil
}

func (s *LedgerService) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "service.LedgerHistory"

	history, err := s.ledgerRepo.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

// AppendAndHistory добавляет сумму и читает историю в одной транзакции под
// блокировкой строки пользователя: возвращённая история заканчивается именно этой записью.
func (s *LedgerService) AppendAndHistory(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, []models.Transaction, error) {
	const op = "service.AppendAndHistory"

	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}

	var (
		appended *models.Transaction
		history  []models.Transaction
	)

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.ledgerRepo.LockUserTx(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		var err error
		appended, err = s.ledgerRepo.AppendTx(ctx, tx, userID, amount)
		if err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		history, err = s.ledgerRepo.HistoryTx(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("транзакция добавлена в журнал",
		slog.String("user_id", userID.String()),
		slog.Int64("transaction_id", appended.ID),
		slog.Int("history_len", len(history)))

	return appended, history, nil
}
