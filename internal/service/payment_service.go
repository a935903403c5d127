package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/metrics"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
	"artha-pay/internal/storage/postgres"
	"artha-pay/internal/upi"
)

const (
	defaultPaymentsLimit = 20
	maxPaymentsLimit     = 100
)

type Payment interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, req models.CreatePaymentRequest) (*models.PaymentResponse, error)
	GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.PaymentRequest, error)
	ListPayments(ctx context.Context, userID uuid.UUID, limit int) (*models.PaymentsResponse, error)
}

type PaymentServiceConfig struct {
	Currency       string
	AlertThreshold int
	BlockHigh      bool
	MaxHistory     int
}

type PaymentService struct {
	ledger      Ledger
	risk        Risk
	paymentRepo postgres.PaymentRepository
	riskRepo    postgres.RiskRepository
	txManager   TxManager
	cfg         PaymentServiceConfig
	log         *slog.Logger
	now         func() time.Time
}

func NewPaymentService(
	ledger Ledger,
	risk Risk,
	paymentRepo postgres.PaymentRepository,
	riskRepo postgres.RiskRepository,
	txManager TxManager,
	cfg PaymentServiceConfig,
	log *slog.Logger,
) *PaymentService {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	return &PaymentService{
		ledger:      ledger,
		risk:        risk,
		paymentRepo: paymentRepo,
		riskRepo:    riskRepo,
		txManager:   txManager,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// CreatePayment добавляет сумму в журнал, оценивает риск по всей истории и
// возвращает UPI-ссылку. Запись журнала остаётся даже если платёж заблокирован.
func (s *PaymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	const op = "service.CreatePayment"

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, err.Error())
	}
	if !models.ValidVPA(req.PayeeVPA) {
		return nil, custom_err.ErrInvalidVPA
	}

	amount := upi.Amount(req.Amount)

	appended, history, err := s.ledger.AppendAndHistory(ctx, userID, amount.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// у давних пользователей журнал может быть длиннее лимита модели
	assessment, err := s.risk.Assess(LatestWindow(models.Amounts(history), s.cfg.MaxHistory))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	link := upi.Link{
		PayeeVPA:  req.PayeeVPA,
		PayeeName: req.PayeeName,
		Amount:    amount,
		Currency:  s.cfg.Currency,
		Note:      req.Note,
		Dynamic:   req.Mode == models.PaymentModeDynamic,
	}

	status := models.PaymentStatusCreated
	if s.cfg.BlockHigh && assessment.Level == risk.LevelHigh {
		status = models.PaymentStatusBlocked
	}

	payment := &models.PaymentRequest{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: appended.ID,
		PayeeVPA:      req.PayeeVPA,
		PayeeName:     req.PayeeName,
		Note:          req.Note,
		Amount:        appended.Amount,
		Mode:          req.Mode,
		UPILink:       link.String(),
		RiskPhase:     assessment.Phase,
		RiskPercent:   assessment.RiskPercent,
		RiskLevel:     assessment.Level,
		Status:        status,
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.riskRepo.UpsertTx(ctx, tx, models.NewRiskRecord(userID, appended.ID, assessment)); err != nil {
			return fmt.Errorf("failed to save risk assessment: %w", err)
		}
		if err := s.paymentRepo.CreateTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to save payment request: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to persist payment request",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.Int64("transaction_id", appended.ID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PaymentRequestsTotal.WithLabelValues(string(payment.Mode), string(payment.Status)).Inc()

	s.log.Info("платёжная ссылка создана",
		slog.String("payment_id", payment.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Float64("amount", payment.Amount),
		slog.String("phase", string(assessment.Phase)),
		slog.Int("risk_percent", assessment.RiskPercent),
		slog.String("status", string(status)))

	if assessment.Phase == risk.PhaseScoring && assessment.RiskPercent >= s.cfg.AlertThreshold {
		s.risk.EnqueueAlert(models.RiskAlertEvent{
			AlertID:           payment.ID.String(),
			PaymentID:         payment.ID,
			UserID:            userID,
			TransactionID:     appended.ID,
			Amount:            payment.Amount,
			RiskPercent:       assessment.RiskPercent,
			ConfidencePercent: assessment.ConfidencePercent,
			Level:             string(assessment.Level),
			DeviationScore:    assessment.DeviationScore,
			Outlier:           assessment.Outlier,
			Blocked:           status == models.PaymentStatusBlocked,
			Timestamp:         s.now().UTC(),
		})
	}

	if status == models.PaymentStatusBlocked {
		return nil, fmt.Errorf("%s: %w", op, custom_err.ErrHighRiskBlocked)
	}

	return &models.PaymentResponse{
		Message:    "Payment link generated",
		Payment:    payment,
		Assessment: assessment,
	}, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.PaymentRequest, error) {
	const op = "service.GetPayment"

	p, err := s.paymentRepo.GetByID(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPayments возвращает платёжные запросы, новые первыми. limit <= 0 означает значение по умолчанию.
func (s *PaymentService) ListPayments(ctx context.Context, userID uuid.UUID, limit int) (*models.PaymentsResponse, error) {
	const op = "service.ListPayments"

	if limit <= 0 {
		limit = defaultPaymentsLimit
	}
	limit = min(limit, maxPaymentsLimit)

	payments, err := s.paymentRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.PaymentsResponse{
		Count:    len(payments),
		Payments: payments,
	}, nil
}
