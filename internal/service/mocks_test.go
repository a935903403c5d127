package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"artha-pay/internal/models"
	"artha-pay/internal/risk"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LockUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	args := m.Called(ctx, tx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) HistoryTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Summary(ctx context.Context, userID uuid.UUID, highValueThreshold float64) (*models.AnalyticsSummary, error) {
	args := m.Called(ctx, userID, highValueThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSummary), args.Error(1)
}

type MockRiskRepository struct {
	mock.Mock
}

func (m *MockRiskRepository) UpsertTx(ctx context.Context, tx pgx.Tx, rec *models.RiskRecord) error {
	args := m.Called(ctx, tx, rec)
	return args.Error(0)
}

func (m *MockRiskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.RiskRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskRecord), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *models.PaymentRequest) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *models.PaymentRequest) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.PaymentRequest, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PaymentRequest, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRequest), args.Error(1)
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) SendRiskAlert(ctx context.Context, event models.RiskAlertEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedger) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedger) AppendAndHistory(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, []models.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.Get(1).([]models.Transaction), args.Error(2)
}

type MockRisk struct {
	mock.Mock
}

func (m *MockRisk) Assess(amounts []float64) (*risk.Assessment, error) {
	args := m.Called(amounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Assessment), args.Error(1)
}

func (m *MockRisk) Report(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskReport), args.Error(1)
}

func (m *MockRisk) EnqueueAlert(event models.RiskAlertEvent) bool {
	args := m.Called(event)
	return args.Bool(0)
}

func transactionsOf(userID uuid.UUID, amounts ...float64) []models.Transaction {
	txs := make([]models.Transaction, len(amounts))
	for i, a := range amounts {
		txs[i] = models.Transaction{ID: int64(i + 1), UserID: userID, Amount: a}
	}
	return txs
}
