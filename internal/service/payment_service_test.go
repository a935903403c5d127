package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
)

type paymentDeps struct {
	ledger      *MockLedger
	risk        *MockRisk
	paymentRepo *MockPaymentRepository
	riskRepo    *MockRiskRepository
	txManager   *MockTxManager
}

func setupPaymentService(cfg PaymentServiceConfig) (*PaymentService, paymentDeps) {
	d := paymentDeps{
		ledger:      new(MockLedger),
		risk:        new(MockRisk),
		paymentRepo: new(MockPaymentRepository),
		riskRepo:    new(MockRiskRepository),
		txManager:   new(MockTxManager),
	}
	svc := NewPaymentService(d.ledger, d.risk, d.paymentRepo, d.riskRepo, d.txManager, cfg, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, d
}

func defaultPaymentConfig() PaymentServiceConfig {
	return PaymentServiceConfig{Currency: "INR", AlertThreshold: 70}
}

func (d paymentDeps) expectPersist(ctx context.Context) {
	d.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	d.riskRepo.On("UpsertTx", ctx, mock.Anything, mock.AnythingOfType("*models.RiskRecord")).Return(nil)
	d.paymentRepo.On("CreateTx", ctx, mock.Anything, mock.AnythingOfType("*models.PaymentRequest")).Return(nil)
}

func TestPaymentService_CreatePayment_Learning(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 250)
	d.ledger.On("AppendAndHistory", ctx, userID, 250.0).Return(&history[0], history, nil)
	d.risk.On("Assess", []float64{250}).
		Return(&risk.Assessment{Phase: risk.PhaseLearning, ConfidencePercent: 20, SampleSize: 1}, nil)
	d.expectPersist(ctx)

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{
		Amount:    250,
		PayeeVPA:  "yourupi@okaxis",
		PayeeName: "Aditya",
	})

	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=yourupi@okaxis&pn=Aditya&am=250.00&cu=INR&tn=AI%20Secure%20Payment", resp.Payment.UPILink)
	assert.Equal(t, models.PaymentStatusCreated, resp.Payment.Status)
	assert.Equal(t, risk.PhaseLearning, resp.Payment.RiskPhase)
	assert.Equal(t, int64(1), resp.Payment.TransactionID)
	assert.Equal(t, 20, resp.Assessment.ConfidencePercent)
	d.risk.AssertNotCalled(t, "EnqueueAlert", mock.Anything)
	d.riskRepo.AssertExpectations(t)
	d.paymentRepo.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_WindowsHistory(t *testing.T) {
	cfg := defaultPaymentConfig()
	cfg.MaxHistory = 2
	svc, d := setupPaymentService(cfg)
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 10, 20, 30)
	d.ledger.On("AppendAndHistory", ctx, userID, 30.0).Return(&history[2], history, nil)
	d.risk.On("Assess", []float64{20, 30}).
		Return(&risk.Assessment{Phase: risk.PhaseLearning, ConfidencePercent: 40, SampleSize: 2}, nil)
	d.expectPersist(ctx)

	_, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 30, PayeeVPA: "yourupi@okaxis"})

	require.NoError(t, err)
	d.risk.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_DynamicOmitsAmount(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 99.5)
	d.ledger.On("AppendAndHistory", ctx, userID, 99.5).Return(&history[0], history, nil)
	d.risk.On("Assess", mock.Anything).Return(&risk.Assessment{Phase: risk.PhaseLearning}, nil)
	d.expectPersist(ctx)

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{
		Amount:   99.5,
		PayeeVPA: "shop@ybl",
		Mode:     models.PaymentModeDynamic,
		Note:     "chai",
	})

	require.NoError(t, err)
	assert.NotContains(t, resp.Payment.UPILink, "am=")
	assert.True(t, strings.HasSuffix(resp.Payment.UPILink, "&cu=INR&tn=chai"))
	assert.Equal(t, 99.5, resp.Payment.Amount)
}

func TestPaymentService_CreatePayment_HighRiskEnqueuesAlert(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 100, 100, 100, 100, 50000)
	assessment := &risk.Assessment{
		Phase:             risk.PhaseScoring,
		RiskPercent:       95,
		ConfidencePercent: 40,
		Level:             risk.LevelHigh,
		Outlier:           true,
	}
	d.ledger.On("AppendAndHistory", ctx, userID, 50000.0).Return(&history[4], history, nil)
	d.risk.On("Assess", []float64{100, 100, 100, 100, 50000}).Return(assessment, nil)
	d.expectPersist(ctx)
	d.risk.On("EnqueueAlert", mock.MatchedBy(func(e models.RiskAlertEvent) bool {
		return e.UserID == userID &&
			e.RiskPercent == 95 &&
			e.Level == "HIGH" &&
			e.TransactionID == 5 &&
			e.AlertID == e.PaymentID.String() &&
			!e.Blocked
	})).Return(true)

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 50000, PayeeVPA: "shop@ybl"})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCreated, resp.Payment.Status)
	assert.Equal(t, risk.LevelHigh, resp.Payment.RiskLevel)
	d.risk.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_BelowThresholdNoAlert(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 100, 200, 150, 180, 160)
	d.ledger.On("AppendAndHistory", ctx, userID, 160.0).Return(&history[4], history, nil)
	d.risk.On("Assess", mock.Anything).
		Return(&risk.Assessment{Phase: risk.PhaseScoring, RiskPercent: 69, Level: risk.LevelModerate}, nil)
	d.expectPersist(ctx)

	_, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 160, PayeeVPA: "shop@ybl"})

	require.NoError(t, err)
	d.risk.AssertNotCalled(t, "EnqueueAlert", mock.Anything)
}

func TestPaymentService_CreatePayment_BlockHigh(t *testing.T) {
	cfg := defaultPaymentConfig()
	cfg.BlockHigh = true
	svc, d := setupPaymentService(cfg)
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 10, 10, 10, 10, 9000)
	d.ledger.On("AppendAndHistory", ctx, userID, 9000.0).Return(&history[4], history, nil)
	d.risk.On("Assess", mock.Anything).
		Return(&risk.Assessment{Phase: risk.PhaseScoring, RiskPercent: 90, Level: risk.LevelHigh}, nil)
	d.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	d.riskRepo.On("UpsertTx", ctx, mock.Anything, mock.Anything).Return(nil)
	d.paymentRepo.On("CreateTx", ctx, mock.Anything, mock.MatchedBy(func(p *models.PaymentRequest) bool {
		return p.Status == models.PaymentStatusBlocked
	})).Return(nil)
	d.risk.On("EnqueueAlert", mock.MatchedBy(func(e models.RiskAlertEvent) bool { return e.Blocked })).Return(true)

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 9000, PayeeVPA: "shop@ybl"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, custom_err.ErrHighRiskBlocked)
	d.paymentRepo.AssertExpectations(t)
	d.risk.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_Validation(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()

	_, err := svc.CreatePayment(ctx, uuid.New(), models.CreatePaymentRequest{Amount: 0.5, PayeeVPA: "shop@ybl"})
	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)

	_, err = svc.CreatePayment(ctx, uuid.New(), models.CreatePaymentRequest{Amount: 10, PayeeVPA: "no-at-sign"})
	assert.ErrorIs(t, err, custom_err.ErrInvalidVPA)

	_, err = svc.CreatePayment(ctx, uuid.New(), models.CreatePaymentRequest{Amount: 10, PayeeVPA: "shop@ybl", Mode: "monthly"})
	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)

	_, err = svc.CreatePayment(ctx, uuid.New(), models.CreatePaymentRequest{Amount: 1e12, PayeeVPA: "shop@ybl"})
	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)

	d.ledger.AssertNotCalled(t, "AppendAndHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_CreatePayment_LedgerError(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	d.ledger.On("AppendAndHistory", ctx, userID, 10.0).Return(nil, nil, custom_err.ErrNotFound)

	_, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 10, PayeeVPA: "shop@ybl"})

	assert.ErrorIs(t, err, custom_err.ErrNotFound)
	d.risk.AssertNotCalled(t, "Assess", mock.Anything)
}

func TestPaymentService_CreatePayment_PersistError(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 10)
	d.ledger.On("AppendAndHistory", ctx, userID, 10.0).Return(&history[0], history, nil)
	d.risk.On("Assess", mock.Anything).Return(&risk.Assessment{Phase: risk.PhaseLearning}, nil)
	d.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	d.riskRepo.On("UpsertTx", ctx, mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 10, PayeeVPA: "shop@ybl"})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "deadlock")
	d.paymentRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_CreatePayment_RoundsToPaise(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	history := transactionsOf(userID, 10.13)
	d.ledger.On("AppendAndHistory", ctx, userID, 10.13).Return(&history[0], history, nil)
	d.risk.On("Assess", mock.Anything).Return(&risk.Assessment{Phase: risk.PhaseLearning}, nil)
	d.expectPersist(ctx)

	resp, err := svc.CreatePayment(ctx, userID, models.CreatePaymentRequest{Amount: 10.126, PayeeVPA: "shop@ybl"})

	require.NoError(t, err)
	assert.Contains(t, resp.Payment.UPILink, "am=10.13")
}

func TestPaymentService_ListPayments_Limits(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID := uuid.New()

	d.paymentRepo.On("ListByUser", ctx, userID, 20).Return([]*models.PaymentRequest{{ID: uuid.New()}}, nil).Once()
	d.paymentRepo.On("ListByUser", ctx, userID, 100).Return([]*models.PaymentRequest{}, nil).Once()

	resp, err := svc.ListPayments(ctx, userID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	resp, err = svc.ListPayments(ctx, userID, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)

	d.paymentRepo.AssertExpectations(t)
}

func TestPaymentService_GetPayment(t *testing.T) {
	svc, d := setupPaymentService(defaultPaymentConfig())
	ctx := context.Background()
	userID, paymentID := uuid.New(), uuid.New()

	d.paymentRepo.On("GetByID", ctx, paymentID, userID).Return(nil, custom_err.ErrNotFound)

	p, err := svc.GetPayment(ctx, userID, paymentID)

	assert.Nil(t, p)
	assert.ErrorIs(t, err, custom_err.ErrNotFound)
}
