package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
)

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middlew.WithUser(r.Context(), userID, "aditya"))
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegisterResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*models.JWTClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JWTClaims), args.Error(1)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentResponse), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.PaymentRequest, error) {
	args := m.Called(ctx, userID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRequest), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, userID uuid.UUID, limit int) (*models.PaymentsResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentsResponse), args.Error(1)
}

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) Append(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerService) AppendAndHistory(ctx context.Context, userID uuid.UUID, amount float64) (*models.Transaction, []models.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.Get(1).([]models.Transaction), args.Error(2)
}

type MockRiskService struct{ mock.Mock }

func (m *MockRiskService) Assess(amounts []float64) (*risk.Assessment, error) {
	args := m.Called(amounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Assessment), args.Error(1)
}

func (m *MockRiskService) Report(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskReport), args.Error(1)
}

func (m *MockRiskService) EnqueueAlert(event models.RiskAlertEvent) bool {
	return m.Called(event).Bool(0)
}

type MockAnalyticsService struct{ mock.Mock }

func (m *MockAnalyticsService) Summary(ctx context.Context, userID uuid.UUID) (*models.AnalyticsSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSummary), args.Error(1)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*models.DashboardResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardResponse), args.Error(1)
}
