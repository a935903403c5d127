package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"artha-pay/internal/models"
	"artha-pay/internal/storage/postgres"
)

type Analytics interface {
	Summary(ctx context.Context, userID uuid.UUID) (*models.AnalyticsSummary, error)
}

type AnalyticsServiceConfig struct {
	HighValueThreshold float64
	AverageAlert       float64
	Currency           string
}

type AnalyticsService struct {
	ledgerRepo postgres.LedgerRepository
	cfg        AnalyticsServiceConfig
	log        *slog.Logger
}

func NewAnalyticsService(ledgerRepo postgres.LedgerRepository, cfg AnalyticsServiceConfig, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		ledgerRepo: ledgerRepo,
		cfg:        cfg,
		log:        log,
	}
}

// Summary считает транзакции строго больше порога крупными, остальные мелкими.
// Флаг среднего сравнивается с неокруглённым средним.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID) (*models.AnalyticsSummary, error) {
	const op = "service.AnalyticsSummary"

	summary, err := s.ledgerRepo.Summary(ctx, userID, s.cfg.HighValueThreshold)
	if err != nil {
		s.log.Error("failed to build analytics summary", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary.LowValueCount = summary.TotalTransactions - summary.HighValueCount
	summary.HighValueDetected = summary.HighValueCount > 0
	summary.AverageAlert = s.cfg.AverageAlert
	summary.AverageAboveAlert = summary.TotalTransactions > 0 && summary.AverageAmount > s.cfg.AverageAlert

	summary.Insights = make([]string, 0, 2)
	if summary.HighValueDetected {
		summary.Insights = append(summary.Insights, models.InsightHighValueDetected)
	} else {
		summary.Insights = append(summary.Insights, models.InsightWithinSafeLimits)
	}
	if summary.AverageAboveAlert {
		summary.Insights = append(summary.Insights, models.InsightAverageHigh)
	}

	summary.AverageAmount = round2(summary.AverageAmount)
	summary.Currency = s.cfg.Currency
	return summary, nil
}
