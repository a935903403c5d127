package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
	"artha-pay/internal/storage/postgres"
)

type Dashboard interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*models.DashboardResponse, error)
}

type DashboardService struct {
	userRepo   postgres.UserRepository
	ledgerRepo postgres.LedgerRepository
	riskRepo   postgres.RiskRepository
	log        *slog.Logger
}

func NewDashboardService(
	userRepo postgres.UserRepository,
	ledgerRepo postgres.LedgerRepository,
	riskRepo postgres.RiskRepository,
	log *slog.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		riskRepo:   riskRepo,
		log:        log,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*models.DashboardResponse, error) {
	const op = "service.Dashboard"

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.ledgerRepo.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &models.DashboardResponse{
		Username:         user.Username,
		TransactionCount: count,
	}

	rec, err := s.riskRepo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, custom_err.ErrNotFound):
		return resp, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp.LastRiskPhase = string(rec.Phase)
	resp.LastAssessedAt = &rec.AssessedAt
	if rec.Phase == risk.PhaseScoring {
		riskPercent := rec.RiskPercent
		resp.LastRiskPercent = &riskPercent
		resp.LastRiskLevel = string(rec.Level)
	}

	return resp, nil
}
