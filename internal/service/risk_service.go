package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/kafka"
	"artha-pay/internal/metrics"
	"artha-pay/internal/models"
	"artha-pay/internal/risk"
	"artha-pay/internal/storage/postgres"
)

const (
	recentAmountsLimit = 10

	// DefaultMaxHistory ограничивает число сумм, передаваемых в модель за один вызов.
	DefaultMaxHistory = 10_000
)

// Assessor implemented by *risk.Scorer
type Assessor interface {
	Assess(history []float64) (*risk.Assessment, error)
}

type Risk interface {
	Assess(amounts []float64) (*risk.Assessment, error)
	Report(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error)
	EnqueueAlert(event models.RiskAlertEvent) bool
}

type RiskServiceConfig struct {
	AlertWorkers   int
	AlertQueueSize int
	SendTimeout    time.Duration
	MaxHistory     int
}

type RiskService struct {
	scorer     Assessor
	ledgerRepo postgres.LedgerRepository
	producer   kafka.Producer
	log        *slog.Logger

	maxHistory  int
	sendTimeout time.Duration
	alertQueue  chan models.RiskAlertEvent
	wg          sync.WaitGroup
	stopCh      chan struct{}
	stopOnce    sync.Once
}

func NewRiskService(
	scorer Assessor,
	ledgerRepo postgres.LedgerRepository,
	producer kafka.Producer,
	cfg RiskServiceConfig,
	log *slog.Logger,
) *RiskService {
	if cfg.AlertWorkers <= 0 {
		cfg.AlertWorkers = 5
	}
	if cfg.AlertQueueSize <= 0 {
		cfg.AlertQueueSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}

	svc := &RiskService{
		scorer:      scorer,
		ledgerRepo:  ledgerRepo,
		producer:    producer,
		log:         log,
		maxHistory:  cfg.MaxHistory,
		sendTimeout: cfg.SendTimeout,
		alertQueue:  make(chan models.RiskAlertEvent, cfg.AlertQueueSize),
		stopCh:      make(chan struct{}),
	}

	for i := 0; i < cfg.AlertWorkers; i++ {
		svc.wg.Add(1)
		go svc.alertWorker(i)
	}

	return svc
}

func (s *RiskService) alertWorker(id int) {
	defer s.wg.Done()
	s.log.Info("alert worker started", slog.Int("worker_id", id))

	for {
		select {
		case event := <-s.alertQueue:
			s.sendAlert(id, event)

		case <-s.stopCh:
			// дочищаем очередь, чтобы не терять уже принятые алерты
			for {
				select {
				case event := <-s.alertQueue:
					s.sendAlert(id, event)
				default:
					s.log.Info("alert worker stopping", slog.Int("worker_id", id))
					return
				}
			}
		}
	}
}

func (s *RiskService) sendAlert(workerID int, event models.RiskAlertEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	if err := s.producer.SendRiskAlert(ctx, event); err != nil {
		metrics.AlertsTotal.WithLabelValues("failed").Inc()
		s.log.Error("kafka send failed",
			slog.Int("worker_id", workerID),
			slog.String("alert_id", event.AlertID),
			slog.String("error", err.Error()))
		return
	}

	metrics.AlertsTotal.WithLabelValues("sent").Inc()
	s.log.Info("risk alert sent to kafka",
		slog.Int("worker_id", workerID),
		slog.String("alert_id", event.AlertID),
		slog.Int("risk_percent", event.RiskPercent))
}

// EnqueueAlert never blocks: a full queue drops the alert.
func (s *RiskService) EnqueueAlert(event models.RiskAlertEvent) bool {
	select {
	case s.alertQueue <- event:
		s.log.Debug("алерт добавлен в очередь", slog.String("alert_id", event.AlertID))
		return true
	default:
		metrics.AlertsTotal.WithLabelValues("dropped").Inc()
		s.log.Error("очередь алертов переполнена, алерт отброшен",
			slog.String("alert_id", event.AlertID),
			slog.Int("risk_percent", event.RiskPercent))
		return false
	}
}

func (s *RiskService) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down risk service")

	s.stopOnce.Do(func() { close(s.stopCh) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("all alert workers stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}

// Assess оценивает последнюю сумму истории относительно предыдущих.
// История длиннее maxHistory отклоняется целиком.
func (s *RiskService) Assess(amounts []float64) (*risk.Assessment, error) {
	const op = "service.Assess"

	if len(amounts) > s.maxHistory {
		return nil, fmt.Errorf("%w: got %d amounts, at most %d allowed", custom_err.ErrHistoryTooLong, len(amounts), s.maxHistory)
	}

	a, err := s.scorer.Assess(amounts)
	if err != nil {
		return nil, mapScorerError(op, err)
	}

	metrics.RiskAssessmentsTotal.WithLabelValues(string(a.Phase), string(a.Level)).Inc()
	if a.Phase == risk.PhaseScoring {
		metrics.RiskPercent.Observe(float64(a.RiskPercent))
	}

	return a, nil
}

func mapScorerError(op string, err error) error {
	switch {
	case errors.Is(err, risk.ErrEmptyHistory):
		return fmt.Errorf("%s: %w", op, custom_err.ErrNoHistory)
	case errors.Is(err, risk.ErrInvalidAmount):
		return fmt.Errorf("%w: %s", custom_err.ErrInvalidAmount, err.Error())
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Report строит отчёт по последней транзакции пользователя без сохранения результата.
func (s *RiskService) Report(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error) {
	const op = "service.RiskReport"

	history, err := s.ledgerRepo.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	amounts := models.Amounts(history)
	report := &models.RiskReport{
		TransactionsCollected: len(amounts),
		TransactionsRequired:  risk.MinHistory,
		RecentAmounts:         recentNewestFirst(amounts, recentAmountsLimit),
	}

	if len(amounts) == 0 {
		report.Status = risk.PhaseInactive
		report.Message = "Risk engine is not activated yet. Generate your first payment QR to start building a behavioral baseline."
		return report, nil
	}

	a, err := s.scorer.Assess(LatestWindow(amounts, s.maxHistory))
	if err != nil {
		return nil, mapScorerError(op, err)
	}

	report.Status = a.Phase
	report.ConfidencePercent = a.ConfidencePercent

	if a.Learning() {
		report.Message = fmt.Sprintf("Learning phase: %d/%d transactions collected", len(amounts), risk.MinHistory)
		report.Progress = float64(len(amounts)) / float64(risk.MinHistory)
		return report, nil
	}

	report.Message = "Risk scoring is active"
	report.Progress = 1
	report.RiskPercent = a.RiskPercent
	report.Level = a.Level
	report.LevelDescription = a.Level.Description()
	report.Assessment = a
	report.Insights = &models.BehavioralInsights{
		AverageAmount:  round2(a.Mean),
		StdDev:         round2(a.StdDev),
		DeviationScore: round2(a.DeviationScore),
	}

	return report, nil
}

// LatestWindow возвращает последние limit сумм (хронологический порядок сохраняется).
func LatestWindow(amounts []float64, limit int) []float64 {
	if limit <= 0 || len(amounts) <= limit {
		return amounts
	}
	return amounts[len(amounts)-limit:]
}

func recentNewestFirst(amounts []float64, limit int) []float64 {
	n := min(limit, len(amounts))
	out := make([]float64, 0, n)
	for i := len(amounts) - 1; i >= len(amounts)-n; i-- {
		out = append(out, amounts[i])
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
