package models

import (
	"time"

	"github.com/google/uuid"

	"artha-pay/internal/risk"
)

// RiskRecord последняя сохранённая оценка риска пользователя
type RiskRecord struct {
	UserID            uuid.UUID  `json:"user_id"`
	TransactionID     int64      `json:"transaction_id"`
	Phase             risk.Phase `json:"phase"`
	RiskPercent       int        `json:"risk_percent"`
	ConfidencePercent int        `json:"confidence_percent"`
	DeviationScore    float64    `json:"deviation_score"`
	Mean              float64    `json:"mean"`
	StdDev            float64    `json:"stddev"`
	Level             risk.Level `json:"level,omitempty"`
	SampleSize        int        `json:"sample_size"`
	AssessedAt        time.Time  `json:"assessed_at"`
}

func NewRiskRecord(userID uuid.UUID, transactionID int64, a *risk.Assessment) *RiskRecord {
	return &RiskRecord{
		UserID:            userID,
		TransactionID:     transactionID,
		Phase:             a.Phase,
		RiskPercent:       a.RiskPercent,
		ConfidencePercent: a.ConfidencePercent,
		DeviationScore:    a.DeviationScore,
		Mean:              a.Mean,
		StdDev:            a.StdDev,
		Level:             a.Level,
		SampleSize:        a.SampleSize,
	}
}

type BehavioralInsights struct {
	AverageAmount  float64 `json:"average_amount"`
	StdDev         float64 `json:"stddev"`
	DeviationScore float64 `json:"deviation_score"`
}

// RiskReport ответ GET /risk
type RiskReport struct {
	Status                risk.Phase          `json:"status"`
	Message               string              `json:"message"`
	TransactionsCollected int                 `json:"transactions_collected"`
	TransactionsRequired  int                 `json:"transactions_required"`
	Progress              float64             `json:"progress"`
	RiskPercent           int                 `json:"risk_percent"`
	ConfidencePercent     int                 `json:"confidence_percent"`
	Level                 risk.Level          `json:"level,omitempty"`
	LevelDescription      string              `json:"level_description,omitempty"`
	Insights              *BehavioralInsights `json:"insights,omitempty"`
	Assessment            *risk.Assessment    `json:"assessment,omitempty"`
	RecentAmounts         []float64           `json:"recent_amounts"`
}

// AssessRequest тело POST /risk/assess: оценка произвольной истории без сохранения
type AssessRequest struct {
	Amounts []float64 `json:"amounts"`
}
