// Package risk scores a user's newest transaction amount against the behavioral
// baseline formed by the user's earlier amounts.
package risk

import "errors"

var (
	ErrEmptyHistory  = errors.New("risk: empty transaction history")
	ErrInvalidAmount = errors.New("risk: amount must be finite and non-negative")
	ErrEmptyBaseline = errors.New("risk: cannot fit detector on empty baseline")
)

// Phase описывает, на каком этапе находится оценка риска пользователя
type Phase string

const (
	// PhaseInactive is never produced by Scorer: it marks a user with no history at all.
	PhaseInactive Phase = "inactive"
	PhaseLearning Phase = "learning"
	PhaseScoring  Phase = "scoring"
)

// Level is the qualitative label callers attach to a risk percentage.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
)

const (
	moderateThreshold = 30
	highThreshold     = 70
)

// LevelFor maps a risk percentage to its label: <30 low, [30,70) moderate, >=70 high.
func LevelFor(riskPercent int) Level {
	switch {
	case riskPercent >= highThreshold:
		return LevelHigh
	case riskPercent >= moderateThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}

func (l Level) Description() string {
	switch l {
	case LevelHigh:
		return "Strong behavioral anomaly"
	case LevelModerate:
		return "Pattern deviation detected"
	case LevelLow:
		return "Normal behavioral pattern"
	default:
		return ""
	}
}

// Assessment is the result of a single Assess call.
// In the learning phase only Phase, ConfidencePercent and SampleSize are set.
type Assessment struct {
	Phase             Phase   `json:"phase"`
	RiskPercent       int     `json:"risk_percent"`
	ConfidencePercent int     `json:"confidence_percent"`
	DeviationScore    float64 `json:"deviation_score"`
	Mean              float64 `json:"mean"`
	StdDev            float64 `json:"stddev"`
	BehavioralRisk    float64 `json:"behavioral_risk"`
	MLBoost           float64 `json:"ml_boost"`
	Outlier           bool    `json:"outlier"`
	AnomalyStrength   float64 `json:"anomaly_strength"`
	Level             Level   `json:"level,omitempty"`
	SampleSize        int     `json:"sample_size"`
}

func (a *Assessment) Learning() bool {
	return a.Phase == PhaseLearning
}

// OutlierDetector is fit on baseline amounts only.
type OutlierDetector interface {
	Fit(baseline []float64) (OutlierModel, error)
}

// OutlierModel scores a single amount. Strength is signed: the more negative,
// the more anomalous; outlier is true iff strength < 0.
type OutlierModel interface {
	Score(amount float64) (outlier bool, strength float64)
}
