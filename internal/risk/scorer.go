package risk

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	// MinHistory is the number of amounts needed before a user leaves the learning phase.
	MinHistory = 5

	learningConfidenceStep = 20
	scoringConfidenceStep  = 10
	maxConfidence          = 100

	deviationWeight   = 20.0
	maxBehavioralRisk = 80.0
	strengthWeight    = 10.0
	maxMLBoost        = 20.0
	maxRiskPercent    = 95.0
)

// Scorer is stateless and safe for concurrent use as long as the detector is.
type Scorer struct {
	detector OutlierDetector
	log      *slog.Logger
}

// NewScorer builds a scorer. A nil detector disables the ml boost.
func NewScorer(detector OutlierDetector, log *slog.Logger) *Scorer {
	if log == nil {
		log = slog.Default()
	}
	return &Scorer{detector: detector, log: log}
}

// Assess scores the last element of history against all earlier ones.
func (s *Scorer) Assess(history []float64) (*Assessment, error) {
	const op = "risk.Assess"

	if len(history) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyHistory)
	}
	for i, amount := range history {
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			return nil, fmt.Errorf("%s: amount at %d (%v): %w", op, i, amount, ErrInvalidAmount)
		}
	}

	if len(history) < MinHistory {
		return &Assessment{
			Phase:             PhaseLearning,
			ConfidencePercent: min(maxConfidence, len(history)*learningConfidenceStep),
			SampleSize:        len(history),
		}, nil
	}

	candidate := history[len(history)-1]
	baseline := append([]float64(nil), history[:len(history)-1]...)

	mean := Mean(baseline)
	stddev := PopulationStdDev(baseline)
	if stddev == 0 {
		stddev = 1
	}

	deviation := math.Abs(candidate-mean) / stddev
	behavioral := math.Min(maxBehavioralRisk, deviation*deviationWeight)

	outlier, strength := s.scoreOutlier(baseline, candidate)
	boost := 0.0
	if outlier {
		boost = math.Min(maxMLBoost, math.Abs(strength)*strengthWeight)
	}

	riskPercent := int(math.Floor(math.Min(maxRiskPercent, behavioral+boost)))

	return &Assessment{
		Phase:             PhaseScoring,
		RiskPercent:       riskPercent,
		ConfidencePercent: min(maxConfidence, len(baseline)*scoringConfidenceStep),
		DeviationScore:    deviation,
		Mean:              mean,
		StdDev:            stddev,
		BehavioralRisk:    behavioral,
		MLBoost:           boost,
		Outlier:           outlier,
		AnomalyStrength:   strength,
		Level:             LevelFor(riskPercent),
		SampleSize:        len(history),
	}, nil
}

// scoreOutlier never fails: any detector problem degrades to "not an outlier".
func (s *Scorer) scoreOutlier(baseline []float64, candidate float64) (outlier bool, strength float64) {
	if s.detector == nil {
		return false, 0
	}

	defer func() {
		if p := recover(); p != nil {
			s.log.Warn("outlier detector panicked, scoring without ml boost", slog.Any("panic", p))
			outlier, strength = false, 0
		}
	}()

	model, err := s.detector.Fit(baseline)
	if err != nil {
		s.log.Warn("failed to fit outlier detector, scoring without ml boost", slog.String("error", err.Error()))
		return false, 0
	}

	outlier, strength = model.Score(candidate)
	if math.IsNaN(strength) || math.IsInf(strength, 0) {
		s.log.Warn("outlier detector returned non-finite strength", slog.Float64("candidate", candidate))
		return false, 0
	}
	return outlier, strength
}
