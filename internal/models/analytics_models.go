package models

const (
	InsightHighValueDetected = "High value transactions detected. Monitor for potential fraud."
	InsightWithinSafeLimits  = "All transactions appear within safe limits."
	InsightAverageHigh       = "Average transaction value is relatively high."
)

// AnalyticsSummary сводка по транзакциям пользователя
type AnalyticsSummary struct {
	TotalTransactions  int      `json:"total_transactions"`
	TotalAmount        float64  `json:"total_amount"`
	AverageAmount      float64  `json:"average_amount"`
	MaxAmount          float64  `json:"max_amount"`
	HighValueCount     int      `json:"high_value_count"`
	LowValueCount      int      `json:"low_value_count"`
	HighValueThreshold float64  `json:"high_value_threshold"`
	HighValueDetected  bool     `json:"high_value_detected"`
	AverageAboveAlert  bool     `json:"average_above_alert"`
	AverageAlert       float64  `json:"average_alert"`
	Insights           []string `json:"insights"`
	Currency           string   `json:"currency"`
}
