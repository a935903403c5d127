package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskAlertEvent событие о транзакции с высоким риском (risk_percent >= порога)
type RiskAlertEvent struct {
	AlertID           string    `json:"alert_id"`           // ID алерта, совпадает с ID платёжного запроса
	PaymentID         uuid.UUID `json:"payment_id"`         // ID платёжного запроса
	UserID            uuid.UUID `json:"user_id"`            // ID пользователя
	TransactionID     int64     `json:"transaction_id"`     // ID записи журнала
	Amount            float64   `json:"amount"`             // Сумма в INR
	RiskPercent       int       `json:"risk_percent"`       // Итоговый риск
	ConfidencePercent int       `json:"confidence_percent"` // Уверенность модели
	Level             string    `json:"level"`              // LOW / MODERATE / HIGH
	DeviationScore    float64   `json:"deviation_score"`    // Отклонение в сигмах
	Outlier           bool      `json:"outlier"`            // Решение isolation forest
	Blocked           bool      `json:"blocked"`            // Платёж заблокирован
	Timestamp         time.Time `json:"timestamp"`          // Время оценки
}

// RiskAlertNotification документ коллекции risk_alerts
type RiskAlertNotification struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	AlertID           string    `bson:"alert_id" json:"alert_id"`
	PaymentID         string    `bson:"payment_id" json:"payment_id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	TransactionID     int64     `bson:"transaction_id" json:"transaction_id"`
	Amount            float64   `bson:"amount" json:"amount"`
	RiskPercent       int       `bson:"risk_percent" json:"risk_percent"`
	ConfidencePercent int       `bson:"confidence_percent" json:"confidence_percent"`
	Level             string    `bson:"level" json:"level"`
	DeviationScore    float64   `bson:"deviation_score" json:"deviation_score"`
	Outlier           bool      `bson:"outlier" json:"outlier"`
	Blocked           bool      `bson:"blocked" json:"blocked"`
	Timestamp         time.Time `bson:"timestamp" json:"timestamp"`
	ProcessedAt       time.Time `bson:"processed_at" json:"processed_at"`
}

func NewRiskAlertNotification(e RiskAlertEvent) *RiskAlertNotification {
	return &RiskAlertNotification{
		AlertID:           e.AlertID,
		PaymentID:         e.PaymentID.String(),
		UserID:            e.UserID.String(),
		TransactionID:     e.TransactionID,
		Amount:            e.Amount,
		RiskPercent:       e.RiskPercent,
		ConfidencePercent: e.ConfidencePercent,
		Level:             e.Level,
		DeviationScore:    e.DeviationScore,
		Outlier:           e.Outlier,
		Blocked:           e.Blocked,
		Timestamp:         e.Timestamp,
	}
}

type AlertsResponse struct {
	Count  int                      `json:"count"`
	Alerts []*RiskAlertNotification `json:"alerts"`
}
