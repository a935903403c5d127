package models

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"artha-pay/internal/risk"
)

const (
	MinPaymentAmount = 1.0
	// MaxPaymentAmount наибольшее значение, помещающееся в NUMERIC(14,2)
	MaxPaymentAmount = 999_999_999_999.99
	DefaultNote      = "AI Secure Payment"
)

type PaymentMode string

const (
	// PaymentModeFixed кодирует сумму в ссылке
	PaymentModeFixed PaymentMode = "fixed"
	// PaymentModeDynamic оставляет ввод суммы плательщику
	PaymentModeDynamic PaymentMode = "dynamic"
)

func (m PaymentMode) IsValid() bool {
	return m == PaymentModeFixed || m == PaymentModeDynamic
}

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusBlocked PaymentStatus = "blocked"
)

// CreatePaymentRequest запрос на генерацию UPI-ссылки
type CreatePaymentRequest struct {
	Amount    float64     `json:"amount" example:"1500"`
	PayeeVPA  string      `json:"payee_vpa" example:"merchant@okaxis"`
	PayeeName string      `json:"payee_name" example:"Aditya"`
	Note      string      `json:"note" example:"AI Secure Payment"`
	Mode      PaymentMode `json:"mode" example:"fixed"`
}

func (r *CreatePaymentRequest) Normalize() {
	r.PayeeVPA = strings.TrimSpace(r.PayeeVPA)
	r.PayeeName = strings.TrimSpace(r.PayeeName)
	r.Note = strings.TrimSpace(r.Note)
	if r.Mode == "" {
		r.Mode = PaymentModeFixed
	}
	if r.Note == "" {
		r.Note = DefaultNote
	}
	if r.PayeeName == "" {
		r.PayeeName = r.PayeeVPA
	}
}

func (r CreatePaymentRequest) Validate() error {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return errors.New("amount must be a finite number")
	}
	if r.Amount < MinPaymentAmount {
		return errors.New("amount must be at least 1.00")
	}
	if r.Amount > MaxPaymentAmount {
		return errors.New("amount must be at most 999999999999.99")
	}
	if !r.Mode.IsValid() {
		return errors.New("mode must be fixed or dynamic")
	}
	if len(r.PayeeName) > 255 || len(r.Note) > 255 {
		return errors.New("payee_name and note must be at most 255 characters")
	}
	return nil
}

// ValidVPA проверяет формат адреса вида handle@bank
func ValidVPA(vpa string) bool {
	handle, bank, ok := strings.Cut(vpa, "@")
	if !ok || handle == "" || bank == "" || strings.Contains(bank, "@") {
		return false
	}
	return !strings.ContainsAny(vpa, " \t\n&?=")
}

// PaymentRequest сохранённая платёжная ссылка вместе с результатом оценки риска
type PaymentRequest struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	TransactionID int64         `json:"transaction_id"`
	PayeeVPA      string        `json:"payee_vpa"`
	PayeeName     string        `json:"payee_name"`
	Note          string        `json:"note"`
	Amount        float64       `json:"amount"`
	Mode          PaymentMode   `json:"mode"`
	UPILink       string        `json:"upi_link"`
	RiskPhase     risk.Phase    `json:"risk_phase"`
	RiskPercent   int           `json:"risk_percent"`
	RiskLevel     risk.Level    `json:"risk_level,omitempty"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type PaymentResponse struct {
	Message    string           `json:"message"`
	Payment    *PaymentRequest  `json:"payment"`
	Assessment *risk.Assessment `json:"assessment"`
}

type PaymentsResponse struct {
	Count    int               `json:"count"`
	Payments []*PaymentRequest `json:"payments"`
}
