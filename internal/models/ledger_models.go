package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction одна запись журнала сумм пользователя
type Transaction struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendTransactionRequest тело POST /ledger/transactions
type AppendTransactionRequest struct {
	Amount *float64 `json:"amount" example:"1500"`
}

type TransactionsResponse struct {
	Count        int           `json:"count"`
	Transactions []Transaction `json:"transactions"`
}

// Amounts возвращает суммы в порядке журнала.
func Amounts(txs []Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount
	}
	return out
}
