package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/service"
	"artha-pay/pkg/response"
)

type LedgerHandler struct {
	service service.Ledger
}

func NewLedgerHandler(service service.Ledger) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// GetTransactions godoc
// @Summary      Журнал транзакций
// @Description  Все суммы пользователя в порядке добавления, старые первыми
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.TransactionsResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /ledger/transactions [get]
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetTransactions"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	history, err := h.service.History(r.Context(), userID)
	if err != nil {
		log.Error("failed to get transactions", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve transactions")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.TransactionsResponse{
		Count:        len(history),
		Transactions: history,
	})
}

// AppendTransaction godoc
// @Summary      Добавить сумму в журнал
// @Description  Записывает сумму без оценки риска и без платёжной ссылки
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.AppendTransactionRequest true "Сумма"
// @Success      201 {object} models.Transaction
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /ledger/transactions [post]
func (h *LedgerHandler) AppendTransaction(w http.ResponseWriter, r *http.Request) {
	const op = "handler.AppendTransaction"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	var req models.AppendTransactionRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}
	if req.Amount == nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}

	tx, err := h.service.Append(r.Context(), userID, *req.Amount)
	if err != nil {
		if errors.Is(err, custom_err.ErrInvalidAmount) {
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", err.Error())
			return
		}
		log.Error("failed to append transaction", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to append transaction")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusCreated, tx)
}
