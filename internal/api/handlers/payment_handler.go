package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/service"
	"artha-pay/pkg/response"
)

type PaymentHandler struct {
	service service.Payment
}

func NewPaymentHandler(service service.Payment) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePayment godoc
// @Summary      Генерация UPI QR
// @Description  Добавляет сумму в журнал, оценивает риск по истории пользователя и возвращает ссылку upi://pay
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreatePaymentRequest true "Параметры платежа"
// @Success      201 {object} models.PaymentResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /payments/qr [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreatePayment"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	var req models.CreatePaymentRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	resp, err := h.service.CreatePayment(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, custom_err.ErrInvalidAmount):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Amount must be a finite number of at least 1.00")
		case errors.Is(err, custom_err.ErrInvalidVPA):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_vpa", "Payee VPA must look like name@bank")
		case errors.Is(err, custom_err.ErrHighRiskBlocked):
			log.Warn("payment blocked", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusForbidden, "high_risk_blocked", "Payment blocked: high risk transaction")
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User no longer exists")
		default:
			log.Error("failed to create payment", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to create payment")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusCreated, resp)
}

// ListPayments godoc
// @Summary      История платёжных запросов
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Максимум записей (по умолчанию 20, не более 100)"
// @Success      200 {object} models.PaymentsResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /payments [get]
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ListPayments"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = v
	}

	resp, err := h.service.ListPayments(r.Context(), userID, limit)
	if err != nil {
		log.Error("failed to list payments", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to list payments")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}

// GetPayment godoc
// @Summary      Платёжный запрос по ID
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        paymentID path string true "ID платёжного запроса"
// @Success      200 {object} models.PaymentRequest
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /payments/{paymentID} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetPayment"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	idStr := chi.URLParam(r, "paymentID")
	paymentID, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("op", op), slog.String("uuid", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid payment ID format")
		return
	}

	payment, err := h.service.GetPayment(r.Context(), userID, paymentID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Payment not found")
			return
		}
		log.Error("failed to get payment", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve payment")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, payment)
}
