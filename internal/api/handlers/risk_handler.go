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

type RiskHandler struct {
	service service.Risk
}

func NewRiskHandler(service service.Risk) *RiskHandler {
	return &RiskHandler{service: service}
}

// GetRiskReport godoc
// @Summary      Оценка риска последней транзакции
// @Description  inactive без истории, learning до 5 транзакций, затем scoring с уровнем и поведенческой статистикой
// @Tags         risk
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.RiskReport
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /risk [get]
func (h *RiskHandler) GetRiskReport(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetRiskReport"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	report, err := h.service.Report(r.Context(), userID)
	if err != nil {
		log.Error("failed to build risk report", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to build risk report")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, report)
}

// Assess godoc
// @Summary      Оценка произвольной истории
// @Description  Оценивает последнюю сумму относительно предыдущих; ничего не сохраняет
// @Tags         risk
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.AssessRequest true "История сумм, старые первыми"
// @Success      200 {object} risk.Assessment
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       /risk/assess [post]
func (h *RiskHandler) Assess(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Assess"
	log := middlew.GetLogger(r.Context())

	var req models.AssessRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	assessment, err := h.service.Assess(req.Amounts)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNoHistory):
			response.WriteJSONError(w, log, http.StatusBadRequest, "empty_history", "amounts must not be empty")
		case errors.Is(err, custom_err.ErrInvalidAmount):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", err.Error())
		case errors.Is(err, custom_err.ErrHistoryTooLong):
			response.WriteJSONError(w, log, http.StatusBadRequest, "history_too_long", err.Error())
		default:
			log.Error("failed to assess history", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to assess history")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, assessment)
}
