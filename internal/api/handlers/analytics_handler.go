package handlers

import (
	"log/slog"
	"net/http"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/service"
	"artha-pay/pkg/response"
)

type AnalyticsHandler struct {
	service service.Analytics
}

func NewAnalyticsHandler(service service.Analytics) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetSummary godoc
// @Summary      Сводка по транзакциям
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.AnalyticsSummary
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetSummary"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		log.Error("failed to get analytics summary", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to build summary")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, summary)
}
