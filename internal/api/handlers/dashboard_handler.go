package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/custom_err"
	"artha-pay/internal/service"
	"artha-pay/pkg/response"
)

type DashboardHandler struct {
	service service.Dashboard
}

func NewDashboardHandler(service service.Dashboard) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary      Главная страница
// @Description  Имя пользователя, число транзакций и последняя сохранённая оценка риска
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.DashboardResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetDashboard"
	log := middlew.GetLogger(r.Context())
	userID := middlew.GetUserID(r.Context())

	resp, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User no longer exists")
			return
		}
		log.Error("failed to build dashboard", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to build dashboard")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}
