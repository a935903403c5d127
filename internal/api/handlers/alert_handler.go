package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/models"
	"artha-pay/internal/storage"
	"artha-pay/pkg/response"
)

const (
	defaultAlertsLimit = 20
	maxAlertsLimit     = 100
)

// AlertHandler отдаёт сохранённые notifier'ом алерты.
type AlertHandler struct {
	storage storage.AlertStorage
}

func NewAlertHandler(storage storage.AlertStorage) *AlertHandler {
	return &AlertHandler{storage: storage}
}

func (h *AlertHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetAlert"
	log := middlew.GetLogger(r.Context())

	alertID := chi.URLParam(r, "alertID")
	alert, err := h.storage.GetAlertByID(r.Context(), alertID)
	if err != nil {
		if errors.Is(err, storage.ErrAlertNotFound) {
			response.WriteJSONError(w, log, http.StatusNotFound, "alert_not_found", "Alert not found")
			return
		}
		log.Error("failed to get alert", slog.String("op", op), slog.String("alert_id", alertID), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve alert")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, alert)
}

func (h *AlertHandler) ListUserAlerts(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ListUserAlerts"
	log := middlew.GetLogger(r.Context())

	idStr := chi.URLParam(r, "userID")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("op", op), slog.String("uuid", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid user ID format")
		return
	}

	limit := defaultAlertsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = min(v, maxAlertsLimit)
	}

	alerts, err := h.storage.ListAlertsByUser(r.Context(), userID.String(), int64(limit))
	if err != nil {
		log.Error("failed to list alerts", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to list alerts")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.AlertsResponse{
		Count:  len(alerts),
		Alerts: alerts,
	})
}
