package storage

import (
	"context"
	"errors"

	"artha-pay/internal/models"
)

var ErrAlertNotFound = errors.New("alert not found")

// AlertStorage хранилище алертов сервиса уведомлений. SaveAlert идемпотентен по alert_id.
type AlertStorage interface {
	SaveAlert(ctx context.Context, alert *models.RiskAlertNotification) error
	GetAlertByID(ctx context.Context, alertID string) (*models.RiskAlertNotification, error)
	ListAlertsByUser(ctx context.Context, userID string, limit int64) ([]*models.RiskAlertNotification, error)
	Close() error
}
