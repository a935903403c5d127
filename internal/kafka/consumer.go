package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/IBM/sarama"

	"artha-pay/internal/metrics"
	"artha-pay/internal/models"
	"artha-pay/internal/storage"
)

// Consumer читает алерты из топика и складывает их в AlertStorage
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       sarama.ConsumerGroupHandler
	topic         string
	workers       int
	log           *slog.Logger
	wg            sync.WaitGroup
}

func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	return config
}

func NewConsumer(brokers []string, groupID, topic string, workers int, alerts storage.AlertStorage, log *slog.Logger) (*Consumer, error) {
	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, NewConsumerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if workers <= 0 {
		workers = 1
	}

	log.Info("kafka consumer создан",
		slog.String("group_id", groupID),
		slog.String("topic", topic),
		slog.Int("workers", workers))

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       NewAlertHandler(alerts, log),
		topic:         topic,
		workers:       workers,
		log:           log,
	}, nil
}

// Start запускает воркеров и сразу возвращается; остановка через отмену ctx и Close.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("запуск kafka consumer")

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.log.Info("воркер запущен", slog.Int("worker_id", workerID))

			for {
				if err := c.consumerGroup.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					c.log.Error("ошибка consume",
						slog.Int("worker_id", workerID),
						slog.String("error", err.Error()))
					return
				}

				if ctx.Err() != nil {
					return
				}
			}
		}(i)
	}

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.log.Error("ошибка consumer group", slog.String("error", err.Error()))
		}
	}()

	return nil
}

func (c *Consumer) Close(ctx context.Context) error {
	c.log.Info("закрытие kafka consumer")

	done := make(chan struct{})
	go func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Error("failed to close consumer group", slog.String("error", err.Error()))
		}
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.log.Info("kafka consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("kafka consumer close timeout")
		return ctx.Err()
	}
}

type alertHandler struct {
	alerts storage.AlertStorage
	log    *slog.Logger
}

func NewAlertHandler(alerts storage.AlertStorage, log *slog.Logger) sarama.ConsumerGroupHandler {
	return &alertHandler{alerts: alerts, log: log}
}

func (h *alertHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *alertHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim не коммитит offset сообщения, которое не удалось сохранить.
func (h *alertHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.processMessage(session.Context(), message); err != nil {
			h.log.Error("failed to process message",
				slog.String("topic", message.Topic),
				slog.Int64("offset", message.Offset),
				slog.String("error", err.Error()))
			continue
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *alertHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	h.log.Debug("получено сообщение из kafka",
		slog.String("topic", message.Topic),
		slog.Int("partition", int(message.Partition)),
		slog.Int64("offset", message.Offset))

	var event models.RiskAlertEvent
	if err := json.Unmarshal(message.Value, &event); err != nil || event.AlertID == "" {
		// битое сообщение не ретраится
		errMsg := "missing alert_id"
		if err != nil {
			errMsg = err.Error()
		}
		h.log.Error("ошибка десериализации сообщения",
			slog.String("error", errMsg),
			slog.String("raw_message", string(message.Value)))
		metrics.AlertsConsumedTotal.WithLabelValues("invalid").Inc()
		return nil
	}

	alert := models.NewRiskAlertNotification(event)
	if err := h.alerts.SaveAlert(ctx, alert); err != nil {
		metrics.AlertsConsumedTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("save alert %s: %w", alert.AlertID, err)
	}

	metrics.AlertsConsumedTotal.WithLabelValues("saved").Inc()
	h.log.Info("алерт сохранён",
		slog.String("alert_id", alert.AlertID),
		slog.String("user_id", alert.UserID),
		slog.Int("risk_percent", alert.RiskPercent),
		slog.String("level", alert.Level))

	return nil
}
