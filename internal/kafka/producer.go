package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"artha-pay/internal/models"
)

// Producer публикует алерты о рискованных платежах
type Producer interface {
	SendRiskAlert(ctx context.Context, event models.RiskAlertEvent) error
	Close() error
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Timeout = 5 * time.Second
	return config
}

func NewKafkaProducer(brokers []string, topic string, log *slog.Logger) (*KafkaProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer создан", slog.String("topic", topic), slog.Any("brokers", brokers))

	return NewKafkaProducerFromSync(producer, topic, log), nil
}

// NewKafkaProducerFromSync оборачивает готовый SyncProducer (используется в тестах с sarama/mocks).
func NewKafkaProducerFromSync(producer sarama.SyncProducer, topic string, log *slog.Logger) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// SendRiskAlert blocks until the broker acks or ctx is done. The message key is
// the alert id so repeated deliveries of one alert land in the same partition.
func (p *KafkaProducer) SendRiskAlert(ctx context.Context, event models.RiskAlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AlertID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("level"), Value: []byte(event.Level)},
		},
	}

	type result struct {
		partition int32
		offset    int64
		err       error
	}

	resultCh := make(chan result, 1)

	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		resultCh <- result{partition, offset, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			p.log.Error("kafka send failed",
				slog.String("alert_id", event.AlertID),
				slog.String("error", res.err.Error()))
			return fmt.Errorf("send risk alert %s: %w", event.AlertID, res.err)
		}
		p.log.Debug("kafka send success",
			slog.String("alert_id", event.AlertID),
			slog.Int("partition", int(res.partition)),
			slog.Int64("offset", res.offset))
		return nil

	case <-ctx.Done():
		p.log.Warn("kafka send cancelled", slog.String("alert_id", event.AlertID))
		return ctx.Err()
	}
}

func (p *KafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	p.log.Info("закрытие kafka producer")
	return p.producer.Close()
}

// NoOpProducer используется при KAFKA_ENABLED=false
type NoOpProducer struct {
	log *slog.Logger
}

func NewNoOpProducer(log *slog.Logger) *NoOpProducer {
	return &NoOpProducer{log: log}
}

func (p *NoOpProducer) SendRiskAlert(_ context.Context, event models.RiskAlertEvent) error {
	p.log.Debug("kafka отключен, алерт не отправлен", slog.String("alert_id", event.AlertID))
	return nil
}

func (p *NoOpProducer) Close() error {
	return nil
}
