package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artha-pay/internal/api/handlers"
	"artha-pay/internal/config"
	"artha-pay/internal/kafka"
	"artha-pay/internal/server"
	"artha-pay/internal/storage"
	"artha-pay/internal/storage/mongodb"
	"artha-pay/pkg/logger"
)

// Notifier читает алерты о рискованных платежах из kafka, сохраняет их в MongoDB
// и отдаёт на чтение по HTTP.
type Notifier struct {
	log      *slog.Logger
	logFile  *os.File
	cfg      *config.NotifierConfig
	consumer *kafka.Consumer
	storage  storage.AlertStorage
	server   *server.Server
}

// NewAlertServer HTTP API только для чтения поверх хранилища алертов.
func NewAlertServer(addr string, alerts storage.AlertStorage, log *slog.Logger) *server.Server {
	srv := server.NewServerWithAddr(addr, log)
	srv.RegisterHealth()
	srv.RegisterMetrics()

	alertHandler := handlers.NewAlertHandler(alerts)
	srv.Router.Get("/api/v1/alerts/{alertID}", alertHandler.GetAlert)
	srv.Router.Get("/api/v1/users/{userID}/alerts", alertHandler.ListUserAlerts)

	return srv
}

func NewNotifier() (*Notifier, error) {
	cfg, err := config.NewNotifierConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	loggerWithFile, err := logger.NewLoggerWithFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger

	log.Info("инициализация notifier",
		slog.String("kafka_topic", cfg.Kafka.Topic),
		slog.String("mongo_database", cfg.MongoDB.Database))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()

	alerts, err := mongodb.NewMongoStorage(
		ctx,
		cfg.MongoDB.URI,
		cfg.MongoDB.Database,
		cfg.MongoDB.Collection,
		cfg.MongoDB.Timeout,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}
	log.Info("подключение к MongoDB установлено")

	consumer, err := kafka.NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.Topic,
		cfg.Kafka.Workers,
		alerts,
		log,
	)
	if err != nil {
		_ = alerts.Close()
		return nil, fmt.Errorf("ошибка создания kafka consumer: %w", err)
	}

	return &Notifier{
		log:      log,
		logFile:  loggerWithFile.LogFile,
		cfg:      cfg,
		consumer: consumer,
		storage:  alerts,
		server:   NewAlertServer(cfg.HTTPAddr(), alerts, log),
	}, nil
}

func (n *Notifier) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := n.consumer.Start(ctx); err != nil {
		return fmt.Errorf("ошибка запуска consumer: %w", err)
	}
	n.log.Info("kafka consumer запущен, ожидание сообщений...")

	serverErr := make(chan error, 1)
	go func() {
		n.log.Info("HTTP API алертов запущен", slog.String("addr", n.cfg.HTTPAddr()))
		if err := n.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
		n.log.Error("HTTP сервер завершился с ошибкой", slog.String("error", runErr.Error()))
	case sig := <-shutdownChan:
		n.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	cancel()

	ctxClose, cancelClose := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelClose()

	if err := n.server.Shutdown(ctxClose); err != nil {
		n.log.Error("ошибка при остановке HTTP сервера", slog.String("error", err.Error()))
	}

	if err := n.consumer.Close(ctxClose); err != nil {
		n.log.Error("ошибка при закрытии kafka consumer", slog.String("error", err.Error()))
	}

	if err := n.storage.Close(); err != nil {
		n.log.Error("ошибка при закрытии MongoDB", slog.String("error", err.Error()))
	}

	n.log.Info("notifier остановлен")
	if n.logFile != nil {
		if err := n.logFile.Close(); err != nil {
			n.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}
	return runErr
}
