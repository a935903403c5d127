package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"

	"artha-pay/internal/api/handlers"
	"artha-pay/internal/api/middlew"
	"artha-pay/internal/config"
	"artha-pay/internal/db"
	"artha-pay/internal/grpc_server"
	"artha-pay/internal/kafka"
	"artha-pay/internal/risk"
	"artha-pay/internal/server"
	"artha-pay/internal/service"
	"artha-pay/internal/storage/postgres"
	"artha-pay/pkg/logger"
)

const migrationsPath = "migrations"

type App struct {
	log           *slog.Logger
	logFile       *os.File
	cfg           *config.Config
	pool          *pgxpool.Pool
	server        *server.Server
	grpcServer    *grpc.Server
	kafkaProducer kafka.Producer

	txManager  service.TxManager
	userRepo   postgres.UserRepository
	ledgerRepo postgres.LedgerRepository

	authService   service.Auth
	ledgerService service.Ledger
	riskService   *service.RiskService
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	loggerWithFile, err := logger.NewLoggerWithFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger
	log.Info("инициализация приложения", slog.String("port", cfg.HTTPPort), slog.String("grpc_addr", cfg.GRPC.Addr()))

	log.Info("выполнение миграций базы данных")
	if err := db.RunMigrations(cfg.DB.MigrationURL(), migrationsPath, log); err != nil {
		return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	pool, err := db.NewPool(context.Background(), cfg.DB.DSN(), db.DefaultPoolConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
		}
	} else {
		log.Info("kafka отключен в конфигурации")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	srv := server.NewServer(cfg.HTTPPort, log)
	srv.RegisterHealth()
	srv.RegisterMetrics()
	srv.RegisterSwagger()

	return &App{
		log:           log,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		pool:          pool,
		server:        srv,
		kafkaProducer: kafkaProducer,
		txManager:     service.NewPgxTxManager(pool),
		userRepo:      postgres.NewUserRepository(pool),
		ledgerRepo:    postgres.NewLedgerRepository(pool),
	}, nil
}

func (a *App) BuildAuthLayer() {
	a.authService = service.NewAuthService(a.userRepo, a.cfg.JWT.Secret, a.cfg.JWT.Expiration, a.log)
	authHandler := handlers.NewAuthHandler(a.authService)

	a.server.Router.Post("/api/v1/register", authHandler.Register)
	a.server.Router.Post("/api/v1/login", authHandler.Login)

	a.log.Info("слой 'auth' собран и маршруты зарегистрированы")
}

// BuildRiskLayer собирает журнал, оценку риска и пул отправки алертов.
func (a *App) BuildRiskLayer() error {
	if a.authService == nil {
		return a.notInitialized("authService", "BuildAuthLayer")
	}

	detector := risk.NewIsolationForest(risk.IsolationForestConfig{
		Trees:         a.cfg.Risk.Trees,
		MaxSamples:    a.cfg.Risk.MaxSamples,
		Contamination: a.cfg.Risk.Contamination,
		Seed:          a.cfg.Risk.Seed,
	})
	scorer := risk.NewScorer(detector, a.log)

	a.ledgerService = service.NewLedgerService(a.ledgerRepo, a.txManager, a.log)
	a.riskService = service.NewRiskService(scorer, a.ledgerRepo, a.kafkaProducer, service.RiskServiceConfig{
		AlertWorkers:   a.cfg.Risk.AlertWorkers,
		AlertQueueSize: a.cfg.Risk.AlertQueueSize,
		MaxHistory:     a.cfg.Risk.MaxHistory,
	}, a.log)

	ledgerHandler := handlers.NewLedgerHandler(a.ledgerService)
	riskHandler := handlers.NewRiskHandler(a.riskService)

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAuth(a.authService))

		r.Get("/api/v1/ledger/transactions", ledgerHandler.GetTransactions)
		r.Post("/api/v1/ledger/transactions", ledgerHandler.AppendTransaction)
		r.Get("/api/v1/risk", riskHandler.GetRiskReport)
		r.Post("/api/v1/risk/assess", riskHandler.Assess)
	})

	a.grpcServer = grpc_server.NewServer(a.riskService, a.cfg.GRPC.AuthToken, a.log)

	a.log.Info("слой 'risk' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) BuildPaymentLayer() error {
	if a.riskService == nil || a.ledgerService == nil {
		return a.notInitialized("riskService", "BuildRiskLayer")
	}

	riskRepo := postgres.NewRiskRepository(a.pool)
	paymentService := service.NewPaymentService(
		a.ledgerService,
		a.riskService,
		postgres.NewPaymentRepository(a.pool),
		riskRepo,
		a.txManager,
		service.PaymentServiceConfig{
			Currency:       a.cfg.Payment.Currency,
			AlertThreshold: a.cfg.Risk.AlertThreshold,
			BlockHigh:      a.cfg.Risk.BlockHigh,
			MaxHistory:     a.cfg.Risk.MaxHistory,
		},
		a.log,
	)
	analyticsService := service.NewAnalyticsService(a.ledgerRepo, service.AnalyticsServiceConfig{
		HighValueThreshold: a.cfg.Analytics.HighValueThreshold,
		AverageAlert:       a.cfg.Analytics.AverageAlert,
		Currency:           a.cfg.Payment.Currency,
	}, a.log)
	dashboardService := service.NewDashboardService(a.userRepo, a.ledgerRepo, riskRepo, a.log)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAuth(a.authService))

		r.Get("/api/v1/dashboard", dashboardHandler.GetDashboard)
		r.Post("/api/v1/payments/qr", paymentHandler.CreatePayment)
		r.Get("/api/v1/payments", paymentHandler.ListPayments)
		r.Get("/api/v1/payments/{paymentID}", paymentHandler.GetPayment)
		r.Get("/api/v1/analytics/summary", analyticsHandler.GetSummary)
	})

	a.log.Info("слой 'payments' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) notInitialized(what, call string) error {
	err := fmt.Errorf("%s not initialized, call %s first", what, call)
	a.log.Error(err.Error())
	return err
}

func (a *App) Run() error {
	if a.grpcServer == nil {
		return a.notInitialized("grpcServer", "BuildRiskLayer")
	}

	listener, err := net.Listen("tcp", a.cfg.GRPC.Addr())
	if err != nil {
		return fmt.Errorf("ошибка создания listener: %w", err)
	}

	a.log.Info("серверы запускаются")

	serverErr := make(chan error, 2)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска сервера: %w", err)
		}
	}()
	go func() {
		if err := a.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serverErr <- fmt.Errorf("ошибка запуска gRPC сервера: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
		a.log.Error("сервер завершился с ошибкой", slog.String("error", runErr.Error()))
	case sig := <-shutdownChan:
		a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	a.shutdown()
	return runErr
}

// shutdown останавливает приём запросов до того, как закрыть очередь алертов,
// producer и пул соединений.
func (a *App) shutdown() {
	a.log.Info("приложение останавливается")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("ошибка при остановке http сервера", slog.String("error", err.Error()))
	}

	a.stopGRPC(ctx)

	if a.riskService != nil {
		a.log.Info("остановка risk service")
		if err := a.riskService.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке risk service", slog.String("error", err.Error()))
		}
	}

	if a.kafkaProducer != nil {
		a.log.Info("закрытие kafka producer")
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("ошибка при закрытии kafka producer", slog.String("error", err.Error()))
		}
	}

	a.log.Info("закрытие соединения с базой данных")
	a.pool.Close()

	a.log.Info("приложение остановлено")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}
}

func (a *App) stopGRPC(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		a.log.Info("остановка gRPC сервера")
		a.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		a.log.Info("gRPC сервер остановлен")
	case <-ctx.Done():
		a.log.Warn("timeout graceful shutdown, force stop")
		a.grpcServer.Stop()
	}
}
