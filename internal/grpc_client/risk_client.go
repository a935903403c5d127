package grpc_client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"artha-pay/internal/models"
	"artha-pay/internal/risk"
	pb "artha-pay/proto-risk"
)

type RiskClient interface {
	Assess(ctx context.Context, amounts []float64) (*risk.Assessment, error)
	AssessUser(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error)
	Close() error
}

type grpcRiskClient struct {
	conn    *grpc.ClientConn
	client  pb.RiskServiceClient
	timeout time.Duration
	log     *slog.Logger
}

// NewRiskClient не устанавливает соединение сразу: grpc.NewClient подключается при первом вызове.
// Непустой token отправляется с каждым вызовом.
func NewRiskClient(addr, token string, timeout time.Duration, log *slog.Logger) (RiskClient, error) {
	const op = "grpc_client.NewRiskClient"

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearerToken{token: token}))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create client: %w", op, err)
	}

	log.Info("gRPC клиент risk сервиса создан", slog.String("addr", addr))
	return newRiskClientFromConn(conn, timeout, log), nil
}

func newRiskClientFromConn(conn *grpc.ClientConn, timeout time.Duration, log *slog.Logger) *grpcRiskClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &grpcRiskClient{
		conn:    conn,
		client:  pb.NewRiskServiceClient(conn),
		timeout: timeout,
		log:     log,
	}
}

func (c *grpcRiskClient) Assess(ctx context.Context, amounts []float64) (*risk.Assessment, error) {
	const op = "grpc_client.Assess"

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Assess(ctx, &pb.AssessRequest{Amounts: amounts})
	if err != nil {
		c.log.Error("ошибка оценки истории", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if duration := time.Since(start); duration > 100*time.Millisecond {
		c.log.Warn("медленный gRPC запрос",
			slog.String("op", op),
			slog.Duration("duration", duration))
	}

	return resp.Assessment, nil
}

func (c *grpcRiskClient) AssessUser(ctx context.Context, userID uuid.UUID) (*models.RiskReport, error) {
	const op = "grpc_client.AssessUser"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.AssessUser(ctx, &pb.AssessUserRequest{UserID: userID.String()})
	if err != nil {
		c.log.Error("ошибка получения отчёта о риске",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("получен отчёт о риске",
		slog.String("user_id", userID.String()),
		slog.String("status", string(resp.Report.Status)))

	return resp.Report, nil
}

func (c *grpcRiskClient) Close() error {
	if c.conn == nil {
		return nil
	}
	c.log.Info("закрытие соединения с risk сервисом")
	return c.conn.Close()
}
