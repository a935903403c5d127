package grpc_server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"artha-pay/internal/service"
	pb "artha-pay/proto-risk"
)

// NewServer регистрирует RiskService и стандартный health-сервис.
// При непустом authToken каждый вызов RiskService должен нести этот токен.
func NewServer(risk service.Risk, authToken string, log *slog.Logger) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{loggingInterceptor(log)}
	if authToken != "" {
		interceptors = append(interceptors, authInterceptor(authToken))
	} else {
		log.Warn("GRPC_AUTH_TOKEN не задан, gRPC вызовы принимаются без аутентификации")
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))

	pb.RegisterRiskServiceServer(srv, NewRiskServer(risk, log))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func loggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		log.Info("grpc request",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("duration", time.Since(start)))
		return resp, err
	}
}
