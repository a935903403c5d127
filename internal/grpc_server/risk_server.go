package grpc_server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/service"
	pb "artha-pay/proto-risk"
)

type RiskServer struct {
	pb.UnimplementedRiskServiceServer
	risk service.Risk
	log  *slog.Logger
}

func NewRiskServer(risk service.Risk, log *slog.Logger) *RiskServer {
	return &RiskServer{
		risk: risk,
		log:  log,
	}
}

// Assess оценивает переданную историю без обращения к журналу.
func (s *RiskServer) Assess(ctx context.Context, req *pb.AssessRequest) (*pb.AssessResponse, error) {
	const op = "grpc_server.Assess"

	assessment, err := s.risk.Assess(req.Amounts)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNoHistory):
			return nil, status.Error(codes.InvalidArgument, "amounts must not be empty")
		case errors.Is(err, custom_err.ErrInvalidAmount), errors.Is(err, custom_err.ErrHistoryTooLong):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.log.Error("failed to assess history", slog.String("op", op), slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "failed to assess history")
	}

	return &pb.AssessResponse{Assessment: assessment}, nil
}

func (s *RiskServer) AssessUser(ctx context.Context, req *pb.AssessUserRequest) (*pb.AssessUserResponse, error) {
	const op = "grpc_server.AssessUser"

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid user_id: %q", req.UserID)
	}

	report, err := s.risk.Report(ctx, userID)
	if err != nil {
		s.log.Error("ошибка построения отчёта о риске",
			slog.String("op", op),
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "failed to build risk report")
	}

	return &pb.AssessUserResponse{Report: report}, nil
}
