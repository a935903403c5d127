// Package riskv1 describes the artha.risk.v1.RiskService wire contract.
// Messages travel as JSON, so there is no generated protobuf code.
package riskv1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"artha-pay/internal/models"
	"artha-pay/internal/risk"
)

const ServiceName = "artha.risk.v1.RiskService"

const (
	RiskService_Assess_FullMethodName     = "/" + ServiceName + "/Assess"
	RiskService_AssessUser_FullMethodName = "/" + ServiceName + "/AssessUser"
)

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// JSONCodec is registered under the "json" content subtype.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return "json"
}

type AssessRequest struct {
	Amounts []float64 `json:"amounts"`
}

type AssessResponse struct {
	Assessment *risk.Assessment `json:"assessment"`
}

type AssessUserRequest struct {
	UserID string `json:"user_id"`
}

type AssessUserResponse struct {
	Report *models.RiskReport `json:"report"`
}

type RiskServiceServer interface {
	Assess(context.Context, *AssessRequest) (*AssessResponse, error)
	AssessUser(context.Context, *AssessUserRequest) (*AssessUserResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) Assess(context.Context, *AssessRequest) (*AssessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Assess not implemented")
}

func (UnimplementedRiskServiceServer) AssessUser(context.Context, *AssessUserRequest) (*AssessUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessUser not implemented")
}

func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

func RegisterRiskServiceServer(s grpc.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&RiskService_ServiceDesc, srv)
}

func _RiskService_Assess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AssessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).Assess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RiskService_Assess_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).Assess(ctx, req.(*AssessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RiskService_AssessUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AssessUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AssessUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RiskService_AssessUser_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).AssessUser(ctx, req.(*AssessUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var RiskService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Assess", Handler: _RiskService_Assess_Handler},
		{MethodName: "AssessUser", Handler: _RiskService_AssessUser_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "risk.proto",
}

type RiskServiceClient interface {
	Assess(ctx context.Context, in *AssessRequest, opts ...grpc.CallOption) (*AssessResponse, error)
	AssessUser(ctx context.Context, in *AssessUserRequest, opts ...grpc.CallOption) (*AssessUserResponse, error)
}

type riskServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRiskServiceClient(cc grpc.ClientConnInterface) RiskServiceClient {
	return &riskServiceClient{cc: cc}
}

func (c *riskServiceClient) Assess(ctx context.Context, in *AssessRequest, opts ...grpc.CallOption) (*AssessResponse, error) {
	out := new(AssessResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(JSONCodec{})}, opts...)
	if err := c.cc.Invoke(ctx, RiskService_Assess_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *riskServiceClient) AssessUser(ctx context.Context, in *AssessUserRequest, opts ...grpc.CallOption) (*AssessUserResponse, error) {
	out := new(AssessUserResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(JSONCodec{})}, opts...)
	if err := c.cc.Invoke(ctx, RiskService_AssessUser_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
