package grpc_client

import (
	"context"

	"google.golang.org/grpc/credentials"
)

// bearerToken добавляет "authorization: Bearer <token>" к каждому вызову.
type bearerToken struct {
	token string
}

var _ credentials.PerRPCCredentials = bearerToken{}

func (b bearerToken) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}

// RequireTransportSecurity false: сервис слушает внутренний адрес без TLS.
func (b bearerToken) RequireTransportSecurity() bool {
	return false
}
