package order

import (
	"context"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
)

type Service struct {
	ctx     context.Context
	backend backend.IClient
}

type IService interface {
	Latest(token string) *types.Response
	Filter(token string, req *types.OrderFilterRequest) *types.Response
	Dashboard(token string) *types.Response
}

func NewService(ctx context.Context, backend backend.IClient) IService {
	return &Service{
		ctx:     ctx,
		backend: backend,
	}
}
