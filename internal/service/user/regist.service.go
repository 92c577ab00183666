package user

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
	List(token string) *types.Response
	Create(token string, req *types.UserRequest) *types.Response
	Delete(token, userID string) *types.Response
}

func NewService(ctx context.Context, backend backend.IClient) IService {
	return &Service{
		ctx:     ctx,
		backend: backend,
	}
}
