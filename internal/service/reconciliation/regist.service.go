package reconciliation

import (
	"context"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/repository"
	"time"
)

type Service struct {
	ctx         context.Context
	rp          repository.IRepository
	backend     backend.IClient
	callTimeout time.Duration
}

type IService interface {
	ListOrphans(query *OrphanQuery) *types.Response
	RetryDelete(token, orphanID string) *types.Response
}

func NewService(ctx context.Context, rp repository.IRepository, backend backend.IClient, callTimeout time.Duration) IService {
	return &Service{
		ctx:         ctx,
		rp:          rp,
		backend:     backend,
		callTimeout: callTimeout,
	}
}

// Request/Response DTOs

type OrphanQuery struct {
	IncludeResolved bool `form:"includeResolved"`
}
