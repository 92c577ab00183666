package catalog

import (
	"context"
	"errors"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/redis"
	"time"
)

const (
	categoriesCacheKey = "pos:catalog:categories"
	itemsCacheKey      = "pos:catalog:items"
)

var ErrItemNotFound = errors.New("item not found")

type Service struct {
	ctx      context.Context
	redis    redis.IRedis
	backend  backend.IClient
	cacheTTL time.Duration
}

type IService interface {
	Categories(token string) *types.Response
	Items(token string, query *ItemQuery) *types.Response
	AddCategory(token string, req *types.CategoryRequest, image *types.UploadFilesRes) *types.Response
	DeleteCategory(token, categoryID string) *types.Response
	AddItem(token string, req *types.ItemRequest, image *types.UploadFilesRes) *types.Response
	DeleteItem(token, itemID string) *types.Response

	Warm(ctx context.Context, token string) (*types.CatalogSnapshot, error)
	FindItem(ctx context.Context, token, itemID string) (*types.Item, error)
}

func NewService(ctx context.Context, redis redis.IRedis, backend backend.IClient, cacheTTL time.Duration) IService {
	return &Service{
		ctx:      ctx,
		redis:    redis,
		backend:  backend,
		cacheTTL: cacheTTL,
	}
}

// ItemQuery narrows the item list. Search is a case-insensitive substring
// match on the item name.
type ItemQuery struct {
	CategoryID string `form:"categoryId"`
	Search     string `form:"search"`
}
