package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/validation"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func (s *Service) Categories(token string) *types.Response {
	categories, err := s.categories(s.ctx, token)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load categories")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: categories,
	})
}

func (s *Service) Items(token string, query *ItemQuery) *types.Response {
	items, err := s.items(s.ctx, token)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load items")
	}

	if query != nil {
		items = filterItems(items, query)
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: items,
	})
}

func filterItems(items []types.Item, query *ItemQuery) []types.Item {
	return lo.Filter(items, func(it types.Item, _ int) bool {
		if query.CategoryID != "" && it.CategoryID != query.CategoryID {
			return false
		}
		return helper.ContainsFold(it.Name, query.Search)
	})
}

func (s *Service) AddCategory(token string, req *types.CategoryRequest, image *types.UploadFilesRes) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	category, err := s.backend.AddCategory(s.ctx, token, req, image)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to add category")
	}
	s.invalidate()

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Category added successfully!",
		Data:    category,
	})
}

func (s *Service) DeleteCategory(token, categoryID string) *types.Response {
	if err := s.backend.DeleteCategory(s.ctx, token, categoryID); err != nil {
		return backend.ErrorResponse(err, "Failed to delete category")
	}
	s.invalidate()

	return helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
}

func (s *Service) AddItem(token string, req *types.ItemRequest, image *types.UploadFilesRes) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	item, err := s.backend.AddItem(s.ctx, token, req, image)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to add item")
	}
	s.invalidate()

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Item added successfully!",
		Data:    item,
	})
}

func (s *Service) DeleteItem(token, itemID string) *types.Response {
	if err := s.backend.DeleteItem(s.ctx, token, itemID); err != nil {
		return backend.ErrorResponse(err, "Failed to delete item")
	}
	s.invalidate()

	return helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
}

// Warm loads categories and items concurrently, filling the cache.
func (s *Service) Warm(ctx context.Context, token string) (*types.CatalogSnapshot, error) {
	snapshot := &types.CatalogSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Categories, err = s.categories(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Items, err = s.items(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to warm catalog: %w", err)
	}
	return snapshot, nil
}

// FindItem looks the item up in the (cached) catalog.
func (s *Service) FindItem(ctx context.Context, token, itemID string) (*types.Item, error) {
	items, err := s.items(ctx, token)
	if err != nil {
		return nil, err
	}
	item, ok := lo.Find(items, func(it types.Item) bool { return it.ItemID == itemID })
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (s *Service) categories(ctx context.Context, token string) ([]types.Category, error) {
	return cached(s, categoriesCacheKey, func() ([]types.Category, error) {
		return s.backend.ListCategories(ctx, token)
	})
}

func (s *Service) items(ctx context.Context, token string) ([]types.Item, error) {
	return cached(s, itemsCacheKey, func() ([]types.Item, error) {
		return s.backend.ListItems(ctx, token)
	})
}

// cached reads key from redis or calls load and stores its result. Cache
// failures fall through to the backend.
func cached[T any](s *Service, key string, load func() ([]T, error)) ([]T, error) {
	if s.cacheTTL > 0 {
		if raw, err := s.redis.Get(key); err != nil {
			logger.Warning.Printf("catalog cache read %s: %v", key, err)
		} else if raw != "" {
			var out []T
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if err := s.redis.Set(key, out, s.cacheTTL); err != nil {
			logger.Warning.Printf("catalog cache write %s: %v", key, err)
		}
	}
	return out, nil
}

func (s *Service) invalidate() {
	if err := s.redis.Del(categoriesCacheKey, itemsCacheKey); err != nil {
		logger.Warning.Printf("catalog cache invalidate: %v", err)
	}
}
