package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/cache"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/session"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrStaleResponse marks a list response that arrived after the filter
	// had already changed. The response was discarded; the caller should
	// simply not render it.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrEmptyPatch is returned by Update when the patch carries no fields.
	ErrEmptyPatch = errors.New("empty patch")
)

// BulkDeleteResult reports the outcome of a bulk delete. Partial success
// is possible: deletions run concurrently and are not atomic.
type BulkDeleteResult struct {
	Deleted []int64
	Failed  int
}

// ProductService orchestrates catalog operations: it calls the remote API,
// keeps the product cache consistent (stale-until-revalidated after every
// mutation) and applies the last-request-wins rule to list fetches.
type ProductService interface {
	List(ctx context.Context, filter models.Filter) ([]models.Product, error)
	Refresh(ctx context.Context, filter models.Filter) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, params models.CreateProductParams) (models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) error
	Delete(ctx context.Context, filter models.Filter, id int64) error
	BulkDelete(ctx context.Context, filter models.Filter, ids []int64) (BulkDeleteResult, error)
}

type productService struct {
	client api.Client
	cache  *cache.ProductCache
	store  session.Store
	logger logging.Logger

	mu      sync.Mutex
	listTag uuid.UUID
}

// NewProductService constructs a ProductService.
func NewProductService(client api.Client, c *cache.ProductCache, store session.Store, logger logging.Logger) ProductService {
	return &productService{client: client, cache: c, store: store, logger: logger}
}

// List returns the product list for the given filter. A fresh cached entry
// is served as-is; otherwise the server is asked. Each fetch is tagged, and
// a response whose tag is no longer the newest one is discarded with
// ErrStaleResponse so it can never overwrite state belonging to a newer
// filter.
func (s *productService) List(ctx context.Context, filter models.Filter) ([]models.Product, error) {
	key := filter.Key()

	if items, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		return items, nil
	}

	tag := uuid.New()
	s.mu.Lock()
	s.listTag = tag
	s.mu.Unlock()

	items, err := s.client.ListProducts(ctx, filter)

	s.mu.Lock()
	superseded := s.listTag != tag
	s.mu.Unlock()
	if superseded {
		return nil, ErrStaleResponse
	}

	if err != nil {
		return nil, clearSessionIfExpired(ctx, s.store, err)
	}

	s.cache.Set(key, items)
	return items, nil
}

// Refresh drops the cached entry for the filter and fetches anew.
func (s *productService) Refresh(ctx context.Context, filter models.Filter) ([]models.Product, error) {
	s.cache.Invalidate(filter.Key())
	return s.List(ctx, filter)
}

func (s *productService) Get(ctx context.Context, id int64) (models.Product, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, clearSessionIfExpired(ctx, s.store, err)
	}
	return p, nil
}

// Create validates the payload locally before the network call; server-side
// field errors come back in the same models.FieldErrors shape. On success
// every cached list is marked stale: the new product may match any filter.
func (s *productService) Create(ctx context.Context, params models.CreateProductParams) (models.Product, error) {
	if err := params.Validate(); err != nil {
		return models.Product{}, err
	}

	p, err := s.client.CreateProduct(ctx, params)
	if err != nil {
		return models.Product{}, clearSessionIfExpired(ctx, s.store, err)
	}

	s.cache.MarkAllStale()
	return p, nil
}

func (s *productService) Update(ctx context.Context, id int64, patch models.ProductPatch) error {
	if patch.IsZero() {
		return ErrEmptyPatch
	}

	if err := s.client.UpdateProduct(ctx, id, patch); err != nil {
		return clearSessionIfExpired(ctx, s.store, err)
	}

	s.cache.MarkAllStale()
	return nil
}

// Delete removes a product optimistically: the item disappears from the
// cached list for the active filter immediately, and reappears (rollback)
// if the server call fails. Either way the list is marked stale so the
// next read revalidates against the server.
func (s *productService) Delete(ctx context.Context, filter models.Filter, id int64) error {
	key := filter.Key()
	update, ok := s.cache.OptimisticUpdate(key, removeByID(id))

	err := s.client.DeleteProduct(ctx, id)
	if err != nil {
		if ok {
			update.Rollback()
		} else {
			s.cache.MarkStale(key)
		}
		return clearSessionIfExpired(ctx, s.store, err)
	}

	if ok {
		update.Commit()
	} else {
		s.cache.MarkStale(key)
	}
	return nil
}

// BulkDelete issues one delete per id concurrently, with no ordering
// guarantee and no atomicity, and waits for all of them to settle.
// Successfully deleted items are not rolled back when others fail; the
// aggregate error reports how many deletions failed. The list for the
// active filter is always marked stale afterwards.
func (s *productService) BulkDelete(ctx context.Context, filter models.Filter, ids []int64) (BulkDeleteResult, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		deleted []int64
		failed  int
	)

	for _, id := range ids {
		g.Go(func() error {
			err := s.client.DeleteProduct(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.logger.Warn(ctx, "bulk delete: item failed", "id", id, "error", err)
				return clearSessionIfExpired(ctx, s.store, err)
			}
			deleted = append(deleted, id)
			return nil
		})
	}

	err := g.Wait()
	s.cache.MarkStale(filter.Key())

	result := BulkDeleteResult{Deleted: deleted, Failed: failed}
	if err != nil {
		return result, fmt.Errorf("bulk delete: %d of %d items failed: %w", failed, len(ids), err)
	}
	return result, nil
}

func removeByID(id int64) func([]models.Product) []models.Product {
	return func(items []models.Product) []models.Product {
		out := items[:0]
		for _, p := range items {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	}
}
