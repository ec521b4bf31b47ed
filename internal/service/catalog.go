package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/cache"
	"github.com/dkirsanov/inventorypro/internal/events"
	"github.com/dkirsanov/inventorypro/internal/logging"
	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/repo"
	"github.com/dkirsanov/inventorypro/internal/search"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

// Creation policies. A deployment picks exactly one.
const (
	PolicyMerge  = "merge"  // same name: stock += incoming, price/description overwritten
	PolicyInsert = "insert" // always a new row
)

const (
	listCacheKey = "products:all"
	listCacheTTL = 30 * time.Second
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Cache    *cache.Cache
	Search   *search.Client
	Producer *events.Producer
	Policy   string
}

func validateProduct(name string, price float64, stock int) error {
	if len(name) < 2 || len(name) > 50 {
		return fmt.Errorf("%w: name must be between 2 and 50 characters", ErrValidation)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if stock <= 0 {
		return fmt.Errorf("%w: stock must be greater than 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, category, searchTerm string) ([]models.Product, error) {
	unfiltered := !repo.CategoryIsFilter(category) && searchTerm == ""

	if unfiltered {
		var cached []models.Product
		if s.Cache.Get(ctx, listCacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := s.Repo.ListProducts(ctx, category, searchTerm)
	if err != nil {
		return nil, err
	}

	if unfiltered {
		if err := s.Cache.Set(ctx, listCacheKey, items, listCacheTTL); err != nil {
			logging.FromContext(ctx).Warn("cache_set_failed", "key", listCacheKey, "error", err)
		}
	}
	return items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Price, req.Stock); err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Specs:       req.Specs,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}

	var err error
	switch s.Policy {
	case PolicyInsert:
		prod, err = s.Repo.CreateProduct(ctx, prod)
	default:
		prod, err = s.Repo.MergeProductByName(ctx, prod)
	}
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_created")
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if req.Stock != nil && *req.Stock <= 0 {
		return nil, fmt.Errorf("%w: stock must be greater than 0", ErrValidation)
	}
	if req.Name != nil && (len(*req.Name) < 2 || len(*req.Name) > 50) {
		return nil, fmt.Errorf("%w: name must be between 2 and 50 characters", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_updated")
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	l := logging.FromContext(ctx).With("svc", "catalog")
	if err := s.Search.DeleteProduct(ctx, id); err != nil {
		l.Warn("search_delete_failed", "product_id", id, "error", err)
	}
	if err := s.Cache.Delete(ctx, listCacheKey); err != nil {
		l.Warn("cache_invalidate_failed", "error", err)
	}
	event := map[string]any{"type": "product_deleted", "product_id": id}
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), event); err != nil {
		l.Warn("kafka_publish_failed", "product_id", id, "error", err)
	}
	return nil
}

// SearchProducts runs the full-text query against the search index.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	return s.Search.Search(ctx, q, from, size)
}

// afterWrite keeps the secondary systems in step with the catalog. All of it
// is best-effort: the row is already committed.
func (s *CatalogService) afterWrite(ctx context.Context, prod *models.Product, eventType string) {
	l := logging.FromContext(ctx).With("svc", "catalog")

	if err := s.Search.IndexProduct(ctx, prod); err != nil {
		l.Warn("search_index_failed", "product_id", prod.ID, "error", err)
	}
	if err := s.Cache.Delete(ctx, listCacheKey); err != nil {
		l.Warn("cache_invalidate_failed", "error", err)
	}
	event := map[string]any{
		"type":       eventType,
		"product_id": prod.ID,
		"name":       prod.Name,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(prod.ID), event); err != nil {
		l.Warn("kafka_publish_failed", "product_id", prod.ID, "error", err)
	}
}
