package services

import (
	"context"
	"log/slog"
	"time"

	"infocomm/internal/apperr"
	"infocomm/internal/caching"
	"infocomm/internal/inventory"
	"infocomm/internal/models"
	"infocomm/internal/repositories"
)

const queryCacheTTL = 2 * time.Minute

// InventoryService is the read side of the console: filtered listings, the
// dashboard summary and category counts.
type InventoryService interface {
	// Browse runs the query engine over the active catalog. An empty result
	// is a normal outcome; only a failed catalog read is an error.
	Browse(ctx context.Context, cfg inventory.FilterConfig) ([]inventory.Item, error)
	Summary(ctx context.Context) (*models.InventorySummary, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type inventoryService struct {
	productRepo repositories.ProductRepository
	alertSvc    AlertService
	cacheSvc    caching.CacheService
	engine      *inventory.Engine
}

func NewInventoryService(productRepo repositories.ProductRepository, alertSvc AlertService, cacheSvc caching.CacheService, engine *inventory.Engine) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		alertSvc:    alertSvc,
		cacheSvc:    cacheSvc,
		engine:      engine,
	}
}

func (s *inventoryService) Browse(ctx context.Context, cfg inventory.FilterConfig) ([]inventory.Item, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fingerprint := cfg.Fingerprint()
	if cached, err := s.cacheSvc.GetQueryResult(ctx, fingerprint); err == nil && cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		// Distinct from an empty catalog: the caller may retry.
		return nil, apperr.Wrap(apperr.KindRetrieval, "load catalog", err)
	}

	items, err := s.engine.Query(products, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetQueryResult(ctx, fingerprint, items, queryCacheTTL); err != nil {
		slog.Debug("query cache write failed", "error", err)
	}
	return items, nil
}

func (s *inventoryService) Summary(ctx context.Context) (*models.InventorySummary, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "load catalog", err)
	}

	summary := &models.InventorySummary{TotalProducts: len(products)}
	classifier := s.engine.Classifier()
	for _, p := range products {
		status, err := classifier.Classify(p.Quantity)
		if err != nil {
			return nil, err
		}
		switch status {
		case inventory.StatusLow:
			summary.LowStockProducts++
		case inventory.StatusOutOfStock:
			summary.OutOfStockProducts++
		}
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	summary.Categories = categories

	if s.alertSvc != nil {
		alerts, err := s.alertSvc.Recent(ctx, 5)
		if err != nil {
			slog.Warn("failed to load recent alerts for summary", "error", err)
		} else {
			summary.RecentAlerts = alerts
		}
	}

	return summary, nil
}

// Categories returns the fixed category list with live product counts.
func (s *inventoryService) Categories(ctx context.Context) ([]models.Category, error) {
	counts, err := s.productRepo.CategoryCounts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "count categories", err)
	}

	categories := make([]models.Category, 0, len(models.CategoryNames))
	for i, name := range models.CategoryNames {
		categories = append(categories, models.Category{
			ID:           i + 1,
			Name:         name,
			ProductCount: counts[name],
		})
	}
	return categories, nil
}
