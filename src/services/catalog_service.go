package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/username/ibportal/src/cache"
	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/models"
)

const ckCalculatorCatalog = "calculator_catalog"

type catalogServiceImpl struct {
	source CatalogSource
	store  cache.Store
	policy cache.FreshnessPolicy

	// serialises reloads so concurrent misses fetch once
	mu sync.Mutex
}

func NewCatalogService(source CatalogSource, store cache.Store, policy cache.FreshnessPolicy) CatalogProvider {
	return &catalogServiceImpl{
		source: source,
		store:  store,
		policy: policy,
	}
}

// GetCatalog returns the cached catalog while it is fresh and reloads it otherwise.
// If the reload fails but a stale catalog is still retained, the stale one is returned.
func (s *catalogServiceImpl) GetCatalog(ctx context.Context) (*models.Catalog, error) {
	if catalog, ok := s.fresh(); ok {
		logger.FromContext(ctx).Debug("Cache hit for calculator catalog")
		return catalog, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another request may have reloaded while we waited
	if catalog, ok := s.fresh(); ok {
		return catalog, nil
	}
	return s.reload(ctx)
}

func (s *catalogServiceImpl) Refresh(ctx context.Context) (*models.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

func (s *catalogServiceImpl) Invalidate() {
	s.store.Delete(ckCalculatorCatalog)
	logger.L.Info("Invalidated calculator catalog cache")
}

func (s *catalogServiceImpl) fresh() (*models.Catalog, bool) {
	value, age, found := s.store.Get(ckCalculatorCatalog)
	if !found || !s.policy.IsFresh(age) {
		return nil, false
	}
	return value.(*models.Catalog), true
}

// reload must be called with mu held.
func (s *catalogServiceImpl) reload(ctx context.Context) (*models.Catalog, error) {
	log := logger.FromContext(ctx)
	log.Info("Cache miss for calculator catalog, loading from source")

	catalog, err := s.source.FetchCatalog(ctx)
	if err != nil {
		if stale, age, found := s.store.Get(ckCalculatorCatalog); found {
			log.Warn("Catalog reload failed, serving stale catalog", "age", age, "error", err)
			return stale.(*models.Catalog), nil
		}
		log.Error("Catalog reload failed and nothing is cached", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	catalog.EnsureSlices()
	s.store.Set(ckCalculatorCatalog, catalog)
	log.Info("Populated calculator catalog cache",
		"accountTypes", len(catalog.AccountTypes),
		"commissionLevels", len(catalog.CommissionLevels))
	return catalog, nil
}
