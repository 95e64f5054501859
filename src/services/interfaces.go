package services

import (
	"context"

	"github.com/username/ibportal/src/models"
)

// CatalogSource loads the full calculator catalog from its system of record.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (*models.Catalog, error)
}

// CatalogProvider hands out the current catalog, reloading it when stale.
type CatalogProvider interface {
	GetCatalog(ctx context.Context) (*models.Catalog, error)
	Refresh(ctx context.Context) (*models.Catalog, error)
	Invalidate()
}
