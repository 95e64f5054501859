package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/ibportal/src/model"
	"github.com/username/ibportal/src/models"
	"golang.org/x/sync/errgroup"
)

// DatabaseSource reads the catalog from the local sqlite store.
type DatabaseSource struct {
	db *sql.DB
}

func NewDatabaseSource(db *sql.DB) *DatabaseSource {
	return &DatabaseSource{db: db}
}

func (s *DatabaseSource) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	catalog := &models.Catalog{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accountTypes, err := model.ListAccountTypes(gctx, s.db)
		if err != nil {
			return fmt.Errorf("error loading account types: %w", err)
		}
		catalog.AccountTypes = accountTypes
		return nil
	})
	g.Go(func() error {
		instruments, err := model.ListInstruments(gctx, s.db)
		if err != nil {
			return fmt.Errorf("error loading instruments: %w", err)
		}
		catalog.Instruments = instruments
		return nil
	})
	g.Go(func() error {
		levels, err := model.ListCommissionLevels(gctx, s.db)
		if err != nil {
			return fmt.Errorf("error loading commission levels: %w", err)
		}
		catalog.CommissionLevels = levels
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// SeedCatalog replaces the stored catalog with the given one.
func (s *DatabaseSource) SeedCatalog(catalog *models.Catalog) error {
	return model.ReplaceCatalog(s.db, catalog)
}
