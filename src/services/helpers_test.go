package services

import (
	"context"
	"sync"
	"time"

	"github.com/username/ibportal/src/models"
)

type fakeSource struct {
	mu      sync.Mutex
	catalog *models.Catalog
	err     error
	calls   int
}

func (f *fakeSource) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c := *f.catalog
	return &c, nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testCatalog() *models.Catalog {
	return &models.Catalog{
		AccountTypes: []models.AccountType{
			{ID: "std", Name: "Standard", USDPerLot: 10, SpreadSharePercentage: 0.2},
			{ID: "pro", Name: "Pro", USDPerLot: 5, SpreadSharePercentage: 0.1},
		},
		Instruments: []models.Instrument{
			{ID: "eurusd", Name: "EURUSD", Category: "Forex"},
			{ID: "xauusd", Name: "XAUUSD", Category: "Metals"},
		},
		CommissionLevels: []models.CommissionLevel{
			{Level: 2, StructureName: "Silver", USDPerLot: 6, SpreadSharePercentage: 0.15},
			{Level: 1, StructureName: "Bronze", USDPerLot: 4, SpreadSharePercentage: 0.1},
		},
	}
}
