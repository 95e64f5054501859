package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/username/ibportal/src/cache"
	"github.com/username/ibportal/src/models"
)

func newTestCatalogService(src *fakeSource, clock *fakeClock) CatalogProvider {
	store := cache.NewTimedStore(0, time.Minute, clock.Now)
	return NewCatalogService(src, store, cache.FreshnessPolicy{MaxAge: 5 * time.Minute})
}

func TestCatalogServiceCachesWhileFresh(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	clock := newFakeClock()
	svc := newTestCatalogService(src, clock)
	ctx := context.Background()

	first, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	clock.Advance(4 * time.Minute)
	second, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}

	if src.callCount() != 1 {
		t.Errorf("source called %d times, want 1", src.callCount())
	}
	if first != second {
		t.Error("expected the cached catalog to be returned")
	}
}

func TestCatalogServiceReloadsWhenStale(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	clock := newFakeClock()
	svc := newTestCatalogService(src, clock)
	ctx := context.Background()

	if _, err := svc.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	clock.Advance(5 * time.Minute)
	if _, err := svc.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if src.callCount() != 2 {
		t.Errorf("source called %d times, want 2", src.callCount())
	}
}

func TestCatalogServiceServesStaleOnError(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	clock := newFakeClock()
	svc := newTestCatalogService(src, clock)
	ctx := context.Background()

	first, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}

	src.setErr(errors.New("upstream down"))
	clock.Advance(10 * time.Minute)

	got, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("expected stale catalog, got error: %v", err)
	}
	if got != first {
		t.Error("expected the previously loaded catalog")
	}
	if src.callCount() != 2 {
		t.Errorf("source called %d times, want 2", src.callCount())
	}
}

func TestCatalogServiceUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	svc := newTestCatalogService(src, newFakeClock())

	_, err := svc.GetCatalog(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestCatalogServiceRefreshAndInvalidate(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	svc := newTestCatalogService(src, newFakeClock())
	ctx := context.Background()

	if _, err := svc.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if src.callCount() != 2 {
		t.Errorf("after Refresh source called %d times, want 2", src.callCount())
	}

	svc.Invalidate()
	if _, err := svc.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if src.callCount() != 3 {
		t.Errorf("after Invalidate source called %d times, want 3", src.callCount())
	}
}

func TestCatalogServiceFillsNilSlices(t *testing.T) {
	src := &fakeSource{catalog: &models.Catalog{}}
	svc := newTestCatalogService(src, newFakeClock())

	got, err := svc.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if got.AccountTypes == nil || got.Instruments == nil || got.CommissionLevels == nil {
		t.Errorf("expected non-nil slices, got %+v", got)
	}
}
