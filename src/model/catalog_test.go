package model

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/username/ibportal/src/database"
	"github.com/username/ibportal/src/models"
)

func TestReplaceAndListCatalog(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	catalog := &models.Catalog{
		AccountTypes: []models.AccountType{
			{ID: "z-std", Name: "Standard", Description: "Retail", USDPerLot: 10, SpreadSharePercentage: 20},
			{ID: "a-ecn", Name: "ECN", IBType: "raw", USDPerLot: 4},
		},
		Instruments: []models.Instrument{{ID: "1", Name: "EURUSD", Category: "Forex"}},
		CommissionLevels: []models.CommissionLevel{
			{Level: 2, StructureName: "Silver", USDPerLot: 8},
			{Level: 1, StructureName: "Bronze", USDPerLot: 7},
			{Level: 1, StructureName: "Bronze duplicate", USDPerLot: 1},
		},
	}
	if err := ReplaceCatalog(db, catalog); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}

	accountTypes, err := ListAccountTypes(ctx, db)
	if err != nil {
		t.Fatalf("ListAccountTypes: %v", err)
	}
	if len(accountTypes) != 2 || accountTypes[0].ID != "z-std" {
		t.Errorf("expected stored order to be kept, got %+v", accountTypes)
	}
	if accountTypes[0].Description != "Retail" || accountTypes[1].IBType != "raw" {
		t.Errorf("unexpected optional fields: %+v", accountTypes)
	}

	levels, err := ListCommissionLevels(ctx, db)
	if err != nil {
		t.Fatalf("ListCommissionLevels: %v", err)
	}
	if len(levels) != 3 || levels[1].StructureName != "Bronze" || levels[2].StructureName != "Bronze duplicate" {
		t.Errorf("expected insertion order, got %+v", levels)
	}

	if err := ReplaceCatalog(db, &models.Catalog{}); err != nil {
		t.Fatalf("ReplaceCatalog empty: %v", err)
	}
	instruments, err := ListInstruments(ctx, db)
	if err != nil {
		t.Fatalf("ListInstruments: %v", err)
	}
	if len(instruments) != 0 || instruments == nil {
		t.Errorf("expected an empty, non-nil list after replace, got %+v", instruments)
	}
}

func TestListQueriesHonourCancelledContext(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ListAccountTypes(ctx, db); err == nil {
		t.Error("ListAccountTypes: expected an error for a cancelled context")
	}
	if _, err := ListInstruments(ctx, db); err == nil {
		t.Error("ListInstruments: expected an error for a cancelled context")
	}
	if _, err := ListCommissionLevels(ctx, db); err == nil {
		t.Error("ListCommissionLevels: expected an error for a cancelled context")
	}
}
