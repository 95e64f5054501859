package processors

import (
	"math"
	"reflect"
	"testing"

	"github.com/username/ibportal/src/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func standardAccountTypes() []models.AccountType {
	return []models.AccountType{
		{ID: "std", Name: "Standard", USDPerLot: 10, SpreadSharePercentage: 20},
		{ID: "ecn", Name: "ECN", IBType: "raw", USDPerLot: 4, SpreadSharePercentage: 0},
	}
}

func TestCalculateCommissionsSingleLevel(t *testing.T) {
	levels := []models.CommissionLevel{{Level: 1, StructureName: "Bronze", USDPerLot: 7.5, SpreadSharePercentage: 15}}

	for _, lots := range []float64{0.01, 1, 2.5, 100} {
		results := CalculateCommissions("std", lots, standardAccountTypes(), levels)
		if len(results) != 1 {
			t.Fatalf("lots=%v: expected 1 result, got %d", lots, len(results))
		}
		r := results[0]
		if !almostEqual(r.FixedCommission, lots*7.5) {
			t.Errorf("lots=%v: fixed = %v, want %v", lots, r.FixedCommission, lots*7.5)
		}
		if !almostEqual(r.SpreadCommission, lots*15/100) {
			t.Errorf("lots=%v: spread = %v, want %v", lots, r.SpreadCommission, lots*15/100)
		}
		if !almostEqual(r.TotalCommission, r.FixedCommission+r.SpreadCommission) {
			t.Errorf("lots=%v: total %v is not fixed+spread", lots, r.TotalCommission)
		}
		if r.StructureName != "Bronze" || r.LevelName != "Level 1" {
			t.Errorf("unexpected labels: %+v", r)
		}
	}
}

func TestCalculateCommissionsFallbackWithoutLevels(t *testing.T) {
	results := CalculateCommissions("std", 2, standardAccountTypes(), nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 fallback result, got %d", len(results))
	}
	r := results[0]
	if r.Level != 1 {
		t.Errorf("expected level 1, got %d", r.Level)
	}
	if !almostEqual(r.FixedCommission, 20) {
		t.Errorf("fixed = %v, want 20", r.FixedCommission)
	}
	if !almostEqual(r.SpreadCommission, 0.4) {
		t.Errorf("spread = %v, want 0.4", r.SpreadCommission)
	}
	if !almostEqual(r.TotalCommission, 20.4) {
		t.Errorf("total = %v, want 20.4", r.TotalCommission)
	}
	if r.StructureName != "Standard" {
		t.Errorf("fallback structure name = %q, want account type name", r.StructureName)
	}
}

func TestCalculateCommissionsSortsByLevel(t *testing.T) {
	levels := []models.CommissionLevel{
		{Level: 3, StructureName: "Gold", USDPerLot: 9},
		{Level: 2, StructureName: "Silver", USDPerLot: 8},
		{Level: 1, StructureName: "Bronze", USDPerLot: 7},
	}
	results := CalculateCommissions("ecn", 1, standardAccountTypes(), levels)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []int{1, 2, 3} {
		if results[i].Level != want {
			t.Errorf("results[%d].Level = %d, want %d", i, results[i].Level, want)
		}
	}
}

func TestCalculateCommissionsFirstEntryWinsPerLevel(t *testing.T) {
	a := models.CommissionLevel{Level: 1, StructureName: "A", USDPerLot: 5, SpreadSharePercentage: 10}
	b := models.CommissionLevel{Level: 1, StructureName: "B", USDPerLot: 1, SpreadSharePercentage: 50}

	tests := []struct {
		name   string
		levels []models.CommissionLevel
		want   string
	}{
		{"higher rate first", []models.CommissionLevel{a, b}, "A"},
		{"lower rate first", []models.CommissionLevel{b, a}, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := CalculateCommissions("std", 1, standardAccountTypes(), tt.levels)
			if len(results) != 1 {
				t.Fatalf("expected duplicates collapsed to 1 result, got %d", len(results))
			}
			if results[0].StructureName != tt.want {
				t.Errorf("structure = %q, want %q", results[0].StructureName, tt.want)
			}
		})
	}
}

func TestCalculateCommissionsLevelsIgnoreAccountType(t *testing.T) {
	levels := []models.CommissionLevel{{Level: 1, StructureName: "Bronze", USDPerLot: 3}}
	std := CalculateCommissions("std", 1, standardAccountTypes(), levels)
	ecn := CalculateCommissions("ecn", 1, standardAccountTypes(), levels)
	if !reflect.DeepEqual(std, ecn) {
		t.Errorf("expected identical ladders for every account type, got %+v vs %+v", std, ecn)
	}
}

func TestCalculateCommissionsUnknownAccountType(t *testing.T) {
	levels := []models.CommissionLevel{{Level: 1, USDPerLot: 3}}
	results := CalculateCommissions("nonexistent", 5, standardAccountTypes(), levels)
	if results == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestCalculateCommissionsIdempotent(t *testing.T) {
	levels := []models.CommissionLevel{
		{Level: 2, StructureName: "Silver", USDPerLot: 8, SpreadSharePercentage: 12.5},
		{Level: 1, StructureName: "Bronze", USDPerLot: 7, SpreadSharePercentage: 10},
	}
	first := CalculateCommissions("std", 3.3, standardAccountTypes(), levels)
	second := CalculateCommissions("std", 3.3, standardAccountTypes(), levels)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output, got %+v and %+v", first, second)
	}
}

func TestCalculateCommissionsNonPositiveLotsPassThrough(t *testing.T) {
	levels := []models.CommissionLevel{{Level: 1, USDPerLot: 10, SpreadSharePercentage: 20}}

	zero := CalculateCommissions("std", 0, standardAccountTypes(), levels)
	if len(zero) != 1 || zero[0].TotalCommission != 0 {
		t.Errorf("expected a zero total for zero lots, got %+v", zero)
	}

	neg := CalculateCommissions("std", -1, standardAccountTypes(), levels)
	if len(neg) != 1 || !almostEqual(neg[0].TotalCommission, -10.2) {
		t.Errorf("expected a linear negative total for -1 lots, got %+v", neg)
	}
}

func TestCalculateCommissionsDoesNotRound(t *testing.T) {
	levels := []models.CommissionLevel{{Level: 1, USDPerLot: 1.005, SpreadSharePercentage: 0.333}}
	r := CalculateCommissions("std", 3, standardAccountTypes(), levels)[0]
	if !almostEqual(r.FixedCommission, 3.015) {
		t.Errorf("fixed = %v, want unrounded 3.015", r.FixedCommission)
	}
	if !almostEqual(r.SpreadCommission, 0.00999) {
		t.Errorf("spread = %v, want unrounded 0.00999", r.SpreadCommission)
	}
}

func TestCommissionProcessorDelegates(t *testing.T) {
	p := NewCommissionProcessor()
	levels := []models.CommissionLevel{{Level: 1, USDPerLot: 2}}
	got := p.Calculate("std", 4, standardAccountTypes(), levels)
	want := CalculateCommissions("std", 4, standardAccountTypes(), levels)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("processor output %+v differs from CalculateCommissions %+v", got, want)
	}
}
