package utils

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/username/ibportal/src/models"
)

// DisplayPlaces is how many fraction digits amounts are shown with.
const DisplayPlaces = 2

// FormatAmount renders an amount with DisplayPlaces fraction digits.
// Non-finite amounts are rendered as "NaN", "+Inf" or "-Inf".
func FormatAmount(val float64) string {
	switch {
	case math.IsNaN(val):
		return "NaN"
	case math.IsInf(val, 1):
		return "+Inf"
	case math.IsInf(val, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(val).StringFixed(DisplayPlaces)
}

// FormatResults converts engine output into its display form. The input is
// left untouched so callers can still work with the unrounded values.
func FormatResults(results []models.CalculationResult) []models.DisplayResult {
	display := make([]models.DisplayResult, 0, len(results))
	for _, r := range results {
		display = append(display, models.DisplayResult{
			Level:                 r.Level,
			LevelName:             r.LevelName,
			StructureName:         r.StructureName,
			USDPerLot:             FormatAmount(r.USDPerLot),
			SpreadSharePercentage: FormatAmount(r.SpreadSharePercentage),
			FixedCommission:       FormatAmount(r.FixedCommission),
			SpreadCommission:      FormatAmount(r.SpreadCommission),
			TotalCommission:       FormatAmount(r.TotalCommission),
		})
	}
	return display
}
