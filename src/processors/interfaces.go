package processors

import (
	"github.com/username/ibportal/src/models"
)

// CommissionProcessor defines the interface for computing per-level commission breakdowns.
type CommissionProcessor interface {
	Calculate(accountTypeID string, lots float64, accountTypes []models.AccountType, levels []models.CommissionLevel) []models.CalculationResult
}

// InstrumentFilter defines the interface for narrowing the instrument list in the calculator.
type InstrumentFilter interface {
	Search(instruments []models.Instrument, query string) []models.Instrument
}
