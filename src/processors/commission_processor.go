package processors

import (
	"fmt"
	"sort"

	"github.com/username/ibportal/src/models"
)

// FallbackLevel is the level number used when no commission levels are configured.
const FallbackLevel = 1

type commissionProcessorImpl struct{}

func NewCommissionProcessor() CommissionProcessor {
	return &commissionProcessorImpl{}
}

func (p *commissionProcessorImpl) Calculate(accountTypeID string, lots float64, accountTypes []models.AccountType, levels []models.CommissionLevel) []models.CalculationResult {
	return CalculateCommissions(accountTypeID, lots, accountTypes, levels)
}

// CalculateCommissions computes the fixed and spread-share commission for every
// commission level, ordered by level number.
//
// Levels are not scoped to the account type: every account type sees the same
// ladder. When the same level number appears more than once, the first entry
// wins. With no levels at all, a single level 1 result is built from the
// account type's own rates. An unknown account type yields an empty slice.
//
// lots is not validated. Callers reject non-positive and non-finite values;
// anything passed through scales linearly.
func CalculateCommissions(accountTypeID string, lots float64, accountTypes []models.AccountType, levels []models.CommissionLevel) []models.CalculationResult {
	results := []models.CalculationResult{}

	var selected *models.AccountType
	for i := range accountTypes {
		if accountTypes[i].ID == accountTypeID {
			selected = &accountTypes[i]
			break
		}
	}
	if selected == nil {
		return results
	}

	if len(levels) == 0 {
		return append(results, buildResult(FallbackLevel, selected.Name, selected.USDPerLot, selected.SpreadSharePercentage, lots))
	}

	byLevel := make(map[int]models.CommissionLevel, len(levels))
	for _, lvl := range levels {
		if _, seen := byLevel[lvl.Level]; seen {
			continue
		}
		byLevel[lvl.Level] = lvl
	}

	for _, lvl := range byLevel {
		results = append(results, buildResult(lvl.Level, lvl.StructureName, lvl.USDPerLot, lvl.SpreadSharePercentage, lots))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Level < results[j].Level })

	return results
}

func buildResult(level int, structureName string, usdPerLot, spreadSharePercentage, lots float64) models.CalculationResult {
	fixed := lots * usdPerLot
	spread := lots * (spreadSharePercentage / 100)
	return models.CalculationResult{
		Level:                 level,
		LevelName:             LevelName(level),
		StructureName:         structureName,
		USDPerLot:             usdPerLot,
		SpreadSharePercentage: spreadSharePercentage,
		FixedCommission:       fixed,
		SpreadCommission:      spread,
		TotalCommission:       fixed + spread,
	}
}

// LevelName is the display label for a level number.
func LevelName(level int) string {
	return fmt.Sprintf("Level %d", level)
}
