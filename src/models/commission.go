package models

// CalculationResult is the commission breakdown for one level.
// Amounts are never rounded here; rounding is a display concern.
type CalculationResult struct {
	Level                 int     `json:"level"`
	LevelName             string  `json:"levelName"`
	StructureName         string  `json:"structureName"`
	USDPerLot             float64 `json:"usdPerLot"`
	SpreadSharePercentage float64 `json:"spreadSharePercentage"`
	FixedCommission       float64 `json:"fixedCommission"`
	SpreadCommission      float64 `json:"spreadCommission"`
	TotalCommission       float64 `json:"totalCommission"`
}

// DisplayResult is a CalculationResult rendered for people: amounts rounded to
// two fraction digits.
type DisplayResult struct {
	Level                 int    `json:"level"`
	LevelName             string `json:"levelName"`
	StructureName         string `json:"structureName"`
	USDPerLot             string `json:"usdPerLot"`
	SpreadSharePercentage string `json:"spreadSharePercentage"`
	FixedCommission       string `json:"fixedCommission"`
	SpreadCommission      string `json:"spreadCommission"`
	TotalCommission       string `json:"totalCommission"`
}

// CommissionQuote is the response of a one-shot calculation.
type CommissionQuote struct {
	AccountTypeID string              `json:"accountTypeId"`
	Lots          float64             `json:"lots"`
	Results       []CalculationResult `json:"results"`
	Display       []DisplayResult     `json:"display"`
}
