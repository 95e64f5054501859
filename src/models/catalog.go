package models

// AccountType is a trading account offering. Its own rates are the fallback
// commission used when no commission levels are configured.
type AccountType struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Description           string  `json:"description,omitempty"`
	IBType                string  `json:"ibType,omitempty"`
	USDPerLot             float64 `json:"usdPerLot"`
	SpreadSharePercentage float64 `json:"spreadSharePercentage"`
}

// CommissionLevel is one rung of the commission ladder. Levels are shared by
// every account type; entries with the same Level are expected to carry the
// same rates.
type CommissionLevel struct {
	Level                 int     `json:"level"`
	StructureName         string  `json:"structureName"`
	USDPerLot             float64 `json:"usdPerLot"`
	SpreadSharePercentage float64 `json:"spreadSharePercentage"`
}

// Instrument is only used for selection and search in the calculator.
type Instrument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Catalog is the data a calculator session works from. It is read-only once loaded.
type Catalog struct {
	AccountTypes     []AccountType     `json:"accountTypes"`
	Instruments      []Instrument      `json:"instruments"`
	CommissionLevels []CommissionLevel `json:"commissionLevels"`
}

// FindAccountType returns the account type with the given id.
func (c *Catalog) FindAccountType(id string) (AccountType, bool) {
	for _, at := range c.AccountTypes {
		if at.ID == id {
			return at, true
		}
	}
	return AccountType{}, false
}

// FindInstrument returns the instrument with the given id.
func (c *Catalog) FindInstrument(id string) (Instrument, bool) {
	for _, in := range c.Instruments {
		if in.ID == id {
			return in, true
		}
	}
	return Instrument{}, false
}

// EnsureSlices replaces nil slices with empty ones so the catalog encodes as [] not null.
func (c *Catalog) EnsureSlices() {
	if c.AccountTypes == nil {
		c.AccountTypes = []AccountType{}
	}
	if c.Instruments == nil {
		c.Instruments = []Instrument{}
	}
	if c.CommissionLevels == nil {
		c.CommissionLevels = []CommissionLevel{}
	}
}
