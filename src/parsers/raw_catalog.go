package parsers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/username/ibportal/src/models"
	"gopkg.in/yaml.v3"
)

// ErrMalformedCatalog is returned when a catalog document has a field that cannot be mapped.
var ErrMalformedCatalog = errors.New("malformed catalog")

// scalar holds a JSON or YAML scalar as text. The dashboard API sends
// decimals and ids either as numbers or as strings, so both are accepted.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	text := strings.TrimSpace(string(b))
	if text == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = scalar(strings.TrimSpace(str))
		return nil
	}
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return fmt.Errorf("expected a scalar, got %s", text)
	}
	*s = scalar(text)
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(strings.TrimSpace(node.Value))
	return nil
}

type rawAccountType struct {
	ID                    scalar `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	Description           string `json:"description" yaml:"description"`
	IBType                string `json:"ib_type" yaml:"ib_type"`
	USDPerLot             scalar `json:"usd_per_lot" yaml:"usd_per_lot"`
	SpreadSharePercentage scalar `json:"spread_share_percentage" yaml:"spread_share_percentage"`
}

type rawInstrument struct {
	ID       scalar `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

type rawCommissionLevel struct {
	Level                 scalar `json:"level" yaml:"level"`
	StructureName         string `json:"structure_name" yaml:"structure_name"`
	USDPerLot             scalar `json:"usd_per_lot" yaml:"usd_per_lot"`
	SpreadSharePercentage scalar `json:"spread_share_percentage" yaml:"spread_share_percentage"`
}

// rawCatalog is the dashboard payload as sent on the wire, optionally wrapped
// in a {"data": {...}} envelope.
type rawCatalog struct {
	AccountTypes     []rawAccountType     `json:"account_types" yaml:"account_types"`
	Instruments      []rawInstrument      `json:"instruments" yaml:"instruments"`
	CommissionLevels []rawCommissionLevel `json:"commission_levels" yaml:"commission_levels"`
	Data             *rawCatalog          `json:"data" yaml:"data"`
}

// mapCatalog is the only place where wire field names and types are turned
// into the internal catalog.
func mapCatalog(raw rawCatalog) (*models.Catalog, error) {
	if raw.Data != nil {
		raw = *raw.Data
	}

	catalog := &models.Catalog{
		AccountTypes:     make([]models.AccountType, 0, len(raw.AccountTypes)),
		Instruments:      make([]models.Instrument, 0, len(raw.Instruments)),
		CommissionLevels: make([]models.CommissionLevel, 0, len(raw.CommissionLevels)),
	}

	for i, at := range raw.AccountTypes {
		usd, err := parseDecimal(at.USDPerLot, "account_types", i, "usd_per_lot")
		if err != nil {
			return nil, err
		}
		spread, err := parseDecimal(at.SpreadSharePercentage, "account_types", i, "spread_share_percentage")
		if err != nil {
			return nil, err
		}
		catalog.AccountTypes = append(catalog.AccountTypes, models.AccountType{
			ID:                    string(at.ID),
			Name:                  strings.TrimSpace(at.Name),
			Description:           strings.TrimSpace(at.Description),
			IBType:                strings.TrimSpace(at.IBType),
			USDPerLot:             usd,
			SpreadSharePercentage: spread,
		})
	}

	for _, in := range raw.Instruments {
		catalog.Instruments = append(catalog.Instruments, models.Instrument{
			ID:       string(in.ID),
			Name:     strings.TrimSpace(in.Name),
			Category: strings.TrimSpace(in.Category),
		})
	}

	for i, lvl := range raw.CommissionLevels {
		level, err := parseLevel(lvl.Level, i)
		if err != nil {
			return nil, err
		}
		usd, err := parseDecimal(lvl.USDPerLot, "commission_levels", i, "usd_per_lot")
		if err != nil {
			return nil, err
		}
		spread, err := parseDecimal(lvl.SpreadSharePercentage, "commission_levels", i, "spread_share_percentage")
		if err != nil {
			return nil, err
		}
		catalog.CommissionLevels = append(catalog.CommissionLevels, models.CommissionLevel{
			Level:                 level,
			StructureName:         strings.TrimSpace(lvl.StructureName),
			USDPerLot:             usd,
			SpreadSharePercentage: spread,
		})
	}

	return catalog, nil
}

// parseDecimal maps an empty value to 0 and rejects anything that is not a
// finite number. Range checks are left to the data owner.
func parseDecimal(v scalar, collection string, index int, field string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s[%d].%s: %q is not a number", ErrMalformedCatalog, collection, index, field, string(v))
	}
	return f, nil
}

func parseLevel(v scalar, index int) (int, error) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: commission_levels[%d].level: %q is not a whole number", ErrMalformedCatalog, index, string(v))
	}
	return int(f), nil
}
