package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/username/ibportal/src/models"
)

type JSONCatalogParser struct{}

func NewJSONCatalogParser() *JSONCatalogParser {
	return &JSONCatalogParser{}
}

func (p *JSONCatalogParser) Parse(r io.Reader) (*models.Catalog, error) {
	return ParseCatalog(r)
}

// ParseCatalog decodes the dashboard calculator payload (snake_case fields)
// and maps it to a catalog.
func ParseCatalog(r io.Reader) (*models.Catalog, error) {
	var raw rawCatalog
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode JSON: %v", ErrMalformedCatalog, err)
	}
	return mapCatalog(raw)
}
