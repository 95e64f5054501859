package parsers

import (
	"errors"
	"fmt"
	"io"

	"github.com/username/ibportal/src/models"
	"gopkg.in/yaml.v3"
)

type YAMLCatalogParser struct{}

func NewYAMLCatalogParser() *YAMLCatalogParser {
	return &YAMLCatalogParser{}
}

func (p *YAMLCatalogParser) Parse(r io.Reader) (*models.Catalog, error) {
	return ParseSeedFile(r)
}

// ParseSeedFile reads a catalog from a YAML seed document. It uses the same
// field names as the dashboard payload. An empty document is an empty catalog.
func ParseSeedFile(r io.Reader) (*models.Catalog, error) {
	var raw rawCatalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrMalformedCatalog, err)
	}
	return mapCatalog(raw)
}
