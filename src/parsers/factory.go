package parsers

import (
	"fmt"
	"strings"
)

func GetCatalogParser(format string) (CatalogParser, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCatalogParser(), nil
	case "yaml", "yml":
		return NewYAMLCatalogParser(), nil
	default:
		return nil, fmt.Errorf("no catalog parser available for format: %s", format)
	}
}
