package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/username/ibportal/src/models"
)

// LoadCatalogFile reads a catalog from disk, choosing the parser by file extension.
func LoadCatalogFile(path string) (*models.Catalog, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	parser, err := GetCatalogParser(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return catalog, nil
}
