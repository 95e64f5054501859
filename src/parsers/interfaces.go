package parsers

import (
	"io"

	"github.com/username/ibportal/src/models"
)

// CatalogParser turns a calculator catalog document into the internal catalog.
type CatalogParser interface {
	Parse(r io.Reader) (*models.Catalog, error)
}
