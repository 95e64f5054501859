package processors

import (
	"strings"

	"github.com/username/ibportal/src/models"
)

type instrumentFilterImpl struct{}

func NewInstrumentFilter() InstrumentFilter {
	return &instrumentFilterImpl{}
}

// Search returns the instruments whose name or category contains query,
// ignoring case. Catalog order is preserved. An empty query matches everything.
func (f *instrumentFilterImpl) Search(instruments []models.Instrument, query string) []models.Instrument {
	matches := []models.Instrument{}
	q := strings.ToLower(strings.TrimSpace(query))
	for _, in := range instruments {
		if q == "" ||
			strings.Contains(strings.ToLower(in.Name), q) ||
			strings.Contains(strings.ToLower(in.Category), q) {
			matches = append(matches, in)
		}
	}
	return matches
}
