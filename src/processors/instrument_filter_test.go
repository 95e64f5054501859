package processors

import (
	"testing"

	"github.com/username/ibportal/src/models"
)

func TestInstrumentFilterSearch(t *testing.T) {
	instruments := []models.Instrument{
		{ID: "1", Name: "EURUSD", Category: "Forex"},
		{ID: "2", Name: "XAUUSD", Category: "Metals"},
		{ID: "3", Name: "US30", Category: "Indices"},
		{ID: "4", Name: "GBPUSD", Category: "Forex"},
	}
	f := NewInstrumentFilter()

	tests := []struct {
		name  string
		query string
		ids   []string
	}{
		{"empty query returns all", "", []string{"1", "2", "3", "4"}},
		{"match by name ignoring case", "xau", []string{"2"}},
		{"match by category keeps order", "FOREX", []string{"1", "4"}},
		{"shared substring", "usd", []string{"1", "2", "4"}},
		{"no match", "btc", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Search(instruments, tt.query)
			if len(got) != len(tt.ids) {
				t.Fatalf("expected %d matches, got %d (%+v)", len(tt.ids), len(got), got)
			}
			for i, id := range tt.ids {
				if got[i].ID != id {
					t.Errorf("match %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}
