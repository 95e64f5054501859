package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/username/ibportal/src/models"
)

const testCatalogYAML = `
account_types:
  - {id: std, name: Standard, usd_per_lot: "10", spread_share_percentage: "20"}
instruments:
  - {id: eurusd, name: EURUSD, category: Forex}
  - {id: xauusd, name: XAUUSD, category: Metals}
commission_levels:
  - {level: 2, structure_name: Silver, usd_per_lot: 6, spread_share_percentage: 15}
  - {level: 1, structure_name: Bronze, usd_per_lot: 4, spread_share_percentage: 10}
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(testCatalogYAML), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalculateJSON(t *testing.T) {
	out, err := run(t, "--catalog", writeCatalog(t), "--account-type", "std", "--lots", "2", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var quote models.CommissionQuote
	if err := json.Unmarshal([]byte(out), &quote); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(quote.Display) != 2 || quote.Display[0].StructureName != "Bronze" {
		t.Fatalf("unexpected display rows: %+v", quote.Display)
	}
	if quote.Display[0].TotalCommission != "8.20" {
		t.Errorf("level 1 total = %q, want 8.20", quote.Display[0].TotalCommission)
	}
}

func TestCalculateTable(t *testing.T) {
	out, err := run(t, "--catalog", writeCatalog(t), "--account-type", "std", "--lots", "1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Level 1") || !strings.Contains(out, "Silver") {
		t.Errorf("table missing rows:\n%s", out)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	path := writeCatalog(t)
	if _, err := run(t, "--catalog", path, "--account-type", "std", "--lots", "0"); err == nil {
		t.Error("expected zero lots to be rejected")
	}
	if _, err := run(t, "--catalog", path, "--account-type", "nope", "--lots", "1"); err == nil {
		t.Error("expected unknown account type to be rejected")
	}
}

func TestInstrumentsCommand(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "instruments", "--catalog", path, "--query", "metal")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "xauusd") || strings.Contains(out, "eurusd") {
		t.Errorf("unexpected instruments output:\n%s", out)
	}

	out, err = run(t, "instruments", "--catalog", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "xauusd") || !strings.Contains(out, "eurusd") {
		t.Errorf("expected every instrument without a query:\n%s", out)
	}

	if _, err := run(t, "instruments", "--catalog", path, "metal"); err == nil {
		t.Error("expected positional arguments to be rejected")
	}
}
