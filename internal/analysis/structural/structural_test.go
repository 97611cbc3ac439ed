package structural

import (
	"math"
	"testing"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger/ledgertest"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func buildSet(t *testing.T, entries []models.LedgerEntry) *statements.Set {
	t.Helper()
	l, err := ledger.Classify(entries)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	set, _ := statements.Build(l, statements.DefaultTolerance)
	return set
}

func TestVertical(t *testing.T) {
	rows := Vertical(buildSet(t, ledgertest.Year2023()))
	if len(rows) != 14 {
		t.Fatalf("expected one row per account (14), got %d", len(rows))
	}
	want := map[string]float64{
		"Caja":            1000.0 / 5300 * 100,
		"Capital social":  2100.0 / 5300 * 100,
		"Ventas":          100,
		"Costo de ventas": 60,
	}
	for _, r := range rows {
		w, ok := want[r.AccountName]
		if !ok {
			continue
		}
		if !r.Pct.Valid() || math.Abs(r.Pct.Value()-w) > 1e-6 {
			t.Errorf("%s: expected %.4f%%, got %v", r.AccountName, w, r.Pct)
		}
	}
}

func TestVerticalZeroSalesSentinel(t *testing.T) {
	entries := append(ledgertest.Minimal(), models.LedgerEntry{
		ID: "g", AccountName: "Sueldos", Value: models.M(10), Year: 2023, Type: models.TypeExpense,
	})
	for _, r := range Vertical(buildSet(t, entries)) {
		if r.Type == models.TypeExpense && r.Pct.Valid() {
			t.Errorf("expense over zero sales should be the sentinel, got %v", r.Pct)
		}
		if r.AccountName == "Caja" && !r.Pct.Approx(models.R(100), 1e-9) {
			t.Errorf("Caja should be 100%% of assets, got %v", r.Pct)
		}
	}
}

func TestHorizontalOneYearIsEmpty(t *testing.T) {
	rows := Horizontal(buildSet(t, ledgertest.Year2023()))
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %v", rows)
	}
}

func TestHorizontal(t *testing.T) {
	rows := Horizontal(buildSet(t, ledgertest.TwoYears()))
	if len(rows) != 14 {
		t.Fatalf("expected 14 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Period != "2023-2024" {
			t.Errorf("period: got %q", r.Period)
		}
		if r.Account == "Ventas" {
			if !r.VarAbs.Equal(models.M(2000)) || !r.VarPct.Approx(models.R(20), 1e-9) {
				t.Errorf("Ventas: got %s / %v", r.VarAbs, r.VarPct)
			}
		}
	}
	if rows[0].Type != models.TypeAsset || rows[len(rows)-1].Type != models.TypeExpense {
		t.Errorf("rows should be in statement order")
	}
}

func TestHorizontalNewAccount(t *testing.T) {
	entries := append(ledgertest.TwoYears(), models.LedgerEntry{
		ID: "new", AccountName: "Patentes", Value: models.M(50), Year: 2024, Type: models.TypeAsset,
	}, models.LedgerEntry{
		ID: "new-eq", AccountName: "Aportes", Value: models.M(50), Year: 2024, Type: models.TypeEquity,
	})
	var found bool
	for _, r := range Horizontal(buildSet(t, entries)) {
		if r.Account != "Patentes" {
			continue
		}
		found = true
		if !r.ValBase.IsZero() || !r.ValCurr.Equal(models.M(50)) {
			t.Errorf("got base %s curr %s", r.ValBase, r.ValCurr)
		}
		if r.VarPct.Valid() {
			t.Errorf("var_pct over a zero base should be the sentinel")
		}
	}
	if !found {
		t.Error("accounts absent from the base year should be reported")
	}
}
