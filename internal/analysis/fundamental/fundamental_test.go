package fundamental

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger/ledgertest"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func sampleStatements(t *testing.T, entries []models.LedgerEntry) *statements.Set {
	t.Helper()
	l, err := ledger.Classify(entries)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	set, _ := statements.Build(l, statements.DefaultTolerance)
	return set
}

func near(r models.Ratio, want float64) bool {
	return r.Valid() && math.Abs(r.Value()-want) < 1e-6
}

func TestComputeRatios(t *testing.T) {
	set := sampleStatements(t, ledgertest.TwoYears())
	ratios, warnings := ComputeAll(set)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(ratios) != 2 || ratios[1].Year != 2024 {
		t.Fatalf("expected ratios for 2023 and 2024, got %d", len(ratios))
	}
	rs := ratios[1]

	tests := []struct {
		name string
		got  models.Ratio
		want float64
	}{
		{"razon_circulante", rs.Liquidity.CurrentRatio, 2450.0 / 1050},
		{"razon_rapida", rs.Liquidity.QuickRatio, 1550.0 / 1050},
		{"rotacion_inventarios", rs.Activity.InventoryTurnover, 7200.0 / 850},
		{"rotacion_activos_totales", rs.Activity.AssetTurnover, 12000.0 / 5650},
		{"periodo_cobro", rs.Activity.CollectionPeriod, 600.0 / 12000 * 365},
		{"razon_endeudamiento", rs.Leverage.DebtRatio, 1950.0 / 5650 * 100},
		{"razon_pasivo_capital", rs.Leverage.DebtToEquity, 1950.0 / 3700},
		{"cobertura_intereses", rs.Leverage.InterestCoverage, 2200.0 / 80},
		{"margen_bruto", rs.Profitability.GrossMargin, 40},
		{"margen_operativo", rs.Profitability.OperatingMargin, 2200.0 / 12000 * 100},
		{"margen_neto", rs.Profitability.NetMargin, 1600.0 / 12000 * 100},
		{"roa", rs.Profitability.ROA, 1600.0 / 5650 * 100},
		{"roe", rs.Profitability.ROE, 1600.0 / 3700 * 100},
	}
	for _, tt := range tests {
		if !near(tt.got, tt.want) {
			t.Errorf("%s: expected %.6f, got %v", tt.name, tt.want, tt.got)
		}
	}

	if !rs.Liquidity.NetWorkingCap.Equal(models.M(1400)) {
		t.Errorf("cnt: expected 1400, got %s", rs.Liquidity.NetWorkingCap)
	}
	if !rs.Liquidity.OperatingWCap.Equal(models.M(850)) {
		t.Errorf("cno: expected 850, got %s", rs.Liquidity.OperatingWCap)
	}
}

func TestComputeRatiosFirstYearUsesOwnBalances(t *testing.T) {
	set := sampleStatements(t, ledgertest.Year2023())
	rs, _ := ComputeRatios(2023, set.ByYear[2023], nil)
	if !near(rs.Activity.InventoryTurnover, 6000.0/800) {
		t.Errorf("rotacion_inventarios: expected 7.5, got %v", rs.Activity.InventoryTurnover)
	}
	if !near(rs.Activity.CollectionPeriod, 500.0/10000*365) {
		t.Errorf("periodo_cobro: expected 18.25, got %v", rs.Activity.CollectionPeriod)
	}
}

func TestDuPontIdentity(t *testing.T) {
	set := sampleStatements(t, ledgertest.TwoYears())
	ratios, _ := ComputeAll(set)
	for _, rs := range ratios {
		p := rs.Profitability
		if !p.DuPont.System.Approx(p.ROE, 1e-6) {
			t.Errorf("%d: sistema %v != roe %v", rs.Year, p.DuPont.System, p.ROE)
		}
	}
}

func TestZeroCurrentLiabilitiesSentinel(t *testing.T) {
	set := sampleStatements(t, ledgertest.Minimal())
	rs, warnings := ComputeRatios(2023, set.ByYear[2023], nil)
	if rs.Liquidity.CurrentRatio.Valid() {
		t.Error("razon_circulante should be the sentinel")
	}
	if rs.Liquidity.QuickRatio.Valid() {
		t.Error("razon_rapida should be the sentinel")
	}
	if !rs.Profitability.ROE.Valid() || rs.Profitability.ROE.Value() != 0 {
		t.Errorf("roe should be 0, got %v", rs.Profitability.ROE)
	}

	found := false
	for _, w := range warnings {
		if w.Kind != models.KindDivisionSentinel || w.Year != 2023 {
			t.Errorf("unexpected warning %+v", w)
		}
		if w.Message == "razon_circulante no definido: denominador cero" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a razon_circulante warning, got %v", warnings)
	}
}

func TestPctChange(t *testing.T) {
	if r := PctChange(models.M(100), models.M(150)); !near(r, 50) {
		t.Errorf("expected 50, got %v", r)
	}
	if r := PctChange(models.M(-100), models.M(-50)); !near(r, 50) {
		t.Errorf("expected 50 for an improving loss, got %v", r)
	}
	if PctChange(models.Zero, models.M(10)).Valid() {
		t.Error("change from zero should be the sentinel")
	}
}

func TestGrowth(t *testing.T) {
	g, method, ok := Growth(models.M(100000), models.M(120000), 1)
	if !ok || method != models.GrowthSimple || !g.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("simple: got %s %s %v", g, method, ok)
	}

	g, method, ok = Growth(models.M(100), models.M(121), 2)
	if !ok || method != models.GrowthCompound || math.Abs(g.InexactFloat64()-0.1) > 1e-9 {
		t.Errorf("compound: got %s %s %v", g, method, ok)
	}

	if _, _, ok := Growth(models.Zero, models.M(10), 1); ok {
		t.Error("zero first value should not project")
	}
	if _, _, ok := Growth(models.M(10), models.M(-1), 2); ok {
		t.Error("negative last value should not project")
	}
}
