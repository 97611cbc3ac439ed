package diagnosis

import (
	"strings"
	"testing"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/fundamental"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/proforma"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger/ledgertest"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func sampleFacts(t *testing.T, entries []models.LedgerEntry) *Facts {
	t.Helper()
	l, err := ledger.Classify(entries)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	set, warnings := statements.Build(l, statements.DefaultTolerance)
	ratios, _ := fundamental.ComputeAll(set)
	proj, _, _ := proforma.Project(set)

	n := len(set.Years)
	f := &Facts{
		Year:     set.Years[n-1],
		BaseYear: set.Years[0],
		Latest:   ratios[n-1],
		Income:   set.ByYear[set.Years[n-1]].IncomeStatement,
		Warnings: warnings,
		Proforma: proj,
		Currency: "USD",
	}
	if n > 1 {
		f.Previous = &ratios[n-2]
		base := set.ByYear[set.Years[0]].IncomeStatement
		f.BaseInc = &base
	}
	return f
}

func ruleIDs(findings []models.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.Rule
	}
	return ids
}

func TestNarrateTwoYears(t *testing.T) {
	text, findings := New().Narrate(sampleFacts(t, ledgertest.TwoYears()))

	want := []string{
		"liquidity.solid",
		"leverage.conservative",
		"profitability.excellent",
		"profitability.margin_trend",
		"profitability.sales_trend",
		"projection.proforma",
	}
	got := ruleIDs(findings)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rules:\n got %v\nwant %v", got, want)
	}

	if !strings.HasPrefix(text, "DIAGNÓSTICO 2024:\nLiquidez sólida: la razón circulante es 2.33") {
		t.Errorf("unexpected conclusion start:\n%s", text)
	}
	for _, frag := range []string{
		"El margen neto mejoró de 12.00% en 2023 a 13.33% en 2024.",
		"Las ventas crecieron 20.00% entre 2023 y 2024 (de $10,000.00 a $12,000.00).",
		"Proyección 2025: con un crecimiento simple de 20.00%, las ventas alcanzarían $14,400.00 y la utilidad neta $1,920.00.",
	} {
		if !strings.Contains(text, frag) {
			t.Errorf("conclusion is missing %q:\n%s", frag, text)
		}
	}
	if strings.Count(text, "\n") != len(findings) {
		t.Errorf("expected one line per finding")
	}
}

func TestNarrateMinimalScenario(t *testing.T) {
	text, findings := New().Narrate(sampleFacts(t, ledgertest.Minimal()))
	got := strings.Join(ruleIDs(findings), ",")
	if !strings.HasPrefix(got, "liquidity.undefined,") {
		t.Errorf("expected the undefined liquidity rule first, got %s", got)
	}
	if !strings.Contains(got, "profitability.critical") {
		t.Errorf("zero ROE should be critical, got %s", got)
	}
	if !strings.HasPrefix(text, "DIAGNÓSTICO 2023:") {
		t.Errorf("unexpected header: %s", text)
	}
	if strings.Contains(text, "Proyección") {
		t.Error("one year must not produce a projection message")
	}
}

func TestNarrateDataQualityFirst(t *testing.T) {
	f := sampleFacts(t, ledgertest.TwoYears())
	f.Warnings = append(f.Warnings, models.Warning{Kind: models.KindImbalance, Year: 2023, Message: "x"})
	_, findings := New().Narrate(f)
	if len(findings) == 0 || findings[0].Rule != "data.imbalance" {
		t.Fatalf("expected data.imbalance first, got %v", ruleIDs(findings))
	}
	if !strings.Contains(findings[0].Message, "2023") {
		t.Errorf("message should name the year: %s", findings[0].Message)
	}
}

func TestNarrateThresholdLadder(t *testing.T) {
	tests := []struct {
		current float64
		debt    float64
		roe     float64
		want    []string
	}{
		{0.8, 70, -5, []string{"liquidity.risk", "leverage.high", "profitability.critical"}},
		{1.2, 50, 10, []string{"liquidity.tight", "leverage.moderate", "profitability.improvable"}},
		{1.5, 40, 15, []string{"liquidity.tight", "leverage.moderate", "profitability.improvable"}},
		{2.0, 30, 20, []string{"liquidity.solid", "leverage.conservative", "profitability.excellent"}},
	}
	for _, tt := range tests {
		f := &Facts{Year: 2024, Currency: "USD"}
		f.Latest.Liquidity.CurrentRatio = models.R(tt.current)
		f.Latest.Liquidity.QuickRatio = models.R(tt.current)
		f.Latest.Leverage.DebtRatio = models.R(tt.debt)
		f.Latest.Profitability.ROE = models.R(tt.roe)

		got := strings.Join(ruleIDs(mustNarrate(f)), ",")
		if got != strings.Join(tt.want, ",") {
			t.Errorf("current=%.1f debt=%.0f roe=%.0f: got %s, want %v", tt.current, tt.debt, tt.roe, got, tt.want)
		}
	}
}

func mustNarrate(f *Facts) []models.Finding {
	_, findings := New().Narrate(f)
	return findings
}

func TestNewWithRulesOrdersByCategory(t *testing.T) {
	always := func(*Facts) bool { return true }
	say := func(s string) func(*Facts) string { return func(*Facts) string { return s } }
	n := NewWithRules([]Rule{
		{ID: "p", Category: models.CategoryProjection, When: always, Say: say("p")},
		{ID: "l1", Category: models.CategoryLiquidity, When: always, Say: say("l1")},
		{ID: "d", Category: models.CategoryDataQuality, When: always, Say: say("d")},
		{ID: "l2", Category: models.CategoryLiquidity, When: always, Say: say("l2")},
	})
	text, _ := n.Narrate(&Facts{Year: 2020})
	if text != "DIAGNÓSTICO 2020:\nd\nl1\nl2\np" {
		t.Errorf("got %q", text)
	}
}

func TestNarrateIsDeterministic(t *testing.T) {
	f := sampleFacts(t, ledgertest.TwoYears())
	a, _ := New().Narrate(f)
	b, _ := New().Narrate(f)
	if a != b {
		t.Error("same facts should produce the same conclusion")
	}
}
