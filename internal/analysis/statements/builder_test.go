package statements

import (
	"testing"

	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger/ledgertest"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func buildSet(t *testing.T, entries []models.LedgerEntry) (*Set, []models.Warning) {
	t.Helper()
	l, err := ledger.Classify(entries)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	return Build(l, DefaultTolerance)
}

func TestBuildIncomeStatement(t *testing.T) {
	set, _ := buildSet(t, ledgertest.Year2023())
	is := set.ByYear[2023].IncomeStatement

	checks := []struct {
		name string
		got  models.Money
		want float64
	}{
		{"net_sales", is.NetSales, 10000},
		{"cogs", is.COGS, 6000},
		{"gross_profit", is.GrossProfit, 4000},
		{"operating_expenses", is.OperatingExpenses, 2000},
		{"depreciation", is.Depreciation, 300},
		{"operating_income", is.OperatingIncome, 1700},
		{"interest_expense", is.InterestExpense, 100},
		{"taxes", is.Taxes, 400},
		{"net_income", is.NetIncome, 1200},
	}
	for _, c := range checks {
		if !c.got.Equal(models.M(c.want)) {
			t.Errorf("%s: expected %.2f, got %s", c.name, c.want, c.got)
		}
	}
}

func TestBuildBalanceSheetIdentity(t *testing.T) {
	set, warnings := buildSet(t, ledgertest.TwoYears())
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	for _, y := range set.Years {
		bs := set.ByYear[y].BalanceSheet
		if !bs.Balanced {
			t.Errorf("%d: not balanced, imbalance %s", y, bs.Imbalance)
		}
		if !bs.Assets.Total.Within(bs.TotalLiabEquity, DefaultTolerance) {
			t.Errorf("%d: assets %s != liab+equity %s", y, bs.Assets.Total, bs.TotalLiabEquity)
		}
		if !bs.Equity.RetainedEarnings.Equal(set.ByYear[y].IncomeStatement.NetIncome) {
			t.Errorf("%d: retained earnings should equal net income", y)
		}
	}
}

func TestBuildBalanceSheetSections(t *testing.T) {
	set, _ := buildSet(t, ledgertest.Year2023())
	bs := set.ByYear[2023].BalanceSheet
	if !bs.Assets.Current.Total.Equal(models.M(2300)) {
		t.Errorf("current assets: expected 2300, got %s", bs.Assets.Current.Total)
	}
	if !bs.Liabilities.Total.Equal(models.M(2000)) {
		t.Errorf("liabilities: expected 2000, got %s", bs.Liabilities.Total)
	}
	if !bs.Cash().Equal(models.M(1000)) || !bs.Inventory().Equal(models.M(800)) {
		t.Errorf("kind totals wrong: cash %s inventory %s", bs.Cash(), bs.Inventory())
	}
	if !bs.ShortTermDebt().Equal(models.M(400)) {
		t.Errorf("short-term debt: expected 400, got %s", bs.ShortTermDebt())
	}
}

func TestBuildMinimalScenario(t *testing.T) {
	set, warnings := buildSet(t, ledgertest.Minimal())
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	bs := set.ByYear[2023].BalanceSheet
	if !bs.Assets.Total.Equal(models.M(1000)) || !bs.TotalLiabEquity.Equal(models.M(1000)) {
		t.Errorf("expected 1000 = 1000, got %s = %s", bs.Assets.Total, bs.TotalLiabEquity)
	}
	if !bs.Liabilities.Current.Total.IsZero() {
		t.Errorf("missing buckets should total zero")
	}
}

func TestBuildImbalanceWarning(t *testing.T) {
	entries := ledgertest.Minimal()
	entries[0].Value = models.M(1000.02)
	set, warnings := buildSet(t, entries)
	if set.ByYear[2023].BalanceSheet.Balanced {
		t.Error("expected imbalance")
	}
	if len(warnings) != 1 || warnings[0].Kind != models.KindImbalance || warnings[0].Year != 2023 {
		t.Errorf("expected one imbalance warning for 2023, got %v", warnings)
	}

	entries[0].Value = models.M(1000.01)
	if _, warnings := buildSet(t, entries); len(warnings) != 0 {
		t.Errorf("a 0.01 gap is within tolerance, got %v", warnings)
	}
}
