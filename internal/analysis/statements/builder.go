// Package statements turns classified ledger years into balance sheets and
// income statements.
package statements

import (
	"fmt"

	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// DefaultTolerance is the largest accepted gap between assets and
// liabilities plus equity.
var DefaultTolerance = models.M(0.01)

// Set is the statements of every year, in ascending year order.
type Set struct {
	Years  []int
	ByYear map[int]models.FinancialStatements
}

// Get returns the statements of year y.
func (s *Set) Get(y int) (models.FinancialStatements, bool) {
	fs, ok := s.ByYear[y]
	return fs, ok
}

// Build computes the statements of every year of l. Imbalanced years are
// reported as warnings.
func Build(l *ledger.Ledger, tolerance models.Money) (*Set, []models.Warning) {
	set := &Set{
		Years:  append([]int(nil), l.Years...),
		ByYear: make(map[int]models.FinancialStatements, len(l.Years)),
	}
	var warnings []models.Warning
	for _, y := range l.Years {
		fs := BuildYear(l.Year(y), tolerance)
		set.ByYear[y] = fs
		if !fs.BalanceSheet.Balanced {
			warnings = append(warnings, models.Warning{
				Kind:      models.KindImbalance,
				Component: "financial_statements",
				Year:      y,
				Message: fmt.Sprintf("activos (%s) y pasivo más patrimonio (%s) difieren en %s",
					fs.BalanceSheet.Assets.Total, fs.BalanceSheet.TotalLiabEquity, fs.BalanceSheet.Imbalance),
			})
		}
	}
	return set, warnings
}

// BuildYear computes both statements of one year.
func BuildYear(y *ledger.Year, tolerance models.Money) models.FinancialStatements {
	is := BuildIncomeStatement(y)
	return models.FinancialStatements{
		BalanceSheet:    BuildBalanceSheet(y, is.NetIncome, tolerance),
		IncomeStatement: is,
	}
}

// BuildIncomeStatement applies the income statement cascade.
func BuildIncomeStatement(y *ledger.Year) models.IncomeStatement {
	is := models.IncomeStatement{
		Revenues:          lines(y.Revenue),
		Expenses:          lines(y.Expenses),
		NetSales:          models.NewAccountGroup(y.Revenue).Total,
		COGS:              y.ExpenseTotal(models.KindCOGS),
		OperatingExpenses: y.ExpenseTotal(models.KindOperating),
		Depreciation:      y.ExpenseTotal(models.KindDepreciation),
		InterestExpense:   y.ExpenseTotal(models.KindInterest),
		Taxes:             y.ExpenseTotal(models.KindTax),
	}
	is.GrossProfit = is.NetSales.Sub(is.COGS)
	is.OperatingIncome = is.GrossProfit.Sub(is.OperatingExpenses).Sub(is.Depreciation)
	is.NetIncome = is.OperatingIncome.Sub(is.InterestExpense).Sub(is.Taxes)
	return is
}

// BuildBalanceSheet totals the balance buckets. Retained earnings are the
// year's net income.
func BuildBalanceSheet(y *ledger.Year, netIncome, tolerance models.Money) models.BalanceSheet {
	bs := models.BalanceSheet{
		Assets:      section(y.AssetsCurrent, y.AssetsNonCurrent),
		Liabilities: section(y.LiabilitiesCurrent, y.LiabilitiesNonCurrent),
	}
	contributed := models.NewAccountGroup(y.Equity)
	bs.Equity = models.EquitySection{
		Accounts:         contributed.Accounts,
		Contributed:      contributed.Total,
		RetainedEarnings: netIncome,
		Total:            contributed.Total.Add(netIncome),
	}
	bs.TotalLiabEquity = bs.Liabilities.Total.Add(bs.Equity.Total)
	bs.Imbalance = bs.Assets.Total.Sub(bs.TotalLiabEquity)
	bs.Balanced = bs.Imbalance.Within(models.Zero, tolerance)
	return bs
}

func section(current, nonCurrent []models.AccountLine) models.Section {
	s := models.Section{
		Current:    models.NewAccountGroup(lines(current)),
		NonCurrent: models.NewAccountGroup(lines(nonCurrent)),
	}
	s.Total = s.Current.Total.Add(s.NonCurrent.Total)
	return s
}

func lines(in []models.AccountLine) []models.AccountLine {
	out := make([]models.AccountLine, len(in))
	copy(out, in)
	return out
}
