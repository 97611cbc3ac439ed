package fundamental

import (
	"fmt"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// daysPerYear converts a receivables-to-sales ratio into days.
const daysPerYear = 365

// ComputeRatios calculates the ratio set of one year. prev is the prior
// year's statements, used for average inventory and receivables; nil means
// the year's own balances are used. Every zero denominator yields the
// sentinel plus a division_sentinel warning.
func ComputeRatios(year int, curr models.FinancialStatements, prev *models.FinancialStatements) (models.RatioSet, []models.Warning) {
	c := &calc{year: year}
	bs, is := curr.BalanceSheet, curr.IncomeStatement

	ca := bs.Assets.Current.Total
	cl := bs.Liabilities.Current.Total
	assets := bs.Assets.Total
	liabilities := bs.Liabilities.Total
	equity := bs.Equity.Total
	sales := is.NetSales

	avgInventory := bs.Inventory()
	avgReceivables := bs.Receivables()
	if prev != nil {
		avgInventory = avgInventory.Add(prev.BalanceSheet.Inventory()).Half()
		avgReceivables = avgReceivables.Add(prev.BalanceSheet.Receivables()).Half()
	}

	rs := models.RatioSet{Year: year}

	// Liquidity.
	rs.Liquidity.CurrentRatio = c.div("razon_circulante", ca, cl)
	rs.Liquidity.QuickRatio = c.div("razon_rapida", ca.Sub(bs.Inventory()), cl)
	rs.Liquidity.NetWorkingCap = ca.Sub(cl)
	rs.Liquidity.OperatingWCap = ca.Sub(bs.Cash()).Sub(cl.Sub(bs.ShortTermDebt()))

	// Activity.
	rs.Activity.InventoryTurnover = c.div("rotacion_inventarios", is.COGS, avgInventory)
	rs.Activity.AssetTurnover = c.div("rotacion_activos_totales", sales, assets)
	rs.Activity.CollectionPeriod = c.div("periodo_cobro", avgReceivables, sales).Scale(daysPerYear)

	// Leverage.
	rs.Leverage.DebtRatio = c.pct("razon_endeudamiento", liabilities, assets)
	rs.Leverage.DebtToEquity = c.div("razon_pasivo_capital", liabilities, equity)
	rs.Leverage.InterestCoverage = c.div("cobertura_intereses", is.OperatingIncome, is.InterestExpense)

	// Profitability.
	rs.Profitability.GrossMargin = c.pct("margen_bruto", is.GrossProfit, sales)
	rs.Profitability.OperatingMargin = c.pct("margen_operativo", is.OperatingIncome, sales)
	rs.Profitability.NetMargin = c.pct("margen_neto", is.NetIncome, sales)
	rs.Profitability.ROA = c.pct("roa", is.NetIncome, assets)
	rs.Profitability.ROE = c.pct("roe", is.NetIncome, equity)

	// DuPont: ROE = net margin × asset turnover × equity multiplier.
	d := &rs.Profitability.DuPont
	d.Margin = models.Div(is.NetIncome, sales)
	d.Turnover = models.Div(sales, assets)
	d.Multiplier = models.Div(assets, equity)
	d.System = d.Margin.Mul(d.Turnover).Mul(d.Multiplier).Scale(100)

	return rs, c.warnings
}

// ComputeAll calculates the ratio set of every year in set, in year order.
func ComputeAll(set *statements.Set) ([]models.RatioSet, []models.Warning) {
	out := make([]models.RatioSet, 0, len(set.Years))
	var warnings []models.Warning
	for i, y := range set.Years {
		var prev *models.FinancialStatements
		if i > 0 {
			p := set.ByYear[set.Years[i-1]]
			prev = &p
		}
		rs, w := ComputeRatios(y, set.ByYear[y], prev)
		out = append(out, rs)
		warnings = append(warnings, w...)
	}
	return out, warnings
}

type calc struct {
	year     int
	warnings []models.Warning
}

func (c *calc) div(name string, num, den models.Money) models.Ratio {
	r := models.Div(num, den)
	if !r.Valid() {
		c.warnings = append(c.warnings, models.Warning{
			Kind:      models.KindDivisionSentinel,
			Component: "ratios",
			Year:      c.year,
			Message:   fmt.Sprintf("%s no definido: denominador cero", name),
		})
	}
	return r
}

func (c *calc) pct(name string, num, den models.Money) models.Ratio {
	return c.div(name, num, den).Scale(100)
}
