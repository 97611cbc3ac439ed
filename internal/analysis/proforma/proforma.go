// Package proforma projects next year's income statement with the
// percent-of-sales method.
package proforma

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/fundamental"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

const component = "proforma"

// Project grows last-year sales by the historical rate and keeps every
// other line at its last-year share of sales. It returns nil when the
// projection cannot be made, with the reason as a warning or error.
func Project(set *statements.Set) (*models.ProformaProjection, []models.Warning, error) {
	n := len(set.Years)
	if n < 2 {
		return nil, nil, &models.InsufficientPeriodsError{Component: component, Need: 2, Have: n}
	}
	firstYear, lastYear := set.Years[0], set.Years[n-1]
	first := set.ByYear[firstYear].IncomeStatement
	last := set.ByYear[lastYear].IncomeStatement

	g, method, ok := fundamental.Growth(first.NetSales, last.NetSales, n-1)
	if !ok || last.NetSales.IsZero() {
		return nil, []models.Warning{{
			Kind:      models.KindDivisionSentinel,
			Component: component,
			Year:      firstYear,
			Message: fmt.Sprintf("no se puede proyectar: ventas %d = %s, ventas %d = %s",
				firstYear, first.NetSales, lastYear, last.NetSales),
		}}, nil
	}

	sales := last.NetSales.Mul(decimal.NewFromInt(1).Add(g))
	// line_proj = line_last * sales_proj / sales_last
	scale := func(m models.Money) models.Money {
		return models.M(m.Decimal().Mul(sales.Decimal()).DivRound(last.NetSales.Decimal(), 16))
	}

	lines := models.ProformaLines{
		Sales:             sales,
		COGS:              scale(last.COGS),
		OperatingExpenses: scale(last.OperatingExpenses),
		Depreciation:      scale(last.Depreciation),
		Interest:          scale(last.InterestExpense),
		Taxes:             scale(last.Taxes),
	}
	lines.GrossProfit = lines.Sales.Sub(lines.COGS)
	lines.OperatingIncome = lines.GrossProfit.Sub(lines.OperatingExpenses).Sub(lines.Depreciation)
	lines.NetIncome = lines.OperatingIncome.Sub(lines.Interest).Sub(lines.Taxes)

	return &models.ProformaProjection{
		BaseYear:   lastYear,
		Year:       lastYear + 1,
		GrowthRate: models.R(g.Shift(2).InexactFloat64()),
		Method:     method,
		Lines:      lines,
	}, nil, nil
}
