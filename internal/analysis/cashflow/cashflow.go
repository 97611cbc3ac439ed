// Package cashflow derives indirect and estimated direct cash flow
// statements from consecutive balance sheets.
package cashflow

import (
	"fmt"
	"sort"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

const component = "flujo_efectivo"

// DirectNote labels the direct method as an estimate.
const DirectNote = "Estimación del método directo a partir de ventas, costos y variaciones de capital de trabajo."

// BuildAll reconciles every pair of consecutive years. With fewer than two
// years it returns an InsufficientPeriodsError and no statements.
func BuildAll(set *statements.Set, tolerance models.Money) ([]models.CashFlowStatement, []models.Warning, error) {
	out := []models.CashFlowStatement{}
	if len(set.Years) < 2 {
		return out, nil, &models.InsufficientPeriodsError{Component: component, Need: 2, Have: len(set.Years)}
	}
	var warnings []models.Warning
	for i := 1; i < len(set.Years); i++ {
		prevYear, year := set.Years[i-1], set.Years[i]
		cf := Reconcile(prevYear, year, set.ByYear[prevYear], set.ByYear[year], tolerance)
		if !cf.Indirect.Summary.Reconciled {
			s := cf.Indirect.Summary
			warnings = append(warnings, models.Warning{
				Kind:      models.KindReconciliation,
				Component: component,
				Year:      year,
				Message: fmt.Sprintf("el saldo final calculado (%s) no coincide con el efectivo reportado (%s)",
					s.ComputedClosing, s.ReportedClosing),
			})
		}
		out = append(out, cf)
	}
	return out, warnings, nil
}

// Reconcile builds the cash flow statement of year against prevYear.
func Reconcile(prevYear, year int, prev, curr models.FinancialStatements, tolerance models.Money) models.CashFlowStatement {
	pb, cb := prev.BalanceSheet, curr.BalanceSheet
	is := curr.IncomeStatement

	var ind models.IndirectCashFlow

	// Operating.
	op := &flow{}
	op.add("Utilidad neta", is.NetIncome)
	op.add("Depreciación", is.Depreciation)
	for _, d := range deltas(pb.Assets.Current.Accounts, cb.Assets.Current.Accounts) {
		if d.kind != models.KindCash {
			op.change(d.name, d.delta.Neg())
		}
	}
	for _, d := range deltas(pb.Liabilities.Current.Accounts, cb.Liabilities.Current.Accounts) {
		if d.kind != models.KindDebt {
			op.change(d.name, d.delta)
		}
	}

	// Investing.
	inv := &flow{}
	for _, d := range deltas(pb.Assets.NonCurrent.Accounts, cb.Assets.NonCurrent.Accounts) {
		inv.change(d.name, d.delta.Neg())
	}
	inv.add("Reposición de activos depreciados", is.Depreciation.Neg())

	// Financing.
	fin := &flow{}
	for _, d := range deltas(pb.Liabilities.Current.Accounts, cb.Liabilities.Current.Accounts) {
		if d.kind == models.KindDebt {
			fin.change(d.name, d.delta)
		}
	}
	for _, d := range deltas(pb.Liabilities.NonCurrent.Accounts, cb.Liabilities.NonCurrent.Accounts) {
		fin.change(d.name, d.delta)
	}
	for _, d := range deltas(pb.Equity.Accounts, cb.Equity.Accounts) {
		fin.change(d.name, d.delta)
	}
	fin.add("Cierre de la utilidad del ejercicio anterior", prev.IncomeStatement.NetIncome.Neg())

	ind.Operating, ind.TotalOperating = op.items, op.total
	ind.Investing, ind.TotalInvesting = inv.items, inv.total
	ind.Financing, ind.TotalFinancing = fin.items, fin.total

	net := models.Sum(op.total, inv.total, fin.total)
	ind.Summary = models.CashSummary{
		OpeningBalance:  pb.Cash(),
		NetFlow:         net,
		ComputedClosing: pb.Cash().Add(net),
		ReportedClosing: cb.Cash(),
	}
	ind.Summary.Reconciled = ind.Summary.ComputedClosing.Within(ind.Summary.ReportedClosing, tolerance)

	return models.CashFlowStatement{
		Year:     year,
		BaseYear: prevYear,
		Indirect: ind,
		Direct:   direct(prev, curr),
	}
}

// direct estimates receipts and payments. Its net flow equals the indirect
// operating total.
func direct(prev, curr models.FinancialStatements) models.DirectCashFlow {
	pb, cb := prev.BalanceSheet, curr.BalanceSheet
	is := curr.IncomeStatement

	dReceivables := cb.Receivables().Sub(pb.Receivables())
	dInventory := cb.Inventory().Sub(pb.Inventory())
	dPayables := cb.Payables().Sub(pb.Payables())

	otherCA := func(b models.BalanceSheet) models.Money {
		return b.Assets.Current.Total.Sub(b.Cash()).Sub(b.Receivables()).Sub(b.Inventory())
	}
	otherCL := func(b models.BalanceSheet) models.Money {
		return b.Liabilities.Current.Total.Sub(b.Payables()).Sub(b.ShortTermDebt())
	}
	dOtherCA := otherCA(cb).Sub(otherCA(pb))
	dOtherCL := otherCL(cb).Sub(otherCL(pb))

	d := models.DirectCashFlow{
		ReceivedCustomers: is.NetSales.Sub(dReceivables),
		PaidSuppliers:     is.COGS.Add(dInventory).Sub(dPayables),
		PaidExpenses: models.Sum(is.OperatingExpenses, is.InterestExpense, is.Taxes).
			Sub(dOtherCL).Add(dOtherCA),
		Estimated: true,
		Note:      DirectNote,
	}
	d.NetFlow = d.ReceivedCustomers.Sub(d.PaidSuppliers).Sub(d.PaidExpenses)
	d.Items = []models.CashFlowItem{
		{Concept: "Cobros a clientes", Value: d.ReceivedCustomers},
		{Concept: "Pagos a proveedores", Value: d.PaidSuppliers.Neg()},
		{Concept: "Pagos de gastos operativos, intereses e impuestos", Value: d.PaidExpenses.Neg()},
	}
	return d
}

type flow struct {
	items []models.CashFlowItem
	total models.Money
}

func (f *flow) add(concept string, v models.Money) {
	if f.items == nil {
		f.items = []models.CashFlowItem{}
	}
	f.items = append(f.items, models.CashFlowItem{Concept: concept, Value: v})
	f.total = f.total.Add(v)
}

// change records a balance movement; unchanged accounts are skipped.
func (f *flow) change(name string, v models.Money) {
	if v.IsZero() {
		return
	}
	f.add("Variación en "+name, v)
}

type delta struct {
	name  string
	kind  models.Kind
	delta models.Money
}

// deltas matches accounts of two years by key and kind. An account missing
// on one side counts as zero there.
func deltas(prev, curr []models.AccountLine) []delta {
	type pair struct {
		name       string
		kind       models.Kind
		prev, curr models.Money
	}
	byKey := make(map[string]*pair)
	var keys []string
	get := func(l models.AccountLine) *pair {
		k := l.Key + "|" + string(l.Kind)
		p, ok := byKey[k]
		if !ok {
			p = &pair{name: l.Name, kind: l.Kind}
			byKey[k] = p
			keys = append(keys, k)
		}
		return p
	}
	for _, l := range prev {
		p := get(l)
		p.prev = p.prev.Add(l.Value)
	}
	for _, l := range curr {
		p := get(l)
		p.curr = p.curr.Add(l.Value)
		p.name = l.Name
	}
	sort.Strings(keys)

	out := make([]delta, 0, len(keys))
	for _, k := range keys {
		p := byKey[k]
		out = append(out, delta{name: p.name, kind: p.kind, delta: p.curr.Sub(p.prev)})
	}
	return out
}
