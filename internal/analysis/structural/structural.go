// Package structural computes common-size (vertical) and trend (horizontal)
// analysis over the yearly statements.
package structural

import (
	"fmt"
	"sort"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// typedLine is an account line tagged with its entry type.
type typedLine struct {
	t    models.EntryType
	line models.AccountLine
}

// accounts lists every entered account of one year in statement order:
// assets, liabilities, equity, revenue, expenses.
func accounts(fs models.FinancialStatements) []typedLine {
	bs, is := fs.BalanceSheet, fs.IncomeStatement
	var out []typedLine
	add := func(t models.EntryType, lines []models.AccountLine) {
		for _, l := range lines {
			out = append(out, typedLine{t: t, line: l})
		}
	}
	add(models.TypeAsset, bs.Assets.Current.Accounts)
	add(models.TypeAsset, bs.Assets.NonCurrent.Accounts)
	add(models.TypeLiability, bs.Liabilities.Current.Accounts)
	add(models.TypeLiability, bs.Liabilities.NonCurrent.Accounts)
	add(models.TypeEquity, bs.Equity.Accounts)
	add(models.TypeRevenue, is.Revenues)
	add(models.TypeExpense, is.Expenses)
	return out
}

// Vertical expresses every account of every year as a percent of total
// assets (balance accounts) or net sales (income accounts). A zero base
// yields the sentinel.
func Vertical(set *statements.Set) []models.VerticalEntry {
	out := []models.VerticalEntry{}
	for _, y := range set.Years {
		fs := set.ByYear[y]
		for _, a := range accounts(fs) {
			base := fs.IncomeStatement.NetSales
			if a.t.IsBalance() {
				base = fs.BalanceSheet.Assets.Total
			}
			out = append(out, models.VerticalEntry{
				Year:        y,
				AccountName: a.line.Name,
				Type:        a.t,
				Value:       a.line.Value,
				Pct:         models.Div(a.line.Value, base).Scale(100),
			})
		}
	}
	return out
}

type accountKey struct {
	t   models.EntryType
	key string
}

// Horizontal compares every later year against the earliest one. Accounts
// present in either year are reported; a missing side counts as zero. With
// fewer than two years the result is empty.
func Horizontal(set *statements.Set) []models.HorizontalEntry {
	out := []models.HorizontalEntry{}
	if len(set.Years) < 2 {
		return out
	}
	baseYear := set.Years[0]
	base := index(set.ByYear[baseYear])

	for _, y := range set.Years[1:] {
		curr := index(set.ByYear[y])
		period := fmt.Sprintf("%d-%d", baseYear, y)
		for _, k := range unionKeys(base, curr) {
			b, inBase := base[k]
			c, inCurr := curr[k]
			name := c.Name
			if !inCurr {
				name = b.Name
			}
			valBase, valCurr := models.Zero, models.Zero
			if inBase {
				valBase = b.Value
			}
			if inCurr {
				valCurr = c.Value
			}
			varAbs := valCurr.Sub(valBase)
			out = append(out, models.HorizontalEntry{
				Account: name,
				Type:    k.t,
				Period:  period,
				ValBase: valBase,
				ValCurr: valCurr,
				VarAbs:  varAbs,
				VarPct:  models.Div(varAbs, valBase).Scale(100),
			})
		}
	}
	return out
}

func index(fs models.FinancialStatements) map[accountKey]models.AccountLine {
	m := make(map[accountKey]models.AccountLine)
	for _, a := range accounts(fs) {
		k := accountKey{t: a.t, key: a.line.Key}
		if prev, ok := m[k]; ok {
			// Same name in the current and non-current groups.
			a.line.Value = a.line.Value.Add(prev.Value)
			a.line.Name = prev.Name
		}
		m[k] = a.line
	}
	return m
}

var typeOrder = map[models.EntryType]int{
	models.TypeAsset:     0,
	models.TypeLiability: 1,
	models.TypeEquity:    2,
	models.TypeRevenue:   3,
	models.TypeExpense:   4,
}

func unionKeys(a, b map[accountKey]models.AccountLine) []accountKey {
	seen := make(map[accountKey]bool, len(a)+len(b))
	var keys []accountKey
	for _, m := range []map[accountKey]models.AccountLine{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].t != keys[j].t {
			return typeOrder[keys[i].t] < typeOrder[keys[j].t]
		}
		return keys[i].key < keys[j].key
	})
	return keys
}
