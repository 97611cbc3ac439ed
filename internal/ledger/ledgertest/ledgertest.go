// Package ledgertest provides balanced entry sets for tests.
package ledgertest

import (
	"fmt"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

type row struct {
	name string
	t    models.EntryType
	st   models.SubType
	v    float64
}

func build(year int, rows []row) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerEntry{
			ID:          fmt.Sprintf("%d-%02d", year, i+1),
			AccountName: r.name,
			Value:       models.M(r.v),
			Year:        year,
			Type:        r.t,
			SubType:     r.st,
		}
	}
	return out
}

// Year2023 is a balanced year: assets 5300, liabilities 2000, contributed
// equity 2100, net income 1200.
func Year2023() []models.LedgerEntry {
	return build(2023, []row{
		{"Caja", models.TypeAsset, models.SubTypeCurrent, 1000},
		{"Clientes", models.TypeAsset, models.SubTypeCurrent, 500},
		{"Inventario", models.TypeAsset, models.SubTypeCurrent, 800},
		{"Maquinaria", models.TypeAsset, models.SubTypeNonCurrent, 3000},
		{"Proveedores", models.TypeLiability, models.SubTypeCurrent, 600},
		{"Préstamo bancario", models.TypeLiability, models.SubTypeCurrent, 400},
		{"Deuda largo plazo", models.TypeLiability, models.SubTypeNonCurrent, 1000},
		{"Capital social", models.TypeEquity, "", 2100},
		{"Ventas", models.TypeRevenue, "", 10000},
		{"Costo de ventas", models.TypeExpense, "", 6000},
		{"Gastos de administración", models.TypeExpense, "", 2000},
		{"Depreciación", models.TypeExpense, "", 300},
		{"Intereses", models.TypeExpense, "", 100},
		{"Impuestos", models.TypeExpense, "", 400},
	})
}

// Year2024 follows Year2023: assets 5650, liabilities 1950, contributed
// equity 2100, net income 1600. Cash moves from 1000 to 850.
func Year2024() []models.LedgerEntry {
	return build(2024, []row{
		{"Caja", models.TypeAsset, models.SubTypeCurrent, 850},
		{"Clientes", models.TypeAsset, models.SubTypeCurrent, 700},
		{"Inventario", models.TypeAsset, models.SubTypeCurrent, 900},
		{"Maquinaria", models.TypeAsset, models.SubTypeNonCurrent, 3200},
		{"Proveedores", models.TypeLiability, models.SubTypeCurrent, 750},
		{"Préstamo bancario", models.TypeLiability, models.SubTypeCurrent, 300},
		{"Deuda largo plazo", models.TypeLiability, models.SubTypeNonCurrent, 900},
		{"Capital social", models.TypeEquity, "", 2100},
		{"Ventas", models.TypeRevenue, "", 12000},
		{"Costo de ventas", models.TypeExpense, "", 7200},
		{"Gastos de administración", models.TypeExpense, "", 2300},
		{"Depreciación", models.TypeExpense, "", 300},
		{"Intereses", models.TypeExpense, "", 80},
		{"Impuestos", models.TypeExpense, "", 520},
	})
}

// TwoYears returns Year2023 and Year2024 together.
func TwoYears() []models.LedgerEntry {
	return append(Year2023(), Year2024()...)
}

// Minimal is the two-entry scenario: cash 1000 against capital 1000.
func Minimal() []models.LedgerEntry {
	return build(2023, []row{
		{"Caja", models.TypeAsset, models.SubTypeCurrent, 1000},
		{"Capital", models.TypeEquity, "", 1000},
	})
}
