// Package utils provides formatting helpers shared by the narrator and the
// CLI text report.
package utils

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// NotAvailable is printed for undefined ratios.
const NotAvailable = "n/d"

// FormatMoney renders an amount in the given ISO 4217 currency,
// e.g. 1234.5 USD → "$1,234.50". Unknown codes fall back to "1234.50 XYZ".
func FormatMoney(m models.Money, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", m.String(), code)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := m.Decimal().Mul(factor).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// FormatPct formats a percent ratio with two decimals, e.g. 40 → "40.00%".
func FormatPct(r models.Ratio) string {
	if !r.Valid() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", r.Value())
}

// FormatSignedPct formats a percent ratio with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatSignedPct(r models.Ratio) string {
	if !r.Valid() {
		return NotAvailable
	}
	if r.Value() >= 0 {
		return fmt.Sprintf("+%.2f%%", r.Value())
	}
	return fmt.Sprintf("%.2f%%", r.Value())
}

// FormatRatio formats a plain ratio with two decimals.
func FormatRatio(r models.Ratio) string {
	if !r.Valid() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", r.Value())
}

// FormatDays formats a period in whole days.
func FormatDays(r models.Ratio) string {
	if !r.Valid() {
		return NotAvailable
	}
	return fmt.Sprintf("%.0f días", r.Value())
}
