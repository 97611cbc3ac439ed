package fundamental

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// PctChange returns the change from old to new_ in percent of |old|.
func PctChange(old, new_ models.Money) models.Ratio {
	return models.Div(new_.Sub(old), old.Abs()).Scale(100)
}

// Growth derives the per-period growth rate, as a fraction, between the
// first and last of periods+1 observations. One period uses the simple rate
// (last − first)/first computed exactly; more periods use the compound rate
// (last/first)^(1/periods) − 1. ok is false when first is not positive or
// last is negative.
func Growth(first, last models.Money, periods int) (g decimal.Decimal, method models.GrowthMethod, ok bool) {
	if periods < 1 || !first.IsPositive() || last.IsNegative() {
		return decimal.Zero, "", false
	}
	if periods == 1 {
		return last.Sub(first).Decimal().DivRound(first.Decimal(), 16), models.GrowthSimple, true
	}
	rate := cagr(first.Float64(), last.Float64(), float64(periods))
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero, "", false
	}
	return decimal.NewFromFloat(rate), models.GrowthCompound, true
}

// --- helpers ---

func cagr(start, end float64, years float64) float64 {
	return math.Pow(end/start, 1/years) - 1
}
