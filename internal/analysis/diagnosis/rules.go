package diagnosis

import (
	"fmt"
	"math"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/fundamental"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
	"github.com/DJ03MT/FinanzasProyecto/pkg/utils"
)

// Thresholds used by DefaultRules.
const (
	SolidCurrentRatio    = 1.5
	MinCurrentRatio      = 1.0
	MinQuickRatio        = 1.0
	HighDebtRatio        = 60.0
	ModerateDebtRatio    = 40.0
	DebtRiseAlert        = 5.0 // points of razon_endeudamiento year over year
	MinInterestCoverage  = 1.5
	ExcellentROE         = 15.0
	MarginChangeAlert    = 1.0 // points of margen_neto year over year
	MaxCollectionDays    = 60.0
	MinInventoryTurnover = 4.0
	MinAssetTurnover     = 0.5
)

// DefaultRules returns the standard rule list.
func DefaultRules() []Rule {
	return []Rule{
		// ── Data quality ──
		{
			ID:       "data.imbalance",
			Category: models.CategoryDataQuality,
			When:     func(f *Facts) bool { return len(f.warningsOf(models.KindImbalance)) > 0 },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Calidad de datos: el balance no cuadra en %s; revise los registros antes de decidir.",
					years(f.warningsOf(models.KindImbalance)))
			},
		},
		{
			ID:       "data.reconciliation",
			Category: models.CategoryDataQuality,
			When:     func(f *Facts) bool { return len(f.warningsOf(models.KindReconciliation)) > 0 },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Calidad de datos: el flujo de efectivo no concilia con el efectivo reportado en %s.",
					years(f.warningsOf(models.KindReconciliation)))
			},
		},

		// ── Liquidity ──
		{
			ID:       "liquidity.undefined",
			Category: models.CategoryLiquidity,
			When:     func(f *Facts) bool { return !f.Latest.Liquidity.CurrentRatio.Valid() },
			Say: func(f *Facts) string {
				return "Liquidez: no hay pasivos corrientes registrados, la razón circulante no está definida."
			},
		},
		{
			ID:       "liquidity.solid",
			Category: models.CategoryLiquidity,
			When:     func(f *Facts) bool { return f.Latest.Liquidity.CurrentRatio.Above(SolidCurrentRatio) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Liquidez sólida: la razón circulante es %s, los activos corrientes cubren holgadamente las deudas de corto plazo.",
					utils.FormatRatio(f.Latest.Liquidity.CurrentRatio))
			},
		},
		{
			ID:       "liquidity.tight",
			Category: models.CategoryLiquidity,
			When: func(f *Facts) bool {
				r := f.Latest.Liquidity.CurrentRatio
				return r.Valid() && !r.Below(MinCurrentRatio) && !r.Above(SolidCurrentRatio)
			},
			Say: func(f *Facts) string {
				return fmt.Sprintf("Liquidez ajustada: la razón circulante es %s, conviene vigilar el capital de trabajo.",
					utils.FormatRatio(f.Latest.Liquidity.CurrentRatio))
			},
		},
		{
			ID:       "liquidity.risk",
			Category: models.CategoryLiquidity,
			When:     func(f *Facts) bool { return f.Latest.Liquidity.CurrentRatio.Below(MinCurrentRatio) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Riesgo de liquidez: la razón circulante es %s, los pasivos corrientes superan a los activos corrientes.",
					utils.FormatRatio(f.Latest.Liquidity.CurrentRatio))
			},
		},
		{
			ID:       "liquidity.quick",
			Category: models.CategoryLiquidity,
			When: func(f *Facts) bool {
				l := f.Latest.Liquidity
				return l.QuickRatio.Below(MinQuickRatio) && !l.CurrentRatio.Below(MinCurrentRatio)
			},
			Say: func(f *Facts) string {
				return fmt.Sprintf("La prueba ácida es %s: sin vender inventario no se cubren las deudas de corto plazo.",
					utils.FormatRatio(f.Latest.Liquidity.QuickRatio))
			},
		},
		{
			ID:       "liquidity.negative_cnt",
			Category: models.CategoryLiquidity,
			When:     func(f *Facts) bool { return f.Latest.Liquidity.NetWorkingCap.IsNegative() },
			Say: func(f *Facts) string {
				return fmt.Sprintf("El capital neto de trabajo es negativo (%s).",
					utils.FormatMoney(f.Latest.Liquidity.NetWorkingCap, f.Currency))
			},
		},

		// ── Leverage ──
		{
			ID:       "leverage.high",
			Category: models.CategoryLeverage,
			When:     func(f *Facts) bool { return f.Latest.Leverage.DebtRatio.Above(HighDebtRatio) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Endeudamiento alto: el %s de los activos está financiado con deuda.",
					utils.FormatPct(f.Latest.Leverage.DebtRatio))
			},
		},
		{
			ID:       "leverage.moderate",
			Category: models.CategoryLeverage,
			When: func(f *Facts) bool {
				r := f.Latest.Leverage.DebtRatio
				return r.Valid() && !r.Below(ModerateDebtRatio) && !r.Above(HighDebtRatio)
			},
			Say: func(f *Facts) string {
				return fmt.Sprintf("Endeudamiento moderado: el %s de los activos está financiado con deuda.",
					utils.FormatPct(f.Latest.Leverage.DebtRatio))
			},
		},
		{
			ID:       "leverage.conservative",
			Category: models.CategoryLeverage,
			When:     func(f *Facts) bool { return f.Latest.Leverage.DebtRatio.Below(ModerateDebtRatio) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Endeudamiento conservador: solo el %s de los activos está financiado con deuda.",
					utils.FormatPct(f.Latest.Leverage.DebtRatio))
			},
		},
		{
			ID:       "leverage.rising",
			Category: models.CategoryLeverage,
			When: func(f *Facts) bool {
				return f.Previous != nil &&
					f.Latest.Leverage.DebtRatio.Sub(f.Previous.Leverage.DebtRatio).Above(DebtRiseAlert)
			},
			Say: func(f *Facts) string {
				rise := f.Latest.Leverage.DebtRatio.Sub(f.Previous.Leverage.DebtRatio)
				return fmt.Sprintf("El endeudamiento subió %.2f puntos respecto de %d.", rise.Value(), f.Previous.Year)
			},
		},
		{
			ID:       "leverage.coverage",
			Category: models.CategoryLeverage,
			When:     func(f *Facts) bool { return f.Latest.Leverage.InterestCoverage.Below(MinInterestCoverage) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("La utilidad operativa cubre solo %s veces los intereses.",
					utils.FormatRatio(f.Latest.Leverage.InterestCoverage))
			},
		},

		// ── Profitability ──
		{
			ID:       "profitability.roe_undefined",
			Category: models.CategoryProfitability,
			When:     func(f *Facts) bool { return !f.Latest.Profitability.ROE.Valid() },
			Say: func(f *Facts) string {
				return "Rentabilidad: el patrimonio es cero, el ROE no está definido."
			},
		},
		{
			ID:       "profitability.excellent",
			Category: models.CategoryProfitability,
			When:     func(f *Facts) bool { return f.Latest.Profitability.ROE.Above(ExcellentROE) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Rentabilidad excelente: ROE de %s.", utils.FormatPct(f.Latest.Profitability.ROE))
			},
		},
		{
			ID:       "profitability.improvable",
			Category: models.CategoryProfitability,
			When: func(f *Facts) bool {
				r := f.Latest.Profitability.ROE
				return r.Above(0) && !r.Above(ExcellentROE)
			},
			Say: func(f *Facts) string {
				return fmt.Sprintf("Rentabilidad mejorable: ROE de %s.", utils.FormatPct(f.Latest.Profitability.ROE))
			},
		},
		{
			ID:       "profitability.critical",
			Category: models.CategoryProfitability,
			When: func(f *Facts) bool {
				r := f.Latest.Profitability.ROE
				return r.Valid() && !r.Above(0)
			},
			Say: func(f *Facts) string {
				return fmt.Sprintf("Situación crítica: ROE de %s, la empresa no genera utilidades para sus dueños.",
					utils.FormatPct(f.Latest.Profitability.ROE))
			},
		},
		{
			ID:       "profitability.margin_trend",
			Category: models.CategoryProfitability,
			When: func(f *Facts) bool {
				if f.Previous == nil {
					return false
				}
				d := f.Latest.Profitability.NetMargin.Sub(f.Previous.Profitability.NetMargin)
				return d.Valid() && math.Abs(d.Value()) >= MarginChangeAlert
			},
			Say: func(f *Facts) string {
				prev, curr := f.Previous.Profitability.NetMargin, f.Latest.Profitability.NetMargin
				verb := "mejoró"
				if curr.Value() < prev.Value() {
					verb = "se deterioró"
				}
				return fmt.Sprintf("El margen neto %s de %s en %d a %s en %d.",
					verb, utils.FormatPct(prev), f.Previous.Year, utils.FormatPct(curr), f.Year)
			},
		},
		{
			ID:       "profitability.sales_trend",
			Category: models.CategoryProfitability,
			When: func(f *Facts) bool {
				return f.BaseInc != nil && fundamental.PctChange(f.BaseInc.NetSales, f.Income.NetSales).Valid()
			},
			Say: func(f *Facts) string {
				change := fundamental.PctChange(f.BaseInc.NetSales, f.Income.NetSales)
				verb := "crecieron"
				if change.Below(0) {
					verb = "cayeron"
				}
				return fmt.Sprintf("Las ventas %s %s entre %d y %d (de %s a %s).",
					verb, utils.FormatPct(models.R(math.Abs(change.Value()))), f.BaseYear, f.Year,
					utils.FormatMoney(f.BaseInc.NetSales, f.Currency), utils.FormatMoney(f.Income.NetSales, f.Currency))
			},
		},

		// ── Efficiency ──
		{
			ID:       "efficiency.collection",
			Category: models.CategoryEfficiency,
			When:     func(f *Facts) bool { return f.Latest.Activity.CollectionPeriod.Above(MaxCollectionDays) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("El periodo de cobro es de %s, por encima de %.0f días.",
					utils.FormatDays(f.Latest.Activity.CollectionPeriod), MaxCollectionDays)
			},
		},
		{
			ID:       "efficiency.inventory",
			Category: models.CategoryEfficiency,
			When:     func(f *Facts) bool { return f.Latest.Activity.InventoryTurnover.Below(MinInventoryTurnover) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Los inventarios rotan solo %s veces al año.",
					utils.FormatRatio(f.Latest.Activity.InventoryTurnover))
			},
		},
		{
			ID:       "efficiency.assets",
			Category: models.CategoryEfficiency,
			When:     func(f *Facts) bool { return f.Latest.Activity.AssetTurnover.Below(MinAssetTurnover) },
			Say: func(f *Facts) string {
				return fmt.Sprintf("Los activos generan pocas ventas: rotación de activos de %s.",
					utils.FormatRatio(f.Latest.Activity.AssetTurnover))
			},
		},

		// ── Projection ──
		{
			ID:       "projection.proforma",
			Category: models.CategoryProjection,
			When:     func(f *Facts) bool { return f.Proforma != nil },
			Say: func(f *Facts) string {
				p := f.Proforma
				method := "simple"
				if p.Method == models.GrowthCompound {
					method = "compuesto"
				}
				return fmt.Sprintf("Proyección %d: con un crecimiento %s de %s, las ventas alcanzarían %s y la utilidad neta %s.",
					p.Year, method, utils.FormatPct(p.GrowthRate),
					utils.FormatMoney(p.Lines.Sales, f.Currency), utils.FormatMoney(p.Lines.NetIncome, f.Currency))
			},
		},
	}
}
