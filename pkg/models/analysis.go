package models

// VerticalEntry is one account expressed as a percent of its base
// (total assets for balance accounts, net sales for income accounts).
type VerticalEntry struct {
	Year        int       `json:"year" yaml:"year"`
	AccountName string    `json:"accountName" yaml:"accountName"`
	Type        EntryType `json:"type" yaml:"type"`
	Value       Money     `json:"value" yaml:"value"`
	Pct         Ratio     `json:"pct" yaml:"pct"`
}

// HorizontalEntry is the change of one account between the base year and a
// later year.
type HorizontalEntry struct {
	Account string    `json:"account" yaml:"account"`
	Type    EntryType `json:"type" yaml:"type"`
	Period  string    `json:"period" yaml:"period"` // "<base>-<year>"
	ValBase Money     `json:"val_base" yaml:"val_base"`
	ValCurr Money     `json:"val_curr" yaml:"val_curr"`
	VarAbs  Money     `json:"var_abs" yaml:"var_abs"`
	VarPct  Ratio     `json:"var_pct" yaml:"var_pct"`
}

// CashFlowItem is one labelled line of a cash flow section.
type CashFlowItem struct {
	Concept string `json:"concepto" yaml:"concepto"`
	Value   Money  `json:"valor" yaml:"valor"`
}

// CashSummary reconciles the computed net flow against reported cash.
type CashSummary struct {
	OpeningBalance  Money `json:"saldo_inicial" yaml:"saldo_inicial"`
	NetFlow         Money `json:"flujo_neto_periodo" yaml:"flujo_neto_periodo"`
	ComputedClosing Money `json:"saldo_final_calculado" yaml:"saldo_final_calculado"`
	ReportedClosing Money `json:"saldo_final_reportado" yaml:"saldo_final_reportado"`
	Reconciled      bool  `json:"conciliado" yaml:"conciliado"`
}

// IndirectCashFlow starts from net income and adjusts for balance changes.
type IndirectCashFlow struct {
	Operating      []CashFlowItem `json:"operacion" yaml:"operacion"`
	Investing      []CashFlowItem `json:"inversion" yaml:"inversion"`
	Financing      []CashFlowItem `json:"financiamiento" yaml:"financiamiento"`
	TotalOperating Money          `json:"total_operacion" yaml:"total_operacion"`
	TotalInvesting Money          `json:"total_inversion" yaml:"total_inversion"`
	TotalFinancing Money          `json:"total_financiamiento" yaml:"total_financiamiento"`
	Summary        CashSummary    `json:"resumen" yaml:"resumen"`
}

// DirectCashFlow is the estimated receipts-and-payments view of operations.
type DirectCashFlow struct {
	Items             []CashFlowItem `json:"items" yaml:"items"`
	ReceivedCustomers Money          `json:"recibido_clientes" yaml:"recibido_clientes"`
	PaidSuppliers     Money          `json:"pagado_proveedores" yaml:"pagado_proveedores"`
	PaidExpenses      Money          `json:"pagado_gastos" yaml:"pagado_gastos"`
	NetFlow           Money          `json:"flujo_neto" yaml:"flujo_neto"`
	Estimated         bool           `json:"estimado" yaml:"estimado"`
	Note              string         `json:"nota" yaml:"nota"`
}

// CashFlowStatement covers one pair of consecutive years.
type CashFlowStatement struct {
	Year     int              `json:"year" yaml:"year"`
	BaseYear int              `json:"year_base" yaml:"year_base"`
	Indirect IndirectCashFlow `json:"indirecto" yaml:"indirecto"`
	Direct   DirectCashFlow   `json:"directo" yaml:"directo"`
}

// ProformaLines is the projected income statement.
type ProformaLines struct {
	Sales             Money `json:"ventas" yaml:"ventas"`
	COGS              Money `json:"costo_ventas" yaml:"costo_ventas"`
	GrossProfit       Money `json:"utilidad_bruta" yaml:"utilidad_bruta"`
	OperatingExpenses Money `json:"gastos_operativos" yaml:"gastos_operativos"`
	Depreciation      Money `json:"depreciacion" yaml:"depreciacion"`
	OperatingIncome   Money `json:"utilidad_operativa" yaml:"utilidad_operativa"`
	Interest          Money `json:"intereses" yaml:"intereses"`
	Taxes             Money `json:"impuestos" yaml:"impuestos"`
	NetIncome         Money `json:"utilidad_neta" yaml:"utilidad_neta"`
}

// GrowthMethod names how the sales growth rate was derived.
type GrowthMethod string

const (
	GrowthSimple   GrowthMethod = "simple"
	GrowthCompound GrowthMethod = "compound"
)

// ProformaProjection is the percent-of-sales projection for the next year.
type ProformaProjection struct {
	BaseYear   int           `json:"year_base" yaml:"year_base"`
	Year       int           `json:"year_proj" yaml:"year_proj"`
	GrowthRate Ratio         `json:"growth_rate" yaml:"growth_rate"` // percent
	Method     GrowthMethod  `json:"method" yaml:"method"`
	Lines      ProformaLines `json:"proforma" yaml:"proforma"`
}

// FindingCategory groups narrator rules. The order of the constants is the
// order of the conclusion.
type FindingCategory string

const (
	CategoryDataQuality   FindingCategory = "data_quality"
	CategoryLiquidity     FindingCategory = "liquidity"
	CategoryLeverage      FindingCategory = "leverage"
	CategoryProfitability FindingCategory = "profitability"
	CategoryEfficiency    FindingCategory = "efficiency"
	CategoryProjection    FindingCategory = "projection"
)

// Finding is one triggered narrator rule.
type Finding struct {
	Rule     string          `json:"rule" yaml:"rule"`
	Category FindingCategory `json:"category" yaml:"category"`
	Message  string          `json:"message" yaml:"message"`
}

// AnalysisPackage is the complete output of one engine run. It is built
// fresh per request and never mutated afterwards.
type AnalysisPackage struct {
	Years               []int                       `json:"years" yaml:"years"`
	FinancialStatements map[int]FinancialStatements `json:"financial_statements" yaml:"financial_statements"`
	Ratios              []RatioSet                  `json:"ratios" yaml:"ratios"`
	Vertical            []VerticalEntry             `json:"vertical" yaml:"vertical"`
	Horizontal          []HorizontalEntry           `json:"horizontal" yaml:"horizontal"`
	CashFlow            []CashFlowStatement         `json:"flujo_efectivo" yaml:"flujo_efectivo"`
	Proforma            *ProformaProjection         `json:"proforma,omitempty" yaml:"proforma,omitempty"`
	Conclusion          string                      `json:"conclusion" yaml:"conclusion"`
	Findings            []Finding                   `json:"findings" yaml:"findings"`
	Warnings            []Warning                   `json:"warnings" yaml:"warnings"`
	InputHash           string                      `json:"input_hash" yaml:"input_hash"`
}

// LatestYear returns the most recent year analysed.
func (p *AnalysisPackage) LatestYear() int {
	if len(p.Years) == 0 {
		return 0
	}
	return p.Years[len(p.Years)-1]
}
