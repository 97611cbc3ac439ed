// Package report renders an analysis package as a plain-text or HTML
// report for the CLI.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
	"github.com/DJ03MT/FinanzasProyecto/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator
// ════════════════════════════════════════════════════════════════════

// ReportFormat specifies the output format.
type ReportFormat string

const (
	FormatHTML ReportFormat = "html"
	FormatText ReportFormat = "text"
)

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Title    string // custom report title (optional)
	Currency string // ISO 4217 code for amounts
	Source   string // input file name shown in the header (optional)
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Title:    "Análisis financiero",
		Currency: "USD",
	}
}

// ════════════════════════════════════════════════════════════════════
// Report data flattened for template rendering
// ════════════════════════════════════════════════════════════════════

// ReportData is the template model passed to both renderers.
type ReportData struct {
	Title      string
	Source     string
	Years      []int
	InputHash  string
	Statements []StatementRow
	Ratios     []RatioRow
	CashFlow   []CashFlowRow
	Proforma   []ProformaRow
	ProjTitle  string
	Conclusion []string
	Warnings   []string
}

// StatementRow is one line of the multi-year statements table.
type StatementRow struct {
	Label  string
	Values []string
	Strong bool
}

// RatioRow is one ratio across the analysed years.
type RatioRow struct {
	Group  string
	Label  string
	Values []string
}

// CashFlowRow is one year pair of the indirect cash flow.
type CashFlowRow struct {
	Period     string
	Operating  string
	Investing  string
	Financing  string
	Net        string
	Reconciled string
}

// ProformaRow is one projected income statement line.
type ProformaRow struct {
	Label string
	Value string
}

// ════════════════════════════════════════════════════════════════════
// Generate Report
// ════════════════════════════════════════════════════════════════════

// GenerateHTML generates a standalone HTML report.
func GenerateHTML(pkg *models.AnalysisPackage, cfg ReportConfig) (string, error) {
	if pkg == nil {
		return "", fmt.Errorf("analysis is nil")
	}

	data := buildReportData(pkg, cfg)

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// GenerateText generates a plain-text report (terminal / CLI friendly).
func GenerateText(pkg *models.AnalysisPackage, cfg ReportConfig) (string, error) {
	if pkg == nil {
		return "", fmt.Errorf("analysis is nil")
	}
	return renderTextReport(buildReportData(pkg, cfg)), nil
}

// ════════════════════════════════════════════════════════════════════
// Build template data
// ════════════════════════════════════════════════════════════════════

func buildReportData(p *models.AnalysisPackage, cfg ReportConfig) ReportData {
	if cfg.Title == "" {
		cfg.Title = DefaultReportConfig().Title
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultReportConfig().Currency
	}
	money := func(m models.Money) string { return utils.FormatMoney(m, cfg.Currency) }

	d := ReportData{
		Title:      cfg.Title,
		Source:     cfg.Source,
		Years:      p.Years,
		InputHash:  p.InputHash,
		Conclusion: strings.Split(p.Conclusion, "\n"),
	}

	stmt := func(label string, strong bool, pick func(models.FinancialStatements) models.Money) {
		row := StatementRow{Label: label, Strong: strong}
		for _, y := range p.Years {
			row.Values = append(row.Values, money(pick(p.FinancialStatements[y])))
		}
		d.Statements = append(d.Statements, row)
	}
	stmt("Activo corriente", false, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Assets.Current.Total })
	stmt("Activo no corriente", false, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Assets.NonCurrent.Total })
	stmt("Activo total", true, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Assets.Total })
	stmt("Pasivo corriente", false, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Liabilities.Current.Total })
	stmt("Pasivo no corriente", false, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Liabilities.NonCurrent.Total })
	stmt("Patrimonio", false, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.Equity.Total })
	stmt("Pasivo + patrimonio", true, func(f models.FinancialStatements) models.Money { return f.BalanceSheet.TotalLiabEquity })
	stmt("Ventas netas", false, func(f models.FinancialStatements) models.Money { return f.IncomeStatement.NetSales })
	stmt("Utilidad bruta", false, func(f models.FinancialStatements) models.Money { return f.IncomeStatement.GrossProfit })
	stmt("Utilidad operativa", false, func(f models.FinancialStatements) models.Money { return f.IncomeStatement.OperatingIncome })
	stmt("Utilidad neta", true, func(f models.FinancialStatements) models.Money { return f.IncomeStatement.NetIncome })

	d.Ratios = buildRatioRows(p.Ratios, money)

	for _, cf := range p.CashFlow {
		rec := "sí"
		if !cf.Indirect.Summary.Reconciled {
			rec = "no"
		}
		d.CashFlow = append(d.CashFlow, CashFlowRow{
			Period:     fmt.Sprintf("%d-%d", cf.BaseYear, cf.Year),
			Operating:  money(cf.Indirect.TotalOperating),
			Investing:  money(cf.Indirect.TotalInvesting),
			Financing:  money(cf.Indirect.TotalFinancing),
			Net:        money(cf.Indirect.Summary.NetFlow),
			Reconciled: rec,
		})
	}

	if pr := p.Proforma; pr != nil {
		d.ProjTitle = fmt.Sprintf("Proforma %d (crecimiento %s, %s)", pr.Year, utils.FormatPct(pr.GrowthRate), pr.Method)
		l := pr.Lines
		for _, r := range []struct {
			label string
			v     models.Money
		}{
			{"Ventas", l.Sales},
			{"Costo de ventas", l.COGS},
			{"Utilidad bruta", l.GrossProfit},
			{"Gastos operativos", l.OperatingExpenses},
			{"Depreciación", l.Depreciation},
			{"Utilidad operativa", l.OperatingIncome},
			{"Intereses", l.Interest},
			{"Impuestos", l.Taxes},
			{"Utilidad neta", l.NetIncome},
		} {
			d.Proforma = append(d.Proforma, ProformaRow{Label: r.label, Value: money(r.v)})
		}
	}

	for _, w := range p.Warnings {
		prefix := string(w.Kind)
		if w.Year != 0 {
			prefix += " " + strconv.Itoa(w.Year)
		}
		d.Warnings = append(d.Warnings, prefix+": "+w.Message)
	}
	return d
}

func buildRatioRows(sets []models.RatioSet, money func(models.Money) string) []RatioRow {
	type col struct {
		group, label string
		format       func(models.RatioSet) string
	}
	cols := []col{
		{"Liquidez", "Razón circulante", func(r models.RatioSet) string { return utils.FormatRatio(r.Liquidity.CurrentRatio) }},
		{"Liquidez", "Prueba ácida", func(r models.RatioSet) string { return utils.FormatRatio(r.Liquidity.QuickRatio) }},
		{"Liquidez", "Capital neto de trabajo", func(r models.RatioSet) string { return money(r.Liquidity.NetWorkingCap) }},
		{"Actividad", "Rotación de inventarios", func(r models.RatioSet) string { return utils.FormatRatio(r.Activity.InventoryTurnover) }},
		{"Actividad", "Rotación de activos", func(r models.RatioSet) string { return utils.FormatRatio(r.Activity.AssetTurnover) }},
		{"Actividad", "Periodo de cobro", func(r models.RatioSet) string { return utils.FormatDays(r.Activity.CollectionPeriod) }},
		{"Endeudamiento", "Razón de endeudamiento", func(r models.RatioSet) string { return utils.FormatPct(r.Leverage.DebtRatio) }},
		{"Endeudamiento", "Pasivo / capital", func(r models.RatioSet) string { return utils.FormatRatio(r.Leverage.DebtToEquity) }},
		{"Endeudamiento", "Cobertura de intereses", func(r models.RatioSet) string { return utils.FormatRatio(r.Leverage.InterestCoverage) }},
		{"Rentabilidad", "Margen bruto", func(r models.RatioSet) string { return utils.FormatPct(r.Profitability.GrossMargin) }},
		{"Rentabilidad", "Margen neto", func(r models.RatioSet) string { return utils.FormatPct(r.Profitability.NetMargin) }},
		{"Rentabilidad", "ROA", func(r models.RatioSet) string { return utils.FormatPct(r.Profitability.ROA) }},
		{"Rentabilidad", "ROE", func(r models.RatioSet) string { return utils.FormatPct(r.Profitability.ROE) }},
		{"Rentabilidad", "DuPont", func(r models.RatioSet) string { return utils.FormatPct(r.Profitability.DuPont.System) }},
	}

	rows := make([]RatioRow, 0, len(cols))
	for _, c := range cols {
		row := RatioRow{Group: c.group, Label: c.label}
		for _, s := range sets {
			row.Values = append(row.Values, c.format(s))
		}
		rows = append(rows, row)
	}
	return rows
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 72)
	thinLine := strings.Repeat("─", 72)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	if d.Source != "" {
		sb.WriteString(fmt.Sprintf("  Fuente: %s\n", d.Source))
	}
	sb.WriteString(fmt.Sprintf("  Huella: %s\n", shortHash(d.InputHash)))
	sb.WriteString(line + "\n")

	header := fmt.Sprintf("    %-26s", "")
	for _, y := range d.Years {
		header += fmt.Sprintf(" %16d", y)
	}

	sb.WriteString("\n  ■ ESTADOS FINANCIEROS\n")
	sb.WriteString(header + "\n")
	for _, r := range d.Statements {
		label := r.Label
		if r.Strong {
			label = strings.ToUpper(label)
		}
		sb.WriteString(fmt.Sprintf("    %-26s", label))
		for _, v := range r.Values {
			sb.WriteString(fmt.Sprintf(" %16s", v))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(thinLine + "\n")

	sb.WriteString("\n  ■ RAZONES FINANCIERAS\n")
	sb.WriteString(header + "\n")
	group := ""
	for _, r := range d.Ratios {
		if r.Group != group {
			group = r.Group
			sb.WriteString(fmt.Sprintf("   %s\n", group))
		}
		sb.WriteString(fmt.Sprintf("    %-26s", r.Label))
		for _, v := range r.Values {
			sb.WriteString(fmt.Sprintf(" %16s", v))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(thinLine + "\n")

	if len(d.CashFlow) > 0 {
		sb.WriteString("\n  ■ FLUJO DE EFECTIVO (método indirecto)\n")
		for _, c := range d.CashFlow {
			sb.WriteString(fmt.Sprintf("    %s  operación %s | inversión %s | financiamiento %s | neto %s | conciliado: %s\n",
				c.Period, c.Operating, c.Investing, c.Financing, c.Net, c.Reconciled))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.Proforma) > 0 {
		sb.WriteString(fmt.Sprintf("\n  ■ %s\n", strings.ToUpper(d.ProjTitle)))
		for _, r := range d.Proforma {
			sb.WriteString(fmt.Sprintf("    %-26s %16s\n", r.Label, r.Value))
		}
		sb.WriteString(thinLine + "\n")
	}

	sb.WriteString("\n  ★ CONCLUSIÓN\n")
	for _, c := range d.Conclusion {
		sb.WriteString(fmt.Sprintf("  %s\n", c))
	}

	if len(d.Warnings) > 0 {
		sb.WriteString("\n  ⚠ ADVERTENCIAS\n")
		for _, w := range d.Warnings {
			sb.WriteString(fmt.Sprintf("    - %s\n", w))
		}
	}
	sb.WriteString(line + "\n")

	return sb.String()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
