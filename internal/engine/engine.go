// Package engine sequences the analysis components and assembles the
// analysis package.
package engine

import (
	"errors"
	"fmt"

	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/cashflow"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/diagnosis"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/fundamental"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/proforma"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/statements"
	"github.com/DJ03MT/FinanzasProyecto/internal/analysis/structural"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Options tune an Engine.
type Options struct {
	Currency  string       // ISO 4217 code used to format amounts in the conclusion
	Tolerance models.Money // accepted gap for the balance and cash identities
}

// DefaultOptions formats in USD with a 0.01 tolerance.
func DefaultOptions() Options {
	return Options{Currency: "USD", Tolerance: statements.DefaultTolerance}
}

// Engine runs the analysis pipeline. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	opts     Options
	narrator *diagnosis.Narrator
}

// New creates an Engine. Zero option fields take their defaults.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.Currency == "" {
		opts.Currency = def.Currency
	}
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = def.Tolerance
	}
	return &Engine{opts: opts, narrator: diagnosis.New()}
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Analyze derives the analysis package from entries. Only classification
// problems are fatal; everything else is reported in the package warnings.
func (e *Engine) Analyze(entries []models.LedgerEntry) (*models.AnalysisPackage, error) {
	l, err := ledger.Classify(entries)
	if err != nil {
		return nil, fmt.Errorf("classify entries: %w", err)
	}

	set, warnings := statements.Build(l, e.opts.Tolerance)

	ratios, w := fundamental.ComputeAll(set)
	warnings = append(warnings, w...)

	vertical := structural.Vertical(set)
	horizontal := structural.Horizontal(set)

	flows, w, err := cashflow.BuildAll(set, e.opts.Tolerance)
	if err != nil {
		if !errors.Is(err, models.ErrInsufficientPeriods) {
			return nil, fmt.Errorf("cash flow: %w", err)
		}
		warnings = append(warnings, insufficient(err))
	}
	warnings = append(warnings, w...)

	proj, w, err := proforma.Project(set)
	if err != nil {
		if !errors.Is(err, models.ErrInsufficientPeriods) {
			return nil, fmt.Errorf("proforma: %w", err)
		}
		warnings = append(warnings, insufficient(err))
	}
	warnings = append(warnings, w...)
	if warnings == nil {
		warnings = []models.Warning{}
	}

	conclusion, findings := e.narrator.Narrate(e.facts(set, ratios, warnings, proj))

	return &models.AnalysisPackage{
		Years:               set.Years,
		FinancialStatements: set.ByYear,
		Ratios:              ratios,
		Vertical:            vertical,
		Horizontal:          horizontal,
		CashFlow:            flows,
		Proforma:            proj,
		Conclusion:          conclusion,
		Findings:            findings,
		Warnings:            warnings,
		InputHash:           ledger.Fingerprint(entries),
	}, nil
}

// Analyze runs a default Engine.
func Analyze(entries []models.LedgerEntry) (*models.AnalysisPackage, error) {
	return New(DefaultOptions()).Analyze(entries)
}

func (e *Engine) facts(set *statements.Set, ratios []models.RatioSet, warnings []models.Warning, proj *models.ProformaProjection) *diagnosis.Facts {
	n := len(set.Years)
	latest := set.Years[n-1]
	f := &diagnosis.Facts{
		Year:     latest,
		BaseYear: set.Years[0],
		Latest:   ratios[n-1],
		Income:   set.ByYear[latest].IncomeStatement,
		Warnings: warnings,
		Proforma: proj,
		Currency: e.opts.Currency,
	}
	if n > 1 {
		f.Previous = &ratios[n-2]
		base := set.ByYear[set.Years[0]].IncomeStatement
		f.BaseInc = &base
	}
	return f
}

func insufficient(err error) models.Warning {
	var ip *models.InsufficientPeriodsError
	errors.As(err, &ip)
	return models.Warning{
		Kind:      models.KindInsufficientPeriods,
		Component: ip.Component,
		Message:   fmt.Sprintf("se necesitan al menos %d años para %s", ip.Need, ip.Component),
	}
}
