// Package diagnosis turns ratios, trends and data-quality warnings into the
// written conclusion of an analysis.
package diagnosis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Facts is everything the rules may look at.
type Facts struct {
	Year     int                        // latest year
	BaseYear int                        // earliest year
	Latest   models.RatioSet            // ratios of Year
	Previous *models.RatioSet           // ratios of the year before Year, if any
	Income   models.IncomeStatement     // income statement of Year
	BaseInc  *models.IncomeStatement    // income statement of BaseYear when it differs from Year
	Warnings []models.Warning           // statement and cash flow warnings
	Proforma *models.ProformaProjection // nil when no projection was made
	Currency string
}

// Rule is one independent check. Say is only called when When holds.
type Rule struct {
	ID       string
	Category models.FindingCategory
	When     func(f *Facts) bool
	Say      func(f *Facts) string
}

var categoryRank = map[models.FindingCategory]int{
	models.CategoryDataQuality:   0,
	models.CategoryLiquidity:     1,
	models.CategoryLeverage:      2,
	models.CategoryProfitability: 3,
	models.CategoryEfficiency:    4,
	models.CategoryProjection:    5,
}

// Narrator evaluates an ordered rule list.
type Narrator struct {
	rules []Rule
}

// New returns a narrator over DefaultRules.
func New() *Narrator { return NewWithRules(DefaultRules()) }

// NewWithRules orders rules by category, keeping the given order inside a
// category.
func NewWithRules(rules []Rule) *Narrator {
	ordered := append([]Rule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return categoryRank[ordered[i].Category] < categoryRank[ordered[j].Category]
	})
	return &Narrator{rules: ordered}
}

// Narrate returns the conclusion text and the triggered findings.
func (n *Narrator) Narrate(f *Facts) (string, []models.Finding) {
	findings := []models.Finding{}
	for _, r := range n.rules {
		if !r.When(f) {
			continue
		}
		findings = append(findings, models.Finding{
			Rule:     r.ID,
			Category: r.Category,
			Message:  r.Say(f),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DIAGNÓSTICO %d:", f.Year)
	for _, fd := range findings {
		b.WriteString("\n")
		b.WriteString(fd.Message)
	}
	return b.String(), findings
}

// warningsOf filters f.Warnings by kind.
func (f *Facts) warningsOf(kind models.ErrorKind) []models.Warning {
	var out []models.Warning
	for _, w := range f.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func years(ws []models.Warning) string {
	parts := make([]string, 0, len(ws))
	for _, w := range ws {
		parts = append(parts, fmt.Sprintf("%d", w.Year))
	}
	return strings.Join(parts, ", ")
}
