package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Normalize folds an account name into its matching key: accents removed,
// upper case, single spaces.
func Normalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}

type kindRule struct {
	kind  models.Kind
	stems []string
}

// Rules are checked in order; the first match wins. A stem matches the
// start of any word of the normalized name.
var (
	assetRules = []kindRule{
		{models.KindCash, []string{"CAJA", "BANCO", "EFECTIVO", "CASH"}},
		{models.KindReceivables, []string{"CLIENTE", "COBRAR", "DEUDOR", "RECEIVABLE"}},
		{models.KindInventory, []string{"INVENTARIO", "ALMACEN", "MERCADER", "MERCANCIA", "EXISTENCIA", "INVENTOR"}},
	}
	liabilityRules = []kindRule{
		{models.KindDebt, []string{"PRESTAMO", "CREDITO", "DEUDA", "OBLIGACION", "BANCARI", "HIPOTECA", "LOAN", "DEBT"}},
		{models.KindPayables, []string{"PROVEEDOR", "PAGAR", "ACREEDOR", "PAYABLE"}},
	}
	expenseRules = []kindRule{
		{models.KindInterest, []string{"INTERES", "FINANCIER", "INTEREST"}},
		{models.KindTax, []string{"IMPUESTO", "ISR", "TAX", "TRIBUTO"}},
		{models.KindDepreciation, []string{"DEPRECIA", "AMORTIZA"}},
		{models.KindCOGS, []string{"COSTO", "COGS", "COST"}},
	}
)

// InferKind resolves the kind of an account from its normalized name.
func InferKind(t models.EntryType, key string) models.Kind {
	switch t {
	case models.TypeAsset:
		return match(assetRules, key, models.KindNone)
	case models.TypeLiability:
		return match(liabilityRules, key, models.KindNone)
	case models.TypeRevenue:
		return models.KindSales
	case models.TypeExpense:
		return match(expenseRules, key, models.KindOperating)
	}
	return models.KindNone
}

func match(rules []kindRule, key string, fallback models.Kind) models.Kind {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, r := range rules {
		for _, stem := range r.stems {
			for _, w := range words {
				if strings.HasPrefix(w, stem) {
					return r.kind
				}
			}
		}
	}
	return fallback
}
