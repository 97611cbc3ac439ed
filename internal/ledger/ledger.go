// Package ledger validates raw ledger entries and groups them by year,
// statement bucket and analytical kind.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Year holds the classified accounts of one fiscal year. Every slice is
// sorted by account key.
type Year struct {
	Year                  int
	AssetsCurrent         []models.AccountLine
	AssetsNonCurrent      []models.AccountLine
	LiabilitiesCurrent    []models.AccountLine
	LiabilitiesNonCurrent []models.AccountLine
	Equity                []models.AccountLine
	Revenue               []models.AccountLine
	Expenses              []models.AccountLine // Kind is one of cogs, operating, depreciation, interest, tax
}

// ExpenseTotal sums the expense accounts of one kind.
func (y *Year) ExpenseTotal(k models.Kind) models.Money {
	return models.NewAccountGroup(y.Expenses).KindTotal(k)
}

// Ledger is the classified entry set.
type Ledger struct {
	Years  []int // ascending
	byYear map[int]*Year
}

// Year returns the classified accounts of y, or nil when y has no entries.
func (l *Ledger) Year(y int) *Year { return l.byYear[y] }

// Classify validates every entry and groups them. The result does not depend
// on the order of entries.
func Classify(entries []models.LedgerEntry) (*Ledger, error) {
	if len(entries) == 0 {
		return nil, &models.ClassificationError{Field: "entries", Reason: "at least one entry is required"}
	}

	sorted := make([]classified, 0, len(entries))
	for _, e := range entries {
		c, err := classify(e)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })

	l := &Ledger{byYear: make(map[int]*Year)}
	var (
		cur      *Year
		last     classified
		explicit bool // kind of the current line was declared
	)
	for i, c := range sorted {
		if cur == nil || cur.Year != c.entry.Year {
			cur = &Year{Year: c.entry.Year}
			l.byYear[cur.Year] = cur
			l.Years = append(l.Years, cur.Year)
		}
		bucket := cur.bucket(c.entry.Type, c.entry.SubType)
		if i > 0 && c.sameAccount(last) {
			line := &(*bucket)[len(*bucket)-1]
			line.Value = line.Value.Add(c.entry.Value)
			if c.explicit && !explicit {
				line.Kind, explicit = c.kind, true
			}
		} else {
			*bucket = append(*bucket, models.AccountLine{
				Key:   c.key,
				Name:  strings.TrimSpace(c.entry.AccountName),
				Kind:  c.kind,
				Value: c.entry.Value,
			})
			explicit = c.explicit
		}
		last = c
	}
	return l, nil
}

type classified struct {
	entry    models.LedgerEntry
	key      string
	kind     models.Kind
	explicit bool
}

func (c classified) sameAccount(o classified) bool {
	return c.entry.Year == o.entry.Year &&
		c.entry.Type == o.entry.Type &&
		c.entry.SubType == o.entry.SubType &&
		c.key == o.key
}

func (c classified) less(o classified) bool {
	a, b := c.entry, o.entry
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.SubType != b.SubType {
		return a.SubType < b.SubType
	}
	if c.key != o.key {
		return c.key < o.key
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	if a.AccountName != b.AccountName {
		return a.AccountName < b.AccountName
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Value.LessThan(b.Value)
}

func (y *Year) bucket(t models.EntryType, st models.SubType) *[]models.AccountLine {
	switch t {
	case models.TypeAsset:
		if st == models.SubTypeCurrent {
			return &y.AssetsCurrent
		}
		return &y.AssetsNonCurrent
	case models.TypeLiability:
		if st == models.SubTypeCurrent {
			return &y.LiabilitiesCurrent
		}
		return &y.LiabilitiesNonCurrent
	case models.TypeEquity:
		return &y.Equity
	case models.TypeRevenue:
		return &y.Revenue
	default:
		return &y.Expenses
	}
}

// classify validates one entry and resolves its account key and kind.
func classify(e models.LedgerEntry) (classified, error) {
	fail := func(field, format string, args ...any) (classified, error) {
		return classified{}, &models.ClassificationError{EntryID: e.ID, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if !e.Type.Valid() {
		return fail("type", "unrecognized type %q", e.Type)
	}
	switch e.SubType {
	case models.SubTypeNone:
		if e.Type == models.TypeAsset || e.Type == models.TypeLiability {
			e.SubType = models.SubTypeNonCurrent
		}
	case models.SubTypeCurrent, models.SubTypeNonCurrent:
		if !(e.Type == models.TypeAsset || e.Type == models.TypeLiability) {
			e.SubType = models.SubTypeNone
		}
	default:
		return fail("subType", "unrecognized subType %q", e.SubType)
	}
	if e.Year <= 0 {
		return fail("year", "year must be positive, got %d", e.Year)
	}
	key := Normalize(e.AccountName)
	if key == "" {
		return fail("accountName", "account name is blank")
	}

	c := classified{entry: e, key: key}
	if e.Kind != models.KindNone {
		if !allowed(e.Type, e.Kind) {
			return fail("kind", "kind %q is not valid for type %s", e.Kind, e.Type)
		}
		c.kind, c.explicit = e.Kind, true
		return c, nil
	}
	c.kind = InferKind(e.Type, key)
	return c, nil
}

func allowed(t models.EntryType, k models.Kind) bool {
	for _, a := range models.KindsFor(t) {
		if a == k {
			return true
		}
	}
	return false
}
