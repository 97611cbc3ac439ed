package models

import (
	"encoding/json"
	"fmt"
)

// EntryType is the statement a ledger entry belongs to.
type EntryType string

const (
	TypeAsset     EntryType = "asset"
	TypeLiability EntryType = "liability"
	TypeEquity    EntryType = "equity"
	TypeRevenue   EntryType = "revenue"
	TypeExpense   EntryType = "expense"
)

// Valid reports whether t is one of the five statement types.
func (t EntryType) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense:
		return true
	}
	return false
}

// IsBalance reports whether entries of this type live on the balance sheet.
func (t EntryType) IsBalance() bool {
	return t == TypeAsset || t == TypeLiability || t == TypeEquity
}

// SubType splits assets and liabilities by term.
type SubType string

const (
	SubTypeNone       SubType = ""
	SubTypeCurrent    SubType = "current"
	SubTypeNonCurrent SubType = "non-current"
)

// Kind is the analytical role of an account inside its statement.
type Kind string

const (
	KindNone         Kind = ""
	KindCash         Kind = "cash"
	KindReceivables  Kind = "receivables"
	KindInventory    Kind = "inventory"
	KindPayables     Kind = "payables"
	KindDebt         Kind = "debt"
	KindSales        Kind = "sales"
	KindCOGS         Kind = "cogs"
	KindOperating    Kind = "operating"
	KindDepreciation Kind = "depreciation"
	KindInterest     Kind = "interest"
	KindTax          Kind = "tax"
)

// KindsFor lists the explicit kinds an entry of type t may declare.
func KindsFor(t EntryType) []Kind {
	switch t {
	case TypeAsset:
		return []Kind{KindCash, KindReceivables, KindInventory}
	case TypeLiability:
		return []Kind{KindPayables, KindDebt}
	case TypeRevenue:
		return []Kind{KindSales}
	case TypeExpense:
		return []Kind{KindCOGS, KindOperating, KindDepreciation, KindInterest, KindTax}
	}
	return nil
}

// LedgerEntry is one user-entered accounting record.
type LedgerEntry struct {
	ID          string    `json:"id"`
	AccountName string    `json:"accountName"`
	Value       Money     `json:"value"`
	Year        int       `json:"year"`
	Type        EntryType `json:"type"`
	SubType     SubType   `json:"subType,omitempty"`
	Kind        Kind      `json:"kind,omitempty"` // optional override of name conventions
}

type ledgerEntryJSON struct {
	ID          string          `json:"id"`
	AccountName string          `json:"accountName"`
	Value       json.RawMessage `json:"value"`
	Year        int             `json:"year"`
	Type        EntryType       `json:"type"`
	SubType     SubType         `json:"subType,omitempty"`
	Kind        Kind            `json:"kind,omitempty"`
}

// MarshalJSON writes the value at full precision; entries are input data
// and must survive a store round trip unchanged.
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerEntryJSON{
		ID:          e.ID,
		AccountName: e.AccountName,
		Value:       json.RawMessage(e.Value.Exact()),
		Year:        e.Year,
		Type:        e.Type,
		SubType:     e.SubType,
		Kind:        e.Kind,
	})
}

func (e *LedgerEntry) UnmarshalJSON(data []byte) error {
	var raw ledgerEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = LedgerEntry{
		ID:          raw.ID,
		AccountName: raw.AccountName,
		Year:        raw.Year,
		Type:        raw.Type,
		SubType:     raw.SubType,
		Kind:        raw.Kind,
	}
	if len(raw.Value) == 0 {
		return fmt.Errorf("value is missing")
	}
	return e.Value.UnmarshalJSON(raw.Value)
}
