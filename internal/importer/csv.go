// Package importer turns spreadsheet exports into ledger entries.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

type column int

const (
	colID column = iota
	colName
	colValue
	colYear
	colType
	colSubType
	colKind
)

var headerAliases = map[string]column{
	"ID":          colID,
	"ACCOUNTNAME": colName,
	"ACCOUNT":     colName,
	"CUENTA":      colName,
	"NOMBRE":      colName,
	"VALUE":       colValue,
	"VALOR":       colValue,
	"MONTO":       colValue,
	"YEAR":        colYear,
	"ANO":         colYear,
	"ANIO":        colYear,
	"TYPE":        colType,
	"TIPO":        colType,
	"SUBTYPE":     colSubType,
	"SUBTIPO":     colSubType,
	"KIND":        colKind,
	"ROL":         colKind,
}

var typeAliases = map[string]models.EntryType{
	"ASSET":      models.TypeAsset,
	"ACTIVO":     models.TypeAsset,
	"LIABILITY":  models.TypeLiability,
	"PASIVO":     models.TypeLiability,
	"EQUITY":     models.TypeEquity,
	"PATRIMONIO": models.TypeEquity,
	"CAPITAL":    models.TypeEquity,
	"REVENUE":    models.TypeRevenue,
	"INGRESO":    models.TypeRevenue,
	"INGRESOS":   models.TypeRevenue,
	"EXPENSE":    models.TypeExpense,
	"GASTO":      models.TypeExpense,
	"GASTOS":     models.TypeExpense,
	"COSTO":      models.TypeExpense,
}

var subTypeAliases = map[string]models.SubType{
	"":             models.SubTypeNone,
	"CURRENT":      models.SubTypeCurrent,
	"CORRIENTE":    models.SubTypeCurrent,
	"NON-CURRENT":  models.SubTypeNonCurrent,
	"NON CURRENT":  models.SubTypeNonCurrent,
	"NONCURRENT":   models.SubTypeNonCurrent,
	"NO CORRIENTE": models.SubTypeNonCurrent,
	"NO-CORRIENTE": models.SubTypeNonCurrent,
	"NO_CORRIENTE": models.SubTypeNonCurrent,
	"NON_CURRENT":  models.SubTypeNonCurrent,
	"LARGO PLAZO":  models.SubTypeNonCurrent,
	"CORTO PLAZO":  models.SubTypeCurrent,
}

// ParseCSV reads entries from a CSV stream with a header row. Header names
// and type values are matched case- and accent-insensitively, in English or
// Spanish. Rows without an id get a random UUID.
func ParseCSV(r io.Reader) ([]models.LedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.ClassificationError{Field: "csv", Reason: "empty file"}
	}
	if err != nil {
		return nil, &models.ClassificationError{Field: "csv", Reason: err.Error()}
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	entries := []models.LedgerEntry{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.ClassificationError{EntryID: rowID(row), Field: "csv", Reason: err.Error()}
		}
		if blank(rec) {
			continue
		}
		e, err := parseRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func mapHeader(header []string) (map[column]int, error) {
	cols := make(map[column]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(ledger.Normalize(strings.TrimPrefix(h, "\ufeff")), " ", "")
		c, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, dup := cols[c]; dup {
			return nil, &models.ClassificationError{Field: "csv", Reason: fmt.Sprintf("duplicate column %q", h)}
		}
		cols[c] = i
	}
	for _, need := range []struct {
		c    column
		name string
	}{{colName, "accountName"}, {colValue, "value"}, {colYear, "year"}, {colType, "type"}} {
		if _, ok := cols[need.c]; !ok {
			return nil, &models.ClassificationError{Field: "csv", Reason: "missing column " + need.name}
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[column]int, row int) (models.LedgerEntry, error) {
	field := func(c column) string {
		i, ok := cols[c]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	fail := func(id, name, reason string) error {
		if id == "" {
			id = rowID(row)
		}
		return &models.ClassificationError{EntryID: id, Field: name, Reason: reason}
	}

	e := models.LedgerEntry{
		ID:          field(colID),
		AccountName: field(colName),
		Kind:        models.Kind(strings.ToLower(field(colKind))),
	}

	v, err := models.ParseMoney(strings.ReplaceAll(field(colValue), ",", ""))
	if err != nil {
		return e, fail(e.ID, "value", fmt.Sprintf("invalid amount %q", field(colValue)))
	}
	e.Value = v

	year, err := strconv.Atoi(field(colYear))
	if err != nil {
		return e, fail(e.ID, "year", fmt.Sprintf("invalid year %q", field(colYear)))
	}
	e.Year = year

	t, ok := typeAliases[ledger.Normalize(field(colType))]
	if !ok {
		return e, fail(e.ID, "type", fmt.Sprintf("unknown type %q", field(colType)))
	}
	e.Type = t

	st, ok := subTypeAliases[ledger.Normalize(field(colSubType))]
	if !ok {
		return e, fail(e.ID, "subType", fmt.Sprintf("unknown subtype %q", field(colSubType)))
	}
	e.SubType = st

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return e, nil
}

func rowID(row int) string { return "row " + strconv.Itoa(row) }

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
