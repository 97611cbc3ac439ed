package importer

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJ03MT/FinanzasProyecto/internal/engine"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

func TestParseCSVEnglishHeader(t *testing.T) {
	in := `id,accountName,value,year,type,subType,kind
a1,Caja,1000,2023,asset,current,
e1,Capital social,1000,2023,equity,,
x1,Gastos varios,"1,250.50",2023,expense,,operating
`
	entries, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "a1", entries[0].ID)
	assert.Equal(t, "Caja", entries[0].AccountName)
	assert.True(t, entries[0].Value.Equal(models.M(1000)))
	assert.Equal(t, 2023, entries[0].Year)
	assert.Equal(t, models.TypeAsset, entries[0].Type)
	assert.Equal(t, models.SubTypeCurrent, entries[0].SubType)

	assert.Equal(t, models.SubTypeNone, entries[1].SubType)
	assert.True(t, entries[2].Value.Equal(models.M(1250.50)))
	assert.Equal(t, models.KindOperating, entries[2].Kind)
}

func TestParseCSVSpanishHeaderAndAliases(t *testing.T) {
	in := "\ufeffCuenta,Valor,Año,Tipo,Subtipo\n"
	in += "Caja,1000,2023,Activo,Corriente\n"
	in += "Maquinaria,3000,2023,ACTIVO,No Corriente\n"
	in += "Capital,4000,2023,Patrimonio,\n"
	in += ",,,,\n"

	entries, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 3, "blank rows are skipped")

	assert.Equal(t, models.SubTypeNonCurrent, entries[1].SubType)
	assert.Equal(t, models.TypeEquity, entries[2].Type)
	for _, e := range entries {
		_, err := uuid.Parse(e.ID)
		assert.NoError(t, err, "generated id %q should be a UUID", e.ID)
	}

	pkg, err := engine.Analyze(entries)
	require.NoError(t, err)
	assert.True(t, pkg.FinancialStatements[2023].BalanceSheet.Balanced)
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		entryID string
		field   string
	}{
		{"empty", "", "", "csv"},
		{"missing column", "account,value,year\nCaja,1,2023\n", "", "csv"},
		{"duplicate column", "account,cuenta,value,year,type\n", "", "csv"},
		{"bad amount", "id,account,value,year,type\nz9,Caja,abc,2023,asset\n", "z9", "value"},
		{"bad year", "account,value,year,type\nCaja,1,dosmil,asset\n", "row 2", "year"},
		{"bad type", "account,value,year,type\nCaja,1,2023,asset\nBanco,1,2023,stock\n", "row 3", "type"},
		{"bad subtype", "account,value,year,type,subtype\nCaja,1,2023,asset,medio\n", "row 2", "subType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			var ce *models.ClassificationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.entryID, ce.EntryID)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}
