package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJ03MT/FinanzasProyecto/internal/ledger/ledgertest"
)

func TestMemoryLedgers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	entries := ledgertest.Year2023()

	require.NoError(t, m.SaveLedger(ctx, "b", entries))
	require.NoError(t, m.SaveLedger(ctx, "a", entries[:2]))

	got, err := m.LoadLedger(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	got[0].AccountName = "mutated"
	again, err := m.LoadLedger(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, entries[0].AccountName, again[0].AccountName, "loaded slice must be a copy")

	ids, err := m.ListLedgers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, m.DeleteLedger(ctx, "a"))
	assert.ErrorIs(t, m.DeleteLedger(ctx, "a"), ErrNotFound)
	_, err = m.LoadLedger(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPackages(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.LoadPackage(ctx, "h")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SavePackage(ctx, "h", []byte(`{"years":[2023]}`)))
	data, err := m.LoadPackage(ctx, "h")
	require.NoError(t, err)
	assert.JSONEq(t, `{"years":[2023]}`, string(data))
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(ctx, "redis", "")
	assert.Error(t, err)

	_, err = Open(ctx, DriverPostgres, "")
	assert.Error(t, err, "postgres needs a dsn")
}
