// Package store persists ledger entry sets and rendered analysis packages.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// ErrNotFound is returned when a ledger or package does not exist.
var ErrNotFound = errors.New("not found")

// Store keeps entry sets by ledger id and package JSON by input hash.
type Store interface {
	SaveLedger(ctx context.Context, id string, entries []models.LedgerEntry) error
	LoadLedger(ctx context.Context, id string) ([]models.LedgerEntry, error)
	DeleteLedger(ctx context.Context, id string) error
	ListLedgers(ctx context.Context) ([]string, error)

	SavePackage(ctx context.Context, hash string, data []byte) error
	LoadPackage(ctx context.Context, hash string) ([]byte, error)

	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Open returns the store selected by driver. The postgres store is migrated
// before it is returned.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverPostgres:
		db, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		s := NewSQL(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
