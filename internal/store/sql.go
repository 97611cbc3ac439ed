package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

var bootQueries = []string{
	`CREATE TABLE IF NOT EXISTS ledgers (
		id         TEXT PRIMARY KEY,
		entries    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_packages (
		input_hash TEXT PRIMARY KEY,
		package    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

const (
	upsertLedgerSQL = `INSERT INTO ledgers (id, entries, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET entries = EXCLUDED.entries, updated_at = EXCLUDED.updated_at`
	selectLedgerSQL  = `SELECT entries FROM ledgers WHERE id = $1`
	deleteLedgerSQL  = `DELETE FROM ledgers WHERE id = $1`
	listLedgersSQL   = `SELECT id FROM ledgers ORDER BY id`
	upsertPackageSQL = `INSERT INTO analysis_packages (input_hash, package, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (input_hash) DO NOTHING`
	selectPackageSQL = `SELECT package FROM analysis_packages WHERE input_hash = $1`
)

// OpenPostgres opens a PostgreSQL handle through the pgx stdlib driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres store: empty dsn")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// SQL is a Store backed by database/sql.
type SQL struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQL wraps an open handle.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db, now: time.Now}
}

// Migrate creates the tables when missing.
func (s *SQL) Migrate(ctx context.Context) error {
	for _, q := range bootQueries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *SQL) SaveLedger(ctx context.Context, id string, entries []models.LedgerEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode ledger %s: %w", id, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertLedgerSQL, id, data, s.now().UTC()); err != nil {
		return fmt.Errorf("save ledger %s: %w", id, err)
	}
	return nil
}

func (s *SQL) LoadLedger(ctx context.Context, id string) ([]models.LedgerEntry, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectLedgerSQL, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", id, err)
	}
	var entries []models.LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", id, err)
	}
	return entries, nil
}

func (s *SQL) DeleteLedger(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteLedgerSQL, id)
	if err != nil {
		return fmt.Errorf("delete ledger %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQL) ListLedgers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listLedgersSQL)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list ledgers: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQL) SavePackage(ctx context.Context, hash string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertPackageSQL, hash, data, s.now().UTC()); err != nil {
		return fmt.Errorf("save package %s: %w", hash, err)
	}
	return nil
}

func (s *SQL) LoadPackage(ctx context.Context, hash string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectPackageSQL, hash).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("package %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load package %s: %w", hash, err)
	}
	return data, nil
}

func (s *SQL) Close() error { return s.db.Close() }
