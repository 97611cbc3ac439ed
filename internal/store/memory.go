package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Memory is a process-local Store.
type Memory struct {
	mu       sync.RWMutex
	ledgers  map[string][]models.LedgerEntry
	packages map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		ledgers:  make(map[string][]models.LedgerEntry),
		packages: make(map[string][]byte),
	}
}

func (m *Memory) SaveLedger(_ context.Context, id string, entries []models.LedgerEntry) error {
	m.mu.Lock()
	m.ledgers[id] = append([]models.LedgerEntry(nil), entries...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) LoadLedger(_ context.Context, id string) ([]models.LedgerEntry, error) {
	m.mu.RLock()
	entries, ok := m.ledgers[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	return append([]models.LedgerEntry(nil), entries...), nil
}

func (m *Memory) DeleteLedger(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ledgers[id]; !ok {
		return fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	delete(m.ledgers, id)
	return nil
}

func (m *Memory) ListLedgers(_ context.Context) ([]string, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.ledgers))
	for id := range m.ledgers {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) SavePackage(_ context.Context, hash string, data []byte) error {
	m.mu.Lock()
	m.packages[hash] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) LoadPackage(_ context.Context, hash string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.packages[hash]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("package %s: %w", hash, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Close() error { return nil }
