// Package service puts caching, request coalescing and persistence around
// the analysis engine.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/DJ03MT/FinanzasProyecto/internal/engine"
	"github.com/DJ03MT/FinanzasProyecto/internal/infra"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/store"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// DefaultCacheTTL is used when the configured TTL is not positive.
const DefaultCacheTTL = 10 * time.Minute

// Analyzer serves analysis packages keyed by the input fingerprint. Identical
// inputs always produce identical packages, so a cached package is never stale.
type Analyzer struct {
	engine *engine.Engine
	cache  *infra.Cache[*models.AnalysisPackage]
	store  store.Store
	group  singleflight.Group
}

// NewAnalyzer wires an engine to a store. A nil store keeps everything in
// memory.
func NewAnalyzer(e *engine.Engine, st store.Store, ttl time.Duration) *Analyzer {
	if e == nil {
		e = engine.New(engine.DefaultOptions())
	}
	if st == nil {
		st = store.NewMemory()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Analyzer{engine: e, cache: infra.NewCache[*models.AnalysisPackage](ttl), store: st}
}

// Store returns the backing store.
func (a *Analyzer) Store() store.Store { return a.store }

// Cache returns the package cache, used by callers that run its janitor.
func (a *Analyzer) Cache() *infra.Cache[*models.AnalysisPackage] { return a.cache }

// Analyze returns the package for entries, computing it at most once per
// fingerprint across concurrent callers.
func (a *Analyzer) Analyze(ctx context.Context, entries []models.LedgerEntry) (*models.AnalysisPackage, error) {
	key := ledger.Fingerprint(entries)
	log := zerolog.Ctx(ctx).With().Str("input_hash", key).Logger()

	if pkg, ok := a.cache.Get(key); ok {
		log.Debug().Msg("analysis cache hit")
		return pkg, nil
	}

	v, err, shared := a.group.Do(key, func() (any, error) {
		start := time.Now()
		pkg, err := a.engine.Analyze(entries)
		if err != nil {
			return nil, err
		}
		a.cache.Set(key, pkg)
		a.persist(ctx, &log, pkg)
		log.Info().
			Ints("years", pkg.Years).
			Int("warnings", len(pkg.Warnings)).
			Dur("elapsed", time.Since(start)).
			Msg("analysis computed")
		return pkg, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Msg("analysis shared with a concurrent caller")
	}
	return v.(*models.AnalysisPackage), nil
}

// AnalyzeLedger loads a stored ledger and analyzes it.
func (a *Analyzer) AnalyzeLedger(ctx context.Context, id string) (*models.AnalysisPackage, error) {
	entries, err := a.store.LoadLedger(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, entries)
}

// Snapshot returns a previously persisted package by input hash.
func (a *Analyzer) Snapshot(ctx context.Context, hash string) (*models.AnalysisPackage, error) {
	if pkg, ok := a.cache.Get(hash); ok {
		return pkg, nil
	}
	data, err := a.store.LoadPackage(ctx, hash)
	if err != nil {
		return nil, err
	}
	var pkg models.AnalysisPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decode package %s: %w", hash, err)
	}
	return &pkg, nil
}

// SaveLedger validates entries by classifying them before storing.
func (a *Analyzer) SaveLedger(ctx context.Context, id string, entries []models.LedgerEntry) error {
	if _, err := ledger.Classify(entries); err != nil {
		return err
	}
	return a.store.SaveLedger(ctx, id, entries)
}

// persist stores the package JSON. Failures are logged, not returned: the
// caller already has a valid package.
func (a *Analyzer) persist(ctx context.Context, log *zerolog.Logger, pkg *models.AnalysisPackage) {
	data, err := json.Marshal(pkg)
	if err == nil {
		err = a.store.SavePackage(ctx, pkg.InputHash, data)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("persist analysis package")
	}
}
