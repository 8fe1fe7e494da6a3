// Package db persists pricing history outside the engine's in-memory ring.
package db

import "broadbandx-pricing/core/types"

// HistoryStore is a durable sink for pricing results.
type HistoryStore interface {
	// Record appends one pricing result.
	Record(result *types.PricingResult) error

	// Recent returns up to limit most recent results, oldest first.
	Recent(limit int) ([]*types.PricingResult, error)

	// Close releases the underlying storage.
	Close() error
}

// NoopStore discards everything. Used when no history database is
// configured.
type NoopStore struct{}

// Record implements HistoryStore.
func (NoopStore) Record(*types.PricingResult) error { return nil }

// Recent implements HistoryStore.
func (NoopStore) Recent(int) ([]*types.PricingResult, error) { return nil, nil }

// Close implements HistoryStore.
func (NoopStore) Close() error { return nil }
