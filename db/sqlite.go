package db

import (
	"database/sql"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
	"broadbandx-pricing/internal/logging"
)

// SQLiteStore persists pricing results to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("open sqlite", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Storage("set WAL mode", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Info("pricing history store opened", zap.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pricing_results (
			id                   TEXT PRIMARY KEY,
			customer_id          TEXT,
			timestamp            INTEGER NOT NULL,
			base_price           REAL NOT NULL,
			dynamic_price        REAL NOT NULL,
			price_change         REAL NOT NULL,
			price_change_percent REAL NOT NULL,
			demand_factor        REAL NOT NULL,
			elasticity           REAL NOT NULL,
			elasticity_factor    REAL NOT NULL,
			churn_risk           REAL NOT NULL,
			alpha                REAL NOT NULL,
			beta                 REAL NOT NULL,
			gamma                REAL NOT NULL,
			adjustment           REAL NOT NULL,
			recommendation       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pricing_ts ON pricing_results(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Storage("migrate pricing history", err)
		}
	}
	return nil
}

// Record implements HistoryStore (and the engine's Sink).
func (s *SQLiteStore) Record(result *types.PricingResult) error {
	_, err := s.db.Exec(`INSERT INTO pricing_results (
			id, customer_id, timestamp,
			base_price, dynamic_price, price_change, price_change_percent,
			demand_factor, elasticity, elasticity_factor, churn_risk,
			alpha, beta, gamma, adjustment, recommendation
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.CustomerID,
		result.Timestamp.Unix(),
		result.BasePrice,
		result.DynamicPrice,
		result.PriceChange,
		result.PriceChangePercent,
		result.Factors.DemandFactor,
		result.Factors.Elasticity,
		result.Factors.ElasticityFactor,
		result.Factors.ChurnRisk,
		result.Weights.Alpha,
		result.Weights.Beta,
		result.Weights.Gamma,
		result.Adjustment,
		result.Recommendation,
	)
	if err != nil {
		return errors.Storage("insert pricing result", err)
	}
	return nil
}

// Recent implements HistoryStore.
func (s *SQLiteStore) Recent(limit int) ([]*types.PricingResult, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`SELECT
			id, customer_id, timestamp,
			base_price, dynamic_price, price_change, price_change_percent,
			demand_factor, elasticity, elasticity_factor, churn_risk,
			alpha, beta, gamma, adjustment, recommendation
		FROM pricing_results ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Storage("query pricing history", err)
	}
	defer rows.Close()

	var results []*types.PricingResult
	for rows.Next() {
		var r types.PricingResult
		var ts int64
		if err := rows.Scan(
			&r.ID, &r.CustomerID, &ts,
			&r.BasePrice, &r.DynamicPrice, &r.PriceChange, &r.PriceChangePercent,
			&r.Factors.DemandFactor, &r.Factors.Elasticity, &r.Factors.ElasticityFactor, &r.Factors.ChurnRisk,
			&r.Weights.Alpha, &r.Weights.Beta, &r.Weights.Gamma, &r.Adjustment, &r.Recommendation,
		); err != nil {
			return nil, errors.Storage("scan pricing result", err)
		}
		r.Timestamp = time.Unix(ts, 0).UTC()
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate pricing history", err)
	}

	// Newest-first from the query; return oldest-first like the ring.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// Close implements HistoryStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
