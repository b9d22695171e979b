// Package postgres stores ledger snapshots in a single-row postgres table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/account-ledger/internal/ledger"
	_ "github.com/lib/pq"
)

type SnapshotStore struct {
	db *sql.DB
}

// Open connects, verifies the connection and ensures the snapshot table
// exists.
func Open(ctx context.Context, dsn string) (*SnapshotStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(15 * time.Minute)

	const ddl = `
CREATE TABLE IF NOT EXISTS ledger_snapshots (
	id INT PRIMARY KEY,
	taken_at TIMESTAMPTZ NOT NULL,
	payload JSONB NOT NULL
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure ledger_snapshots table: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

// Save upserts the single snapshot row. Only the latest snapshot is kept;
// the payload already contains the complete ledger state.
func (s *SnapshotStore) Save(ctx context.Context, snapshot ledger.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	const upsert = `
INSERT INTO ledger_snapshots (id, taken_at, payload)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET taken_at = EXCLUDED.taken_at, payload = EXCLUDED.payload`
	if _, err := s.db.ExecContext(ctx, upsert, snapshot.TakenAt, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (ledger.Snapshot, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM ledger_snapshots WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Snapshot{}, false, nil
	}
	if err != nil {
		return ledger.Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var snapshot ledger.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return ledger.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, true, nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
