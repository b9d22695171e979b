// Package store persists ledger snapshots. The engine never depends on it;
// bootstrap loads a snapshot into the ledger at start and saves one on
// shutdown through these explicit hooks.
package store

import (
	"context"

	"github.com/api-sage/account-ledger/internal/ledger"
)

type Store interface {
	// Save persists a snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot ledger.Snapshot) error
	// Load returns the most recent snapshot; found is false when nothing
	// has been saved yet.
	Load(ctx context.Context) (snapshot ledger.Snapshot, found bool, err error)
	Close() error
}
