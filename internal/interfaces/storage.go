// Package interfaces defines service and storage contracts for Worth
package interfaces

import (
	"context"

	"github.com/bobmcallan/worth/internal/models"
)

// LedgerStore is the storage collaborator consumed by the reconstruction
// core. Implementations: ledgerdb (BadgerHold, persistent) and demostore
// (deterministic synthetic, demo mode). All reads are side-effect free;
// dates are YYYY-MM-DD strings with inclusive bounds unless stated.
type LedgerStore interface {
	// Accounts
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	SaveAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error

	// Snapshots
	// SnapshotsForAccount returns all snapshots for one account, newest first.
	SnapshotsForAccount(ctx context.Context, accountID string) ([]*models.Snapshot, error)

	// SnapshotsBetween returns snapshots for the given accounts with
	// start <= date <= end. Accounts without snapshots in range are simply
	// absent from the result.
	SnapshotsBetween(ctx context.Context, accountIDs []string, start, end string) ([]*models.Snapshot, error)

	// LastSnapshotsBefore returns, per account, the balance of the most
	// recent snapshot strictly before cutoff. Accounts with no earlier
	// snapshot are absent from the map.
	LastSnapshotsBefore(ctx context.Context, accountIDs []string, cutoff string) (map[string]int64, error)

	// EarliestSnapshotDate returns the oldest snapshot date across the
	// given accounts (all accounts when accountIDs is nil), or "" when no
	// snapshots exist.
	EarliestSnapshotDate(ctx context.Context, accountIDs []string) (string, error)

	// UpsertSnapshot inserts or replaces the snapshot for the snapshot's
	// (account, date) pair — at most one snapshot per account per day.
	UpsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// DeleteSnapshot removes the snapshot at (accountID, date).
	DeleteSnapshot(ctx context.Context, accountID, date string) error

	Close() error
}
