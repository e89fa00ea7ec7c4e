// Package ledgerdb implements the LedgerStore collaborator using
// BadgerHold. Accounts and snapshots are stored as typed records;
// snapshot keys are composite (account, date) so storage itself enforces
// at most one snapshot per account per day.
package ledgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/models"
)

// keySep separates composite key parts. A null byte cannot appear in
// account ids or dates, so keys never collide.
const keySep = "\x00"

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (creating if needed) a ledger database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Ledger store opened")

	return &Store{db: db, logger: logger}, nil
}

// DB exposes the underlying badgerhold store (used by cmd/worth-db for
// stream backups).
func (s *Store) DB() *badgerhold.Store {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func snapshotKey(accountID, date string) string {
	return accountID + keySep + date
}

// --- Accounts ---

// ListAccounts returns all accounts sorted by name.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	var records []models.Account
	if err := s.db.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("%w: list accounts: %v", models.ErrStorage, err)
	}

	accounts := make([]*models.Account, 0, len(records))
	for i := range records {
		accounts = append(accounts, &records[i])
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// GetAccount returns one account or models.ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := s.db.Get(id, &account)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("account %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get account %q: %v", models.ErrStorage, id, err)
	}
	return &account, nil
}

// SaveAccount validates and upserts an account record.
func (s *Store) SaveAccount(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.db.Upsert(account.ID, *account); err != nil {
		return fmt.Errorf("%w: save account %q: %v", models.ErrStorage, account.ID, err)
	}
	return nil
}

// DeleteAccount removes an account and all of its snapshots.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	err := s.db.Delete(id, models.Account{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("account %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: delete account %q: %v", models.ErrStorage, id, err)
	}

	if err := s.db.DeleteMatching(models.Snapshot{}, badgerhold.Where("AccountID").Eq(id)); err != nil {
		return fmt.Errorf("%w: delete snapshots for %q: %v", models.ErrStorage, id, err)
	}
	return nil
}

// --- Snapshots ---

// UpsertSnapshot inserts or replaces the snapshot at (account, date).
func (s *Store) UpsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if _, err := time.Parse("2006-01-02", snapshot.Date); err != nil {
		return models.NewValidationError("date", snapshot.Date, "must be YYYY-MM-DD")
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	key := snapshotKey(snapshot.AccountID, snapshot.Date)
	if err := s.db.Upsert(key, *snapshot); err != nil {
		return fmt.Errorf("%w: upsert snapshot %s/%s: %v", models.ErrStorage, snapshot.AccountID, snapshot.Date, err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot at (accountID, date).
func (s *Store) DeleteSnapshot(ctx context.Context, accountID, date string) error {
	err := s.db.Delete(snapshotKey(accountID, date), models.Snapshot{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("snapshot %s/%s: %w", accountID, date, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: delete snapshot %s/%s: %v", models.ErrStorage, accountID, date, err)
	}
	return nil
}

// SnapshotsForAccount returns all snapshots for one account, newest first.
func (s *Store) SnapshotsForAccount(ctx context.Context, accountID string) ([]*models.Snapshot, error) {
	var records []models.Snapshot
	if err := s.db.Find(&records, badgerhold.Where("AccountID").Eq(accountID)); err != nil {
		return nil, fmt.Errorf("%w: snapshots for %q: %v", models.ErrStorage, accountID, err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

	snapshots := make([]*models.Snapshot, 0, len(records))
	for i := range records {
		snapshots = append(snapshots, &records[i])
	}
	return snapshots, nil
}

// SnapshotsBetween returns snapshots for the given accounts within
// [start, end], ordered by account then date ascending.
func (s *Store) SnapshotsBetween(ctx context.Context, accountIDs []string, start, end string) ([]*models.Snapshot, error) {
	if len(accountIDs) == 0 {
		return []*models.Snapshot{}, nil
	}

	var records []models.Snapshot
	query := badgerhold.Where("AccountID").In(toInterfaces(accountIDs)...).
		And("Date").Ge(start).
		And("Date").Le(end)
	if err := s.db.Find(&records, query); err != nil {
		return nil, fmt.Errorf("%w: snapshots between %s and %s: %v", models.ErrStorage, start, end, err)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].AccountID != records[j].AccountID {
			return records[i].AccountID < records[j].AccountID
		}
		return records[i].Date < records[j].Date
	})

	snapshots := make([]*models.Snapshot, 0, len(records))
	for i := range records {
		snapshots = append(snapshots, &records[i])
	}
	return snapshots, nil
}

// LastSnapshotsBefore returns, per account, the balance of the latest
// snapshot strictly before cutoff.
func (s *Store) LastSnapshotsBefore(ctx context.Context, accountIDs []string, cutoff string) (map[string]int64, error) {
	if len(accountIDs) == 0 {
		return map[string]int64{}, nil
	}

	var records []models.Snapshot
	query := badgerhold.Where("AccountID").In(toInterfaces(accountIDs)...).
		And("Date").Lt(cutoff)
	if err := s.db.Find(&records, query); err != nil {
		return nil, fmt.Errorf("%w: last snapshots before %s: %v", models.ErrStorage, cutoff, err)
	}

	latestDate := make(map[string]string, len(accountIDs))
	result := make(map[string]int64, len(accountIDs))
	for _, r := range records {
		if r.Date > latestDate[r.AccountID] {
			latestDate[r.AccountID] = r.Date
			result[r.AccountID] = r.BalanceMinor
		}
	}
	return result, nil
}

// EarliestSnapshotDate returns the oldest snapshot date for the given
// accounts (all accounts when accountIDs is nil), or "" when none exist.
func (s *Store) EarliestSnapshotDate(ctx context.Context, accountIDs []string) (string, error) {
	var query *badgerhold.Query
	if accountIDs != nil {
		if len(accountIDs) == 0 {
			return "", nil
		}
		query = badgerhold.Where("AccountID").In(toInterfaces(accountIDs)...)
	}

	var records []models.Snapshot
	if err := s.db.Find(&records, query); err != nil {
		return "", fmt.Errorf("%w: earliest snapshot date: %v", models.ErrStorage, err)
	}

	earliest := ""
	for _, r := range records {
		if earliest == "" || r.Date < earliest {
			earliest = r.Date
		}
	}
	return earliest, nil
}

func toInterfaces(ids []string) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
