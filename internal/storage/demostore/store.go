// Package demostore implements the LedgerStore contract over a fixed
// catalogue of synthetic accounts. Histories are generated on demand and
// are bit-for-bit reproducible for a given calendar day, so demo mode
// behaves like a real ledger without persisting anything. All writes are
// rejected with models.ErrReadOnly.
package demostore

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/demo"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

// demoAccount pairs a catalogue account with its target closing balance.
type demoAccount struct {
	account     models.Account
	targetMinor int64
}

// catalogue returns the built-in demo accounts, one or more per account
// type. Targets are in minor units (pence).
func catalogue() []demoAccount {
	return []demoAccount{
		{
			account: models.Account{
				ID:           "demo-current",
				Name:         "Everyday Current",
				Institution:  models.Institution{ID: "natwest", Name: "NatWest"},
				Type:         models.AccountTypeCurrent,
				CurrencyCode: "GBP",
			},
			targetMinor: 284_512,
		},
		{
			account: models.Account{
				ID:           "demo-savings",
				Name:         "Rainy Day Saver",
				Institution:  models.Institution{ID: "marcus", Name: "Marcus by Goldman Sachs"},
				Type:         models.AccountTypeSavings,
				CurrencyCode: "GBP",
			},
			targetMinor: 1_250_000,
		},
		{
			account: models.Account{
				ID:           "demo-credit-card",
				Name:         "Platinum Card",
				Institution:  models.Institution{ID: "amex", Name: "American Express"},
				Type:         models.AccountTypeCreditCard,
				CurrencyCode: "GBP",
			},
			targetMinor: -68_423,
		},
		{
			account: models.Account{
				ID:           "demo-isa",
				Name:         "Stocks & Shares ISA",
				Institution:  models.Institution{ID: "vanguard", Name: "Vanguard"},
				Type:         models.AccountTypeISA,
				CurrencyCode: "GBP",
			},
			targetMinor: 2_487_650,
		},
		{
			account: models.Account{
				ID:           "demo-investment",
				Name:         "General Investing",
				Institution:  models.Institution{ID: "t212", Name: "Trading 212"},
				Type:         models.AccountTypeInvestment,
				CurrencyCode: "GBP",
			},
			targetMinor: 1_103_377,
		},
		{
			account: models.Account{
				ID:           "demo-pension",
				Name:         "Workplace Pension",
				Institution:  models.Institution{ID: "aviva", Name: "Aviva"},
				Type:         models.AccountTypePension,
				CurrencyCode: "GBP",
			},
			targetMinor: 8_754_210,
		},
		{
			account: models.Account{
				ID:           "demo-cash",
				Name:         "Cash Float",
				Institution:  models.Institution{ID: "wallet", Name: "Wallet"},
				Type:         models.AccountTypeCash,
				CurrencyCode: "GBP",
			},
			targetMinor: 18_500,
		},
		{
			account: models.Account{
				ID:           "demo-loan",
				Name:         "Car Loan",
				Institution:  models.Institution{ID: "zopa", Name: "Zopa"},
				Type:         models.AccountTypeLoan,
				CurrencyCode: "GBP",
			},
			targetMinor: -421_880,
		},
	}
}

// Store implements interfaces.LedgerStore with synthetic data.
type Store struct {
	logger   *common.Logger
	gen      *demo.Generator
	accounts []demoAccount
	now      func() time.Time
}

// NewStore creates a demo ledger. Nil profiles fall back to the built-in
// category defaults.
func NewStore(logger *common.Logger, profiles map[string]common.DemoProfile) *Store {
	store := &Store{
		logger:   logger,
		gen:      demo.NewGenerator(profiles),
		accounts: catalogue(),
		now:      time.Now,
	}
	logger.Info().Int("accounts", len(store.accounts)).Msg("Demo ledger initialized")
	return store
}

// Close is a no-op; nothing is held open.
func (s *Store) Close() error {
	return nil
}

func (s *Store) find(id string) (demoAccount, bool) {
	for _, da := range s.accounts {
		if da.account.ID == id {
			return da, true
		}
	}
	return demoAccount{}, false
}

// history regenerates the synthetic series for one catalogue entry,
// anchored at its target balance on the current day.
func (s *Store) history(da demoAccount) (demo.History, error) {
	return s.gen.Generate(da.account.ID, da.account.Type, da.targetMinor, da.account.Type.Sign(), s.now())
}

// view fills the derived account fields from the generated history so a
// demo account looks like one created when its history began.
func (s *Store) view(da demoAccount) (*models.Account, error) {
	h, err := s.history(da)
	if err != nil {
		return nil, err
	}
	account := da.account
	account.NormalBalanceSign = account.Type.Sign()
	account.OpenedDate = timeseries.FormatDate(h.StartDate)
	account.CreatedAt = h.StartDate
	account.UpdatedAt = timeseries.Day(s.now())
	return &account, nil
}

// --- Accounts ---

// ListAccounts returns the demo catalogue in its fixed display order.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, len(s.accounts))
	for _, da := range s.accounts {
		account, err := s.view(da)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// GetAccount returns one demo account or models.ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	da, ok := s.find(id)
	if !ok {
		return nil, fmt.Errorf("account %q: %w", id, models.ErrNotFound)
	}
	return s.view(da)
}

// SaveAccount is rejected; the demo ledger is read-only.
func (s *Store) SaveAccount(ctx context.Context, account *models.Account) error {
	return fmt.Errorf("save account: %w", models.ErrReadOnly)
}

// DeleteAccount is rejected; the demo ledger is read-only.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return fmt.Errorf("delete account: %w", models.ErrReadOnly)
}

// --- Snapshots ---

// snapshots materializes the daily history as snapshot records, oldest
// first. CreatedAt is derived from the snapshot date so repeated calls
// return identical records.
func (s *Store) snapshots(da demoAccount) ([]*models.Snapshot, error) {
	h, err := s.history(da)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Snapshot, 0, len(h.Values))
	for i, v := range h.Values {
		date := timeseries.AddDays(h.StartDate, i)
		out = append(out, &models.Snapshot{
			AccountID:    da.account.ID,
			Date:         timeseries.FormatDate(date),
			BalanceMinor: v,
			CreatedAt:    date,
		})
	}
	return out, nil
}

// SnapshotsForAccount returns the full synthetic history, newest first.
func (s *Store) SnapshotsForAccount(ctx context.Context, accountID string) ([]*models.Snapshot, error) {
	da, ok := s.find(accountID)
	if !ok {
		return []*models.Snapshot{}, nil
	}
	snaps, err := s.snapshots(da)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	return snaps, nil
}

// SnapshotsBetween returns synthetic snapshots within [start, end] for
// the given accounts, ordered by account then date ascending.
func (s *Store) SnapshotsBetween(ctx context.Context, accountIDs []string, start, end string) ([]*models.Snapshot, error) {
	result := []*models.Snapshot{}
	for _, id := range accountIDs {
		da, ok := s.find(id)
		if !ok {
			continue
		}
		snaps, err := s.snapshots(da)
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			if snap.Date >= start && snap.Date <= end {
				result = append(result, snap)
			}
		}
	}
	return result, nil
}

// LastSnapshotsBefore returns, per account, the balance on the day
// strictly before cutoff.
func (s *Store) LastSnapshotsBefore(ctx context.Context, accountIDs []string, cutoff string) (map[string]int64, error) {
	result := make(map[string]int64, len(accountIDs))
	for _, id := range accountIDs {
		da, ok := s.find(id)
		if !ok {
			continue
		}
		snaps, err := s.snapshots(da)
		if err != nil {
			return nil, err
		}
		for i := len(snaps) - 1; i >= 0; i-- {
			if snaps[i].Date < cutoff {
				result[id] = snaps[i].BalanceMinor
				break
			}
		}
	}
	return result, nil
}

// EarliestSnapshotDate returns the oldest history start across the given
// accounts (all accounts when accountIDs is nil).
func (s *Store) EarliestSnapshotDate(ctx context.Context, accountIDs []string) (string, error) {
	targets := s.accounts
	if accountIDs != nil {
		targets = nil
		for _, id := range accountIDs {
			if da, ok := s.find(id); ok {
				targets = append(targets, da)
			}
		}
	}

	earliest := ""
	for _, da := range targets {
		h, err := s.history(da)
		if err != nil {
			return "", err
		}
		start := timeseries.FormatDate(h.StartDate)
		if earliest == "" || start < earliest {
			earliest = start
		}
	}
	return earliest, nil
}

// UpsertSnapshot is rejected; the demo ledger is read-only.
func (s *Store) UpsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	return fmt.Errorf("upsert snapshot: %w", models.ErrReadOnly)
}

// DeleteSnapshot is rejected; the demo ledger is read-only.
func (s *Store) DeleteSnapshot(ctx context.Context, accountID, date string) error {
	return fmt.Errorf("delete snapshot: %w", models.ErrReadOnly)
}
