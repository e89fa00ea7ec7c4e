package ledger

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/interfaces"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// stubStore is an in-memory LedgerStore for service tests.
type stubStore struct {
	accounts  map[string]*models.Account
	snapshots map[string]*models.Snapshot // keyed accountID + "\x00" + date
	err       error
}

func newStubStore() *stubStore {
	return &stubStore{
		accounts:  make(map[string]*models.Account),
		snapshots: make(map[string]*models.Snapshot),
	}
}

func (s *stubStore) addAccount(id string, atype models.AccountType) {
	s.accounts[id] = &models.Account{
		ID:                id,
		Name:              id,
		Type:              atype,
		CurrencyCode:      "GBP",
		NormalBalanceSign: atype.Sign(),
	}
}

func (s *stubStore) addSnapshot(accountID, date string, balance int64) {
	s.snapshots[accountID+"\x00"+date] = &models.Snapshot{
		AccountID:    accountID,
		Date:         date,
		BalanceMinor: balance,
	}
}

func (s *stubStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (s *stubStore) SaveAccount(ctx context.Context, account *models.Account) error {
	s.accounts[account.ID] = account
	return nil
}

func (s *stubStore) DeleteAccount(ctx context.Context, id string) error {
	delete(s.accounts, id)
	return nil
}

func (s *stubStore) SnapshotsForAccount(ctx context.Context, accountID string) ([]*models.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Snapshot
	for _, snap := range s.snapshots {
		if snap.AccountID == accountID {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *stubStore) SnapshotsBetween(ctx context.Context, accountIDs []string, start, end string) ([]*models.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	var out []*models.Snapshot
	for _, snap := range s.snapshots {
		if wanted[snap.AccountID] && snap.Date >= start && snap.Date <= end {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountID != out[j].AccountID {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (s *stubStore) LastSnapshotsBefore(ctx context.Context, accountIDs []string, cutoff string) (map[string]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	latestDate := make(map[string]string)
	result := make(map[string]int64)
	for _, id := range accountIDs {
		for _, snap := range s.snapshots {
			if snap.AccountID == id && snap.Date < cutoff && snap.Date > latestDate[id] {
				latestDate[id] = snap.Date
				result[id] = snap.BalanceMinor
			}
		}
	}
	return result, nil
}

func (s *stubStore) EarliestSnapshotDate(ctx context.Context, accountIDs []string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	wanted := func(id string) bool { return accountIDs == nil }
	if accountIDs != nil {
		set := make(map[string]bool, len(accountIDs))
		for _, id := range accountIDs {
			set[id] = true
		}
		wanted = func(id string) bool { return set[id] }
	}
	earliest := ""
	for _, snap := range s.snapshots {
		if wanted(snap.AccountID) && (earliest == "" || snap.Date < earliest) {
			earliest = snap.Date
		}
	}
	return earliest, nil
}

func (s *stubStore) UpsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.addSnapshot(snapshot.AccountID, snapshot.Date, snapshot.BalanceMinor)
	return nil
}

func (s *stubStore) DeleteSnapshot(ctx context.Context, accountID, date string) error {
	key := accountID + "\x00" + date
	if _, ok := s.snapshots[key]; !ok {
		return models.ErrNotFound
	}
	delete(s.snapshots, key)
	return nil
}

func (s *stubStore) Close() error { return nil }

func newTestService(store *stubStore, policy interfaces.MissingHistoryPolicy) *Service {
	svc := NewService(store, common.NewSilentLogger(), policy)
	svc.now = func() time.Time { return testToday }
	return svc
}

func dateAgo(days int) string {
	return timeseries.FormatDate(timeseries.AddDays(testToday, -days))
}

func TestGetAccount_NotFound(t *testing.T) {
	svc := newTestService(newStubStore(), "")

	_, err := svc.GetAccount(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetAccount_SnapshotDerivedFields(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeSavings)
	store.addSnapshot("acc-1", dateAgo(200), 50)
	store.addSnapshot("acc-1", dateAgo(10), 100)
	store.addSnapshot("acc-1", dateAgo(2), 130)
	svc := newTestService(store, "")

	view, err := svc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, dateAgo(200), view.FirstSnapshotDate)
	assert.Equal(t, dateAgo(2), view.LatestSnapshotDate)
	assert.Equal(t, int64(130), view.LatestBalanceMinor)
}

func TestGetAccount_ActivityWindows(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	store.addSnapshot("acc-1", dateAgo(10), 100)
	store.addSnapshot("acc-1", dateAgo(2), 130)
	svc := newTestService(store, "")

	view, err := svc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, view.ActivityByPeriod, 4)

	week := view.ActivityByPeriod[models.Activity1W]
	require.Len(t, week.Values, 7)
	// The 1W window starts after both snapshots, so every day is filled
	// and the delta spans the in-window change only.
	require.NotNil(t, week.Values[0])
	assert.Equal(t, int64(100), *week.Values[0])
	assert.Equal(t, int64(130), *week.Values[6])
	assert.Equal(t, int64(30), week.DeltaMinor)

	month := view.ActivityByPeriod[models.Activity1M]
	require.Len(t, month.Values, 30)
	assert.Equal(t, int64(30), month.DeltaMinor)

	full := view.ActivityByPeriod[models.Activity6M]
	require.Len(t, full.Values, 180)
	// Days before the first snapshot are unknown.
	assert.Nil(t, full.Values[0])
	assert.Equal(t, int64(30), full.DeltaMinor)

	// Overlapping windows agree on shared dates.
	assert.Equal(t, *full.Values[179], *week.Values[6])
}

func TestGetAccount_SeedFromBeforeActivityRange(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypePension)
	store.addSnapshot("acc-1", dateAgo(400), 1_000)
	svc := newTestService(store, "")

	view, err := svc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	full := view.ActivityByPeriod[models.Activity6M]
	require.NotNil(t, full.Values[0])
	assert.Equal(t, int64(1_000), *full.Values[0])
	assert.Equal(t, int64(0), full.DeltaMinor)
}

func TestGetAccount_MissingHistoryPolicies(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCash)

	defaults := newTestService(store, interfaces.MissingHistoryDefaults)
	view, err := defaults.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, timeseries.FormatDate(testToday), view.FirstSnapshotDate)
	assert.Equal(t, timeseries.FormatDate(testToday), view.LatestSnapshotDate)
	assert.Equal(t, int64(0), view.LatestBalanceMinor)

	explicit := newTestService(store, interfaces.MissingHistoryExplicit)
	view, err = explicit.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, view.FirstSnapshotDate)
	assert.Empty(t, view.LatestSnapshotDate)
	assert.Equal(t, int64(0), view.LatestBalanceMinor)
}

func TestListAccounts(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-b", models.AccountTypeSavings)
	store.addAccount("acc-a", models.AccountTypeCurrent)
	store.addSnapshot("acc-a", dateAgo(1), 42)
	svc := newTestService(store, "")

	views, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "acc-a", views[0].ID)
	assert.Equal(t, int64(42), views[0].LatestBalanceMinor)
}

func TestListAccounts_StorageFailureAborts(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	store.err = models.ErrStorage
	svc := newTestService(store, "")

	_, err := svc.ListAccounts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
}

func TestUpsertSnapshot(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	svc := newTestService(store, "")
	ctx := context.Background()

	snap, err := svc.UpsertSnapshot(ctx, "acc-1", "2025-06-10", 500)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", snap.AccountID)
	assert.Equal(t, int64(500), snap.BalanceMinor)

	snaps, err := svc.ListSnapshots(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	_, err = svc.UpsertSnapshot(ctx, "missing", "2025-06-10", 500)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDeleteSnapshot(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	store.addSnapshot("acc-1", "2025-06-10", 500)
	svc := newTestService(store, "")
	ctx := context.Background()

	require.NoError(t, svc.DeleteSnapshot(ctx, "acc-1", "2025-06-10"))
	err := svc.DeleteSnapshot(ctx, "acc-1", "2025-06-10")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestBalanceOverTime_NoSnapshots(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	svc := newTestService(store, "")

	points, err := svc.BalanceOverTime(context.Background(), "acc-1", models.Balance1M)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestBalanceOverTime_ClampsToEarliestSnapshot(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeCurrent)
	store.addSnapshot("acc-1", dateAgo(4), 100)
	store.addSnapshot("acc-1", dateAgo(1), 130)
	svc := newTestService(store, "")

	points, err := svc.BalanceOverTime(context.Background(), "acc-1", models.Balance1M)
	require.NoError(t, err)

	// The 30-day period start is clamped forward to the first snapshot.
	require.Len(t, points, 5)
	assert.Equal(t, dateAgo(4), points[0].Date)
	assert.Equal(t, int64(100), points[0].BalanceMinor)
	assert.Equal(t, int64(100), points[2].BalanceMinor)
	assert.Equal(t, int64(130), points[3].BalanceMinor)
	assert.Equal(t, int64(130), points[4].BalanceMinor)
}

func TestBalanceOverTime_SeededFromEarlierHistory(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeSavings)
	store.addSnapshot("acc-1", dateAgo(40), 100)
	store.addSnapshot("acc-1", dateAgo(10), 130)
	svc := newTestService(store, "")

	points, err := svc.BalanceOverTime(context.Background(), "acc-1", models.Balance1M)
	require.NoError(t, err)

	require.Len(t, points, 30)
	// Seeded from the snapshot 40 days back, then stepped at day -10.
	assert.Equal(t, int64(100), points[0].BalanceMinor)
	assert.Equal(t, int64(100), points[18].BalanceMinor)
	assert.Equal(t, int64(130), points[19].BalanceMinor)
	assert.Equal(t, int64(130), points[29].BalanceMinor)
}

func TestBalanceOverTime_MaxStartsAtEarliest(t *testing.T) {
	store := newStubStore()
	store.addAccount("acc-1", models.AccountTypeISA)
	store.addSnapshot("acc-1", dateAgo(500), 10)
	svc := newTestService(store, "")

	points, err := svc.BalanceOverTime(context.Background(), "acc-1", models.BalanceMax)
	require.NoError(t, err)

	require.Len(t, points, 501)
	assert.Equal(t, dateAgo(500), points[0].Date)
	assert.Equal(t, int64(10), points[500].BalanceMinor)
}

func TestBalanceOverTime_UnknownAccount(t *testing.T) {
	svc := newTestService(newStubStore(), "")

	_, err := svc.BalanceOverTime(context.Background(), "missing", models.Balance1Y)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
