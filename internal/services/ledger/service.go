// Package ledger implements per-account operations: account views with
// multi-window activity, raw snapshot listings, snapshot writes, and the
// per-account balance-over-time series. All series arithmetic lives in
// internal/timeseries; this package only orchestrates storage and shapes
// DTOs.
package ledger

import (
	"context"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/interfaces"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

// Service implements interfaces.LedgerService.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
	policy interfaces.MissingHistoryPolicy
	now    func() time.Time
}

// NewService creates a ledger service. An empty policy falls back to
// MissingHistoryDefaults (today / zero for accounts without snapshots).
func NewService(store interfaces.LedgerStore, logger *common.Logger, policy interfaces.MissingHistoryPolicy) *Service {
	if policy == "" {
		policy = interfaces.MissingHistoryDefaults
	}
	return &Service{
		store:  store,
		logger: logger,
		policy: policy,
		now:    time.Now,
	}
}

// ListAccounts returns every account with snapshot-derived fields and
// the activity window map.
func (s *Service) ListAccounts(ctx context.Context) ([]*models.AccountView, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	today := timeseries.Day(s.now())
	views := make([]*models.AccountView, 0, len(accounts))
	for _, account := range accounts {
		view, err := s.buildView(ctx, account, today)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetAccount returns one account view, or models.ErrNotFound.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.AccountView, error) {
	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, account, timeseries.Day(s.now()))
}

// buildView assembles the caller-facing account shape: snapshot-derived
// fields plus activity windows sliced from one 180-day series.
func (s *Service) buildView(ctx context.Context, account *models.Account, today time.Time) (*models.AccountView, error) {
	snapshots, err := s.store.SnapshotsForAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	view := &models.AccountView{Account: *account}
	if len(snapshots) > 0 {
		// Snapshots are newest first.
		view.FirstSnapshotDate = snapshots[len(snapshots)-1].Date
		view.LatestSnapshotDate = snapshots[0].Date
		view.LatestBalanceMinor = snapshots[0].BalanceMinor
	} else if s.policy == interfaces.MissingHistoryDefaults {
		view.FirstSnapshotDate = timeseries.FormatDate(today)
		view.LatestSnapshotDate = timeseries.FormatDate(today)
	}

	series := activitySeries(snapshots, today)
	view.ActivityByPeriod = activityWindows(series)
	return view, nil
}

// activitySeries resamples an account's snapshots over the trailing
// 180-day activity range. The running value is seeded from the newest
// snapshot dated strictly before the range.
func activitySeries(snapshots []*models.Snapshot, today time.Time) timeseries.Series {
	fullStart := timeseries.AddDays(today, -(models.ActivityFullDays - 1))
	fullStartStr := timeseries.FormatDate(fullStart)
	todayStr := timeseries.FormatDate(today)

	observations := make(map[string]int64)
	var seedBefore *int64
	for i := len(snapshots) - 1; i >= 0; i-- { // oldest first
		snap := snapshots[i]
		switch {
		case snap.Date < fullStartStr:
			v := snap.BalanceMinor
			seedBefore = &v
		case snap.Date <= todayStr:
			observations[snap.Date] = snap.BalanceMinor
		}
	}
	return timeseries.Resample(observations, seedBefore, fullStart, models.ActivityFullDays)
}

// activityWindows slices the full series into the named trailing windows.
// Copying the window values keeps the DTO independent of the backing
// series.
func activityWindows(full timeseries.Series) map[models.ActivityPeriod]models.ActivityData {
	out := make(map[models.ActivityPeriod]models.ActivityData, len(models.ActivityPeriods()))
	for _, period := range models.ActivityPeriods() {
		window := timeseries.Window(full, period.Days())
		out[period] = models.ActivityData{
			Values:     append([]*int64(nil), window...),
			DeltaMinor: timeseries.Delta(window),
		}
	}
	return out
}

// ListSnapshots returns an account's raw snapshots, newest first.
func (s *Service) ListSnapshots(ctx context.Context, id string) ([]*models.Snapshot, error) {
	if _, err := s.store.GetAccount(ctx, id); err != nil {
		return nil, err
	}
	return s.store.SnapshotsForAccount(ctx, id)
}

// UpsertSnapshot records (or replaces) the balance for one day.
func (s *Service) UpsertSnapshot(ctx context.Context, id, date string, balanceMinor int64) (*models.Snapshot, error) {
	if _, err := s.store.GetAccount(ctx, id); err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{
		AccountID:    id,
		Date:         date,
		BalanceMinor: balanceMinor,
	}
	if err := s.store.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("account_id", id).
		Str("date", date).
		Int64("balance_minor", balanceMinor).
		Msg("Snapshot recorded")
	return snapshot, nil
}

// DeleteSnapshot removes the snapshot at (id, date).
func (s *Service) DeleteSnapshot(ctx context.Context, id, date string) error {
	if _, err := s.store.GetAccount(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteSnapshot(ctx, id, date)
}

// BalanceOverTime returns the dense daily balance series for one account
// over the requested period. The period start is clamped to the account's
// earliest snapshot; an account with no snapshots yields an empty series.
// Unknown leading days surface as 0.
func (s *Service) BalanceOverTime(ctx context.Context, id string, period models.BalancePeriod) ([]models.BalancePoint, error) {
	if _, err := s.store.GetAccount(ctx, id); err != nil {
		return nil, err
	}

	earliestStr, err := s.store.EarliestSnapshotDate(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if earliestStr == "" {
		return []models.BalancePoint{}, nil
	}
	earliest, err := timeseries.ParseDate(earliestStr)
	if err != nil {
		return nil, err
	}

	today := timeseries.Day(s.now())
	start := earliest
	if days, ok := period.Days(); ok {
		start = timeseries.AddDays(today, -(days - 1))
	}
	start = timeseries.MaxDate(start, earliest)
	if today.Before(start) {
		return []models.BalancePoint{}, nil
	}

	points := timeseries.DaysBetween(start, today)
	startStr := timeseries.FormatDate(start)

	snapshots, err := s.store.SnapshotsBetween(ctx, []string{id}, startStr, timeseries.FormatDate(today))
	if err != nil {
		return nil, err
	}
	seeds, err := s.store.LastSnapshotsBefore(ctx, []string{id}, startStr)
	if err != nil {
		return nil, err
	}

	observations := make(map[string]int64, len(snapshots))
	for _, snap := range snapshots {
		observations[snap.Date] = snap.BalanceMinor
	}
	var seedBefore *int64
	if v, ok := seeds[id]; ok {
		seedBefore = &v
	}

	series := timeseries.Resample(observations, seedBefore, start, points)
	out := make([]models.BalancePoint, points)
	for i := 0; i < points; i++ {
		out[i] = models.BalancePoint{
			Date:         timeseries.FormatDate(timeseries.AddDays(start, i)),
			BalanceMinor: series.ValueOrZero(i),
		}
	}
	return out, nil
}
