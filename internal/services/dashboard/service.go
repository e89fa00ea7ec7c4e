// Package dashboard implements the cross-account net worth surface:
// the summary (totals, allocation, monthly yield), the aggregated
// balance-over-time series, and its PNG chart rendering.
package dashboard

import (
	"context"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/interfaces"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

// maxDateSentinel sorts after any real date, so a strictly-before query
// against it returns the latest snapshot on record.
const maxDateSentinel = "9999-12-31"

// monthlyPoints is the series length behind the monthly yield metrics:
// today plus the trailing 30 days.
const monthlyPoints = 31

// Service implements interfaces.DashboardService.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a dashboard service.
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Summary computes the net worth summary. The total and allocation come
// from each account's latest recorded balance; the monthly yield and
// percentage change come from a 31-point aggregated series.
func (s *Service) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	ids := accountIDs(accounts)
	latest, err := s.store.LastSnapshotsBefore(ctx, ids, maxDateSentinel)
	if err != nil {
		return nil, err
	}

	var totalMinor int64
	var active int
	allocation := make(map[models.AccountType]int64)
	for _, account := range accounts {
		balance := latest[account.ID] // absent means no snapshots, counts as 0
		totalMinor += balance
		if balance != 0 {
			active++
		}
		allocation[account.Type] += balance
	}

	// Negative or empty groups (credit cards, loans) are excluded so the
	// allocation can be charted as a pie.
	slices := make([]models.AllocationSlice, 0, len(allocation))
	for _, at := range models.AccountTypes() {
		if balance := allocation[at]; balance > 0 {
			slices = append(slices, models.AllocationSlice{AccountType: at, BalanceMinor: balance})
		}
	}

	today := timeseries.Day(s.now())
	monthly, err := s.totalOverTime(ctx, ids, timeseries.AddDays(today, -(monthlyPoints-1)), today)
	if err != nil {
		return nil, err
	}

	lastMinor := totalMinor
	if len(monthly) > 0 {
		lastMinor = monthly[len(monthly)-1].BalanceMinor
	}
	monthAgoMinor := lastMinor
	if len(monthly) >= monthlyPoints {
		monthAgoMinor = monthly[len(monthly)-monthlyPoints].BalanceMinor
	}

	yieldMinor := lastMinor - monthAgoMinor
	changePct := 0.0
	if monthAgoMinor != 0 {
		changePct = float64(yieldMinor) / float64(monthAgoMinor) * 100.0
	}

	return &models.DashboardSummary{
		TotalBalanceMinor:    totalMinor,
		ChangeVsLastMonthPct: changePct,
		MonthlyYieldMinor:    yieldMinor,
		ActiveAccounts:       active,
		AllocationByType:     slices,
	}, nil
}

// BalanceOverTime returns the aggregated daily net worth series for the
// requested period. MAX starts at the earliest snapshot on record, or
// today when the ledger is empty.
func (s *Service) BalanceOverTime(ctx context.Context, period models.BalancePeriod) ([]models.BalancePoint, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	today := timeseries.Day(s.now())
	start := today
	if days, ok := period.Days(); ok {
		start = timeseries.AddDays(today, -(days - 1))
	} else {
		earliestStr, err := s.store.EarliestSnapshotDate(ctx, nil)
		if err != nil {
			return nil, err
		}
		if earliestStr != "" {
			if start, err = timeseries.ParseDate(earliestStr); err != nil {
				return nil, err
			}
		}
	}

	return s.totalOverTime(ctx, accountIDs(accounts), start, today)
}

// totalOverTime resamples every account over [start, end] and sums the
// series elementwise. Days before an account's first snapshot contribute
// 0 to the total.
func (s *Service) totalOverTime(ctx context.Context, ids []string, start, end time.Time) ([]models.BalancePoint, error) {
	if end.Before(start) {
		return []models.BalancePoint{}, nil
	}

	points := timeseries.DaysBetween(start, end)
	startStr := timeseries.FormatDate(start)

	snapshots, err := s.store.SnapshotsBetween(ctx, ids, startStr, timeseries.FormatDate(end))
	if err != nil {
		return nil, err
	}
	seeds, err := s.store.LastSnapshotsBefore(ctx, ids, startStr)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string]map[string]int64)
	for _, snap := range snapshots {
		if byAccount[snap.AccountID] == nil {
			byAccount[snap.AccountID] = make(map[string]int64)
		}
		byAccount[snap.AccountID][snap.Date] = snap.BalanceMinor
	}

	perAccount := make([]timeseries.Series, 0, len(ids))
	for _, id := range ids {
		var seedBefore *int64
		if v, ok := seeds[id]; ok {
			seedBefore = &v
		}
		perAccount = append(perAccount, timeseries.Resample(byAccount[id], seedBefore, start, points))
	}

	totals := timeseries.Aggregate(points, perAccount...)
	out := make([]models.BalancePoint, points)
	for i, balance := range totals {
		out[i] = models.BalancePoint{
			Date:         timeseries.FormatDate(timeseries.AddDays(start, i)),
			BalanceMinor: balance,
		}
	}
	return out, nil
}

func accountIDs(accounts []*models.Account) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}
