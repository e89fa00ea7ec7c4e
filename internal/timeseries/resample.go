package timeseries

import "time"

// Series is a dense daily balance series in minor currency units. A nil
// entry means no balance was known at or before that day. Forward-fill
// guarantees that once an entry is known, every later entry is known, so
// the unknown region (if any) is a contiguous prefix.
type Series []*int64

// Resample builds a dense daily series of length days starting at start.
//
// observations maps YYYY-MM-DD dates to recorded balances; seedBefore is
// the last balance known strictly before start (nil when the account has
// no earlier history). The running value starts at seedBefore and is
// replaced whenever a day carries an observation. Single left-to-right
// pass, O(length), independent of observation count.
//
// Storage guarantees at most one snapshot per (account, date); were that
// violated upstream, the map collapses duplicates to last-write-wins
// before this function ever sees them.
func Resample(observations map[string]int64, seedBefore *int64, start time.Time, length int) Series {
	if length <= 0 {
		return Series{}
	}

	last := seedBefore
	series := make(Series, 0, length)
	day := Day(start)
	for i := 0; i < length; i++ {
		if v, ok := observations[FormatDate(day)]; ok {
			value := v
			last = &value
		}
		series = append(series, last)
		day = AddDays(day, 1)
	}
	return series
}

// FirstKnown returns the earliest known value in the series.
func (s Series) FirstKnown() (int64, bool) {
	for _, v := range s {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// LastKnown returns the latest known value in the series.
func (s Series) LastKnown() (int64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != nil {
			return *s[i], true
		}
	}
	return 0, false
}

// ValueOrZero returns the value at index i, or 0 when unknown or out of
// range. Zero-for-unknown is the portfolio aggregation policy: an account
// with no data yet contributes nothing, it does not poison the total.
func (s Series) ValueOrZero(i int) int64 {
	if i < 0 || i >= len(s) || s[i] == nil {
		return 0
	}
	return *s[i]
}
