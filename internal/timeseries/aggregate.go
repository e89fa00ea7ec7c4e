package timeseries

// Aggregate sums per-account dense series elementwise into a portfolio
// total of the given length. Unknown days contribute 0: an account with
// no data on a day is treated as not yet part of the portfolio, so the
// total is always defined. Series shorter than length contribute 0 for
// the missing tail; a non-positive length yields an empty total.
func Aggregate(length int, perAccount ...Series) []int64 {
	if length <= 0 {
		return []int64{}
	}

	totals := make([]int64, length)
	for _, series := range perAccount {
		for i := 0; i < length && i < len(series); i++ {
			totals[i] += series.ValueOrZero(i)
		}
	}
	return totals
}
