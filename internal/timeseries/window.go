package timeseries

// Window returns the trailing days entries of a dense series. The slice
// aliases the full series, so overlapping windows are guaranteed to agree
// on shared dates; the calculator never re-queries storage. Day counts
// larger than the series clamp to the whole series.
func Window(full Series, days int) Series {
	if days <= 0 {
		return Series{}
	}
	if days >= len(full) {
		return full
	}
	return full[len(full)-days:]
}

// Delta computes lastKnown − firstKnown over a window. When the window
// has no known value at either end the delta is 0 — "no comparable data",
// which is the normal state for newly opened accounts, not an error.
func Delta(window Series) int64 {
	first, okFirst := window.FirstKnown()
	last, okLast := window.LastKnown()
	if !okFirst || !okLast {
		return 0
	}
	return last - first
}
