package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_UnknownContributesZero(t *testing.T) {
	a := Series{ptr(10), nil, ptr(20)}
	b := Series{nil, ptr(5), ptr(5)}

	totals := Aggregate(3, a, b)

	assert.Equal(t, []int64{10, 5, 25}, totals)
}

func TestAggregate_EmptyRange(t *testing.T) {
	assert.Empty(t, Aggregate(0, Series{ptr(1)}))
	assert.Empty(t, Aggregate(-5))
}

func TestAggregate_NoAccounts(t *testing.T) {
	assert.Equal(t, []int64{0, 0, 0}, Aggregate(3))
}

func TestAggregate_Additivity(t *testing.T) {
	// aggregate(A ∪ B) == aggregate(A) + aggregate(B) for disjoint sets.
	setA := []Series{
		{ptr(100), ptr(110), nil},
		{nil, ptr(-40), ptr(-40)},
	}
	setB := []Series{
		{ptr(7), ptr(7), ptr(7)},
	}

	union := Aggregate(3, append(append([]Series{}, setA...), setB...)...)
	partA := Aggregate(3, setA...)
	partB := Aggregate(3, setB...)

	require.Len(t, union, 3)
	for i := range union {
		assert.Equal(t, partA[i]+partB[i], union[i], "index %d", i)
	}
}

func TestAggregate_ShortSeriesPadWithZero(t *testing.T) {
	totals := Aggregate(4, Series{ptr(3)}, Series{ptr(1), ptr(1)})
	assert.Equal(t, []int64{4, 1, 0, 0}, totals)
}

func TestAggregate_NegativeBalances(t *testing.T) {
	// Debt accounts carry negative minor values and net against assets.
	totals := Aggregate(2, Series{ptr(1000), ptr(1000)}, Series{ptr(-250), ptr(-300)})
	assert.Equal(t, []int64{750, 700}, totals)
}
