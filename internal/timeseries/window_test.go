package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_TrailingSlice(t *testing.T) {
	full := Series{ptr(1), ptr(2), ptr(3), ptr(4), ptr(5)}

	assert.Equal(t, values(Series{ptr(4), ptr(5)}), values(Window(full, 2)))
	assert.Equal(t, values(full), values(Window(full, 5)))
	assert.Equal(t, values(full), values(Window(full, 99)))
	assert.Empty(t, Window(full, 0))
	assert.Empty(t, Window(full, -1))
}

func TestWindow_Containment(t *testing.T) {
	// A shorter window equals the corresponding suffix of a longer one.
	full := make(Series, 180)
	for i := range full {
		v := int64(i * 3)
		full[i] = &v
	}

	month := Window(full, 30)
	halfYear := Window(full, 180)

	require.Len(t, month, 30)
	assert.Equal(t, values(month), values(halfYear[len(halfYear)-30:]))
}

func TestDelta_FirstToLastKnown(t *testing.T) {
	// Scenario from the activity calculator: [none, none, 100, 130] → 30.
	assert.Equal(t, int64(30), Delta(Series{nil, nil, ptr(100), ptr(130)}))
}

func TestDelta_AbsentEndsYieldZero(t *testing.T) {
	assert.Equal(t, int64(0), Delta(Series{nil, nil, nil}))
	assert.Equal(t, int64(0), Delta(Series{}))
}

func TestDelta_SingleKnownValue(t *testing.T) {
	// First and last known coincide → delta 0.
	assert.Equal(t, int64(0), Delta(Series{nil, ptr(500), nil}))
}

func TestDelta_Negative(t *testing.T) {
	assert.Equal(t, int64(-75), Delta(Series{ptr(100), ptr(40), ptr(25)}))
}
