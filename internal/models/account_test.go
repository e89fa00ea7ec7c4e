package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountType(t *testing.T) {
	for _, known := range AccountTypes() {
		got, err := ParseAccountType(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, got)
	}

	// Case and whitespace are normalized.
	got, err := ParseAccountType("  Credit_Card ")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeCreditCard, got)

	_, err = ParseAccountType("bitcoin")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "bitcoin")
}

func TestAccountTypeSign(t *testing.T) {
	assert.Equal(t, -1, AccountTypeCreditCard.Sign())
	assert.Equal(t, -1, AccountTypeLoan.Sign())
	assert.Equal(t, 1, AccountTypeCurrent.Sign())
	assert.Equal(t, 1, AccountTypePension.Sign())
}

func TestAccountValidate(t *testing.T) {
	valid := Account{
		ID:                "acc-1",
		Name:              "Everyday",
		Type:              AccountTypeCurrent,
		CurrencyCode:      "GBP",
		NormalBalanceSign: 1,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Account)
	}{
		{"missing id", func(a *Account) { a.ID = " " }},
		{"missing name", func(a *Account) { a.Name = "" }},
		{"bad type", func(a *Account) { a.Type = "crypto" }},
		{"bad sign", func(a *Account) { a.NormalBalanceSign = 0 }},
		{"bad opened date", func(a *Account) { a.OpenedDate = "01/02/2024" }},
		{"bad closed date", func(a *Account) { a.ClosedDate = "2024-13-40" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}

func TestBalancePeriodDays(t *testing.T) {
	days, ok := Balance1M.Days()
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	days, ok = Balance6M.Days()
	assert.True(t, ok)
	assert.Equal(t, 183, days)

	days, ok = Balance1Y.Days()
	assert.True(t, ok)
	assert.Equal(t, 365, days)

	_, ok = BalanceMax.Days()
	assert.False(t, ok)

	_, err := ParseBalancePeriod("2Y")
	assert.Error(t, err)
}

func TestActivityPeriodDays(t *testing.T) {
	want := map[ActivityPeriod]int{Activity1W: 7, Activity1M: 30, Activity3M: 90, Activity6M: 180}
	for _, p := range ActivityPeriods() {
		assert.Equal(t, want[p], p.Days())
	}
	assert.Equal(t, ActivityFullDays, Activity6M.Days())
}
