package demo

import (
	"math"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

// minNoiseScaleMajor floors the volatility scale (in major units) so
// near-zero balances still move instead of flatlining.
const minNoiseScaleMajor = 250.0

// History is a synthetic dense daily series. Every value is known by
// construction; the last value equals the requested target exactly.
type History struct {
	StartDate time.Time
	Values    []int64 // minor units, one per day, oldest first
}

// EndDate returns the date of the last value.
func (h History) EndDate() time.Time {
	return timeseries.AddDays(h.StartDate, len(h.Values)-1)
}

// Generator produces plausible balance histories from per-category
// profiles. Profiles are data: adding a category is a config change.
type Generator struct {
	profiles map[string]common.DemoProfile
}

// NewGenerator creates a Generator. Nil profiles fall back to the
// built-in defaults.
func NewGenerator(profiles map[string]common.DemoProfile) *Generator {
	if profiles == nil {
		profiles = common.DefaultDemoProfiles()
	}
	return &Generator{profiles: profiles}
}

// Generate builds a history for an account ending at targetMinor on
// today. The walk runs backward from the anchor: each previous day is the
// current balance minus noise drawn in (−1, 1), scaled by the category
// volatility and the balance magnitude. Values are clamped to the
// account's normal balance sign (assets never dip below zero, debts never
// rise above it) and rounded half-away-from-zero to whole minor units.
//
// Output is bit-for-bit reproducible for identical inputs: the PRNG is
// seeded from the account id alone and is private to this call.
func (g *Generator) Generate(accountID string, category models.AccountType, targetMinor int64, sign int, today time.Time) (History, error) {
	profile, ok := g.profiles[string(category)]
	if !ok {
		return History{}, models.NewValidationError("category", string(category), "no demo profile for account type")
	}
	if sign != 1 && sign != -1 {
		return History{}, models.NewValidationError("sign", sign, "must be -1 or 1")
	}

	prng := NewPRNG(SeedFromString(accountID))
	days := prng.IntBetween(profile.MinHistoryDays, profile.MaxHistoryDays)
	if days < 1 {
		days = 1
	}

	values := make([]int64, days)
	values[days-1] = targetMinor

	balance := float64(targetMinor) / 100.0 // walk in major units
	for i := days - 2; i >= 0; i-- {
		noise := prng.Float64()*2 - 1
		scale := math.Max(math.Abs(balance), minNoiseScaleMajor)
		balance -= noise * profile.Volatility * scale

		if sign > 0 && balance < 0 {
			balance = 0
		}
		if sign < 0 && balance > 0 {
			balance = 0
		}

		values[i] = roundToMinor(balance)
	}

	start := timeseries.AddDays(timeseries.Day(today), -(days - 1))
	return History{StartDate: start, Values: values}, nil
}

// roundToMinor converts a major-unit amount to minor units, rounding
// half away from zero. math.Round implements exactly that policy, so
// repeated computation on identical floats yields identical integers.
func roundToMinor(major float64) int64 {
	return int64(math.Round(major * 100))
}
