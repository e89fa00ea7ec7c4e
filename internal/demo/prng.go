// Package demo generates deterministic synthetic balance histories for
// demo mode. Everything here is reproducible: the same account id,
// category, target balance, and date always produce the same series.
package demo

// fnv1a32 hashes a string to a 32-bit seed (FNV-1a). Not cryptographic;
// it only needs to give distinct accounts uncorrelated PRNG seeds.
func fnv1a32(s string) uint32 {
	const (
		offsetBasis uint32 = 2166136261
		prime       uint32 = 16777619
	)
	h := offsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// SeedFromString derives a stable PRNG seed from an identifier.
func SeedFromString(id string) uint32 {
	return fnv1a32(id)
}

// PRNG is a mulberry32 generator: a small 32-bit state mixer with a full
// 2^32 period, far beyond the few hundred draws a history needs. It must
// never be shared across accounts or requests; construct one per
// generation call.
type PRNG struct {
	state uint32
}

// NewPRNG creates a generator from a 32-bit seed.
func NewPRNG(seed uint32) *PRNG {
	return &PRNG{state: seed}
}

// Float64 returns the next draw, uniformly distributed in [0, 1).
func (p *PRNG) Float64() float64 {
	p.state += 0x6D2B79F5
	z := p.state
	z = (z ^ (z >> 15)) * (z | 1)
	z = (z + (z^(z>>7))*(z|61)) ^ z
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IntBetween returns an integer in [min, max] inclusive. When min >= max
// it returns min without consuming a draw, keeping call counts stable for
// degenerate ranges.
func (p *PRNG) IntBetween(min, max int) int {
	if min >= max {
		return min
	}
	return min + int(p.Float64()*float64(max-min+1))
}
