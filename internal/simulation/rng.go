package simulation

// Linear-congruential generator parameters (Knuth MMIX). The recurrence and
// the state-to-value mappings are a compatibility contract: regression
// baselines depend on this exact sequence, so neither math/rand nor a
// different mapping can be substituted.
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1

	// A zero seed would lock the multiplicative part of the recurrence into
	// a degenerate orbit, so it is replaced with a fixed non-zero constant.
	zeroSeedReplacement = 0xDEADBEEFCAFEBABE

	// 2^64 as a float, used to map the raw state into [0,1).
	twoPow64 = 0x1p64
)

// Rand is a deterministic 64-bit LCG. Identical seeds produce identical
// output sequences for identical call order.
type Rand struct {
	state uint64
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = zeroSeedReplacement
	}
	return &Rand{state: seed}
}

func (r *Rand) next() uint64 {
	r.state = lcgMultiplier*r.state + lcgIncrement
	return r.state
}

// UniformInt advances the state once and returns an integer in [a, b].
func (r *Rand) UniformInt(a, b int) int {
	span := b - a + 1
	return a + int(float64(r.next())/twoPow64*float64(span))
}

// UniformFloat advances the state once and returns a value in [0, 1).
func (r *Rand) UniformFloat() float64 {
	return float64(r.next()) / twoPow64
}
