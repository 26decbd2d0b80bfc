package city

const golden = 0x9E3779B97F4A7C15

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hashString folds s into a seeded 64-bit hash.
func hashString(seed uint64, s string) uint64 {
	h := mix64(seed + golden)
	for i := 0; i < len(s); i++ {
		h = mix64((h ^ uint64(s[i])) + golden)
	}
	return h
}

// unitFloat maps a hash to [0,1).
func unitFloat(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

func clampF(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// Rand is a splitmix64 stream. The same seed always yields the same city.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) *Rand {
	return &Rand{state: seed}
}

func (r *Rand) NextU64() uint64 {
	r.state += golden
	return mix64(r.state)
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	return unitFloat(r.NextU64())
}

// RangeF returns a value in [lo,hi). An empty range returns lo.
func (r *Rand) RangeF(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.Float64()
}
