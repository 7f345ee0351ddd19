package discount

import "hash/fnv"

const (
	sm64Gamma = 0x9E3779B97F4A7C15
	sm64Mix1  = 0xBF58476D1CE4E5B9
	sm64Mix2  = 0x94D049BB133111EB
)

// A seededRand is a splitmix64 stream seeded from a string key via
// FNV-1a. The exact output sequence is a compatibility contract:
// changing the hash or the mix constants reshuffles which products
// get discounted, a user-visible change.
type seededRand struct {
	state uint64
}

func newSeededRand(key string) *seededRand {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &seededRand{state: h.Sum64()}
}

func (r *seededRand) next() uint64 {
	r.state += sm64Gamma
	z := r.state
	z = (z ^ (z >> 30)) * sm64Mix1
	z = (z ^ (z >> 27)) * sm64Mix2
	return z ^ (z >> 31)
}

// Float64 returns the next stream value in [0, 1).
func (r *seededRand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}
