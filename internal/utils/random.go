package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Random provides a deterministic pseudo-random number generator with
// convenient methods for common generation tasks. It's designed to be
// reproducible given the same seed: the same seed and the same sequence
// of calls always yield the same values.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a new Random instance with the given seed.
// If seed is 0, a cryptographically random seed is generated.
func NewRandom(seed int64) *Random {
	var actualSeed uint64
	if seed == 0 {
		actualSeed = generateRandomSeed()
	} else {
		actualSeed = uint64(seed)
	}

	return &Random{
		rng:  rand.New(rand.NewPCG(actualSeed, actualSeed^0xDEADBEEF)),
		seed: actualSeed,
	}
}

// generateRandomSeed creates a cryptographically random seed
func generateRandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Fallback to time-based seed if crypto/rand fails
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// IntN returns a pseudo-random int in [0, n)
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Float64Range returns a pseudo-random float64 in [min, max)
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Probability returns true with the given probability (0.0 to 1.0)
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// PickString returns a random string from the slice
func (r *Random) PickString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return slice[r.IntN(len(slice))]
}

// PickInt returns a random int from the slice
func (r *Random) PickInt(slice []int) int {
	if len(slice) == 0 {
		return 0
	}
	return slice[r.IntN(len(slice))]
}

// WeightedPick selects an index based on weights
// weights[i] is the relative weight for index i
func (r *Random) WeightedPick(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	if total <= 0 {
		return r.IntN(len(weights))
	}

	target := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return i
		}
	}

	// Floating point slack lands on the last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// NormalFloat64 returns a normally distributed float64 with mean 0 and stddev 1
func (r *Random) NormalFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// NormalFloat64Range returns a normally distributed float64 with given mean and stddev
func (r *Random) NormalFloat64Range(mean, stddev float64) float64 {
	return mean + r.NormalFloat64()*stddev
}

// Poisson returns a Poisson-distributed count with the given mean.
// Uses Knuth's multiplication method, which is fine for the small
// means (< 30) the generators use.
func (r *Random) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Gamma returns a Gamma(shape, 1) variate using Marsaglia-Tsang.
func (r *Random) Gamma(shape float64) float64 {
	if shape <= 0 {
		return 0
	}
	if shape < 1 {
		// Boost to shape+1 and scale back down
		u := r.Float64()
		return r.Gamma(shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := r.NormalFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// Beta returns a Beta(a, b) variate in [0, 1].
func (r *Random) Beta(a, b float64) float64 {
	x := r.Gamma(a)
	y := r.Gamma(b)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// Sample returns k distinct indexes drawn from [0, n) in draw order.
// k is capped at n.
func (r *Random) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	// Partial Fisher-Yates: the first k slots become the sample
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < k; i++ {
		j := i + r.rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Clip bounds v to [min, max]
func Clip(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
