// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so that every random decision in a
// game comes from one reproducible stream.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService creates a service with the given seed.
// A zero seed uses the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a number in [min, max). A reversed range is swapped.
func (s *PRNGService) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + s.rng.Float64()*(max-min)
}

// ChooseWeighted picks an index with probability proportional to its weight.
// Negative weights count as zero. When the total is not positive the first
// index is returned; -1 means weights is empty.
func (s *PRNGService) ChooseWeighted(weights []float64) int {
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
		return 0
	}

	return pickWeighted(weights, s.rng.Float64()*total)
}

// pickWeighted walks the positive weights until their running sum passes r.
func pickWeighted(weights []float64, r float64) int {
	upto := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if upto+w > r {
			return i
		}
		upto += w
		last = i
	}

	// Floating point rounding can leave r at the very top of the range.
	return last
}

// PickDistinct returns k distinct indices from [0, n) in random order.
// If k > n, all n indices are returned.
func (s *PRNGService) PickDistinct(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	return s.rng.Perm(n)[:k]
}
