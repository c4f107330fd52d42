package memory

import "math/rand"

// Sampler draws k distinct indices from the half-open range [lo, hi).
// Injected so tests can substitute a deterministic implementation.
type Sampler interface {
	Sample(k, lo, hi int) []int
}

// RandSampler draws uniformly without replacement.
type RandSampler struct{}

func (RandSampler) Sample(k, lo, hi int) []int {
	width := hi - lo
	if width <= 0 || k <= 0 {
		return nil
	}
	if k > width {
		k = width
	}

	picked := rand.Perm(width)[:k]
	for i := range picked {
		picked[i] += lo
	}
	return picked
}
