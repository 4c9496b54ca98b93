package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// Sample is the outcome of a single draw.
type Sample struct {
	Questions []entities.MCQ
	Partial   bool // fewer questions than requested
	NoMatches bool // nothing to draw from
}

// Sampler draws random questions without replacement.
// It is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler. A zero seed seeds from the clock.
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample picks min(k, len(records)) distinct records uniformly at random and
// returns them in random order. The input slice is left untouched.
func (s *Sampler) Sample(records []entities.MCQ, k int) (Sample, error) {
	if k <= 0 {
		return Sample{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, k)
	}

	n := len(records)
	if n == 0 {
		return Sample{Questions: []entities.MCQ{}, Partial: true, NoMatches: true}, nil
	}

	out := append([]entities.MCQ(nil), records...)
	take := min(k, n)

	// Partial Fisher-Yates: after i steps out[:i] is a uniform sample.
	for i := 0; i < take; i++ {
		j := i + s.rng.Intn(n-i)
		out[i], out[j] = out[j], out[i]
	}

	return Sample{
		Questions: out[:take:take],
		Partial:   n < k,
	}, nil
}
