package scoring

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Confidence placeholder range, [ConfidenceMin, ConfidenceMax).
const (
	ConfidenceMin = 82
	ConfidenceMax = 97
)

// ConfidenceSource supplies the displayed confidence value.
//
// The value is a presentation placeholder. It is not derived from the metrics and
// is not a calibrated probability.
type ConfidenceSource interface {
	Confidence() int
}

// RandomConfidence draws uniformly from [ConfidenceMin, ConfidenceMax).
// It is safe for concurrent use.
type RandomConfidence struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomConfidence returns a source seeded with seed, or with the current time
// when seed is 0.
func NewRandomConfidence(seed uint64) *RandomConfidence {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomConfidence{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (c *RandomConfidence) Confidence() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConfidenceMin + c.rng.IntN(ConfidenceMax-ConfidenceMin)
}

// FixedConfidence always reports the same value. Useful for tests and golden output.
type FixedConfidence int

func (c FixedConfidence) Confidence() int { return int(c) }
