package roulette

import (
	"math/rand"
	"sync"
	"time"
)

// Spinner picks the pocket a spin lands on.
type Spinner interface {
	Spin() Pocket
}

// RandomSpinner draws uniformly from the wheel. It is safe for concurrent use.
type RandomSpinner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSpinner seeds a spinner from the clock.
func NewRandomSpinner() *RandomSpinner {
	return NewSeededSpinner(time.Now().UnixNano())
}

// NewSeededSpinner returns a spinner with a fixed seed, for reproducible runs.
func NewSeededSpinner(seed int64) *RandomSpinner {
	return &RandomSpinner{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSpinner) Spin() Pocket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Wheel[s.rng.Intn(len(Wheel))]
}

// FixedSpinner always lands on the same pocket.
type FixedSpinner Pocket

func (f FixedSpinner) Spin() Pocket {
	return Pocket(f)
}
