package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrNotEnoughKeys is returned when more keys are requested than available.
var ErrNotEnoughKeys = errors.New("sample larger than population")

// NewRand returns a PCG-backed source. A zero seed seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Keys selects n distinct elements of keys uniformly at random.
// The input slice is not modified.
func Keys[K any](keys []K, n int, rnd *rand.Rand) ([]K, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid sample size: %d", n)
	}
	if n > len(keys) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrNotEnoughKeys, n, len(keys))
	}
	if rnd == nil {
		rnd = NewRand(0)
	}

	pool := make([]K, len(keys))
	copy(pool, keys)

	// partial Fisher-Yates: the first n slots end up as the sample
	for i := 0; i < n; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n:n], nil
}
