package resolver

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the resolver draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// globalRand uses the process-wide math/rand/v2 source, which is safe for concurrent use
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// lockedRand serialises access to a caller supplied source
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewSeededRand returns a deterministic PCG source
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// choose picks one element uniformly
func choose[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
