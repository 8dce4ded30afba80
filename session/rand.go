package session

import "math/rand/v2"

// Rand is the random source the loader draws from.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Default draws from the process-wide generator.
func Default() Rand { return globalRand{} }

// NewSeeded returns a reproducible source.
func NewSeeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
