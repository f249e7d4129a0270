package rng

import (
	"math/rand"
	"time"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded wraps math/rand with a known seed
// It is not safe for concurrent use, which matches how a single shoe uses it
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a math/rand backed generator
// A seed of 0 will be replaced with the current time
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Seed returns the seed the generator was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Generator kinds accepted by New
const (
	KindCrypto = "crypto"
	KindSeeded = "seeded"
)

// New returns the generator named by kind (KindCrypto, or anything else for math/rand)
func New(kind string, seed int64) Generator {
	if kind == KindCrypto {
		return Crypto{}
	}

	return NewSeeded(seed)
}
