package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand
// It holds no state and is safe to share between shoes and quest boards.
type Crypto struct{}

// Intn returns a number in [0, n)
// Like math/rand it panics if n <= 0; a failing system entropy source also panics.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(v.Int64())
}
