package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	var c Crypto
	found := make(map[int]int)
	for i := 0; i < 2000; i++ {
		found[c.Intn(4)]++
	}

	a.Len(found, 4)
	for v := range found {
		a.True(v >= 0 && v < 4, v)
	}

	a.Equal(0, c.Intn(1))
	a.Panics(func() { c.Intn(0) })
}
