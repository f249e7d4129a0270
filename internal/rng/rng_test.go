package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	a.Equal(int64(42), s1.Seed())
	for i := 0; i < 100; i++ {
		a.Equal(s1.Intn(52), s2.Intn(52))
	}

	a.NotEqual(int64(0), NewSeeded(0).Seed())
}

func TestNew(t *testing.T) {
	a := assert.New(t)
	_, ok := New(KindCrypto, 0).(Crypto)
	a.True(ok)

	_, ok = New("math", 1).(*Seeded)
	a.True(ok)
}
