package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("2♥", (&Card{Rank: 2, Suit: Hearts}).String())
	a.Equal("10♣", (&Card{Rank: 10, Suit: Clubs}).String())
	a.Equal("J♣", (&Card{Rank: Jack, Suit: Clubs}).String())
	a.Equal("Q♦", (&Card{Rank: Queen, Suit: Diamonds}).String())
	a.Equal("K♠", (&Card{Rank: King, Suit: Spades}).String())
	a.Equal("A♠", (&Card{Rank: Ace, Suit: Spades}).String())
}

func TestCard_BaseValue(t *testing.T) {
	test := func(t *testing.T, card string, expects int) {
		t.Helper()
		assert.Equal(t, expects, CardFromString(card).BaseValue(), card)
	}

	test(t, "2c", 2)
	test(t, "9d", 9)
	test(t, "10h", 10)
	test(t, "11s", 10)
	test(t, "12s", 10)
	test(t, "13s", 10)
	test(t, "14s", 11)
}

func TestCard_IsRed(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("2h").IsRed())
	a.True(CardFromString("2d").IsRed())
	a.False(CardFromString("2c").IsRed())
	a.False(CardFromString("2s").IsRed())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Nil(CardFromString(""))
	a.Equal(&Card{Rank: Ace, Suit: Spades}, CardFromString("14s"))
	a.Equal(&Card{Rank: 10, Suit: Hearts}, CardFromString("10H"))
	a.Panics(func() {
		CardFromString("1s")
	})
	a.Panics(func() {
		CardFromString("15s")
	})
	a.Panics(func() {
		CardFromString("2x")
	})
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)
	cards := CardsFromString("2c, 10d,14s")
	a.Equal(3, len(cards))
	a.Equal("2c,10d,14s", CardsToString(cards))
	a.Equal("", CardsToString(CardsFromString("")))
	a.Equal("", CardToString(nil))
}
