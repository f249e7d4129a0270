package blackjack

import (
	"blackjack-server/pkg/deck"
)

// Hand is the cards one party holds in a round, plus the stake riding on it
type Hand struct {
	Cards deck.Hand

	// Bet is the stake on the hand. Always zero for the dealer.
	Bet       int
	Doubled   bool
	FromSplit bool

	scored bool
	score  int
	soft   bool
}

// NewHand returns a hand with the stake and no cards
func NewHand(bet int) *Hand {
	return &Hand{
		Cards: make(deck.Hand, 0, 5),
		Bet:   bet,
	}
}

// AddCard appends a card and invalidates the cached score
func (h *Hand) AddCard(card *deck.Card) {
	h.Cards.AddCard(card)
	h.scored = false
}

// popCard removes the last card; used when splitting
func (h *Hand) popCard() *deck.Card {
	h.scored = false
	return h.Cards.Pop()
}

func (h *Hand) calculate() {
	if h.scored {
		return
	}

	total := 0
	aces := 0
	for _, card := range h.Cards {
		total += card.BaseValue()
		if card.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	h.score = total
	h.soft = aces > 0
	h.scored = true
}

// Score returns the best total of the hand
// Aces count 11 and drop to 1, one at a time, while the total is over 21
func (h *Hand) Score() int {
	h.calculate()
	return h.score
}

// IsSoft returns true if an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	h.calculate()
	return h.soft
}

// IsBlackjack returns true for a two card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Score() == 21
}

// IsNatural is a blackjack that was dealt, not made by splitting
func (h *Hand) IsNatural() bool {
	return !h.FromSplit && h.IsBlackjack()
}

// IsBusted returns true if the score is over 21
func (h *Hand) IsBusted() bool {
	return h.Score() > 21
}

// isFinished returns true when no more cards can be taken
func (h *Hand) isFinished() bool {
	return h.Score() >= 21
}

func (h *Hand) canSplit() bool {
	return len(h.Cards) == 2 && !h.FromSplit && h.Cards[0].Rank == h.Cards[1].Rank
}

func (h *Hand) String() string {
	return h.Cards.Pretty()
}
