package deck

import "strings"

// Hand represents an ordered collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card *Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Pop removes and returns the last card, or nil if the hand is empty
func (h *Hand) Pop() *Card {
	n := len(*h)
	if n == 0 {
		return nil
	}

	card := (*h)[n-1]
	*h = (*h)[:n-1]
	return card
}

// FirstCard returns the first card in the hand or nil if the cards are empty
func (h Hand) FirstCard() *Card {
	if len(h) == 0 {
		return nil
	}

	return h[0]
}

// LastCard returns the last card in the hand or nil if the cards are empty
func (h Hand) LastCard() *Card {
	n := len(h)
	if n == 0 {
		return nil
	}

	return h[n-1]
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Pretty returns the cards using their display names (e.g., "A♠ K♥")
func (h Hand) Pretty() string {
	s := make([]string, len(h))
	for i, card := range h {
		s[i] = card.String()
	}

	return strings.Join(s, " ")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
