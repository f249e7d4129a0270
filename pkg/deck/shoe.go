package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"

	"blackjack-server/internal/rng"

	"github.com/sirupsen/logrus"
)

// ShoeSize is the number of cards in a full shoe
const ShoeSize = 52

// Shoe is the supply of cards available to deal from.
// It holds the 52 distinct cards and a cursor marking the next card to deal.
type Shoe struct {
	cards  []*Card
	cursor int

	rng     rng.Generator
	logger  logrus.FieldLogger
	stacked []*Card

	// Reshuffles counts how many times Draw() had to reshuffle an exhausted shoe
	Reshuffles int
}

// NewShoe returns a new, shuffled shoe
// If gen is nil, a time-seeded math/rand generator is used
func NewShoe(logger logrus.FieldLogger, gen rng.Generator) *Shoe {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if gen == nil {
		gen = rng.NewSeeded(0)
	}

	s := &Shoe{
		rng:    gen,
		logger: logger,
	}

	s.Reset()
	return s
}

func buildCards() []*Card {
	cards := make([]*Card, 0, ShoeSize)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// Reset repopulates the shoe with all 52 cards and shuffles them.
// Any cards still held by hands are forgotten; callers clear their hands first.
func (s *Shoe) Reset() {
	s.cards = buildCards()
	s.cursor = 0

	for j := len(s.cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}

	if len(s.stacked) > 0 {
		s.applyStack()
	}
}

// Stack arranges for the given cards to be on top, in order, after the next Reset().
// It is meant for tests and replays that need a known deal.
func (s *Shoe) Stack(cards ...*Card) {
	s.stacked = cards
}

func (s *Shoe) applyStack() {
	top := make([]*Card, 0, ShoeSize)
	used := make(map[int]bool, len(s.stacked))
	for _, want := range s.stacked {
		for i, card := range s.cards {
			if !used[i] && card.Equal(want) {
				used[i] = true
				top = append(top, card)
				break
			}
		}
	}

	for i, card := range s.cards {
		if !used[i] {
			top = append(top, card)
		}
	}

	s.cards = top
	s.stacked = nil
}

// Draw will draw the next card
// If the shoe is exhausted it is reset and reshuffled first, so Draw never fails
func (s *Shoe) Draw() *Card {
	if s.cursor >= len(s.cards) {
		s.Reshuffles++
		s.logger.WithField("reshuffles", s.Reshuffles).Warn("shoe exhausted, reshuffling")
		s.Reset()
	}

	card := s.cards[s.cursor]
	s.cursor++

	return card
}

// CardsLeft returns the number of cards left in the shoe
func (s *Shoe) CardsLeft() int {
	return len(s.cards) - s.cursor
}

// Cursor returns the index of the next card to deal
func (s *Shoe) Cursor() int {
	return s.cursor
}

// HashCode returns a SHA1 hash code of the remaining cards in the shoe.
func (s *Shoe) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range s.cards[s.cursor:] {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
