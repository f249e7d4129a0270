package blackjack

import (
	"time"

	"blackjack-server/pkg/deck"

	"github.com/google/uuid"
)

// Round is one betting-to-payout cycle: the dealer hand, the player hands and the insurance side bet
type Round struct {
	ID        string
	StartedAt time.Time

	Dealer *Hand
	// Hands holds the player hands, the main hand first. A second hand only exists after a split.
	Hands []*Hand
	// Active is the index of the hand taking decisions during the player turn
	Active int

	InsuranceOffered bool
	InsuranceStake   int
	InsurancePayout  int
}

func newRound(bet int) *Round {
	return &Round{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Dealer:    NewHand(0),
		Hands:     []*Hand{NewHand(bet)},
		Active:    0,
	}
}

// MainHand returns the first player hand
func (r *Round) MainHand() *Hand {
	return r.Hands[0]
}

// SplitHand returns the second player hand or nil if the round was not split
func (r *Round) SplitHand() *Hand {
	if len(r.Hands) < 2 {
		return nil
	}

	return r.Hands[1]
}

// IsSplit returns true if the main hand was split
func (r *Round) IsSplit() bool {
	return len(r.Hands) > 1
}

func (r *Round) activeHand() *Hand {
	return r.Hands[r.Active]
}

// UpCard returns the dealer's face up card
// The first dealer card is the hole card
func (r *Round) UpCard() *deck.Card {
	if len(r.Dealer.Cards) < 2 {
		return nil
	}

	return r.Dealer.Cards[1]
}

// HoleCard returns the dealer's face down card
func (r *Round) HoleCard() *deck.Card {
	return r.Dealer.Cards.FirstCard()
}

func (r *Round) allBusted() bool {
	for _, hand := range r.Hands {
		if !hand.IsBusted() {
			return false
		}
	}

	return true
}

// TotalBet is the sum of the stakes on the player hands, doubles included
func (r *Round) TotalBet() int {
	total := 0
	for _, hand := range r.Hands {
		total += hand.Bet
	}

	return total
}
