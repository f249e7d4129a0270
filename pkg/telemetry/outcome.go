// Package telemetry holds the sinks notified once per settled blackjack round
package telemetry

import (
	"time"

	"blackjack-server/pkg/deck"
)

// Result is the result of a hand or a round
type Result string

// Result constants
const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultPush Result = "push"
)

// HandResult is how a single player hand was settled
type HandResult struct {
	Cards       []*deck.Card `json:"cards"`
	Score       int          `json:"score"`
	Bet         int          `json:"bet"`
	Payout      int          `json:"payout"`
	Result      Result       `json:"result"`
	IsBlackjack bool         `json:"isBlackjack"`
	IsBusted    bool         `json:"isBusted"`
	WasDoubled  bool         `json:"wasDoubled"`
}

// Outcome is the payload sent to every Recorder when a round settles
type Outcome struct {
	RoundID string    `json:"roundId"`
	Time    time.Time `json:"time"`

	// Result is the overall result; with a split it is the majority of the hands
	Result Result `json:"result"`
	Won    bool   `json:"won"`
	Lost   bool   `json:"lost"`
	Push   bool   `json:"push"`

	// IsBlackjack is a natural on the unsplit main hand
	IsBlackjack bool `json:"isBlackjack"`
	// IsBusted is true if the main hand busted
	IsBusted      bool `json:"isBusted"`
	WasDoubled    bool `json:"wasDoubled"`
	WasSplit      bool `json:"wasSplit"`
	UsedInsurance bool `json:"usedInsurance"`
	InsuranceWon  bool `json:"insuranceWon"`

	// Comeback is a winning round after the economy had to rescue an empty balance
	Comeback bool `json:"comeback"`

	// Payout is the total credited for the player hands (stake included)
	Payout int `json:"payout"`
	// BetLost is the sum of the stakes of the hands that lost
	BetLost         int `json:"betLost"`
	TotalBet        int `json:"totalBet"`
	InsuranceStake  int `json:"insuranceStake"`
	InsurancePayout int `json:"insurancePayout"`

	DealerCards []*deck.Card `json:"dealerCards"`
	DealerScore int          `json:"dealerScore"`
	Hands       []HandResult `json:"hands"`
}

// Net returns the chip change of the round, insurance included
func (o Outcome) Net() int {
	return o.Payout + o.InsurancePayout - o.TotalBet - o.InsuranceStake
}

// MainHand returns the first player hand, or an empty result if there are none
func (o Outcome) MainHand() HandResult {
	if len(o.Hands) == 0 {
		return HandResult{}
	}

	return o.Hands[0]
}

// DoubleWin returns true if a doubled hand won the round
func (o Outcome) DoubleWin() bool {
	return o.WasDoubled && o.Won
}

// SplitWin returns true if every hand of a split round won
func (o Outcome) SplitWin() bool {
	if !o.WasSplit {
		return false
	}

	for _, h := range o.Hands {
		if h.Result != ResultWin {
			return false
		}
	}

	return true
}
