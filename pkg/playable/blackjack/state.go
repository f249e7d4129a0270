package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/telemetry"
)

// HandState is the presentation of a hand
type HandState struct {
	// Cards holds nil for a face down card
	Cards       []*deck.Card `json:"cards"`
	Score       int          `json:"score"`
	IsSoft      bool         `json:"isSoft"`
	IsBlackjack bool         `json:"isBlackjack"`
	IsBusted    bool         `json:"isBusted"`
	Bet         int          `json:"bet"`
	Doubled     bool         `json:"doubled"`
}

// GameState is the snapshot a presentation layer reads after each command
type GameState struct {
	Name    string `json:"name"`
	RoundID string `json:"roundId,omitempty"`
	Phase   Phase  `json:"phase"`

	PlayerHand *HandState `json:"playerHand"`
	SplitHand  *HandState `json:"splitHand"`
	DealerHand *HandState `json:"dealerHand"`
	ActiveHand int        `json:"activeHand"`

	// CurrentBet is the stake of the main hand in play, or the pending bet while betting
	CurrentBet       int  `json:"currentBet"`
	PendingBet       int  `json:"pendingBet"`
	InsuranceOffered bool `json:"insuranceOffered"`
	InsuranceStake   int  `json:"insuranceStake"`
	Balance          int  `json:"balance"`
	CardsLeft        int  `json:"cardsLeft"`

	Actions     []Action           `json:"actions"`
	LastOutcome *telemetry.Outcome `json:"lastOutcome"`
	Options     Options            `json:"options"`
}

func newHandState(h *Hand) *HandState {
	if h == nil {
		return nil
	}

	return &HandState{
		Cards:       h.Cards.Clone(),
		Score:       h.Score(),
		IsSoft:      h.IsSoft(),
		IsBlackjack: h.IsBlackjack(),
		IsBusted:    h.IsBusted(),
		Bet:         h.Bet,
		Doubled:     h.Doubled,
	}
}

// hideHoleCard returns true while the dealer's first card must stay face down
func (g *Game) hideHoleCard() bool {
	switch g.phase {
	case PhaseDealing, PhaseInsuranceOffer, PhasePlayerTurn:
		return true
	}

	return false
}

func (g *Game) dealerState() *HandState {
	dealer := g.round.Dealer
	if !g.hideHoleCard() || len(dealer.Cards) < 2 {
		return newHandState(dealer)
	}

	shown := NewHand(0)
	for _, card := range dealer.Cards[1:] {
		shown.AddCard(card)
	}

	state := newHandState(shown)
	state.Cards = append([]*deck.Card{nil}, state.Cards...)
	state.IsBlackjack = false
	return state
}

// State returns the presentation snapshot
// The dealer's hole card is masked until the dealer turn.
func (g *Game) State() *GameState {
	state := &GameState{
		Name:        g.Name(),
		Phase:       g.phase,
		CurrentBet:  g.pendingBet,
		PendingBet:  g.pendingBet,
		CardsLeft:   g.shoe.CardsLeft(),
		Actions:     g.AvailableActions(),
		LastOutcome: g.lastOutcome,
		Options:     g.options,
	}

	balance, err := g.economy.Balance()
	if err != nil {
		g.logger.WithError(err).Error("could not read balance")
	}
	state.Balance = balance

	if r := g.round; r != nil {
		state.RoundID = r.ID
		state.PlayerHand = newHandState(r.MainHand())
		state.SplitHand = newHandState(r.SplitHand())
		state.DealerHand = g.dealerState()
		state.ActiveHand = r.Active
		state.CurrentBet = r.MainHand().Bet
		state.InsuranceOffered = r.InsuranceOffered
		state.InsuranceStake = r.InsuranceStake
	}

	return state
}
