package blackjack

// Phase is the phase of the current round
type Phase string

// Phase constants
const (
	// PhaseBetting is waiting for a bet; the previous round, if any, is closed
	PhaseBetting Phase = "betting"

	// PhaseDealing is dealing the first four cards
	PhaseDealing Phase = "dealing"

	// PhaseInsuranceOffer means the dealer shows an ace and the player must take or decline insurance
	PhaseInsuranceOffer Phase = "insurance-offer"

	// PhasePlayerTurn is waiting on a player decision for the active hand
	PhasePlayerTurn Phase = "player-turn"

	// PhaseDealerTurn is the dealer drawing to 17
	PhaseDealerTurn Phase = "dealer-turn"

	// PhaseSettlement means the round has been paid out
	PhaseSettlement Phase = "settlement"
)

// IsRoundOpen returns true while a bet is at stake and the round has not settled
func (p Phase) IsRoundOpen() bool {
	switch p {
	case PhaseDealing, PhaseInsuranceOffer, PhasePlayerTurn, PhaseDealerTurn:
		return true
	}

	return false
}
