package blackjack

import (
	"encoding/json"
	"testing"

	"blackjack-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestGame_StateWhileBetting(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 1000, "")

	state := tt.game.State()
	a.Equal(PhaseBetting, state.Phase)
	a.Equal("", state.RoundID)
	a.Nil(state.PlayerHand)
	a.Nil(state.SplitHand)
	a.Nil(state.DealerHand)
	a.Equal(10, state.CurrentBet)
	a.Equal(10, state.PendingBet)
	a.Equal(1000, state.Balance)
	a.Equal(52, state.CardsLeft)
	a.Equal(DefaultOptions(), state.Options)

	res, err := tt.game.GetState()
	a.NoError(err)
	a.Equal("game", res.Key)
	a.Equal("blackjack", res.Value)
	a.IsType(&GameState{}, res.Data)
}

func TestGame_StateMasksHoleCard(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,13d,9h,14s")

	state := tt.game.State()
	a.Equal(PhaseInsuranceOffer, state.Phase)
	a.True(state.InsuranceOffered)
	a.Equal(tt.game.Round().ID, state.RoundID)

	a.Len(state.DealerHand.Cards, 2)
	a.Nil(state.DealerHand.Cards[0])
	a.Equal(deck.CardFromString("14s"), state.DealerHand.Cards[1])
	a.Equal(11, state.DealerHand.Score)
	a.False(state.DealerHand.IsBlackjack)

	a.Equal(19, state.PlayerHand.Score)
	a.Equal(10, state.PlayerHand.Bet)
	a.Equal(990, state.Balance)

	b, err := json.Marshal(state)
	a.NoError(err)
	a.NotContains(string(b), `"suit":"diamonds"`)

	// revealed once the round settles
	a.NoError(tt.game.DeclineInsurance())
	state = tt.game.State()
	a.Equal(PhaseSettlement, state.Phase)
	a.Equal(deck.CardFromString("13d"), state.DealerHand.Cards[0])
	a.Equal(21, state.DealerHand.Score)
	a.True(state.DealerHand.IsBlackjack)
	a.NotNil(state.LastOutcome)
	a.True(state.LastOutcome.Lost)
}

func TestGame_StateSplit(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "8c,10d,8h,7s,2c,5d")

	a.NoError(tt.game.Split())
	a.NoError(tt.game.Stand())

	state := tt.game.State()
	a.Equal(PhasePlayerTurn, state.Phase)
	a.Equal(1, state.ActiveHand)
	a.NotNil(state.SplitHand)
	a.Equal(13, state.SplitHand.Score)
	a.Equal(10, state.PlayerHand.Score)
	a.Equal(10, state.CurrentBet)
	a.Nil(state.DealerHand.Cards[0])
	a.Equal(7, state.DealerHand.Score)
}
