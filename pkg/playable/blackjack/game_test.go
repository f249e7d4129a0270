package blackjack

import (
	"errors"
	"testing"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(logrus.StandardLogger(), nil, nil, nil, DefaultOptions())
	a.Nil(game)
	a.EqualError(err, "economy is required")

	game, err = NewGame(logrus.StandardLogger(), economy.NewWallet(100), nil, nil, Options{})
	a.Nil(game)
	a.EqualError(err, "min bet must be > 0")

	game, err = NewGame(nil, economy.NewWallet(100), nil, nil, DefaultOptions())
	a.NoError(err)
	a.NotNil(game)
	a.Equal(PhaseBetting, game.Phase())
	a.Equal(10, game.PendingBet())
	a.Nil(game.Round())
	a.Nil(game.LastOutcome())
	a.Equal("Blackjack", game.Name())
	a.Equal("blackjack", game.Key())
}

func TestGame_PlayerWins(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,9h,8s")

	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.Equal(990, tt.balance())
	a.Equal(19, tt.game.Round().MainHand().Score())
	a.Equal(18, tt.game.Round().Dealer.Score())

	a.NoError(tt.game.Stand())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(1010, tt.balance())

	a.Len(tt.recorder.outcomes, 1)
	o := tt.recorder.last()
	a.Equal(telemetry.ResultWin, o.Result)
	a.True(o.Won)
	a.False(o.Lost)
	a.Equal(20, o.Payout)
	a.Equal(0, o.BetLost)
	a.Equal(10, o.TotalBet)
	a.Equal(10, o.Net())
	a.Equal(18, o.DealerScore)
	a.Equal(tt.game.Round().ID, o.RoundID)
	a.Equal(&o, tt.game.LastOutcome())
}

func TestGame_NaturalBlackjack(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "14s,9d,13h,7c")

	// settled straight from the deal, the dealer never draws
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Len(tt.game.Round().Dealer.Cards, 2)
	a.Equal(1010, tt.balance())

	o := tt.recorder.last()
	a.True(o.Won)
	a.True(o.IsBlackjack)
	a.Equal(20, o.Payout)
	a.True(o.Hands[0].IsBlackjack)
}

func TestGame_PlayerBusts(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,9h,6s,5c")

	a.NoError(tt.game.Hit())
	a.Equal(24, tt.game.Round().MainHand().Score())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(990, tt.balance())

	// the dealer does not draw against a busted hand
	a.Len(tt.game.Round().Dealer.Cards, 2)

	o := tt.recorder.last()
	a.True(o.Lost)
	a.True(o.IsBusted)
	a.Equal(0, o.Payout)
	a.Equal(10, o.BetLost)
}

func TestGame_HitTo21AutoStands(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "5c,10d,6h,7s,10h")

	a.NoError(tt.game.Hit())
	a.Equal(21, tt.game.Round().MainHand().Score())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.True(tt.recorder.last().Won)
	a.False(tt.recorder.last().IsBlackjack)
}

func TestGame_Push(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,9h,2s,3c,4d")

	a.NoError(tt.game.Stand())
	a.Equal(19, tt.game.Round().Dealer.Score())
	a.Len(tt.game.Round().Dealer.Cards, 4)
	a.Equal(1000, tt.balance())

	o := tt.recorder.last()
	a.True(o.Push)
	a.Equal(telemetry.ResultPush, o.Result)
	a.Equal(10, o.Payout)
	a.Equal(0, o.BetLost)
}

func TestGame_BothBlackjackPush(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "14c,13d,13h,14s")

	a.Equal(PhaseInsuranceOffer, tt.game.Phase())
	a.NoError(tt.game.DeclineInsurance())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.True(tt.recorder.last().Push)
	a.Equal(1000, tt.balance())
}

func TestGame_DealerPolicy(t *testing.T) {
	a := assert.New(t)

	// stands on soft 17
	tt := dealt(t, "10c,14d,8h,6s")
	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.NoError(tt.game.Stand())
	a.Len(tt.game.Round().Dealer.Cards, 2)
	a.Equal(17, tt.game.Round().Dealer.Score())
	a.True(tt.recorder.last().Won)

	// soft 16 draws, hard 16 draws, 18 stands
	tt = dealt(t, "10c,14d,9h,5s,13c,2d,10h")
	a.NoError(tt.game.Stand())
	a.Equal(deck.CardsFromString("14d,5s,13c,2d"), []*deck.Card(tt.game.Round().Dealer.Cards))
	a.Equal(18, tt.game.Round().Dealer.Score())
	a.True(tt.recorder.last().Won)

	// draws to a bust
	tt = dealt(t, "10c,10d,8h,6s,12c")
	a.NoError(tt.game.Stand())
	a.Equal(26, tt.game.Round().Dealer.Score())
	a.True(tt.recorder.last().Won)
	a.Equal(1010, tt.balance())
}

func TestGame_InsuranceDeclinedDealerBlackjack(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,13d,9h,14s")

	a.Equal(PhaseInsuranceOffer, tt.game.Phase())
	a.True(tt.game.Round().InsuranceOffered)
	a.NoError(tt.game.DeclineInsurance())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(990, tt.balance())

	o := tt.recorder.last()
	a.True(o.Lost)
	a.False(o.UsedInsurance)
	a.Equal(0, o.InsurancePayout)
	a.Equal(10, o.BetLost)
}

func TestGame_InsuranceTakenDealerBlackjack(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,13d,9h,14s")

	a.NoError(tt.game.TakeInsurance())
	a.Equal(PhaseSettlement, tt.game.Phase())

	// 10 bet + 5 insurance, insurance pays 15
	a.Equal(1000, tt.balance())

	o := tt.recorder.last()
	a.True(o.Lost)
	a.True(o.UsedInsurance)
	a.True(o.InsuranceWon)
	a.Equal(5, o.InsuranceStake)
	a.Equal(15, o.InsurancePayout)
	a.Equal(0, o.Net())
}

func TestGame_InsuranceTakenNoDealerBlackjack(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,9d,9h,14s")

	a.NoError(tt.game.TakeInsurance())
	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.Equal(985, tt.balance())
	a.Equal(5, tt.game.Round().InsuranceStake)

	a.NoError(tt.game.Stand())
	a.Equal(985, tt.balance())

	o := tt.recorder.last()
	a.True(o.Lost)
	a.True(o.UsedInsurance)
	a.False(o.InsuranceWon)
	a.Equal(-15, o.Net())
}

func TestGame_InsuranceDeclinedStake(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 12, "10c,9d,9h,14s")
	a.NoError(tt.game.PlaceBet(10))

	err := tt.game.TakeInsurance()
	a.ErrorIs(err, ErrStakeDeclined)
	a.Equal(PhaseInsuranceOffer, tt.game.Phase())
	a.Equal(0, tt.game.Round().InsuranceStake)
	a.Equal(2, tt.balance())
}

func TestGame_InsuranceUnavailableForTinyBet(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 100, "10c,9d,9h,14s")
	a.NoError(tt.game.PlaceBet(1))

	a.Equal([]Action{ActionDeclineInsurance}, tt.game.AvailableActions())
	a.ErrorIs(tt.game.TakeInsurance(), ErrNoInsurance)
	a.ErrorIs(tt.game.TakeInsurance(), ErrInvalidTransition)
	a.NoError(tt.game.DeclineInsurance())
}

func TestGame_InsuranceDisabled(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, SimpleOptions(), 1000, "10c,9d,9h,14s")
	a.Equal("Blackjack (Simple)", tt.game.Name())

	a.NoError(tt.game.PlaceBet(10))
	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.False(tt.game.Round().InsuranceOffered)

	// the dealer blackjack check still runs
	tt.stack("10c,13d,9h,14s")
	a.NoError(tt.game.Stand())
	a.NoError(tt.game.PlaceBet(10))
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.True(tt.recorder.last().Lost)
}

func TestGame_Split(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "8c,10d,8h,7s,2c,5d,10h,13c")

	a.Contains(tt.game.AvailableActions(), ActionSplit)
	a.NoError(tt.game.Split())
	a.Equal(980, tt.balance())

	r := tt.game.Round()
	a.True(r.IsSplit())
	a.Equal(0, r.Active)
	a.Equal("8c,2c", r.MainHand().Cards.String())
	a.Equal("8h,5d", r.SplitHand().Cards.String())
	a.Equal(10, r.SplitHand().Bet)
	a.NotContains(tt.game.AvailableActions(), ActionSplit)

	// hand 1 to 20
	a.NoError(tt.game.Hit())
	a.Equal(20, r.MainHand().Score())
	a.NoError(tt.game.Stand())
	a.Equal(1, r.Active)
	a.Equal(PhasePlayerTurn, tt.game.Phase())

	// hand 2 busts
	a.NoError(tt.game.Hit())
	a.True(r.SplitHand().IsBusted())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(17, r.Dealer.Score())

	a.Equal(1000, tt.balance())
	a.Len(tt.recorder.outcomes, 1)

	o := tt.recorder.last()
	a.True(o.WasSplit)
	a.True(o.Push)
	a.Equal(20, o.Payout)
	a.Equal(10, o.BetLost)
	a.Equal(20, o.TotalBet)
	a.Len(o.Hands, 2)
	a.Equal(telemetry.ResultWin, o.Hands[0].Result)
	a.Equal(20, o.Hands[0].Payout)
	a.Equal(telemetry.ResultLose, o.Hands[1].Result)
	a.Equal(0, o.Hands[1].Payout)
	a.False(o.SplitWin())
}

func TestGame_SplitAcesTo21(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "14c,10d,14h,7s,13c,9d")

	a.NoError(tt.game.Split())

	// the first hand made 21 and auto-advanced
	r := tt.game.Round()
	a.Equal(1, r.Active)
	a.Equal(21, r.MainHand().Score())
	a.Equal(20, r.SplitHand().Score())

	a.NoError(tt.game.Stand())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(1020, tt.balance())

	o := tt.recorder.last()
	a.True(o.Won)
	a.False(o.IsBlackjack)
	a.False(o.Hands[0].IsBlackjack)
	a.True(o.SplitWin())
}

func TestGame_SplitGuards(t *testing.T) {
	a := assert.New(t)

	tt := dealt(t, "8c,10d,9h,7s")
	a.NotContains(tt.game.AvailableActions(), ActionSplit)
	a.ErrorIs(tt.game.Split(), ErrCannotSplit)
	a.ErrorIs(tt.game.Split(), ErrInvalidTransition)
	a.Len(tt.game.Round().Hands, 1)
	a.Equal(990, tt.balance())

	// three cards of a pair
	tt = dealt(t, "8c,10d,8h,7s,2c")
	a.NoError(tt.game.Hit())
	a.Len(tt.game.Round().MainHand().Cards, 3)
	a.ErrorIs(tt.game.Split(), ErrCannotSplit)
	a.Len(tt.game.Round().Hands, 1)

	// equal value is not equal rank
	tt = dealt(t, "10c,10d,13h,7s")
	a.ErrorIs(tt.game.Split(), ErrCannotSplit)

	// disabled
	tt = newTestTable(t, SimpleOptions(), 1000, "8c,10d,8h,7s")
	a.NoError(tt.game.PlaceBet(10))
	a.ErrorIs(tt.game.Split(), ErrCannotSplit)

	// outside the player turn
	tt = newTestTable(t, DefaultOptions(), 1000, "")
	a.ErrorIs(tt.game.Split(), ErrInvalidTransition)
}

func TestGame_SplitDeclinedStake(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 15, "8c,10d,8h,7s")
	a.NoError(tt.game.PlaceBet(10))

	err := tt.game.Split()
	a.ErrorIs(err, ErrStakeDeclined)
	a.ErrorIs(err, economy.ErrInsufficientFunds)

	r := tt.game.Round()
	a.Len(r.Hands, 1)
	a.Equal("8c,8h", r.MainHand().Cards.String())
	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.Equal(5, tt.balance())
}

func TestGame_DoubleDown(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "5c,10d,6h,7s,10h")

	a.Contains(tt.game.AvailableActions(), ActionDouble)
	a.NoError(tt.game.DoubleDown())
	a.Equal(PhaseSettlement, tt.game.Phase())

	hand := tt.game.Round().MainHand()
	a.Equal(20, hand.Bet)
	a.True(hand.Doubled)
	a.Len(hand.Cards, 3)
	a.Equal(1020, tt.balance())

	o := tt.recorder.last()
	a.True(o.WasDoubled)
	a.True(o.DoubleWin())
	a.Equal(40, o.Payout)
	a.Equal(20, o.TotalBet)
}

func TestGame_DoubleDownStandsWithoutBust(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "5c,10d,6h,9s,2h")

	a.NoError(tt.game.DoubleDown())
	a.Equal(13, tt.game.Round().MainHand().Score())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.True(tt.recorder.last().Lost)
	a.Equal(20, tt.recorder.last().BetLost)
	a.Equal(980, tt.balance())
}

func TestGame_DoubleDownBust(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,2h,6s,13h")

	a.NoError(tt.game.DoubleDown())
	a.True(tt.game.Round().MainHand().IsBusted())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Len(tt.game.Round().Dealer.Cards, 2)
	a.Equal(980, tt.balance())
}

func TestGame_DoubleDownGuards(t *testing.T) {
	a := assert.New(t)

	tt := dealt(t, "2c,10d,3h,7s,4c")
	a.NoError(tt.game.Hit())
	a.NotContains(tt.game.AvailableActions(), ActionDouble)
	a.ErrorIs(tt.game.DoubleDown(), ErrCannotDouble)
	a.Equal(10, tt.game.Round().MainHand().Bet)

	tt = newTestTable(t, DefaultOptions(), 10, "5c,10d,6h,7s")
	a.NoError(tt.game.PlaceBet(10))
	a.ErrorIs(tt.game.DoubleDown(), ErrStakeDeclined)
	a.Equal(10, tt.game.Round().MainHand().Bet)
	a.False(tt.game.Round().MainHand().Doubled)
	a.Len(tt.game.Round().MainHand().Cards, 2)
	a.Equal(PhasePlayerTurn, tt.game.Phase())

	opts := DefaultOptions()
	opts.AllowDoubleDown = false
	tt = newTestTable(t, opts, 100, "5c,10d,6h,7s")
	a.NoError(tt.game.PlaceBet(10))
	a.ErrorIs(tt.game.DoubleDown(), ErrCannotDouble)
}

func TestGame_PlaceBetDeclined(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 5, "")

	err := tt.game.PlaceBet(10)
	a.ErrorIs(err, ErrStakeDeclined)
	a.False(errors.Is(err, ErrInvalidTransition))
	a.Equal(PhaseBetting, tt.game.Phase())
	a.Nil(tt.game.Round())
	a.Equal(5, tt.balance())
	a.Equal(10, tt.game.PendingBet())
	a.Len(tt.recorder.outcomes, 0)
}

func TestGame_PlaceBetDeclinedFromSettlement(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 20, "10c,10d,9h,8s")

	a.NoError(tt.game.PlaceBet(10))
	a.NoError(tt.game.Stand())
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(30, tt.balance())

	round := tt.game.Round()
	outcome := tt.game.LastOutcome()

	err := tt.game.PlaceBet(10000)
	a.ErrorIs(err, ErrStakeDeclined)
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Same(round, tt.game.Round())
	a.Same(outcome, tt.game.LastOutcome())
	a.Equal(10, tt.game.PendingBet())
	a.Equal(30, tt.balance())
	a.Len(tt.recorder.outcomes, 1)

	// a later bet the wallet can cover still closes the round
	tt.stack("10c,10d,9h,8s")
	a.NoError(tt.game.PlaceBet(10))
	a.Equal(PhasePlayerTurn, tt.game.Phase())
	a.NotSame(round, tt.game.Round())
	a.Equal(20, tt.balance())
}

func TestGame_PlaceBetGuards(t *testing.T) {
	a := assert.New(t)
	opts := DefaultOptions()
	opts.MinBet = 5
	opts.MaxBet = 100
	tt := newTestTable(t, opts, 1000, "10c,10d,9h,8s")

	a.ErrorIs(tt.game.PlaceBet(0), ErrInvalidBet)
	a.ErrorIs(tt.game.PlaceBet(-10), ErrInvalidTransition)
	a.ErrorIs(tt.game.PlaceBet(4), ErrInvalidBet)
	a.ErrorIs(tt.game.PlaceBet(101), ErrInvalidBet)
	a.Equal(1000, tt.balance())
	a.Equal(PhaseBetting, tt.game.Phase())

	a.NoError(tt.game.PlaceBet(100))
	a.ErrorIs(tt.game.PlaceBet(10), ErrInvalidTransition)
	a.Equal(900, tt.balance())
}

func TestGame_InvalidTransitions(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 1000, "")

	for _, fn := range []func() error{
		tt.game.Hit,
		tt.game.Stand,
		tt.game.DoubleDown,
		tt.game.Split,
		tt.game.TakeInsurance,
		tt.game.DeclineInsurance,
	} {
		err := fn()
		a.ErrorIs(err, ErrInvalidTransition)
		a.Contains(err.Error(), "from phase: betting")
	}

	a.Equal(PhaseBetting, tt.game.Phase())

	tt.stack("10c,10d,9h,8s")
	a.NoError(tt.game.PlaceBet(10))
	a.ErrorIs(tt.game.AdjustBet(5), ErrInvalidTransition)
	a.ErrorIs(tt.game.ClearBet(), ErrInvalidTransition)
	a.ErrorIs(tt.game.TakeInsurance(), ErrInvalidTransition)
	a.Equal(PhasePlayerTurn, tt.game.Phase())
}

func TestGame_AdjustAndClearBet(t *testing.T) {
	a := assert.New(t)
	opts := DefaultOptions()
	opts.MaxBet = 100
	tt := newTestTable(t, opts, 1000, "")

	a.NoError(tt.game.AdjustBet(25))
	a.Equal(35, tt.game.PendingBet())
	a.NoError(tt.game.AdjustBet(-10))
	a.Equal(25, tt.game.PendingBet())

	a.ErrorIs(tt.game.AdjustBet(-50), ErrInvalidBet)
	a.ErrorIs(tt.game.AdjustBet(100), ErrInvalidBet)
	a.Equal(25, tt.game.PendingBet())

	a.NoError(tt.game.ClearBet())
	a.Equal(0, tt.game.PendingBet())
	a.NotContains(tt.game.AvailableActions(), ActionBet)
	a.Equal(1000, tt.balance())
}

func TestGame_NextRound(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,9h,8s")
	a.NoError(tt.game.Stand())
	first := tt.game.Round().ID

	// adjusting the bet closes the settled round
	a.NoError(tt.game.AdjustBet(10))
	a.Equal(PhaseBetting, tt.game.Phase())
	a.Nil(tt.game.Round())
	a.NotNil(tt.game.LastOutcome())

	tt.stack("10c,10d,9h,13s")
	a.NoError(tt.game.PlaceBet(tt.game.PendingBet()))
	a.NotEqual(first, tt.game.Round().ID)
	a.Equal(20, tt.game.Round().MainHand().Bet)
	a.Equal(52-4, tt.shoe.CardsLeft())

	a.NoError(tt.game.Stand())
	a.Len(tt.recorder.outcomes, 2)
	a.True(tt.recorder.last().Lost)
	a.Equal(990, tt.balance())

	// betting straight from settlement
	tt.stack("10c,10d,9h,8s")
	a.NoError(tt.game.PlaceBet(10))
	a.Equal(PhasePlayerTurn, tt.game.Phase())
}

func TestGame_RescueAndComeback(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 10, "10c,10d,9h,13s")

	a.NoError(tt.game.PlaceBet(10))
	a.NoError(tt.game.Stand())
	a.False(tt.recorder.last().Comeback)

	// the rescue lands as the losing round settles
	a.Equal(PhaseSettlement, tt.game.Phase())
	a.Equal(economy.DefaultRescueChips, tt.balance())

	tt.stack("10c,10d,9h,8s")
	a.NoError(tt.game.PlaceBet(10))
	a.Equal(90, tt.balance())

	a.NoError(tt.game.Stand())
	a.Equal(110, tt.balance())
	a.True(tt.recorder.last().Comeback)

	// only the first win after a rescue is a comeback
	tt.stack("10c,10d,9h,8s")
	a.NoError(tt.game.PlaceBet(10))
	a.NoError(tt.game.Stand())
	a.True(tt.recorder.last().Won)
	a.False(tt.recorder.last().Comeback)
}

func TestGame_RescueOnStart(t *testing.T) {
	a := assert.New(t)
	tt := newTestTable(t, DefaultOptions(), 0, "")
	a.Equal(economy.DefaultRescueChips, tt.balance())
	a.True(tt.game.rescued)
}

type failingEconomy struct {
	*economy.Wallet
}

func (failingEconomy) Credit(int) error {
	return errors.New("ledger unavailable")
}

func TestGame_CreditFailureIsLogged(t *testing.T) {
	a := assert.New(t)
	shoe := deck.NewShoe(nil, nil)
	port := failingEconomy{Wallet: economy.NewWallet(100)}
	rec := &captureRecorder{}

	game, err := NewGame(logrus.StandardLogger(), port, shoe, rec, DefaultOptions())
	a.NoError(err)

	shoe.Stack(deck.CardsFromString("10c,10d,9h,8s")...)
	a.NoError(game.PlaceBet(10))
	a.NoError(game.Stand())
	a.Equal(PhaseSettlement, game.Phase())
	a.Len(rec.outcomes, 1)
	a.Equal(20, rec.last().Payout)
}

func TestGame_LogChan(t *testing.T) {
	a := assert.New(t)
	tt := dealt(t, "10c,10d,9h,8s")
	a.NoError(tt.game.Stand())

	var messages []string
	for len(tt.game.LogChan()) > 0 {
		for _, msg := range <-tt.game.LogChan() {
			a.Equal(tt.game.Round().ID, msg.RoundID)
			messages = append(messages, msg.Message)
		}
	}

	a.Equal([]string{
		"Bet 10, dealt 10♣ 9♥ against 8♠",
		"Stand on 19",
		"Dealer has 18",
		"Round win, payout 20",
	}, messages)
}
