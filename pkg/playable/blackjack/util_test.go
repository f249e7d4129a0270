package blackjack

import (
	"testing"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type captureRecorder struct {
	outcomes []telemetry.Outcome
}

func (c *captureRecorder) RecordHandResult(o telemetry.Outcome) {
	c.outcomes = append(c.outcomes, o)
}

func (c *captureRecorder) last() telemetry.Outcome {
	return c.outcomes[len(c.outcomes)-1]
}

type testTable struct {
	game     *Game
	wallet   *economy.Wallet
	shoe     *deck.Shoe
	recorder *captureRecorder
}

// stack puts the cards on top of the shoe for the next deal
// Deal order is player, dealer (hole), player, dealer (up), then hits.
func (tt *testTable) stack(cards string) {
	tt.shoe.Stack(deck.CardsFromString(cards)...)
}

func (tt *testTable) balance() int {
	balance, _ := tt.wallet.Balance()
	return balance
}

func newTestTable(t *testing.T, opts Options, chips int, cards string) *testTable {
	t.Helper()

	shoe := deck.NewShoe(logrus.StandardLogger(), rng.NewSeeded(1))
	wallet := economy.NewWallet(chips)
	rec := &captureRecorder{}

	game, err := NewGame(logrus.StandardLogger(), wallet, shoe, rec, opts)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	tt := &testTable{
		game:     game,
		wallet:   wallet,
		shoe:     shoe,
		recorder: rec,
	}

	if cards != "" {
		tt.stack(cards)
	}

	return tt
}

// dealt places a bet of 10 with the cards stacked
func dealt(t *testing.T, cards string) *testTable {
	t.Helper()

	tt := newTestTable(t, DefaultOptions(), 1000, cards)
	if !assert.NoError(t, tt.game.PlaceBet(10)) {
		t.FailNow()
	}

	return tt
}
