package room

import (
	"context"
	"testing"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestDealer(t *testing.T, cards string) (*Dealer, *deck.Shoe) {
	t.Helper()

	shoe := deck.NewShoe(logrus.StandardLogger(), rng.NewSeeded(1))
	if cards != "" {
		shoe.Stack(deck.CardsFromString(cards)...)
	}

	game, err := blackjack.NewGame(logrus.StandardLogger(), economy.NewWallet(1000), shoe, nil, blackjack.DefaultOptions())
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	d := NewDealer(logrus.StandardLogger(), game)
	d.StartShift()
	t.Cleanup(d.EndShift)

	return d, shoe
}

// waitFor reads from the client until a response with the key arrives
func waitFor(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*playable.Response); ok && res.Key == key {
				return res
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", key)
			return nil
		}
	}
}

func TestDealer_AddClient(t *testing.T) {
	d, _ := newTestDealer(t, "")
	c := NewClient(nil, "127.0.0.1")
	c2 := NewClient(nil, "127.0.0.1")

	d.AddClient(c)
	d.AddClient(c2)

	res := waitFor(t, c, "game")
	assert.Equal(t, "blackjack", res.Value)

	assert.Equal(t, 2, len(d.Clients()))
	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestDealer_Exec(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t, "10c,5d,9h,7s")
	ctx := context.Background()

	c := NewClient(nil, "127.0.0.1")
	d.AddClient(c)
	waitFor(t, c, "game")

	res, err := d.Exec(ctx, &playable.PayloadIn{
		Action:         "bet",
		AdditionalData: playable.AdditionalData{"amount": float64(10)},
		Context:        "abc",
	})
	a.NoError(err)
	a.Equal("abc", res.Context)

	// the new state is pushed to connected clients
	pushed := waitFor(t, c, "game")
	state := pushed.Data.(*blackjack.GameState)
	a.Equal(blackjack.PhasePlayerTurn, state.Phase)
	a.Equal(19, state.PlayerHand.Score)

	res, err = d.Exec(ctx, &playable.PayloadIn{Action: "bet"})
	a.ErrorIs(err, blackjack.ErrInvalidTransition)
	a.Nil(res)

	res, err = d.State(ctx)
	a.NoError(err)
	a.Equal(blackjack.PhasePlayerTurn, res.Data.(*blackjack.GameState).Phase)

	logs := waitFor(t, c, "logs")
	a.Equal("Bet 10, dealt 10♣ 9♥ against 7♠", logs.Data.([]*playable.LogMessage)[0].Message)

	messages, err := d.LogMessages(ctx)
	a.NoError(err)
	a.Equal(1, len(messages))
}

func TestDealer_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t, "")

	c := NewClient(nil, "127.0.0.1")
	d.AddClient(c)

	c.ReceivedMessage(&playable.PayloadIn{Action: "hit", Context: "ctx"})
	res := waitFor(t, c, "error")
	a.Equal("ctx", res.Context)
	a.Equal("invalid transition: cannot Hit from phase: betting", res.Value)

	c.ReceivedMessage(&playable.PayloadIn{Action: "clear-bet", Context: "ctx2"})
	res = waitFor(t, c, "status")
	a.Equal("ctx2", res.Context)
}

func TestDealer_Exec_canceled(t *testing.T) {
	shoe := deck.NewShoe(logrus.StandardLogger(), rng.NewSeeded(1))
	game, _ := blackjack.NewGame(nil, economy.NewWallet(1000), shoe, nil, blackjack.DefaultOptions())

	// never started
	d := NewDealer(nil, game)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := d.State(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDealer_addLogMessages(t *testing.T) {
	game, _ := blackjack.NewGame(nil, economy.NewWallet(1000), nil, nil, blackjack.DefaultOptions())
	d := NewDealer(nil, game)

	for i := 0; i < logMessageLimit+5; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice("", "message %d", i))
	}

	assert.Equal(t, logMessageLimit, len(d.logMessages))
	assert.Equal(t, "message 5", d.logMessages[0].Message)
}
