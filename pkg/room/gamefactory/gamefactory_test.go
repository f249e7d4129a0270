package gamefactory

import (
	"testing"

	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	a := assert.New(t)

	f, err := Get("blackjack")
	a.NoError(err)
	a.NotNil(f)

	f, err = Get("poker")
	a.Nil(f)
	a.EqualError(err, "no factory with name: poker")

	a.Equal([]string{"blackjack", "blackjack-simple"}, Names())
}

func Test_blackjackFactory_Details(t *testing.T) {
	a := assert.New(t)

	name, minBet, err := factories["blackjack"].Details(playable.AdditionalData{
		"minBet": float64(25),
	})
	a.NoError(err)
	a.Equal("Blackjack", name)
	a.Equal(25, minBet)

	name, minBet, err = factories["blackjack-simple"].Details(nil)
	a.NoError(err)
	a.Equal("Blackjack (Simple)", name)
	a.Equal(1, minBet)

	_, _, err = factories["blackjack"].Details(playable.AdditionalData{
		"minBet": float64(50),
		"maxBet": float64(10),
	})
	a.EqualError(err, "max bet must be >= min bet")
}

func Test_blackjackFactory_CreateGame(t *testing.T) {
	a := assert.New(t)

	_, err := factories["blackjack"].CreateGame(Dependencies{}, nil)
	a.EqualError(err, "economy is required")

	game, err := factories["blackjack-simple"].CreateGame(Dependencies{
		Economy: economy.NewWallet(1000),
	}, playable.AdditionalData{
		"allowSplit": true,
	})
	a.NoError(err)
	a.Equal("Blackjack (Simple)", game.Name())

	bj, ok := game.(*blackjack.Game)
	if a.True(ok) {
		a.False(bj.Options().AllowSplit)
		a.Equal(blackjack.PhaseBetting, bj.Phase())
	}

	game, err = factories["blackjack"].CreateGame(Dependencies{
		Economy: economy.NewWallet(1000),
	}, playable.AdditionalData{
		"allowInsurance": false,
		"defaultBet":     float64(25),
	})
	a.NoError(err)
	bj = game.(*blackjack.Game)
	a.False(bj.Options().AllowInsurance)
	a.True(bj.Options().AllowSplit)
	a.Equal(25, bj.PendingBet())
}
