package store

import (
	"context"
	"testing"
	"time"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/telemetry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHistoryRecorder(t *testing.T) {
	a := assert.New(t)
	db := openTestDB(t)
	ctx := context.Background()

	h := NewHistoryRecorder(db)

	start := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]string, 3)
	for i := range ids {
		ids[i] = uuid.New().String()
		h.RecordHandResult(telemetry.Outcome{
			RoundID:  ids[i],
			Time:     start.Add(time.Duration(i) * time.Minute),
			Result:   telemetry.ResultWin,
			Won:      true,
			Payout:   20,
			TotalBet: 10,
			Hands: []telemetry.HandResult{
				{
					Cards:  deck.CardsFromString("10c,9d"),
					Score:  19,
					Bet:    10,
					Payout: 20,
					Result: telemetry.ResultWin,
				},
			},
		})
	}

	rounds, err := h.Recent(ctx, 2)
	a.NoError(err)
	a.Equal(2, len(rounds))
	a.Equal(ids[2], rounds[0].RoundID)
	a.Equal(ids[1], rounds[1].RoundID)
	a.Equal(telemetry.ResultWin, rounds[0].Result)
	a.Equal(10, rounds[0].Net())
	a.Equal("10c,9d", deck.CardsToString(rounds[0].MainHand().Cards))

	rounds, err = h.Recent(ctx, 0)
	a.NoError(err)
	a.Equal(3, len(rounds))

	// duplicate round ids are rejected
	a.Error(h.Save(ctx, telemetry.Outcome{RoundID: ids[0], Result: telemetry.ResultLose}))
}
