package room

import (
	"blackjack-server/pkg/playable"
)

type clientState struct {
	Connected int `json:"connected"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return playable.Error(err, ctx)
}
