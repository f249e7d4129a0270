package mux

import (
	"context"
	"net/http"
	"time"

	"blackjack-server/pkg/playable/blackjack"
)

// healthTimeout bounds how long the health check waits on the dealer run loop
const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Game    string          `json:"game,omitempty"`
	Phase   blackjack.Phase `json:"phase,omitempty"`
	Clients int             `json:"clients"`
}

// getHealth reports OK once the dealer run loop answers
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := healthResponse{
			Status:  "OK",
			Version: m.version,
		}

		if m.deps.Dealer == nil {
			writeJSON(w, http.StatusOK, payload)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		state, err := m.deps.Dealer.State(ctx)
		if err != nil {
			payload.Status = "UNAVAILABLE"
			writeJSON(w, http.StatusServiceUnavailable, payload)
			return
		}

		if gs, ok := state.Data.(*blackjack.GameState); ok {
			payload.Game = gs.Name
			payload.Phase = gs.Phase
		}
		payload.Clients = len(m.deps.Dealer.Clients())

		writeJSON(w, http.StatusOK, payload)
	}
}
