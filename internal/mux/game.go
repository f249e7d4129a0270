package mux

import (
	"net/http"

	"blackjack-server/pkg/playable"
)

const errActionRequired = playable.UserError("action is required")

type gameActionResponse struct {
	Response *playable.Response `json:"response"`
	State    *playable.Response `json:"state"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.deps.Dealer.State(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postGameAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playable.PayloadIn
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Action == "" {
			writeJSONError(w, http.StatusBadRequest, errActionRequired)
			return
		}

		response, err := m.deps.Dealer.Exec(r.Context(), &payload)
		if err != nil {
			writeError(w, err)
			return
		}

		state, err := m.deps.Dealer.State(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, gameActionResponse{
			Response: response,
			State:    state,
		})
	}
}

func (m *Mux) getGameLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := m.deps.Dealer.LogMessages(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, messages)
	}
}
