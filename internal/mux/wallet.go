package mux

import (
	"net/http"
)

type walletResponse struct {
	Balance int `json:"balance"`
	Gems    int `json:"gems"`
}

func (m *Mux) getWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := m.deps.Economy.Balance()
		if err != nil {
			writeError(w, err)
			return
		}

		resp := walletResponse{Balance: balance}
		if m.deps.Achievements != nil {
			resp.Gems += m.deps.Achievements.Gems()
		}

		if m.deps.Quests != nil {
			resp.Gems += m.deps.Quests.Gems()
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) getWalletLedger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Ledger == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		rows, err := parseRows(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		entries, err := m.deps.Ledger.Ledger(r.Context(), rows)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
