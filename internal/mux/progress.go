package mux

import (
	"net/http"
	"time"

	"blackjack-server/pkg/telemetry"

	gmux "github.com/gorilla/mux"
)

type questsResponse struct {
	Quests         []telemetry.Quest `json:"quests"`
	ResetInSeconds int               `json:"resetInSeconds"`
}

func (m *Mux) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Stats == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, m.deps.Stats.Snapshot())
	}
}

func (m *Mux) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.History == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		rows, err := parseRows(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		rounds, err := m.deps.History.Recent(r.Context(), rows)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rounds)
	}
}

func (m *Mux) getAchievements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Achievements == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, m.deps.Achievements.Statuses())
	}
}

func (m *Mux) getQuests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Quests == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, questsResponse{
			Quests:         m.deps.Quests.Quests(),
			ResetInSeconds: int(m.deps.Quests.TimeUntilReset() / time.Second),
		})
	}
}

func (m *Mux) postQuestClaim() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Quests == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		quest, err := m.deps.Quests.Claim(gmux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, quest)
	}
}
