package mux

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
)

const maxRows = 100
const defaultRows = 20

func parseRows(r *http.Request) (int, error) {
	rows := defaultRows

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return 0, err
		}

		if val <= 0 {
			return 0, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return rows, nil
}

func remoteAddr(r *http.Request) string {
	parts := strings.Split(r.RemoteAddr, ":")
	if len(parts) == 1 {
		return parts[0]
	}

	return strings.Join(parts[0:len(parts)-1], ":")
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// statusCodeForError maps game and service errors to a status code
func statusCodeForError(err error) int {
	var userErr playable.UserError

	switch {
	case errors.As(err, &userErr):
		return http.StatusBadRequest
	case errors.Is(err, blackjack.ErrInvalidTransition),
		errors.Is(err, blackjack.ErrStakeDeclined),
		errors.Is(err, economy.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, telemetry.ErrQuestNotFound):
		return http.StatusNotFound
	case errors.Is(err, telemetry.ErrQuestNotComplete),
		errors.Is(err, telemetry.ErrQuestAlreadyClaimed):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusCodeForError(err), err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
