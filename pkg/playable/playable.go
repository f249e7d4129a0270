// Package playable defines the transport-neutral envelope used to drive a game
package playable

import (
	"fmt"
	"math"
	"time"

	"blackjack-server/pkg/deck"

	"github.com/google/uuid"
)

// Playable is a game that can be driven by commands
type Playable interface {
	// Action performs the command in the message
	// If updateState is true, the state changed and clients should re-read it
	Action(message *PayloadIn) (response *Response, updateState bool, err error)

	// GetState returns the current state of the game
	GetState() (*Response, error)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
type LogMessage struct {
	UUID    string       `json:"uuid"`
	RoundID string       `json:"roundId,omitempty"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is the envelope returned to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// Error returns an error response
func Error(err error, ctx ...string) *Response {
	res := &Response{
		Key:   "error",
		Value: err.Error(),
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the client
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
// JSON numbers with a fractional part or outside the int range are rejected.
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		if val != math.Trunc(val) || val < float64(math.MinInt) || val >= float64(math.MaxInt) {
			return 0, false
		}

		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(roundID string, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		RoundID: roundID,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(roundID string, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(roundID, format, a...)}
}

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}
