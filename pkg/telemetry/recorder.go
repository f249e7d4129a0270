package telemetry

import "github.com/sirupsen/logrus"

// Recorder is a telemetry sink
// RecordHandResult is called exactly once per settled round
type Recorder interface {
	RecordHandResult(outcome Outcome)
}

// RecorderFunc adapts a function to a Recorder
type RecorderFunc func(outcome Outcome)

// RecordHandResult calls fn(outcome)
func (fn RecorderFunc) RecordHandResult(outcome Outcome) {
	fn(outcome)
}

// Multi fans an outcome out to each recorder in order
type Multi []Recorder

// RecordHandResult records the outcome with every recorder
func (m Multi) RecordHandResult(outcome Outcome) {
	for _, r := range m {
		if r != nil {
			r.RecordHandResult(outcome)
		}
	}
}

// Logger writes a structured log line per round
type Logger struct {
	logger logrus.FieldLogger
}

// NewLogger returns a logging recorder
func NewLogger(logger logrus.FieldLogger) *Logger {
	return &Logger{logger: logger}
}

// RecordHandResult logs the outcome
func (l *Logger) RecordHandResult(o Outcome) {
	l.logger.WithFields(logrus.Fields{
		"roundId":       o.RoundID,
		"result":        o.Result,
		"hands":         len(o.Hands),
		"blackjack":     o.IsBlackjack,
		"doubled":       o.WasDoubled,
		"split":         o.WasSplit,
		"insurance":     o.UsedInsurance,
		"payout":        o.Payout,
		"betLost":       o.BetLost,
		"net":           o.Net(),
		"dealerScore":   o.DealerScore,
		"insurancePaid": o.InsurancePayout,
	}).Info("round settled")
}
