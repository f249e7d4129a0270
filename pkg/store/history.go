package store

import (
	"context"
	"encoding/json"
	"time"

	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
)

// HistoryRecorder writes every settled round to the rounds table
type HistoryRecorder struct {
	db     *DB
	logger logrus.FieldLogger
}

// NewHistoryRecorder returns a recorder backed by db
func NewHistoryRecorder(db *DB) *HistoryRecorder {
	return &HistoryRecorder{
		db:     db,
		logger: db.logger.WithField("recorder", "history"),
	}
}

// RecordHandResult inserts the outcome
// Errors are logged; a sink never interrupts the round.
func (h *HistoryRecorder) RecordHandResult(o telemetry.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := h.Save(ctx, o); err != nil {
		h.logger.WithError(err).WithField("roundId", o.RoundID).Error("could not save round")
	}
}

// Save inserts the outcome
func (h *HistoryRecorder) Save(ctx context.Context, o telemetry.Outcome) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}

	created := o.Time
	if created.IsZero() {
		created = time.Now()
	}

	const query = `
INSERT INTO rounds (id, result, total_bet, payout, bet_lost, net, data, created)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = h.db.ExecContext(ctx, h.db.rebind(query),
		o.RoundID, string(o.Result), o.TotalBet, o.Payout, o.BetLost, o.Net(), string(data), created.UTC())
	return err
}

// Recent returns up to limit rounds, newest first
func (h *HistoryRecorder) Recent(ctx context.Context, limit int) ([]telemetry.Outcome, error) {
	if limit <= 0 {
		limit = telemetry.DefaultHistoryLimit
	}

	const query = `
SELECT data
FROM rounds
ORDER BY created DESC
LIMIT ?`

	rows, err := h.db.QueryContext(ctx, h.db.rebind(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make([]telemetry.Outcome, 0, limit)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var o telemetry.Outcome
		if err := json.Unmarshal(data, &o); err != nil {
			return nil, err
		}

		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}
