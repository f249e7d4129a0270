package telemetry

import (
	"context"
	"sync"
)

// DefaultHistoryLimit is how many rounds History keeps by default
const DefaultHistoryLimit = 20

// History keeps the most recent rounds, newest first
type History struct {
	mu     sync.RWMutex
	limit  int
	rounds []Outcome
}

// NewHistory returns a History that keeps up to limit rounds
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &History{
		limit:  limit,
		rounds: make([]Outcome, 0, limit),
	}
}

// RecordHandResult prepends the outcome and drops the oldest beyond the limit
func (h *History) RecordHandResult(o Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rounds = append([]Outcome{o}, h.rounds...)
	if len(h.rounds) > h.limit {
		h.rounds = h.rounds[:h.limit]
	}
}

// Rounds returns a copy of the stored rounds, newest first
func (h *History) Rounds() []Outcome {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rounds := make([]Outcome, len(h.rounds))
	copy(rounds, h.rounds)
	return rounds
}

// Clear removes every stored round
func (h *History) Clear() {
	h.mu.Lock()
	h.rounds = h.rounds[:0]
	h.mu.Unlock()
}

// Recent returns up to limit rounds, newest first
func (h *History) Recent(_ context.Context, limit int) ([]Outcome, error) {
	rounds := h.Rounds()
	if limit > 0 && len(rounds) > limit {
		rounds = rounds[:limit]
	}

	return rounds, nil
}
