package telemetry

import (
	"sync"
	"time"
)

// StatsSnapshot is a copy of the lifetime statistics
type StatsSnapshot struct {
	TotalHands     int        `json:"totalHands"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Pushes         int        `json:"pushes"`
	Blackjacks     int        `json:"blackjacks"`
	Busts          int        `json:"busts"`
	DoubleDowns    int        `json:"doubleDowns"`
	Splits         int        `json:"splits"`
	InsuranceWins  int        `json:"insuranceWins"`
	TotalChipsWon  int        `json:"totalChipsWon"`
	TotalChipsLost int        `json:"totalChipsLost"`
	BiggestWin     int        `json:"biggestWin"`
	CurrentStreak  int        `json:"currentStreak"`
	BestStreak     int        `json:"bestStreak"`
	LastPlayed     *time.Time `json:"lastPlayed"`
	WinRate        float64    `json:"winRate"`
	NetProfit      int        `json:"netProfit"`
}

// Stats keeps lifetime statistics
type Stats struct {
	mu    sync.RWMutex
	stats StatsSnapshot
}

// NewStats returns an empty Stats recorder
func NewStats() *Stats {
	return &Stats{}
}

// RecordHandResult updates the statistics
func (s *Stats) RecordHandResult(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.stats
	st.TotalHands++
	played := o.Time
	if played.IsZero() {
		played = time.Now()
	}
	st.LastPlayed = &played

	switch {
	case o.Won:
		st.Wins++
		st.CurrentStreak++
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}

		if o.Payout > 0 {
			st.TotalChipsWon += o.Payout
			if o.Payout > st.BiggestWin {
				st.BiggestWin = o.Payout
			}
		}
	case o.Lost:
		st.Losses++
		st.CurrentStreak = 0
		if o.BetLost > 0 {
			st.TotalChipsLost += o.BetLost
		}
	default:
		st.Pushes++
	}

	if o.IsBlackjack {
		st.Blackjacks++
	}

	if o.IsBusted {
		st.Busts++
	}

	if o.WasDoubled {
		st.DoubleDowns++
	}

	if o.WasSplit {
		st.Splits++
	}

	if o.InsuranceWon {
		st.InsuranceWins++
	}
}

// Snapshot returns a copy of the statistics with the derived values filled in
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.stats
	if snap.TotalHands > 0 {
		snap.WinRate = float64(snap.Wins) / float64(snap.TotalHands) * 100
	}

	snap.NetProfit = snap.TotalChipsWon - snap.TotalChipsLost
	return snap
}

// Reset clears every statistic
func (s *Stats) Reset() {
	s.mu.Lock()
	s.stats = StatsSnapshot{}
	s.mu.Unlock()
}
