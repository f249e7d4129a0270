package telemetry

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AchievementType is either one-time or milestone
type AchievementType string

// AchievementType constants
const (
	AchievementOneTime   AchievementType = "one-time"
	AchievementMilestone AchievementType = "milestone"
)

// Achievement is the definition of an achievement
type Achievement struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Reward      int             `json:"reward"`
	Type        AchievementType `json:"type"`
	Target      int             `json:"target,omitempty"`
}

// achievement ids
const (
	achFirstWin      = "first_win"
	achWinStreak3    = "win_streak_3"
	achWinStreak5    = "win_streak_5"
	achWinStreak10   = "win_streak_10"
	achBlackjack     = "blackjack"
	achBlackjack10   = "blackjack_10"
	achDoubleWin     = "double_win"
	achSplitWin      = "split_win"
	achInsuranceSave = "insurance_save"
	achChips1000     = "chips_1000"
	achChips5000     = "chips_5000"
	achChips10000    = "chips_10000"
	achHands50       = "hands_50"
	achHands100      = "hands_100"
	achHands500      = "hands_500"
	achComeback      = "comeback"
)

// Achievements is the list of every achievement
// Rewards are in gems
var Achievements = []Achievement{
	{ID: achFirstWin, Name: "First Victory", Description: "Win your first hand", Reward: 5, Type: AchievementOneTime},
	{ID: achWinStreak3, Name: "Hot Streak", Description: "Win 3 hands in a row", Reward: 10, Type: AchievementOneTime},
	{ID: achWinStreak5, Name: "On Fire!", Description: "Win 5 hands in a row", Reward: 25, Type: AchievementOneTime},
	{ID: achWinStreak10, Name: "Unstoppable", Description: "Win 10 hands in a row", Reward: 50, Type: AchievementOneTime},
	{ID: achBlackjack, Name: "Natural 21", Description: "Get a Blackjack", Reward: 5, Type: AchievementOneTime},
	{ID: achBlackjack10, Name: "Blackjack Master", Description: "Get 10 Blackjacks", Reward: 20, Type: AchievementMilestone, Target: 10},
	{ID: achDoubleWin, Name: "Double Trouble", Description: "Win after doubling down", Reward: 10, Type: AchievementOneTime},
	{ID: achSplitWin, Name: "Divided We Stand", Description: "Win both hands after a split", Reward: 15, Type: AchievementOneTime},
	{ID: achInsuranceSave, Name: "Smart Bet", Description: "Win insurance against dealer blackjack", Reward: 10, Type: AchievementOneTime},
	{ID: achChips1000, Name: "Getting Started", Description: "Have 1,000 chips", Reward: 5, Type: AchievementMilestone, Target: 1000},
	{ID: achChips5000, Name: "High Roller", Description: "Have 5,000 chips", Reward: 15, Type: AchievementMilestone, Target: 5000},
	{ID: achChips10000, Name: "Millionaire", Description: "Have 10,000 chips", Reward: 30, Type: AchievementMilestone, Target: 10000},
	{ID: achHands50, Name: "Regular Player", Description: "Play 50 hands", Reward: 10, Type: AchievementMilestone, Target: 50},
	{ID: achHands100, Name: "Dedicated", Description: "Play 100 hands", Reward: 20, Type: AchievementMilestone, Target: 100},
	{ID: achHands500, Name: "Veteran", Description: "Play 500 hands", Reward: 50, Type: AchievementMilestone, Target: 500},
	{ID: achComeback, Name: "Comeback Kid", Description: "Win after being down to 0 chips", Reward: 20, Type: AchievementOneTime},
}

// BalanceReader reads the current chip balance
type BalanceReader interface {
	Balance() (int, error)
}

// AchievementStatus is an achievement with the player's progress
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
	Progress   int        `json:"progress"`
}

// AchievementTracker unlocks achievements as rounds settle
type AchievementTracker struct {
	mu       sync.RWMutex
	logger   logrus.FieldLogger
	balance  BalanceReader
	byID     map[string]Achievement
	unlocked map[string]time.Time
	progress map[string]int
	gems     int

	totalHands    int
	currentStreak int
	blackjacks    int

	now func() time.Time
}

// NewAchievementTracker returns a tracker
// balance may be nil, in which case chip milestones are never checked
func NewAchievementTracker(logger logrus.FieldLogger, balance BalanceReader) *AchievementTracker {
	byID := make(map[string]Achievement, len(Achievements))
	for _, a := range Achievements {
		byID[a.ID] = a
	}

	return &AchievementTracker{
		logger:   logger,
		balance:  balance,
		byID:     byID,
		unlocked: make(map[string]time.Time),
		progress: make(map[string]int),
		now:      time.Now,
	}
}

// RecordHandResult checks every achievement against the outcome
func (t *AchievementTracker) RecordHandResult(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalHands++

	if o.Won {
		t.currentStreak++
		t.unlock(achFirstWin)
		if t.currentStreak >= 3 {
			t.unlock(achWinStreak3)
		}
		if t.currentStreak >= 5 {
			t.unlock(achWinStreak5)
		}
		if t.currentStreak >= 10 {
			t.unlock(achWinStreak10)
		}
	} else if o.Lost {
		t.currentStreak = 0
	}

	if o.IsBlackjack {
		t.blackjacks++
		t.unlock(achBlackjack)
		t.updateProgress(achBlackjack10, t.blackjacks)
	}

	if o.DoubleWin() {
		t.unlock(achDoubleWin)
	}

	if o.SplitWin() {
		t.unlock(achSplitWin)
	}

	if o.InsuranceWon {
		t.unlock(achInsuranceSave)
	}

	if o.Comeback {
		t.unlock(achComeback)
	}

	t.updateProgress(achHands50, t.totalHands)
	t.updateProgress(achHands100, t.totalHands)
	t.updateProgress(achHands500, t.totalHands)

	if t.balance != nil {
		chips, err := t.balance.Balance()
		if err != nil {
			t.logger.WithError(err).Warn("could not read balance for chip achievements")
			return
		}

		t.updateProgress(achChips1000, chips)
		t.updateProgress(achChips5000, chips)
		t.updateProgress(achChips10000, chips)
	}
}

// unlock must be called with the lock held
func (t *AchievementTracker) unlock(id string) bool {
	if _, ok := t.unlocked[id]; ok {
		return false
	}

	a, ok := t.byID[id]
	if !ok {
		return false
	}

	t.unlocked[id] = t.now()
	t.gems += a.Reward
	t.logger.WithFields(logrus.Fields{
		"achievement": a.ID,
		"reward":      a.Reward,
	}).Info("achievement unlocked")

	return true
}

// updateProgress must be called with the lock held
func (t *AchievementTracker) updateProgress(id string, value int) {
	if _, ok := t.unlocked[id]; ok {
		return
	}

	a, ok := t.byID[id]
	if !ok || a.Type != AchievementMilestone {
		return
	}

	t.progress[id] = value
	if value >= a.Target {
		t.unlock(id)
	}
}

// IsUnlocked returns true if the achievement is unlocked
func (t *AchievementTracker) IsUnlocked(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.unlocked[id]
	return ok
}

// Gems returns the gems earned from achievements
func (t *AchievementTracker) Gems() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.gems
}

// Statuses returns every achievement in definition order with progress
func (t *AchievementTracker) Statuses() []AchievementStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	statuses := make([]AchievementStatus, len(Achievements))
	for i, a := range Achievements {
		status := AchievementStatus{
			Achievement: a,
			Progress:    t.progress[a.ID],
		}

		if at, ok := t.unlocked[a.ID]; ok {
			at := at
			status.Unlocked = true
			status.UnlockedAt = &at
		}

		statuses[i] = status
	}

	return statuses
}
