package telemetry

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"blackjack-server/internal/rng"

	"github.com/sirupsen/logrus"
)

// ErrQuestNotFound is returned when claiming a quest that is not active today
var ErrQuestNotFound = errors.New("quest not found")

// ErrQuestNotComplete is returned when claiming an unfinished quest
var ErrQuestNotComplete = errors.New("quest is not complete")

// ErrQuestAlreadyClaimed is returned when a quest reward was already paid
var ErrQuestAlreadyClaimed = errors.New("quest reward already claimed")

// dailyQuestCount is how many quests are active each day
const dailyQuestCount = 3

// QuestTemplate describes a quest that can be drawn for the day
type QuestTemplate struct {
	ID          string
	Name        string
	Description string
	Targets     []int
	RewardChips int
	RewardGems  int
}

// quest ids
const (
	questWinHands     = "win_hands"
	questPlayHands    = "play_hands"
	questGetBlackjack = "get_blackjack"
	questWinStreak    = "win_streak"
	questDoubleWin    = "double_win"
	questSplitPlay    = "split_play"
	questEarnChips    = "earn_chips"
	questUseInsurance = "use_insurance"
)

// QuestTemplates are the quests that can be drawn
var QuestTemplates = []QuestTemplate{
	{ID: questWinHands, Name: "Winner", Description: "Win {target} hands", Targets: []int{3, 5, 7}, RewardChips: 50, RewardGems: 1},
	{ID: questPlayHands, Name: "Active Player", Description: "Play {target} hands", Targets: []int{5, 10, 15}, RewardChips: 30},
	{ID: questGetBlackjack, Name: "Natural 21", Description: "Get a Blackjack", Targets: []int{1}, RewardChips: 75, RewardGems: 2},
	{ID: questWinStreak, Name: "Hot Streak", Description: "Win {target} hands in a row", Targets: []int{2, 3}, RewardChips: 100, RewardGems: 2},
	{ID: questDoubleWin, Name: "Risk Taker", Description: "Win after doubling down", Targets: []int{1}, RewardChips: 60, RewardGems: 1},
	{ID: questSplitPlay, Name: "Divided", Description: "Play a split hand", Targets: []int{1}, RewardChips: 40, RewardGems: 1},
	{ID: questEarnChips, Name: "Profit", Description: "Earn {target} chips", Targets: []int{200, 500, 1000}, RewardChips: 50, RewardGems: 1},
	{ID: questUseInsurance, Name: "Safe Play", Description: "Use insurance", Targets: []int{1}, RewardChips: 30},
}

// Quest is an active daily quest
type Quest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Progress    int    `json:"progress"`
	Completed   bool   `json:"completed"`
	Claimed     bool   `json:"claimed"`
	RewardChips int    `json:"rewardChips"`
	RewardGems  int    `json:"rewardGems"`
}

// Creditor pays out chip rewards
type Creditor interface {
	Credit(amount int) error
}

type sessionStats struct {
	currentStreak int
	chipsEarned   int
}

// QuestBoard tracks the daily quests
type QuestBoard struct {
	mu        sync.Mutex
	logger    logrus.FieldLogger
	rng       rng.Generator
	creditor  Creditor
	now       func() time.Time
	quests    []*Quest
	lastReset time.Time
	session   sessionStats
	gems      int
}

// NewQuestBoard returns a quest board that draws quests with gen and pays rewards to creditor
func NewQuestBoard(logger logrus.FieldLogger, gen rng.Generator, creditor Creditor) *QuestBoard {
	if gen == nil {
		gen = rng.NewSeeded(0)
	}

	return &QuestBoard{
		logger:   logger,
		rng:      gen,
		creditor: creditor,
		now:      time.Now,
	}
}

// WithClock overrides the clock used for the daily reset
func (q *QuestBoard) WithClock(now func() time.Time) *QuestBoard {
	q.mu.Lock()
	q.now = now
	q.mu.Unlock()

	return q
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// checkDayReset must be called with the lock held
func (q *QuestBoard) checkDayReset() {
	today := startOfDay(q.now())
	if !q.lastReset.IsZero() && !q.lastReset.Before(today) {
		return
	}

	q.generate()
	q.lastReset = today
	q.session = sessionStats{}
	q.logger.WithField("day", today.Format("2006-01-02")).Debug("generated daily quests")
}

func (q *QuestBoard) generate() {
	templates := make([]QuestTemplate, len(QuestTemplates))
	copy(templates, QuestTemplates)
	for j := len(templates) - 1; j > 0; j-- {
		i := q.rng.Intn(j + 1)
		templates[i], templates[j] = templates[j], templates[i]
	}

	q.quests = make([]*Quest, 0, dailyQuestCount)
	for _, tpl := range templates[:dailyQuestCount] {
		target := tpl.Targets[q.rng.Intn(len(tpl.Targets))]
		reward := tpl.RewardChips
		if target > 1 {
			reward *= (target + 1) / 2
		}

		q.quests = append(q.quests, &Quest{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: strings.ReplaceAll(tpl.Description, "{target}", strconv.Itoa(target)),
			Target:      target,
			RewardChips: reward,
			RewardGems:  tpl.RewardGems,
		})
	}
}

// RecordHandResult advances the quests
func (q *QuestBoard) RecordHandResult(o Outcome) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkDayReset()

	if o.Won {
		q.session.currentStreak++
		q.advance(questWinHands, 1, false)
		q.advance(questWinStreak, q.session.currentStreak, true)
	} else if o.Lost {
		q.session.currentStreak = 0
	}

	if o.IsBlackjack {
		q.advance(questGetBlackjack, 1, false)
	}

	if o.DoubleWin() {
		q.advance(questDoubleWin, 1, false)
	}

	if o.WasSplit {
		q.advance(questSplitPlay, 1, false)
	}

	if o.Payout > 0 {
		q.session.chipsEarned += o.Payout
		q.advance(questEarnChips, q.session.chipsEarned, true)
	}

	if o.UsedInsurance {
		q.advance(questUseInsurance, 1, false)
	}

	q.advance(questPlayHands, 1, false)
}

// advance must be called with the lock held
func (q *QuestBoard) advance(id string, value int, absolute bool) {
	for _, quest := range q.quests {
		if quest.ID != id || quest.Completed {
			continue
		}

		if absolute {
			quest.Progress = value
		} else {
			quest.Progress += value
		}

		if quest.Progress >= quest.Target {
			quest.Progress = quest.Target
			quest.Completed = true
		}
	}
}

// Quests returns a copy of today's quests
func (q *QuestBoard) Quests() []Quest {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkDayReset()
	quests := make([]Quest, len(q.quests))
	for i, quest := range q.quests {
		quests[i] = *quest
	}

	return quests
}

// TimeUntilReset returns how long until the quests are redrawn
func (q *QuestBoard) TimeUntilReset() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	return startOfDay(now).AddDate(0, 0, 1).Sub(now)
}

// Claim pays out the reward of a completed quest
func (q *QuestBoard) Claim(id string) (Quest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkDayReset()
	for _, quest := range q.quests {
		if quest.ID != id {
			continue
		}

		if !quest.Completed {
			return *quest, ErrQuestNotComplete
		}

		if quest.Claimed {
			return *quest, ErrQuestAlreadyClaimed
		}

		if q.creditor != nil && quest.RewardChips > 0 {
			if err := q.creditor.Credit(quest.RewardChips); err != nil {
				return *quest, err
			}
		}

		quest.Claimed = true
		q.gems += quest.RewardGems
		q.logger.WithFields(logrus.Fields{
			"quest": quest.ID,
			"chips": quest.RewardChips,
			"gems":  quest.RewardGems,
		}).Info("quest claimed")

		return *quest, nil
	}

	return Quest{}, ErrQuestNotFound
}

// Gems returns the gems earned from quests
func (q *QuestBoard) Gems() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.gems
}
