package blackjack

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Action is a command the player can issue
type Action int

// MarshalJSON encodes the JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Key:  a.Key(),
		Name: a.String(),
	})
}

// Action constants
const (
	ActionBet Action = iota
	ActionAdjustBet
	ActionClearBet
	ActionTakeInsurance
	ActionDeclineInsurance
	ActionHit
	ActionStand
	ActionDouble
	ActionSplit
)

var actionKeys = map[Action]string{
	ActionBet:              "bet",
	ActionAdjustBet:        "adjust-bet",
	ActionClearBet:         "clear-bet",
	ActionTakeInsurance:    "take-insurance",
	ActionDeclineInsurance: "decline-insurance",
	ActionHit:              "hit",
	ActionStand:            "stand",
	ActionDouble:           "double",
	ActionSplit:            "split",
}

func (a Action) String() string {
	switch a {
	case ActionBet:
		return "Bet"
	case ActionAdjustBet:
		return "Adjust Bet"
	case ActionClearBet:
		return "Clear Bet"
	case ActionTakeInsurance:
		return "Take Insurance"
	case ActionDeclineInsurance:
		return "Decline Insurance"
	case ActionHit:
		return "Hit"
	case ActionStand:
		return "Stand"
	case ActionDouble:
		return "Double Down"
	case ActionSplit:
		return "Split"
	}

	return fmt.Sprintf("Action(%d)", int(a))
}

// Key returns the wire name of the action (e.g., "take-insurance")
func (a Action) Key() string {
	if key, ok := actionKeys[a]; ok {
		return key
	}

	return strconv.Itoa(int(a))
}

// ActionFromString returns an action from its key or its integer id
func ActionFromString(action string) (Action, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	for a, key := range actionKeys {
		if key == action {
			return a, nil
		}
	}

	actionInt, err := strconv.Atoi(action)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if actionInt >= 0 && actionInt <= int(ActionSplit) {
		return Action(actionInt), nil
	}

	return -1, fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

// AvailableActions returns the actions that are valid right now
func (g *Game) AvailableActions() []Action {
	switch g.phase {
	case PhaseBetting, PhaseSettlement:
		actions := []Action{ActionAdjustBet, ActionClearBet}
		if g.options.betInRange(g.pendingBet) {
			actions = append([]Action{ActionBet}, actions...)
		}

		return actions

	case PhaseInsuranceOffer:
		if g.insuranceCost() > 0 {
			return []Action{ActionTakeInsurance, ActionDeclineInsurance}
		}

		return []Action{ActionDeclineInsurance}

	case PhasePlayerTurn:
		actions := []Action{ActionHit, ActionStand}
		if g.canDouble() {
			actions = append(actions, ActionDouble)
		}

		if g.canSplit() {
			actions = append(actions, ActionSplit)
		}

		return actions
	}

	return nil
}
