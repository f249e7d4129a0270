package blackjack

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a command is not allowed in the current phase
// or one of its guards failed. The round is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrStakeDeclined is returned when the economy refused a reservation.
// The round is left unchanged.
var ErrStakeDeclined = errors.New("stake declined")

// guard errors, all of which are invalid transitions
var (
	ErrInvalidBet    = fmt.Errorf("%w: invalid bet", ErrInvalidTransition)
	ErrCannotSplit   = fmt.Errorf("%w: hand cannot be split", ErrInvalidTransition)
	ErrCannotDouble  = fmt.Errorf("%w: hand cannot be doubled", ErrInvalidTransition)
	ErrHandFinished  = fmt.Errorf("%w: hand is finished", ErrInvalidTransition)
	ErrNoInsurance   = fmt.Errorf("%w: insurance is not available", ErrInvalidTransition)
	ErrUnknownAction = fmt.Errorf("%w: unknown action", ErrInvalidTransition)
)

func phaseError(action Action, phase Phase) error {
	return fmt.Errorf("%w: cannot %s from phase: %s", ErrInvalidTransition, action, phase)
}

func declined(err error) error {
	return fmt.Errorf("%w: %w", ErrStakeDeclined, err)
}
