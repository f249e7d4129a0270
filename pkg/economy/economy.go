// Package economy holds the chip balance the round engine stakes against
package economy

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when a reservation is declined
var ErrInsufficientFunds = errors.New("insufficient chips")

// ErrInvalidAmount is returned for zero or negative amounts
var ErrInvalidAmount = errors.New("amount must be > 0")

// DefaultStartingChips is the balance of a brand new wallet
const DefaultStartingChips = 1000

// DefaultRescueChips is the balance a bankrupt wallet is topped up to
const DefaultRescueChips = 100

// Port is the economy collaborator of the round engine
type Port interface {
	// Reserve atomically checks and debits amount.
	// A declined reservation returns ErrInsufficientFunds and debits nothing.
	Reserve(amount int) error

	// Credit adds amount to the balance
	Credit(amount int) error

	// Balance returns the current balance
	Balance() (int, error)
}

// Rescuer is implemented by economies that top up a bankrupt player
type Rescuer interface {
	// Rescue tops the balance up if it is empty, returning true if it did
	Rescue() (bool, error)
}

// ValidAmount returns an ErrInvalidAmount error if amount is not positive
func ValidAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	return nil
}
