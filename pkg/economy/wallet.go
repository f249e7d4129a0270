package economy

import "sync"

// Wallet is an in-memory economy
type Wallet struct {
	mu          sync.Mutex
	chips       int
	rescueChips int
}

// NewWallet returns a wallet with the given starting chips
func NewWallet(startingChips int) *Wallet {
	return &Wallet{
		chips:       startingChips,
		rescueChips: DefaultRescueChips,
	}
}

// WithRescueChips sets the amount a bankrupt wallet is topped up to
func (w *Wallet) WithRescueChips(chips int) *Wallet {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.rescueChips = chips
	return w
}

// Reserve debits amount if the balance covers it
func (w *Wallet) Reserve(amount int) error {
	if err := ValidAmount(amount); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.chips < amount {
		return ErrInsufficientFunds
	}

	w.chips -= amount
	return nil
}

// Credit adds amount to the balance
func (w *Wallet) Credit(amount int) error {
	if err := ValidAmount(amount); err != nil {
		return err
	}

	w.mu.Lock()
	w.chips += amount
	w.mu.Unlock()

	return nil
}

// Balance returns the current balance
func (w *Wallet) Balance() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.chips, nil
}

// Rescue tops up an empty wallet
func (w *Wallet) Rescue() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.chips > 0 || w.rescueChips <= 0 {
		return false, nil
	}

	w.chips = w.rescueChips
	return true, nil
}
