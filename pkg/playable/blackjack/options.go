package blackjack

import "errors"

// Options contains options for a blackjack table
type Options struct {
	// MinBet is the smallest bet that can be placed
	MinBet int `json:"minBet" yaml:"minBet"`

	// MaxBet is the largest bet that can be placed, 0 for no limit
	MaxBet int `json:"maxBet" yaml:"maxBet"`

	// DefaultBet is the pending bet at the start of a session
	DefaultBet int `json:"defaultBet" yaml:"defaultBet"`

	AllowInsurance  bool `json:"allowInsurance" yaml:"allowInsurance"`
	AllowSplit      bool `json:"allowSplit" yaml:"allowSplit"`
	AllowDoubleDown bool `json:"allowDoubleDown" yaml:"allowDoubleDown"`
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		MinBet:          1,
		MaxBet:          0,
		DefaultBet:      10,
		AllowInsurance:  true,
		AllowSplit:      true,
		AllowDoubleDown: true,
	}
}

// SimpleOptions returns the options of the simple variant: no insurance and no splits
func SimpleOptions() Options {
	opts := DefaultOptions()
	opts.AllowInsurance = false
	opts.AllowSplit = false

	return opts
}

// Validate returns an error if the options are unusable
func (o Options) Validate() error {
	if o.MinBet <= 0 {
		return errors.New("min bet must be > 0")
	}

	if o.MaxBet < 0 {
		return errors.New("max bet must be >= 0")
	}

	if o.MaxBet > 0 && o.MaxBet < o.MinBet {
		return errors.New("max bet must be >= min bet")
	}

	if o.DefaultBet < 0 {
		return errors.New("default bet must be >= 0")
	}

	if o.MaxBet > 0 && o.DefaultBet > o.MaxBet {
		return errors.New("default bet must be <= max bet")
	}

	return nil
}

func (o Options) betInRange(amount int) bool {
	if amount <= 0 || amount < o.MinBet {
		return false
	}

	return o.MaxBet == 0 || amount <= o.MaxBet
}
