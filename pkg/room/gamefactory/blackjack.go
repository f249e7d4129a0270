package gamefactory

import (
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
)

type blackjackFactory struct {
	simple bool
}

// options returns the variant's options with any bet limits in additionalData applied
func (b blackjackFactory) options(additionalData playable.AdditionalData) (blackjack.Options, error) {
	opts := blackjack.DefaultOptions()
	if b.simple {
		opts = blackjack.SimpleOptions()
	}

	if minBet, ok := additionalData.GetInt("minBet"); ok {
		opts.MinBet = minBet
	}

	if maxBet, ok := additionalData.GetInt("maxBet"); ok {
		opts.MaxBet = maxBet
	}

	if defaultBet, ok := additionalData.GetInt("defaultBet"); ok {
		opts.DefaultBet = defaultBet
	}

	if allow, ok := additionalData.GetBool("allowDoubleDown"); ok {
		opts.AllowDoubleDown = allow
	}

	if !b.simple {
		if allow, ok := additionalData.GetBool("allowInsurance"); ok {
			opts.AllowInsurance = allow
		}

		if allow, ok := additionalData.GetBool("allowSplit"); ok {
			opts.AllowSplit = allow
		}
	}

	if err := opts.Validate(); err != nil {
		return blackjack.Options{}, err
	}

	return opts, nil
}

func (b blackjackFactory) CreateGame(deps Dependencies, additionalData playable.AdditionalData) (playable.Playable, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	opts, err := b.options(additionalData)
	if err != nil {
		return nil, err
	}

	return blackjack.NewGame(deps.Logger, deps.Economy, deps.Shoe, deps.Recorder, opts)
}

func (b blackjackFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts, err := b.options(additionalData)
	if err != nil {
		return "", 0, err
	}

	if b.simple {
		return "Blackjack (Simple)", opts.MinBet, nil
	}

	return "Blackjack", opts.MinBet, nil
}
