package gamefactory

import (
	"errors"
	"fmt"
	"sort"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
)

var factories = map[string]GameFactory{
	"blackjack":        blackjackFactory{simple: false},
	"blackjack-simple": blackjackFactory{simple: true},
}

// Dependencies are the collaborators a game is built with
// Shoe and Recorder are optional.
type Dependencies struct {
	Logger   logrus.FieldLogger
	Economy  economy.Port
	Shoe     *deck.Shoe
	Recorder telemetry.Recorder
}

func (d Dependencies) validate() error {
	if d.Economy == nil {
		return errors.New("economy is required")
	}

	return nil
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(deps Dependencies, additionalData playable.AdditionalData) (playable.Playable, error)
	Details(additionalData playable.AdditionalData) (name string, minBet int, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}

// Names returns the registered factory names, sorted
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
