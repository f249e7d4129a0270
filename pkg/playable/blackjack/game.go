// Package blackjack is the single-player blackjack round engine
package blackjack

import (
	"errors"
	"fmt"
	"time"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/telemetry"

	"github.com/sirupsen/logrus"
)

// dealerStandsOn is the total the dealer stops drawing at, soft or hard
const dealerStandsOn = 17

var _ playable.Playable = &Game{}

// Game is a blackjack table with a single player
// Game is not safe for concurrent use; room.Dealer serializes access to it.
type Game struct {
	options  Options
	logger   logrus.FieldLogger
	economy  economy.Port
	shoe     *deck.Shoe
	recorder telemetry.Recorder
	logChan  chan []*playable.LogMessage

	phase       Phase
	pendingBet  int
	round       *Round
	lastOutcome *telemetry.Outcome

	// rescued is set when the economy topped up an empty balance and cleared by the next win
	rescued bool
}

// NewGame returns a new game in the betting phase
// If shoe is nil a new one is created. recorder may be nil.
func NewGame(logger logrus.FieldLogger, port economy.Port, shoe *deck.Shoe, recorder telemetry.Recorder, options Options) (*Game, error) {
	if port == nil {
		return nil, errors.New("economy is required")
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if shoe == nil {
		shoe = deck.NewShoe(logger, nil)
	}

	if recorder == nil {
		recorder = telemetry.Multi{}
	}

	g := &Game{
		options:    options,
		logger:     logger,
		economy:    port,
		shoe:       shoe,
		recorder:   recorder,
		logChan:    make(chan []*playable.LogMessage, 256),
		phase:      PhaseBetting,
		pendingBet: options.DefaultBet,
	}

	g.rescue()
	return g, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	if !g.options.AllowInsurance && !g.options.AllowSplit {
		return "Blackjack (Simple)"
	}

	return "Blackjack"
}

// Key returns a unique key
func (g *Game) Key() string {
	return "blackjack"
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// PendingBet returns the bet that will be placed by the next deal
func (g *Game) PendingBet() int {
	return g.pendingBet
}

// Round returns the round in play or just settled, or nil while betting
func (g *Game) Round() *Round {
	return g.round
}

// LastOutcome returns the outcome of the most recently settled round
func (g *Game) LastOutcome() *telemetry.Outcome {
	return g.lastOutcome
}

// Options returns the table options
func (g *Game) Options() Options {
	return g.options
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs the command in the message
// If updateState is true, the state changed and clients should re-read it
func (g *Game) Action(message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	action, err := ActionFromString(message.Action)
	if err != nil {
		return nil, false, err
	}

	switch action {
	case ActionBet:
		amount, ok := message.AdditionalData.GetInt("amount")
		if !ok {
			if _, set := message.AdditionalData["amount"]; set {
				return nil, false, fmt.Errorf("%w: amount must be a whole number", ErrInvalidBet)
			}

			amount = g.pendingBet
		}

		err = g.PlaceBet(amount)
	case ActionAdjustBet:
		amount, ok := message.AdditionalData.GetInt("amount")
		if !ok {
			return nil, false, fmt.Errorf("%w: amount is required", ErrInvalidBet)
		}

		err = g.AdjustBet(amount)
	case ActionClearBet:
		err = g.ClearBet()
	case ActionTakeInsurance:
		err = g.TakeInsurance()
	case ActionDeclineInsurance:
		err = g.DeclineInsurance()
	case ActionHit:
		err = g.Hit()
	case ActionStand:
		err = g.Stand()
	case ActionDouble:
		err = g.DoubleDown()
	case ActionSplit:
		err = g.Split()
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	if err != nil {
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}

// GetState returns the current state of the game
func (g *Game) GetState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.State(),
	}, nil
}

func (g *Game) isBetting() bool {
	return g.phase == PhaseBetting || g.phase == PhaseSettlement
}

// AdjustBet changes the pending bet by delta (a chip being added or removed)
func (g *Game) AdjustBet(delta int) error {
	if !g.isBetting() {
		return phaseError(ActionAdjustBet, g.phase)
	}

	next := g.pendingBet + delta
	if next < 0 || (g.options.MaxBet > 0 && next > g.options.MaxBet) {
		return fmt.Errorf("%w: %d", ErrInvalidBet, next)
	}

	g.closeRound()
	g.pendingBet = next
	return nil
}

// ClearBet sets the pending bet to zero
func (g *Game) ClearBet() error {
	if !g.isBetting() {
		return phaseError(ActionClearBet, g.phase)
	}

	g.closeRound()
	g.pendingBet = 0
	return nil
}

// PlaceBet reserves amount and deals a new round
// A bet placed from the settlement phase closes the finished round once the stake is reserved.
func (g *Game) PlaceBet(amount int) error {
	if !g.isBetting() {
		return phaseError(ActionBet, g.phase)
	}

	if !g.options.betInRange(amount) {
		return fmt.Errorf("%w: %d", ErrInvalidBet, amount)
	}

	if err := g.reserve(amount); err != nil {
		return err
	}

	g.closeRound()
	g.pendingBet = amount
	g.deal(amount)
	return nil
}

// TakeInsurance reserves half the bet as an insurance side bet and checks the dealer for blackjack
func (g *Game) TakeInsurance() error {
	if g.phase != PhaseInsuranceOffer {
		return phaseError(ActionTakeInsurance, g.phase)
	}

	cost := g.insuranceCost()
	if cost <= 0 {
		return ErrNoInsurance
	}

	if err := g.reserve(cost); err != nil {
		return err
	}

	g.round.InsuranceStake = cost
	g.logf(nil, "Insurance taken for %d", cost)
	g.resolveDeal()
	return nil
}

// DeclineInsurance checks the dealer for blackjack without a side bet
func (g *Game) DeclineInsurance() error {
	if g.phase != PhaseInsuranceOffer {
		return phaseError(ActionDeclineInsurance, g.phase)
	}

	g.logf(nil, "Insurance declined")
	g.resolveDeal()
	return nil
}

// Hit draws one card into the active hand
func (g *Game) Hit() error {
	if g.phase != PhasePlayerTurn {
		return phaseError(ActionHit, g.phase)
	}

	hand := g.round.activeHand()
	if hand.isFinished() {
		return ErrHandFinished
	}

	card := g.shoe.Draw()
	hand.AddCard(card)
	g.logf([]*deck.Card{card}, "Hit: %s (%d)", card, hand.Score())

	if hand.isFinished() {
		g.advance()
	}

	return nil
}

// Stand finishes the active hand
func (g *Game) Stand() error {
	if g.phase != PhasePlayerTurn {
		return phaseError(ActionStand, g.phase)
	}

	g.logf(nil, "Stand on %d", g.round.activeHand().Score())
	g.advance()
	return nil
}

// DoubleDown doubles the stake of the active hand and draws exactly one card
func (g *Game) DoubleDown() error {
	if g.phase != PhasePlayerTurn {
		return phaseError(ActionDouble, g.phase)
	}

	if !g.canDouble() {
		return ErrCannotDouble
	}

	hand := g.round.activeHand()
	if err := g.reserve(hand.Bet); err != nil {
		return err
	}

	hand.Bet *= 2
	hand.Doubled = true

	card := g.shoe.Draw()
	hand.AddCard(card)
	g.logf([]*deck.Card{card}, "Double down for %d: %s (%d)", hand.Bet, card, hand.Score())

	g.advance()
	return nil
}

// Split moves the second card of a pair into a new hand with an equal stake
// and draws a replacement card into each hand. The first hand plays first.
func (g *Game) Split() error {
	if g.phase != PhasePlayerTurn {
		return phaseError(ActionSplit, g.phase)
	}

	if !g.canSplit() {
		return ErrCannotSplit
	}

	r := g.round
	first := r.MainHand()
	if err := g.reserve(first.Bet); err != nil {
		return err
	}

	second := NewHand(first.Bet)
	second.FromSplit = true
	first.FromSplit = true
	second.AddCard(first.popCard())

	first.AddCard(g.shoe.Draw())
	second.AddCard(g.shoe.Draw())

	r.Hands = append(r.Hands, second)
	r.Active = 0
	g.logf(nil, "Split: %s / %s", first, second)

	if first.isFinished() {
		g.advance()
	}

	return nil
}

func (g *Game) canDouble() bool {
	if !g.options.AllowDoubleDown || g.phase != PhasePlayerTurn {
		return false
	}

	hand := g.round.activeHand()
	return len(hand.Cards) == 2 && !hand.isFinished()
}

func (g *Game) canSplit() bool {
	if !g.options.AllowSplit || g.phase != PhasePlayerTurn {
		return false
	}

	return !g.round.IsSplit() && g.round.MainHand().canSplit()
}

func (g *Game) insuranceCost() int {
	if g.round == nil {
		return 0
	}

	return g.round.MainHand().Bet / 2
}

// reserve asks the economy for amount
// Any refusal, insufficient funds or otherwise, is reported as ErrStakeDeclined.
func (g *Game) reserve(amount int) error {
	if err := g.economy.Reserve(amount); err != nil {
		if !errors.Is(err, economy.ErrInsufficientFunds) {
			g.logger.WithError(err).WithField("amount", amount).Error("could not reserve stake")
		}

		return declined(err)
	}

	return nil
}

func (g *Game) credit(amount int, reason string) {
	if amount <= 0 {
		return
	}

	if err := g.economy.Credit(amount); err != nil {
		g.roundLogger().WithError(err).WithFields(logrus.Fields{
			"amount": amount,
			"reason": reason,
		}).Error("could not credit payout")
	}
}

// closeRound discards a settled round and returns to betting
func (g *Game) closeRound() {
	if g.phase != PhaseSettlement {
		return
	}

	g.round = nil
	g.phase = PhaseBetting
}

// rescue tops up an empty balance if the economy supports it
func (g *Game) rescue() {
	rescuer, ok := g.economy.(economy.Rescuer)
	if !ok {
		return
	}

	rescued, err := rescuer.Rescue()
	if err != nil {
		g.logger.WithError(err).Error("could not rescue balance")
		return
	}

	if rescued {
		g.rescued = true
		g.logger.Info("balance rescued")
		g.logf(nil, "Out of chips, the house spots you a few")
	}
}

// deal starts a round: fresh shoe, P,D,P,D, then the insurance offer or the blackjack checks
func (g *Game) deal(bet int) {
	g.round = newRound(bet)
	g.phase = PhaseDealing
	g.shoe.Reset()

	r := g.round
	for i := 0; i < 2; i++ {
		r.MainHand().AddCard(g.shoe.Draw())
		r.Dealer.AddCard(g.shoe.Draw())
	}

	g.roundLogger().WithField("bet", bet).Debug("round dealt")
	g.logf(r.MainHand().Cards.Clone(), "Bet %d, dealt %s against %s", bet, r.MainHand(), r.UpCard())

	if g.options.AllowInsurance && r.UpCard().IsAce() {
		r.InsuranceOffered = true
		g.phase = PhaseInsuranceOffer
		return
	}

	g.resolveDeal()
}

// resolveDeal runs the blackjack checks after the deal (and after insurance)
func (g *Game) resolveDeal() {
	r := g.round
	if r.Dealer.IsBlackjack() {
		g.logf(r.Dealer.Cards.Clone(), "Dealer has blackjack")
		if r.InsuranceStake > 0 {
			r.InsurancePayout = r.InsuranceStake * 3
			g.credit(r.InsurancePayout, "insurance")
			g.logf(nil, "Insurance pays %d", r.InsurancePayout)
		}

		g.settle()
		return
	}

	if r.MainHand().IsBlackjack() {
		g.logf(nil, "Blackjack!")
		g.settle()
		return
	}

	g.phase = PhasePlayerTurn
}

// advance moves to the next unfinished hand or on to the dealer
func (g *Game) advance() {
	r := g.round
	for r.Active < len(r.Hands)-1 {
		r.Active++
		if !r.activeHand().isFinished() {
			return
		}
	}

	g.dealerTurn()
}

func (g *Game) dealerTurn() {
	g.phase = PhaseDealerTurn

	r := g.round
	if !r.allBusted() {
		for r.Dealer.Score() < dealerStandsOn {
			r.Dealer.AddCard(g.shoe.Draw())
		}
	}

	g.logf(r.Dealer.Cards.Clone(), "Dealer has %d", r.Dealer.Score())
	g.settle()
}

// settleHand returns the result and the payout of a player hand against the dealer
// A natural pays the same as any other win.
func settleHand(hand, dealer *Hand) (telemetry.Result, int) {
	switch {
	case hand.IsBusted():
		return telemetry.ResultLose, 0
	case dealer.IsBusted():
		return telemetry.ResultWin, 2 * hand.Bet
	case hand.Score() > dealer.Score():
		return telemetry.ResultWin, 2 * hand.Bet
	case hand.Score() < dealer.Score():
		return telemetry.ResultLose, 0
	}

	return telemetry.ResultPush, hand.Bet
}

func (g *Game) settle() {
	g.phase = PhaseSettlement

	r := g.round
	main := r.MainHand()
	outcome := telemetry.Outcome{
		RoundID:         r.ID,
		Time:            time.Now(),
		IsBlackjack:     main.IsNatural(),
		IsBusted:        main.IsBusted(),
		WasSplit:        r.IsSplit(),
		UsedInsurance:   r.InsuranceStake > 0,
		InsuranceWon:    r.InsurancePayout > 0,
		TotalBet:        r.TotalBet(),
		InsuranceStake:  r.InsuranceStake,
		InsurancePayout: r.InsurancePayout,
		DealerCards:     r.Dealer.Cards.Clone(),
		DealerScore:     r.Dealer.Score(),
		Hands:           make([]telemetry.HandResult, 0, len(r.Hands)),
	}

	wins, losses := 0, 0
	for _, hand := range r.Hands {
		result, payout := settleHand(hand, r.Dealer)
		switch result {
		case telemetry.ResultWin:
			wins++
		case telemetry.ResultLose:
			losses++
			outcome.BetLost += hand.Bet
		}

		outcome.Payout += payout
		outcome.WasDoubled = outcome.WasDoubled || hand.Doubled
		outcome.Hands = append(outcome.Hands, telemetry.HandResult{
			Cards:       hand.Cards.Clone(),
			Score:       hand.Score(),
			Bet:         hand.Bet,
			Payout:      payout,
			Result:      result,
			IsBlackjack: hand.IsNatural(),
			IsBusted:    hand.IsBusted(),
			WasDoubled:  hand.Doubled,
		})
	}

	switch {
	case wins > losses:
		outcome.Result = telemetry.ResultWin
		outcome.Won = true
	case losses > wins:
		outcome.Result = telemetry.ResultLose
		outcome.Lost = true
	default:
		outcome.Result = telemetry.ResultPush
		outcome.Push = true
	}

	if outcome.Won && g.rescued {
		outcome.Comeback = true
		g.rescued = false
	}

	g.credit(outcome.Payout, "payout")
	g.lastOutcome = &outcome

	g.roundLogger().WithFields(logrus.Fields{
		"result": outcome.Result,
		"payout": outcome.Payout,
	}).Debug("round settled")
	g.logf(nil, "Round %s, payout %d", outcome.Result, outcome.Payout)

	g.recorder.RecordHandResult(outcome)
	g.rescue()
}

func (g *Game) roundLogger() logrus.FieldLogger {
	fields := logrus.Fields{"phase": g.phase}
	if g.round != nil {
		fields["roundId"] = g.round.ID
	}

	return g.logger.WithFields(fields)
}

// logf sends a message to the log channel without blocking
func (g *Game) logf(cards []*deck.Card, format string, a ...interface{}) {
	var roundID string
	if g.round != nil {
		roundID = g.round.ID
	}

	msg := playable.SimpleLogMessage(roundID, format, a...)
	msg.Cards = cards

	select {
	case g.logChan <- []*playable.LogMessage{msg}:
	default:
		g.logger.WithField("message", msg.Message).Warn("log channel is full, dropping message")
	}
}
