package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room/gamefactory"
	"blackjack-server/pkg/store"
	"blackjack-server/pkg/telemetry"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var dbPath = flag.String("db", "", "a SQLite file to keep the wallet in (in-memory when empty)")
var variant = flag.String("variant", "blackjack", "the table variant")
var chips = flag.Int("chips", economy.DefaultStartingChips, "the starting chips of a new wallet")
var seed = flag.Int64("seed", 0, "a seed for a deterministic shoe")

const (
	menuStats  = "Stats"
	menuQuests = "Quests"
	menuQuit   = "Quit"
)

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	port, closeStore := openWallet(logger)
	defer closeStore()

	kind := rng.KindCrypto
	if *seed != 0 {
		kind = rng.KindSeeded
	}

	stats := telemetry.NewStats()
	history := telemetry.NewHistory(telemetry.DefaultHistoryLimit)
	achievements := telemetry.NewAchievementTracker(logger, port)
	quests := telemetry.NewQuestBoard(logger, rng.New(kind, *seed), port)

	factory, err := gamefactory.Get(*variant)
	if err != nil {
		pterm.Error.Printfln("%s, choose one of %v", err, gamefactory.Names())
		os.Exit(1)
	}

	game, err := factory.CreateGame(gamefactory.Dependencies{
		Logger:   logger,
		Economy:  port,
		Shoe:     deck.NewShoe(logger, rng.New(kind, *seed)),
		Recorder: telemetry.Multi{stats, history, achievements, quests},
	}, nil)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgRed.ToStyle()),
	).Render()

	play(game, stats, quests)
	pterm.Println("Thank you for playing...")
}

// openWallet returns the SQLite wallet if -db is set, otherwise an in-memory one
func openWallet(logger logrus.FieldLogger) (economy.Port, func()) {
	if *dbPath == "" {
		return economy.NewWallet(*chips).WithRescueChips(economy.DefaultRescueChips), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.Open(ctx, logger, store.DriverSQLite, *dbPath)
	if err != nil {
		pterm.Fatal.Println(err.Error())
	}

	if err := db.Migrate(ctx, ""); err != nil {
		pterm.Fatal.Println(err.Error())
	}

	wallet, err := store.OpenWallet(ctx, db, "local", *chips, economy.DefaultRescueChips)
	if err != nil {
		pterm.Fatal.Println(err.Error())
	}

	return wallet, func() { _ = db.Close() }
}

func play(game playable.Playable, stats *telemetry.Stats, quests *telemetry.QuestBoard) {
	for {
		res, err := game.GetState()
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}

		state := res.Data.(*blackjack.GameState)
		renderLogs(drainLogs(game))
		renderState(state)

		options := make([]string, 0, len(state.Actions)+3)
		byName := make(map[string]blackjack.Action, len(state.Actions))
		for _, action := range state.Actions {
			name := action.String()
			if action == blackjack.ActionBet {
				name = "Bet " + strconv.Itoa(state.PendingBet)
			}

			options = append(options, name)
			byName[name] = action
		}

		if state.Phase == blackjack.PhaseBetting || state.Phase == blackjack.PhaseSettlement {
			options = append(options, menuStats, menuQuests)
		}
		options = append(options, menuQuit)

		selected, err := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()
		if err != nil {
			return
		}

		switch selected {
		case menuQuit:
			return
		case menuStats:
			renderStats(stats.Snapshot())
			continue
		case menuQuests:
			renderQuests(quests.Quests())
			claimQuests(quests)
			continue
		}

		msg := &playable.PayloadIn{Action: byName[selected].Key()}
		if byName[selected] == blackjack.ActionAdjustBet {
			amount, ok := askAmount(state.PendingBet)
			if !ok {
				continue
			}

			msg.AdditionalData = playable.AdditionalData{"amount": amount}
		}

		if _, _, err := game.Action(msg); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

func askAmount(current int) (int, bool) {
	str, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your bet").WithDefaultValue(strconv.Itoa(current)).Show()
	if err != nil {
		return 0, false
	}

	amount, err := strconv.Atoi(str)
	if err != nil {
		pterm.Error.Printfln("%q is not a number", str)
		return 0, false
	}

	return amount, true
}

func claimQuests(quests *telemetry.QuestBoard) {
	for _, q := range quests.Quests() {
		if !q.Completed || q.Claimed {
			continue
		}

		confirm, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Claim " + q.Name + "?").WithDefaultValue(true).Show()
		if !confirm {
			continue
		}

		claimed, err := quests.Claim(q.ID)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}

		pterm.Success.Printfln("Claimed %d chips", claimed.RewardChips)
	}
}

func drainLogs(game playable.Playable) []*playable.LogMessage {
	var messages []*playable.LogMessage
	for {
		select {
		case msgs := <-game.LogChan():
			messages = append(messages, msgs...)
		default:
			return messages
		}
	}
}
