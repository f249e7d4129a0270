package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/internal/mux"
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/room/gamefactory"
	"blackjack-server/pkg/store"
	"blackjack-server/pkg/telemetry"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const startupTimeout = time.Second * 30

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the config)")

func main() {
	flag.Parse()
	cfg := config.Instance()
	setupLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.WaitFor(ctx, logrus.StandardLogger(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer db.Close()

	// run the db migrations
	if err := db.Migrate(ctx, cfg.Store.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	wallet, err := store.OpenWallet(ctx, db, cfg.Store.WalletID, cfg.Table.StartingChips, cfg.Table.RescueChips)
	if err != nil {
		logrus.WithError(err).Fatal("could not open wallet")
	}

	stats := telemetry.NewStats()
	history := store.NewHistoryRecorder(db)
	achievements := telemetry.NewAchievementTracker(logrus.StandardLogger(), wallet)
	quests := telemetry.NewQuestBoard(logrus.StandardLogger(), rng.New(cfg.RNG.Kind, cfg.RNG.Seed), wallet)

	factory, err := gamefactory.Get(cfg.Table.Variant)
	if err != nil {
		logrus.WithError(err).WithField("variants", gamefactory.Names()).Fatal("unknown table variant")
	}

	game, err := factory.CreateGame(gamefactory.Dependencies{
		Logger:   logrus.StandardLogger(),
		Economy:  wallet,
		Shoe:     deck.NewShoe(logrus.StandardLogger(), rng.New(cfg.RNG.Kind, cfg.RNG.Seed)),
		Recorder: telemetry.Multi{stats, history, achievements, quests, telemetry.NewLogger(logrus.StandardLogger())},
	}, tableOptions(cfg.Table))
	if err != nil {
		logrus.WithError(err).Fatal("could not create game")
	}

	dealer := room.NewDealer(logrus.StandardLogger(), game)
	dealer.StartShift()
	defer dealer.EndShift()

	deps := mux.Dependencies{
		Dealer:       dealer,
		Economy:      wallet,
		Stats:        stats,
		History:      history,
		Ledger:       wallet,
		Achievements: achievements,
		Quests:       quests,
		WalletID:     wallet.ID(),
	}

	if cfg.Server.JWTSecret != "" {
		signer, err := jwt.NewSigner(cfg.Server.JWTSecret, cfg.Server.TokenTTL())
		if err != nil {
			logrus.WithError(err).Fatal("could not create token signer")
		}
		deps.Tokens = signer
	} else {
		logrus.Warn("no jwt secret configured, play is open to anyone")
	}

	m := mux.NewMux(Version, deps)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(cfg.Log, c.Handler(m)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"variant": cfg.Table.Variant,
		"driver":  db.Driver(),
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// tableOptions passes the configured table limits to the game factory
func tableOptions(t config.TableConfig) map[string]interface{} {
	opts := t.GameOptions()
	return map[string]interface{}{
		"minBet":          opts.MinBet,
		"maxBet":          opts.MaxBet,
		"defaultBet":      opts.DefaultBet,
		"allowInsurance":  opts.AllowInsurance,
		"allowSplit":      opts.AllowSplit,
		"allowDoubleDown": opts.AllowDoubleDown,
	}
}

func loggingHandler(cfg config.LogConfig, next http.Handler) http.Handler {
	if !cfg.AccessLog {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.LogConfig) {
	if lvl := cfg.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
