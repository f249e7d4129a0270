package main

import (
	"context"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/store"

	"github.com/sirupsen/logrus"
)

const waitTimeout = time.Second * 10

func main() {
	cfg := config.Instance()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	db, err := store.WaitFor(ctx, logrus.StandardLogger(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer db.Close()

	if err := db.Migrate(context.Background(), cfg.Store.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.WithField("driver", db.Driver()).Info("migrations complete")
}
