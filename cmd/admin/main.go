package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/pkg/store"

	"github.com/sirupsen/logrus"
)

var command = flag.String("c", "balance", "specifies the command (balance, credit, ledger, rescue, token)")
var rows = flag.Int("n", 20, "the number of ledger rows")

func main() {
	flag.Parse()
	cfg := config.Instance()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	db, err := store.Open(ctx, logrus.StandardLogger(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer db.Close()

	if err := db.Migrate(ctx, cfg.Store.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	wallet, err := store.OpenWallet(ctx, db, cfg.Store.WalletID, cfg.Table.StartingChips, cfg.Table.RescueChips)
	if err != nil {
		logrus.WithError(err).Fatal("could not open wallet")
	}

	switch *command {
	case "balance":
		printBalance(wallet)
	case "credit":
		amount := getAmount()
		if amount == 0 {
			os.Exit(1)
		}

		confirm, err := getInput(fmt.Sprintf("Credit %d chips to %s (Y/n)", amount, wallet.ID()))
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if confirm != "" && strings.ToLower(confirm)[0] != 'y' {
			os.Exit(1)
		}

		if err := wallet.Credit(amount); err != nil {
			logrus.WithError(err).Fatal("could not credit wallet")
		}

		printBalance(wallet)
	case "ledger":
		entries, err := wallet.Ledger(ctx, *rows)
		if err != nil {
			logrus.WithError(err).Fatal("could not read ledger")
		}

		for _, e := range entries {
			fmt.Printf("%s  %-8s %+6d  %6d\n", e.Created.Format(time.RFC3339), e.Reason, e.Amount, e.Balance)
		}
	case "rescue":
		rescued, err := wallet.Rescue()
		if err != nil {
			logrus.WithError(err).Fatal("could not rescue wallet")
		}

		if !rescued {
			fmt.Println("Wallet is not empty")
		}

		printBalance(wallet)
	case "token":
		signer, err := jwt.NewSigner(cfg.Server.JWTSecret, cfg.Server.TokenTTL())
		if err != nil {
			logrus.WithError(err).Fatal("could not create token signer")
		}

		token, err := signer.Sign(wallet.ID())
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func printBalance(wallet *store.Wallet) {
	balance, err := wallet.Balance()
	if err != nil {
		logrus.WithError(err).Fatal("could not read balance")
	}

	fmt.Printf("%s: %d chips\n", wallet.ID(), balance)
}

func getAmount() int {
	for {
		str, err := getInput("Amount")
		if err != nil {
			logrus.WithError(err).Warn("could not read amount")
		}

		if str == "" {
			return 0
		}

		amount, err := strconv.Atoi(str)
		if err != nil || amount <= 0 {
			_, _ = fmt.Fprintln(os.Stderr, "amount must be a positive number")
			continue
		}

		return amount
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
