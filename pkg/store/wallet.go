package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blackjack-server/pkg/economy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ledger reasons
const (
	ReasonOpen    = "open"
	ReasonReserve = "reserve"
	ReasonCredit  = "credit"
	ReasonRescue  = "rescue"
)

// Wallet is an economy backed by the wallets and ledger tables
// Every balance change is a conditional UPDATE plus a ledger row in one transaction.
type Wallet struct {
	db          *DB
	id          string
	rescueChips int
	logger      logrus.FieldLogger
}

// LedgerEntry is a row in the ledger table
type LedgerEntry struct {
	ID       string    `json:"id"`
	WalletID string    `json:"walletId"`
	Amount   int       `json:"amount"`
	Balance  int       `json:"balance"`
	Reason   string    `json:"reason"`
	Created  time.Time `json:"created"`
}

// OpenWallet returns the wallet with the id, creating it with startingChips if it does not exist
func OpenWallet(ctx context.Context, db *DB, id string, startingChips, rescueChips int) (*Wallet, error) {
	w := &Wallet{
		db:          db,
		id:          id,
		rescueChips: rescueChips,
		logger:      db.logger.WithField("walletId", id),
	}

	err := w.inTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		res, err := tx.ExecContext(ctx, db.rebind(`
INSERT INTO wallets (id, balance, created, updated)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`), id, startingChips, now, now)
		if err != nil {
			return err
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		w.logger.WithField("chips", startingChips).Info("opened wallet")
		return w.addLedgerEntry(ctx, tx, startingChips, startingChips, ReasonOpen)
	})

	if err != nil {
		return nil, err
	}

	return w, nil
}

// ID returns the wallet id
func (w *Wallet) ID() string {
	return w.id
}

func (w *Wallet) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			if err := tx.Rollback(); err != nil {
				w.logger.WithError(err).Error("could not rollback transaction")
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}

func (w *Wallet) addLedgerEntry(ctx context.Context, tx *sql.Tx, amount, balance int, reason string) error {
	const query = `
INSERT INTO ledger (id, wallet_id, amount, balance, reason, created)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, w.db.rebind(query), uuid.New().String(), w.id, amount, balance, reason, time.Now().UTC())
	return err
}

func balanceInTx(ctx context.Context, db *DB, tx *sql.Tx, id string) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx, db.rebind(`SELECT balance FROM wallets WHERE id = ?`), id).Scan(&balance)
	return balance, err
}

// adjust applies delta to the balance if the result stays at or above floor
// It returns false if no row qualified.
func (w *Wallet) adjust(ctx context.Context, delta int, reason string) (bool, error) {
	const query = `
UPDATE wallets
SET balance = balance + ?, updated = ?
WHERE id = ? AND balance + ? >= 0`

	applied := false
	err := w.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, w.db.rebind(query), delta, time.Now().UTC(), w.id, delta)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if n == 0 {
			return nil
		}

		balance, err := balanceInTx(ctx, w.db, tx, w.id)
		if err != nil {
			return err
		}

		applied = true
		return w.addLedgerEntry(ctx, tx, delta, balance, reason)
	})

	return applied, err
}

// Reserve debits amount if the balance covers it
func (w *Wallet) Reserve(amount int) error {
	if err := economy.ValidAmount(amount); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	applied, err := w.adjust(ctx, -amount, ReasonReserve)
	if err != nil {
		return err
	}

	if !applied {
		return economy.ErrInsufficientFunds
	}

	return nil
}

// Credit adds amount to the balance
func (w *Wallet) Credit(amount int) error {
	if err := economy.ValidAmount(amount); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	applied, err := w.adjust(ctx, amount, ReasonCredit)
	if err != nil {
		return err
	}

	if !applied {
		return sql.ErrNoRows
	}

	return nil
}

// Balance returns the current balance
func (w *Wallet) Balance() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var balance int
	err := w.db.QueryRowContext(ctx, w.db.rebind(`SELECT balance FROM wallets WHERE id = ?`), w.id).Scan(&balance)
	return balance, err
}

// Rescue tops up an empty wallet to the rescue chips
func (w *Wallet) Rescue() (bool, error) {
	if w.rescueChips <= 0 {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	const query = `
UPDATE wallets
SET balance = ?, updated = ?
WHERE id = ? AND balance <= 0`

	rescued := false
	err := w.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, w.db.rebind(query), w.rescueChips, time.Now().UTC(), w.id)
		if err != nil {
			return err
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		rescued = true
		return w.addLedgerEntry(ctx, tx, w.rescueChips, w.rescueChips, ReasonRescue)
	})

	if err != nil {
		return false, err
	}

	if rescued {
		w.logger.WithField("chips", w.rescueChips).Info("rescued wallet")
	}

	return rescued, nil
}

// Ledger returns the most recent ledger entries, newest first
func (w *Wallet) Ledger(ctx context.Context, limit int) ([]*LedgerEntry, error) {
	const query = `
SELECT id, wallet_id, amount, balance, reason, created
FROM ledger
WHERE wallet_id = ?
ORDER BY created DESC, amount
LIMIT ?`

	rows, err := w.db.QueryContext(ctx, w.db.rebind(query), w.id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*LedgerEntry, 0, limit)
	for rows.Next() {
		entry, err := ledgerEntryByRow(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func ledgerEntryByRow(row Scanner) (*LedgerEntry, error) {
	var e LedgerEntry
	if err := row.Scan(&e.ID, &e.WalletID, &e.Amount, &e.Balance, &e.Reason, &e.Created); err != nil {
		return nil, err
	}

	return &e, nil
}

// IsNotFound returns true if err means the wallet row is missing
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
