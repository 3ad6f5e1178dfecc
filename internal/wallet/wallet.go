// Package wallet tracks the player's balance and a ledger of every balance
// change. Purchases that would take the balance negative are rejected, never
// clamped.
package wallet

import (
	"errors"
	"sync"
	"time"
)

// Errors for wallet operations.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Transaction types for categorizing balance changes.
const (
	TxTypeInitial   = "initial"    // Starting balance
	TxTypeTicketBuy = "ticket_buy" // Stake deducted at purchase
	TxTypeTicketWin = "ticket_win" // Winnings applied at settlement
)

// Transaction is one ledger row.
type Transaction struct {
	Amount      int64
	Type        string
	Description string
	CreatedAt   time.Time
}

// Wallet holds the balance for one player session. All methods are safe for
// concurrent use.
type Wallet struct {
	mu           sync.Mutex
	balance      int64
	transactions []Transaction
}

// New creates a wallet seeded with the starting balance. A non-zero seed is
// recorded as an initial ledger entry.
func New(startingBalance int64) *Wallet {
	w := &Wallet{balance: startingBalance}
	if startingBalance != 0 {
		w.transactions = append(w.transactions, Transaction{
			Amount:      startingBalance,
			Type:        TxTypeInitial,
			Description: "starting balance",
			CreatedAt:   time.Now(),
		})
	}
	return w
}

// Balance returns the current balance.
func (w *Wallet) Balance() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// Debit removes amount from the balance and records a ledger entry. It fails
// with ErrInsufficientFunds when the balance would go negative, leaving the
// wallet untouched.
func (w *Wallet) Debit(amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.balance < amount {
		return w.balance, ErrInsufficientFunds
	}
	w.balance -= amount
	w.transactions = append(w.transactions, Transaction{
		Amount:      -amount,
		Type:        txType,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return w.balance, nil
}

// Credit adds amount to the balance and records a ledger entry. Zero credits
// are accepted without a ledger row so a losing ticket settles cleanly.
func (w *Wallet) Credit(amount int64, txType, description string) (int64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if amount == 0 {
		return w.balance, nil
	}
	w.balance += amount
	w.transactions = append(w.transactions, Transaction{
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return w.balance, nil
}

// Transactions returns a copy of the ledger, oldest first.
func (w *Wallet) Transactions() []Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Transaction(nil), w.transactions...)
}
