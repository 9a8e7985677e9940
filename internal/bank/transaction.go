package bank

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of ledger event
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// TransactionStatus represents the outcome of an attempted operation
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction is an immutable record of one attempted ledger operation.
// Every attempt, successful or failed, produces exactly one Transaction in
// the owning account's history. For failed transactions BalanceAfter always
// equals BalanceBefore.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	BalanceBefore decimal.Decimal   `json:"balance_before"`
	BalanceAfter  decimal.Decimal   `json:"balance_after"`
	Status        TransactionStatus `json:"status"`
	FailureReason string            `json:"failure_reason,omitempty"`
}

func newSuccessTransaction(ts time.Time, typ TransactionType, amount, before, after decimal.Decimal) Transaction {
	return Transaction{
		ID:            uuid.New(),
		Timestamp:     ts,
		Type:          typ,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Status:        TransactionStatusSuccess,
	}
}

func newFailedTransaction(ts time.Time, typ TransactionType, amount, balance decimal.Decimal, reason string) Transaction {
	return Transaction{
		ID:            uuid.New(),
		Timestamp:     ts,
		Type:          typ,
		Amount:        amount,
		BalanceBefore: balance,
		BalanceAfter:  balance,
		Status:        TransactionStatusFailed,
		FailureReason: reason,
	}
}

// Failed reports whether the attempted operation was rejected.
func (t Transaction) Failed() bool {
	return t.Status == TransactionStatusFailed
}

// String renders a single statement line for the transaction.
func (t Transaction) String() string {
	s := fmt.Sprintf("%s  %-10s  $%s  balance $%s -> $%s  %s",
		t.Timestamp.Format("2006-01-02 15:04:05"),
		t.Type,
		t.Amount.StringFixed(2),
		t.BalanceBefore.StringFixed(2),
		t.BalanceAfter.StringFixed(2),
		t.Status,
	)
	if t.FailureReason != "" {
		s += " (" + t.FailureReason + ")"
	}
	return s
}
