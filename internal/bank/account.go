package bank

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// Account rule constants. Checking accounts pay a flat fee for every
// transaction past the monthly free allowance; savings accounts carry a
// minimum balance, a withdrawal cap and earn monthly interest.
const (
	checkingFreeTransactions = 10
	savingsMaxWithdrawals    = 5
)

var (
	checkingTransactionFee = decimal.NewFromFloat(2.50)
	savingsMinimumBalance  = decimal.NewFromInt(100)
	savingsInterestRate    = decimal.NewFromFloat(0.02)
	closeBalanceTolerance  = decimal.NewFromFloat(0.01)
)

// Account holds a balance and enforces the type-specific transaction rules.
// Monthly counters reset lazily: the first operation in a new calendar month
// zeroes them before validation runs.
//
// Account is not safe for concurrent use on its own; the Ledger serializes
// all access under its lock.
type Account struct {
	number      string
	accountType AccountType
	holderName  string
	balance     decimal.Decimal
	history     []Transaction

	monthlyTransactions int
	monthlyWithdrawals  int // savings only
	resetYear           int
	resetMonth          time.Month

	clock Clock
}

// newAccount creates an account with an optional opening balance. A positive
// initial deposit is recorded as a successful deposit transaction that does
// not count toward the monthly allowance.
func newAccount(number string, accountType AccountType, holderName string, initialDeposit decimal.Decimal, clock Clock) *Account {
	now := clock()
	a := &Account{
		number:      number,
		accountType: accountType,
		holderName:  holderName,
		balance:     initialDeposit,
		resetYear:   now.Year(),
		resetMonth:  now.Month(),
		clock:       clock,
	}
	if initialDeposit.IsPositive() {
		a.record(newSuccessTransaction(now, TransactionTypeDeposit, initialDeposit, decimal.Zero, initialDeposit))
	}
	return a
}

// resetCountersIfNewMonth zeroes the monthly counters when the wall-clock
// (year, month) has moved past the stored reset marker.
func (a *Account) resetCountersIfNewMonth() {
	now := a.clock()
	if now.Year() != a.resetYear || now.Month() != a.resetMonth {
		a.monthlyTransactions = 0
		a.monthlyWithdrawals = 0
		a.resetYear = now.Year()
		a.resetMonth = now.Month()
	}
}

func (a *Account) record(tx Transaction) Transaction {
	a.history = append(a.history, tx)
	return tx
}

// replaceLast swaps the most recent history entry for a relabeled record.
// Used by the ledger when it rewrites a withdrawal/deposit pair as a transfer.
func (a *Account) replaceLast(tx Transaction) {
	a.history[len(a.history)-1] = tx
}

// Deposit credits the account. A non-positive amount is rejected with a
// FAILED transaction. For checking accounts past the free allowance the
// transaction fee is deducted in the same operation, so BalanceAfter reflects
// both the deposit and the fee.
func (a *Account) Deposit(amount decimal.Decimal) Transaction {
	a.resetCountersIfNewMonth()

	if !amount.IsPositive() {
		return a.record(newFailedTransaction(a.clock(), TransactionTypeDeposit, amount, a.balance, "Deposit amount must be positive"))
	}

	before := a.balance
	a.balance = a.balance.Add(amount)
	a.monthlyTransactions++

	if a.accountType == AccountTypeChecking && a.monthlyTransactions > checkingFreeTransactions {
		a.balance = a.balance.Sub(checkingTransactionFee)
	}

	return a.record(newSuccessTransaction(a.clock(), TransactionTypeDeposit, amount, before, a.balance))
}

// Withdraw debits the account after validating the type-specific rules.
// Failures leave the balance and counters untouched apart from the FAILED
// history entry itself.
func (a *Account) Withdraw(amount decimal.Decimal) Transaction {
	a.resetCountersIfNewMonth()

	if reason := a.validateWithdrawal(amount); reason != "" {
		return a.record(newFailedTransaction(a.clock(), TransactionTypeWithdrawal, amount, a.balance, reason))
	}

	before := a.balance
	a.balance = a.balance.Sub(amount)
	a.monthlyTransactions++

	if a.accountType == AccountTypeSavings {
		a.monthlyWithdrawals++
	}

	if a.accountType == AccountTypeChecking && a.monthlyTransactions > checkingFreeTransactions {
		a.balance = a.balance.Sub(checkingTransactionFee)
	}

	return a.record(newSuccessTransaction(a.clock(), TransactionTypeWithdrawal, amount, before, a.balance))
}

// validateWithdrawal returns a failure reason, or "" when the withdrawal may
// proceed. The checking fee is charged by the same operation, so the check
// runs against the next counter value: the 11th transaction of the month is
// the first one that pays the fee, and its fee is subtracted from the
// tentative balance before the insufficient-funds check.
func (a *Account) validateWithdrawal(amount decimal.Decimal) string {
	if !amount.IsPositive() {
		return "Withdrawal amount must be positive"
	}

	potential := a.balance.Sub(amount)

	if a.accountType == AccountTypeChecking && a.monthlyTransactions+1 > checkingFreeTransactions {
		potential = potential.Sub(checkingTransactionFee)
	}

	if potential.IsNegative() {
		return "Insufficient funds"
	}

	if a.accountType == AccountTypeSavings {
		if potential.LessThan(savingsMinimumBalance) {
			return fmt.Sprintf("Withdrawal would violate minimum balance requirement of $%s", savingsMinimumBalance.StringFixed(2))
		}
		if a.monthlyWithdrawals >= savingsMaxWithdrawals {
			return fmt.Sprintf("Monthly withdrawal limit exceeded (max %d withdrawals)", savingsMaxWithdrawals)
		}
	}

	return ""
}

// ApplyMonthlyInterest credits the monthly interest to a savings account with
// a positive balance and records it as a successful deposit. No-op for
// checking accounts and non-positive balances. The caller owns the billing
// cycle; the account keeps no timer.
func (a *Account) ApplyMonthlyInterest() {
	if a.accountType != AccountTypeSavings || !a.balance.IsPositive() {
		return
	}

	before := a.balance
	interest := a.balance.Mul(savingsInterestRate)
	a.balance = a.balance.Add(interest)
	a.record(newSuccessTransaction(a.clock(), TransactionTypeDeposit, interest, before, a.balance))
}

// Number returns the account number.
func (a *Account) Number() string { return a.number }

// Type returns the account type.
func (a *Account) Type() AccountType { return a.accountType }

// HolderName returns the customer name.
func (a *Account) HolderName() string { return a.holderName }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// MonthlyTransactionCount returns the number of transactions counted against
// the current month, resetting first if the month has rolled over.
func (a *Account) MonthlyTransactionCount() int {
	a.resetCountersIfNewMonth()
	return a.monthlyTransactions
}

// MonthlyWithdrawalCount returns the number of withdrawals counted against
// the current month. Only meaningful for savings accounts.
func (a *Account) MonthlyWithdrawalCount() int {
	a.resetCountersIfNewMonth()
	return a.monthlyWithdrawals
}

// History returns a copy of the full transaction history in insertion order.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// HistoryBetween returns the transactions whose timestamps fall within
// [start, end], bounds inclusive.
func (a *Account) HistoryBetween(start, end time.Time) []Transaction {
	var out []Transaction
	for _, tx := range a.history {
		if !tx.Timestamp.Before(start) && !tx.Timestamp.After(end) {
			out = append(out, tx)
		}
	}
	return out
}
