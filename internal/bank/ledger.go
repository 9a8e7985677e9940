package bank

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// accountNumberBase seeds the sequential account number counter. The first
// account opened is numbered "1001".
const accountNumberBase = 1000

// Ledger owns the account map and routes all banking operations. The mutex
// serializes every read-modify-write sequence so the counter, the map and
// per-account state stay consistent under concurrent callers.
type Ledger struct {
	mu         sync.Mutex
	clock      Clock
	nextNumber int
	accounts   map[string]*Account
}

// NewLedger creates an empty ledger backed by the system clock.
func NewLedger() *Ledger {
	return NewLedgerWithClock(time.Now)
}

// NewLedgerWithClock creates an empty ledger with an injected time source.
func NewLedgerWithClock(clock Clock) *Ledger {
	return &Ledger{
		clock:      clock,
		nextNumber: accountNumberBase,
		accounts:   make(map[string]*Account),
	}
}

// AccountInfo is a point-in-time snapshot of an account. The ledger hands out
// snapshots instead of internal pointers so callers cannot mutate state
// outside the lock.
type AccountInfo struct {
	Number              string          `json:"account_number"`
	Type                AccountType     `json:"account_type"`
	HolderName          string          `json:"holder_name"`
	Balance             decimal.Decimal `json:"balance"`
	MonthlyTransactions int             `json:"monthly_transactions"`
	MonthlyWithdrawals  int             `json:"monthly_withdrawals"`
}

// TransferResult pairs the two records produced by a transfer attempt: the
// outgoing record on the source account and the incoming (or synthesized
// failure) record on the destination account.
type TransferResult struct {
	Outgoing Transaction `json:"outgoing"`
	Incoming Transaction `json:"incoming"`
}

// Failed reports whether the transfer was rejected by the source withdrawal.
func (r TransferResult) Failed() bool {
	return r.Outgoing.Failed()
}

// OpenAccount validates the request, assigns the next sequential account
// number and creates the account with the initial deposit.
func (l *Ledger) OpenAccount(holderName string, accountType AccountType, initialDeposit decimal.Decimal) (string, error) {
	if strings.TrimSpace(holderName) == "" {
		return "", ErrEmptyHolderName
	}
	if accountType != AccountTypeChecking && accountType != AccountTypeSavings {
		return "", ErrInvalidAccountType
	}
	if initialDeposit.IsNegative() {
		return "", ErrNegativeInitialDeposit
	}
	if accountType == AccountTypeSavings && initialDeposit.LessThan(savingsMinimumBalance) {
		return "", ErrSavingsMinimumDeposit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextNumber++
	number := strconv.Itoa(l.nextNumber)
	l.accounts[number] = newAccount(number, accountType, holderName, initialDeposit, l.clock)
	return number, nil
}

// CloseAccount removes an account whose balance is within tolerance of zero.
func (l *Ledger) CloseAccount(number string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return err
	}
	if acct.balance.Abs().GreaterThan(closeBalanceTolerance) {
		return fmt.Errorf("%w: current balance $%s", ErrNonZeroBalance, acct.balance.StringFixed(2))
	}
	delete(l.accounts, number)
	return nil
}

// Deposit credits an account and returns the resulting transaction record.
// The error channel is reserved for structural problems (unknown account);
// business-rule rejections appear as a FAILED transaction.
func (l *Ledger) Deposit(number string, amount decimal.Decimal) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return Transaction{}, err
	}
	return acct.Deposit(amount), nil
}

// Withdraw debits an account and returns the resulting transaction record.
func (l *Ledger) Withdraw(number string, amount decimal.Decimal) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return Transaction{}, err
	}
	return acct.Withdraw(amount), nil
}

// Transfer moves money between two accounts atomically: either both balances
// change or neither does. The source withdrawal runs first; if it fails, a
// FAILED transfer record is synthesized on the destination for symmetric
// auditing and the destination balance is untouched. On success both freshly
// recorded entries are relabeled as TRANSFER, the outgoing amount negative
// and the incoming amount positive.
func (l *Ledger) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (TransferResult, error) {
	if fromNumber == toNumber {
		return TransferResult{}, ErrSameAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src, err := l.account(fromNumber)
	if err != nil {
		return TransferResult{}, err
	}
	dst, err := l.account(toNumber)
	if err != nil {
		return TransferResult{}, err
	}

	withdrawal := src.Withdraw(amount)
	if withdrawal.Failed() {
		failed := newFailedTransaction(l.clock(), TransactionTypeTransfer, amount, dst.balance,
			"Transfer failed: "+withdrawal.FailureReason)
		dst.record(failed)
		return TransferResult{Outgoing: withdrawal, Incoming: failed}, nil
	}

	deposit := dst.Deposit(amount)

	outgoing := newSuccessTransaction(l.clock(), TransactionTypeTransfer, amount.Neg(),
		withdrawal.BalanceBefore, withdrawal.BalanceAfter)
	incoming := newSuccessTransaction(l.clock(), TransactionTypeTransfer, amount,
		deposit.BalanceBefore, deposit.BalanceAfter)

	src.replaceLast(outgoing)
	dst.replaceLast(incoming)

	return TransferResult{Outgoing: outgoing, Incoming: incoming}, nil
}

// ApplyMonthlyInterest credits monthly interest to every savings account.
// The caller decides the billing cycle; invoking this twice in a month
// credits interest twice.
func (l *Ledger) ApplyMonthlyInterest() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, acct := range l.accounts {
		if acct.accountType == AccountTypeSavings {
			acct.ApplyMonthlyInterest()
		}
	}
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(number string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return acct.balance, nil
}

// AccountInfo returns a snapshot of a single account.
func (l *Ledger) AccountInfo(number string) (AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return AccountInfo{}, err
	}
	return snapshot(acct), nil
}

// Accounts returns snapshots of all accounts ordered by account number.
func (l *Ledger) Accounts() []AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]AccountInfo, 0, len(l.accounts))
	for _, acct := range l.accounts {
		out = append(out, snapshot(acct))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// AccountCount returns the number of open accounts.
func (l *Ledger) AccountCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}

// History returns the full transaction history of an account.
func (l *Ledger) History(number string) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return nil, err
	}
	return acct.History(), nil
}

// HistoryBetween returns the account's transactions within [start, end].
func (l *Ledger) HistoryBetween(number string, start, end time.Time) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return nil, err
	}
	return acct.HistoryBetween(start, end), nil
}

// MonthlyStatement renders a formatted statement for the account.
func (l *Ledger) MonthlyStatement(number string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(number)
	if err != nil {
		return "", err
	}
	return renderStatement(acct), nil
}

// account looks up an account by number. Callers must hold the lock.
func (l *Ledger) account(number string) (*Account, error) {
	acct, ok := l.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	return acct, nil
}

func snapshot(a *Account) AccountInfo {
	a.resetCountersIfNewMonth()
	return AccountInfo{
		Number:              a.number,
		Type:                a.accountType,
		HolderName:          a.holderName,
		Balance:             a.balance,
		MonthlyTransactions: a.monthlyTransactions,
		MonthlyWithdrawals:  a.monthlyWithdrawals,
	}
}
