package bank

import "errors"

// Structural errors raised at the ledger boundary. Business-rule violations
// (insufficient funds, limits, non-positive amounts) are never errors; they
// come back as FAILED transactions.
var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmptyHolderName        = errors.New("customer name cannot be empty")
	ErrInvalidAccountType     = errors.New("invalid account type: must be CHECKING or SAVINGS")
	ErrNegativeInitialDeposit = errors.New("initial deposit cannot be negative")
	ErrSavingsMinimumDeposit  = errors.New("savings account requires minimum initial deposit of $100.00")
	ErrNonZeroBalance         = errors.New("cannot close account with non-zero balance")
	ErrSameAccount            = errors.New("cannot transfer to the same account")
)
