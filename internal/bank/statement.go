package bank

import (
	"fmt"
	"strings"
)

// renderStatement builds the monthly statement for an account: header,
// current balance, monthly counters and the full transaction history.
// Callers must hold the ledger lock.
func renderStatement(a *Account) string {
	a.resetCountersIfNewMonth()

	var b strings.Builder
	b.WriteString("=== MONTHLY STATEMENT ===\n")
	fmt.Fprintf(&b, "Account Number: %s\n", a.number)
	fmt.Fprintf(&b, "Customer Name: %s\n", a.holderName)
	fmt.Fprintf(&b, "Account Type: %s\n", a.accountType)
	fmt.Fprintf(&b, "Current Balance: $%s\n", a.balance.StringFixed(2))
	fmt.Fprintf(&b, "Monthly Transaction Count: %d\n", a.monthlyTransactions)

	if a.accountType == AccountTypeSavings {
		fmt.Fprintf(&b, "Monthly Withdrawal Count: %d\n", a.monthlyWithdrawals)
	}

	b.WriteString("\nTransaction History:\n")
	for _, tx := range a.history {
		b.WriteString(tx.String())
		b.WriteByte('\n')
	}

	return b.String()
}
