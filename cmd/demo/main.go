// Command demo exercises both subsystems end to end: accounts with fees,
// limits, failed attempts, a transfer and interest on the banking side, and
// students, weighted courses and GPA reporting on the gradebook side.
package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oyvindh/bankbook/internal/bank"
	"github.com/oyvindh/bankbook/internal/gradebook"
)

func main() {
	runBankingDemo()
	runGradebookDemo()
}

func runBankingDemo() {
	fmt.Println("=== Banking Demonstration ===")

	ledger := bank.NewLedger()

	checking, err := ledger.OpenAccount("John Doe", bank.AccountTypeChecking, dec(500))
	must(err)
	fmt.Printf("Opened checking account %s with $500.00\n", checking)

	savings, err := ledger.OpenAccount("Alice Brown", bank.AccountTypeSavings, dec(150))
	must(err)
	fmt.Printf("Opened savings account %s with $150.00\n", savings)

	tx, err := ledger.Deposit(checking, dec(200))
	must(err)
	fmt.Printf("Deposit $200.00 -> %s, balance $%s\n", tx.Status, tx.BalanceAfter.StringFixed(2))

	tx, err = ledger.Withdraw(checking, dec(2000))
	must(err)
	fmt.Printf("Withdraw $2000.00 -> %s (%s)\n", tx.Status, tx.FailureReason)

	// Savings rules: this withdrawal would leave $50, below the $100 minimum
	tx, err = ledger.Withdraw(savings, dec(100))
	must(err)
	fmt.Printf("Withdraw $100.00 from savings -> %s (%s)\n", tx.Status, tx.FailureReason)

	tx, err = ledger.Withdraw(savings, dec(50))
	must(err)
	fmt.Printf("Withdraw $50.00 from savings -> %s, balance $%s\n", tx.Status, tx.BalanceAfter.StringFixed(2))

	result, err := ledger.Transfer(checking, savings, dec(300))
	must(err)
	fmt.Printf("Transfer $300.00 -> outgoing %s $%s, incoming %s $%s\n",
		result.Outgoing.Status, result.Outgoing.Amount.StringFixed(2),
		result.Incoming.Status, result.Incoming.Amount.StringFixed(2))

	// Drive the checking account past the 10 free transactions to show fees
	for i := 0; i < 9; i++ {
		_, err = ledger.Deposit(checking, dec(10))
		must(err)
	}
	balance, err := ledger.Balance(checking)
	must(err)
	fmt.Printf("After 11 monthly transactions, checking balance $%s (fee charged on the 11th)\n",
		balance.StringFixed(2))

	ledger.ApplyMonthlyInterest()
	balance, err = ledger.Balance(savings)
	must(err)
	fmt.Printf("After monthly interest, savings balance $%s\n", balance.StringFixed(2))

	statement, err := ledger.MonthlyStatement(savings)
	must(err)
	fmt.Println()
	fmt.Println(statement)
}

func runGradebookDemo() {
	fmt.Println("=== Gradebook Demonstration ===")

	registry := gradebook.NewRegistry()

	must(registry.AddStudent("S001", "Maria Garcia"))
	must(registry.AddStudent("S002", "Ben Chen"))

	must(registry.Enroll("S001", "Calculus I", 4))
	must(registry.Enroll("S001", "Physics", 3))
	must(registry.EnrollWithWeights("S002", "Intro to Go", 3, map[gradebook.Category]float64{
		gradebook.CategoryHomework:  40,
		gradebook.CategoryQuizzes:   20,
		gradebook.CategoryMidterm:   20,
		gradebook.CategoryFinalExam: 20,
	}))

	addAssignment(registry, "S001", "Calculus I", "HW1", 85, 100, gradebook.CategoryHomework)
	addAssignment(registry, "S001", "Calculus I", "Quiz1", 90, 100, gradebook.CategoryQuizzes)
	addAssignment(registry, "S001", "Calculus I", "Midterm", 82, 100, gradebook.CategoryMidterm)
	addAssignment(registry, "S001", "Calculus I", "Final", 87, 100, gradebook.CategoryFinalExam)
	addAssignment(registry, "S001", "Physics", "Lab HW", 95, 100, gradebook.CategoryHomework)
	addAssignment(registry, "S002", "Intro to Go", "HW1", 98, 100, gradebook.CategoryHomework)

	grade, err := registry.CourseGrade("S001", "Calculus I")
	must(err)
	fmt.Printf("Calculus I final grade: %s\n", grade)

	gpa, err := registry.GPA("S001")
	must(err)
	fmt.Printf("Maria's GPA: %.2f\n", gpa)

	transcript, err := registry.Transcript("S001")
	must(err)
	fmt.Println()
	fmt.Println(transcript)

	fmt.Println(registry.SummaryReport())
}

func addAssignment(r *gradebook.Registry, studentID, course, name string, earned, possible float64, category gradebook.Category) {
	a, err := gradebook.NewAssignment(name, earned, possible, category)
	must(err)
	must(r.AddAssignment(studentID, course, a))
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
