package models

import (
	"time"

	"github.com/willfong/mfi-generator/internal/utils"
)

// LoanStatus represents the loan's book status
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "Active"
	LoanStatusDefaulted LoanStatus = "Defaulted"
)

// RepaymentStatus is the outcome of a scheduled daily payment
type RepaymentStatus string

const (
	RepaymentPaid   RepaymentStatus = "Paid"
	RepaymentMissed RepaymentStatus = "Missed"
)

// Loan represents a short-tenor group loan with daily installments
type Loan struct {
	// Loan code (L00000001, ...)
	ID string `db:"loan_id" json:"loan_id"`

	// Relationships; branch and officer follow the customer's primary branch
	CustomerID string `db:"customer_id" json:"customer_id"`
	BranchID   string `db:"branch_id" json:"branch_id"`
	OfficerID  string `db:"officer_id" json:"officer_id"`

	// Schedule
	DisbursementDate time.Time `db:"disbursement_date" json:"disbursement_date"`
	DueDate          time.Time `db:"due_date" json:"due_date"`
	TenorWeeks       int       `db:"tenor_weeks" json:"tenor_weeks"`

	// Amounts
	Amount           utils.Money `db:"amount" json:"amount"`
	DailyInstallment utils.Money `db:"daily_installment" json:"daily_installment"`

	// Risk
	MissRate    float64    `db:"miss_rate" json:"miss_rate"` // Probability a scheduled day is missed
	Rescheduled bool       `db:"rescheduled" json:"rescheduled"`
	Defaulted   bool       `db:"default_flag" json:"default_flag"`
	Status      LoanStatus `db:"loan_status" json:"loan_status"`
}

// TenorDays returns the number of scheduled payment days
func (l *Loan) TenorDays() int {
	return l.TenorWeeks * 7
}

// Repayment represents one scheduled daily payment of a loan
type Repayment struct {
	LoanID      string          `db:"loan_id" json:"loan_id"`
	CustomerID  string          `db:"customer_id" json:"customer_id"`
	BranchID    string          `db:"branch_id" json:"branch_id"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	AmountPaid  utils.Money     `db:"amount_paid" json:"amount_paid"`
	Status      RepaymentStatus `db:"status" json:"status"`
}
