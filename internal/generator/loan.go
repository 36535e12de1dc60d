package generator

import (
	"fmt"
	"time"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// LoanGenerator books loans against customers and their branch's officers.
type LoanGenerator struct {
	rng       *utils.Random
	roster    *Roster
	customers []models.Customer
	config    LoanGeneratorConfig
}

// LoanGeneratorConfig holds settings for loan generation
type LoanGeneratorConfig struct {
	NumLoans int
	// Disbursement window, inclusive
	StartDate time.Time
	EndDate   time.Time
}

// NewLoanGenerator creates a new loan generator
func NewLoanGenerator(rng *utils.Random, roster *Roster, customers []models.Customer, cfg LoanGeneratorConfig) *LoanGenerator {
	return &LoanGenerator{
		rng:       rng,
		roster:    roster,
		customers: customers,
		config:    cfg,
	}
}

// GenerateLoans creates all loans with sequential L ids.
// Customers are drawn with replacement, so a customer can hold several loans or none.
func (g *LoanGenerator) GenerateLoans() []models.Loan {
	if len(g.customers) == 0 {
		return nil
	}

	days := windowDays(g.config.StartDate, g.config.EndDate)
	loans := make([]models.Loan, 0, g.config.NumLoans)
	for i := 0; i < g.config.NumLoans; i++ {
		loans = append(loans, g.generateLoan(i+1, days))
	}
	return loans
}

// generateLoan creates a single loan
func (g *LoanGenerator) generateLoan(num, days int) models.Loan {
	cust := &g.customers[g.rng.IntN(len(g.customers))]

	disbursed := g.config.StartDate.AddDate(0, 0, g.rng.IntN(days))
	amount := config.LoanAmounts[g.rng.WeightedPick(config.LoanAmountWeights)]
	tenor := config.TenorWeeks[g.rng.WeightedPick(config.TenorWeights)]

	// Officer must come from the customer's primary branch
	officer := g.rng.PickString(g.roster.OfficersFor(cust.PrimaryBranch))

	principal := utils.Shillings(amount)
	missRate := g.missRate(cust)
	rescheduled := g.rng.Probability(config.RescheduleRate)
	defaulted := g.rng.Probability(config.DefaultRate)

	status := models.LoanStatusActive
	if defaulted {
		status = models.LoanStatusDefaulted
	}

	loan := models.Loan{
		ID:               fmt.Sprintf("L%08d", num),
		CustomerID:       cust.ID,
		BranchID:         cust.PrimaryBranch,
		OfficerID:        officer,
		DisbursementDate: disbursed,
		TenorWeeks:       tenor,
		Amount:           principal,
		MissRate:         missRate,
		Rescheduled:      rescheduled,
		Defaulted:        defaulted,
		Status:           status,
	}
	loan.DueDate = disbursed.AddDate(0, 0, loan.TenorDays())
	loan.DailyInstallment = principal.DivRound(int64(loan.TenorDays()))
	return loan
}

// missRate scores how often a borrower misses a day: base risk, a fraud
// penalty, a low-income penalty and Gaussian noise, clipped to [0, MissRateMax].
func (g *LoanGenerator) missRate(c *models.Customer) float64 {
	rate := config.MissRateBase
	if c.FraudFlag {
		rate += config.MissRateFraud
	}
	if c.IsLowIncome() {
		rate += config.MissRateLowIncome
	}
	rate += g.rng.NormalFloat64Range(0, config.MissRateNoise)
	return utils.Clip(rate, 0, config.MissRateMax)
}

// windowDays returns the number of calendar days in [start, end]
func windowDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// WriteLoansCSV writes loans to loans.csv
func WriteLoansCSV(loans []models.Loan, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileLoans,
		Headers: []string{
			"loan_id", "customer_id", "branch_id", "officer_id",
			"disbursement_date", "due_date", "amount", "tenor_weeks",
			"daily_installment", "miss_rate", "rescheduled", "default_flag", "loan_status",
		},
		Label: "  Loans",
	}, loans, func(l *models.Loan) []string {
		return []string{
			l.ID,
			l.CustomerID,
			l.BranchID,
			l.OfficerID,
			FormatDate(l.DisbursementDate),
			FormatDate(l.DueDate),
			FormatInt64(l.Amount.ShillingsPart()),
			FormatInt(l.TenorWeeks),
			FormatMoney(l.DailyInstallment),
			FormatFloat64(l.MissRate),
			FormatBool(l.Rescheduled),
			FormatBool(l.Defaulted),
			string(l.Status),
		}
	}, showProgress)
}
