package generator

import (
	"math"
	"time"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// RepaymentSimulator walks a sample of loans day by day and resolves each
// scheduled installment to Paid or Missed.
type RepaymentSimulator struct {
	rng     *utils.Random // payment outcomes
	sampler *utils.Random // which loans are walked
	config  RepaymentSimulatorConfig
}

// RepaymentSimulatorConfig holds settings for the repayment walk
type RepaymentSimulatorConfig struct {
	// Fraction of loans to walk (0.0-1.0)
	Fraction float64
	// Global window; days outside it are skipped
	StartDate time.Time
	EndDate   time.Time
}

// NewRepaymentSimulator creates a simulator. sampler picks the loan subset and
// is kept separate from rng so the subset only depends on its own seed.
func NewRepaymentSimulator(rng, sampler *utils.Random, cfg RepaymentSimulatorConfig) *RepaymentSimulator {
	return &RepaymentSimulator{
		rng:     rng,
		sampler: sampler,
		config:  cfg,
	}
}

// SampleSize returns round(fraction * n), the number of records a subsample keeps
func SampleSize(fraction float64, n int) int {
	if n <= 0 || fraction <= 0 {
		return 0
	}
	k := int(math.Round(fraction * float64(n)))
	if k > n {
		k = n
	}
	return k
}

// SimulateRepayments returns repayment rows for the sampled loans, loan by
// loan in sample order and day by day within each loan.
func (s *RepaymentSimulator) SimulateRepayments(loans []models.Loan) []models.Repayment {
	picked := s.sampler.Sample(len(loans), SampleSize(s.config.Fraction, len(loans)))

	var repayments []models.Repayment
	for _, idx := range picked {
		repayments = s.walkLoan(&loans[idx], repayments)
	}
	return repayments
}

// walkLoan appends one row per scheduled day (disbursement onward, TenorDays
// days) that falls inside the window
func (s *RepaymentSimulator) walkLoan(l *models.Loan, out []models.Repayment) []models.Repayment {
	for i := range l.TenorDays() {
		d := l.DisbursementDate.AddDate(0, 0, i)
		if d.Before(s.config.StartDate) || d.After(s.config.EndDate) {
			continue
		}

		r := models.Repayment{
			LoanID:      l.ID,
			CustomerID:  l.CustomerID,
			BranchID:    l.BranchID,
			PaymentDate: d,
		}
		if s.rng.Float64() > l.MissRate {
			paid := s.rng.NormalFloat64Range(l.DailyInstallment.ToFloat(), config.RepaymentNoise)
			r.AmountPaid = utils.FromFloat(paid).Max(0)
			r.Status = models.RepaymentPaid
		} else {
			r.Status = models.RepaymentMissed
		}
		out = append(out, r)
	}
	return out
}

// WriteRepaymentsCSV writes repayments to repayments.csv
func WriteRepaymentsCSV(repayments []models.Repayment, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileRepayments,
		Headers:  []string{"loan_id", "customer_id", "branch_id", "payment_date", "amount_paid", "status"},
		Label:    "  Repayments",
	}, repayments, func(r *models.Repayment) []string {
		return []string{
			r.LoanID,
			r.CustomerID,
			r.BranchID,
			FormatDate(r.PaymentDate),
			FormatMoney(r.AmountPaid),
			string(r.Status),
		}
	}, showProgress)
}
