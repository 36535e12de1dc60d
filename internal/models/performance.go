package models

import (
	"time"
)

// DailyBranchPerformance holds one branch's synthetic operating metrics for one day.
// It is generated independently of loans and repayments.
type DailyBranchPerformance struct {
	Date     time.Time `db:"date" json:"date"`
	BranchID string    `db:"branch_id" json:"branch_id"`
	Region   string    `db:"region" json:"region"`

	RecruitedToday int `db:"recruited_today" json:"recruited_today"`

	// Whole KSh amounts
	DisbursedAmount int64 `db:"disbursed_amount_ksh" json:"disbursed_amount_ksh"`
	DailyDues       int64 `db:"daily_dues_ksh" json:"daily_dues_ksh"`
	Collected       int64 `db:"collected_ksh" json:"collected_ksh"`

	MissedCalls int     `db:"missed_calls" json:"missed_calls"`
	ArrearsNew  int64   `db:"arrears_new_ksh" json:"arrears_new_ksh"`
	PARPercent  float64 `db:"par_percent" json:"par_percent"`
	DailyTarget int64   `db:"daily_target_ksh" json:"daily_target_ksh"`
}

// Month returns the calendar month key (YYYY-MM)
func (p *DailyBranchPerformance) Month() string {
	return p.Date.Format("2006-01")
}

// MonthlyBranchSummary is DailyBranchPerformance rolled up by branch and calendar month
type MonthlyBranchSummary struct {
	BranchID string `db:"branch_id" json:"branch_id"`
	Month    string `db:"month" json:"month"` // YYYY-MM

	Recruited     int     `db:"recruited_monthly" json:"recruited_monthly"`
	Disbursed     int64   `db:"disbursed_monthly_ksh" json:"disbursed_monthly_ksh"`
	Dues          int64   `db:"dues_monthly_ksh" json:"dues_monthly_ksh"`
	Collected     int64   `db:"collected_monthly_ksh" json:"collected_monthly_ksh"`
	MissedCalls   int     `db:"missed_calls_monthly" json:"missed_calls_monthly"`
	Arrears       int64   `db:"arrears_monthly_ksh" json:"arrears_monthly_ksh"`
	AvgPARPercent float64 `db:"avg_par_percent" json:"avg_par_percent"`
	Days          int     `db:"-" json:"days"`
}
