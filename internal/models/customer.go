package models

// Gender as captured at onboarding
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// IncomeBandLow is the lowest monthly income band; it raises loan miss rates
const IncomeBandLow = "<20k"

// Customer represents a microfinance borrower with their demographic and business profile
type Customer struct {
	// Customer code (C0000001, ...)
	ID string `db:"customer_id" json:"customer_id"`

	// Personal Information (PII)
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Gender     Gender `db:"gender" json:"gender"`
	BirthYear  int    `db:"birth_year" json:"birth_year"`
	Age        int    `db:"age" json:"age"`
	NationalID string `db:"national_id" json:"national_id"` // Not guaranteed unique
	Phone      string `db:"phone" json:"phone"`

	// Assignment
	PrimaryBranch string `db:"primary_branch" json:"primary_branch"`
	Region        string `db:"region" json:"region"`

	// Business profile
	BusinessType      string `db:"business_type" json:"business_type"`
	MonthlyIncomeBand string `db:"monthly_income_band" json:"monthly_income_band"`
	HistoricalCycles  int    `db:"historical_cycles" json:"historical_cycles"`
	AvgWeeklyCash     int    `db:"avg_weekly_cash" json:"avg_weekly_cash"`

	// Onboarding fraud flag, later drives loan miss rate
	FraudFlag bool `db:"fraud_flag_initial" json:"fraud_flag_initial"`
}

// IsLowIncome returns true if the customer is in the lowest income band
func (c *Customer) IsLowIncome() bool {
	return c.MonthlyIncomeBand == IncomeBandLow
}
