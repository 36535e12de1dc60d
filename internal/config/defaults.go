// Package config contains compile-time defaults for the dataset generator.
// Counts, the date window and seeds can be overridden from flags, the
// environment or a config file; the distributions below are edited here
// and recompiled.
package config

import "time"

// =============================================================================
// DATASET SHAPE
// =============================================================================

// Entity counts
const (
	// NumCustomers is the default number of customers
	NumCustomers = 120_000

	// NumLoans is the default number of loans
	NumLoans = 150_000

	// NumBranches is the default size of the branch roster
	NumBranches = 100

	// MinOfficersPerBranch and MaxOfficersPerBranch bound the officer roster (inclusive)
	MinOfficersPerBranch = 4
	MaxOfficersPerBranch = 12
)

// Simulation window (inclusive, YYYY-MM-DD)
const (
	StartDate = "2024-11-01"
	EndDate   = "2025-10-31"

	// DateLayout is the date format used in config and every output file
	DateLayout = "2006-01-02"
)

// Output locations
const (
	// OutputDir is where the ten table files are written
	OutputDir = "kechita_profile_dataset"

	// ArchivePath is the zip bundling every table file
	ArchivePath = "kechita_profile_dataset.zip"
)

// =============================================================================
// SAMPLING
// =============================================================================

// Seeds
const (
	// Seed drives every stage's draws (0 = random)
	Seed = 42

	// RepaymentSampleSeed selects which loans get a repayment walk
	RepaymentSampleSeed = 2

	// FraudSampleSeed selects the fraud-signal customers
	FraudSampleSeed = 3

	// FeatureSampleSeed selects the AI-feature customers
	FeatureSampleSeed = 4
)

// Subsample fractions (0.0-1.0)
const (
	// RepaymentSampleFraction is the fraction of loans that get daily repayment rows
	RepaymentSampleFraction = 0.40

	// FraudSampleFraction is the fraction of customers in fraud_signals
	FraudSampleFraction = 0.05

	// FeatureSampleFraction is the fraction of customers in ai_customer_features
	FeatureSampleFraction = 0.60
)

// =============================================================================
// CUSTOMER MODEL
// =============================================================================

const (
	// ReferenceYear is used to derive age from birth year
	ReferenceYear = 2025

	// BirthYearMin and BirthYearMax bound customer birth years (inclusive)
	BirthYearMin = 1970
	BirthYearMax = 2002

	// MaleRatio is the share of male customers
	MaleRatio = 0.46

	// HistoricalCyclesMean is the Poisson mean of prior loan cycles
	HistoricalCyclesMean = 3

	// WeeklyCashMin and WeeklyCashMax bound average weekly cash in KSh (inclusive)
	WeeklyCashMin = 1500
	WeeklyCashMax = 19999

	// CustomerFraudRate is the onboarding fraud flag probability
	CustomerFraudRate = 0.005
)

// =============================================================================
// LOAN MODEL
// =============================================================================

// LoanAmounts is the principal menu in whole KSh; LoanAmountWeights aligns with it
var (
	LoanAmounts       = []int64{5000, 8000, 10000, 15000, 20000, 30000, 40000, 50000, 60000}
	LoanAmountWeights = []float64{0.14, 0.11, 0.12, 0.14, 0.15, 0.12, 0.08, 0.08, 0.06}
)

// Tenors in weeks and their weights
var (
	TenorWeeks   = []int{4, 6}
	TenorWeights = []float64{0.65, 0.35}
)

// Miss rate model
const (
	MissRateBase      = 0.03
	MissRateFraud     = 0.12 // added when the customer carries the fraud flag
	MissRateLowIncome = 0.03 // added for the "<20k" income band
	MissRateNoise     = 0.02 // Gaussian sigma
	MissRateMax       = 0.6
)

const (
	// RescheduleRate is the probability a loan is rescheduled
	RescheduleRate = 0.015

	// DefaultRate is the probability a loan is flagged defaulted
	DefaultRate = 0.02

	// RepaymentNoise is the sigma (KSh) of a paid amount around the installment
	RepaymentNoise = 8.0
)

// =============================================================================
// BRANCH PERFORMANCE MODEL
// =============================================================================

// TierProfile sets a branch's baseline activity
type TierProfile struct {
	BaseRecruit       float64 // Poisson mean of daily recruits
	BaseDisbursements float64 // Poisson mean of daily disbursement count
	MonthlyTarget     int64   // KSh
}

// TierProfiles maps tier to profile
var TierProfiles = map[string]TierProfile{
	"A": {BaseRecruit: 6, BaseDisbursements: 12, MonthlyTarget: 1_800_000},
	"B": {BaseRecruit: 4, BaseDisbursements: 8, MonthlyTarget: 1_100_000},
	"C": {BaseRecruit: 2, BaseDisbursements: 4, MonthlyTarget: 650_000},
}

// Tiers and their weights for branch assignment
var (
	Tiers       = []string{"A", "B", "C"}
	TierWeights = []float64{0.35, 0.40, 0.25}
)

// Branch attributes
const (
	StaffCountMin = 6
	StaffCountMax = 24

	LatitudeMin  = -4.5
	LatitudeMax  = -1.5
	LongitudeMin = 36.5
	LongitudeMax = 39.0
)

// Daily metric ranges
var DisbursementTicketSizes = []int{800, 1000, 1200}

const (
	DuesFactorMin       = 0.8
	DuesFactorMax       = 1.2
	CollectionFactorMin = 0.65
	CollectionFactorMax = 1.05
	MissedCallsMean     = 2
	ArrearsEventsMean   = 1 // arrears_new_ksh is the raw Poisson draw
	PARMin              = 0.5
	PARMax              = 6.0

	// TargetDaysPerMonth converts a monthly target to a daily one
	TargetDaysPerMonth = 30
)

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

const (
	// DBDriver is the database driver to use
	DBDriver = "mysql"

	// DBMaxOpenConns is maximum open connections in the pool
	DBMaxOpenConns = 16

	// DBMaxIdleConns is maximum idle connections in the pool
	DBMaxIdleConns = 4

	// DBConnMaxLifetime is how long a connection can be reused
	DBConnMaxLifetime = 5 * time.Minute

	// DBConnMaxIdleTime is how long an idle connection is kept
	DBConnMaxIdleTime = 1 * time.Minute
)
