package generator

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/data"
	"github.com/willfong/mfi-generator/internal/generator/patterns"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// Orchestrator runs every generation stage in a fixed order against one
// seeded generator, writes the ten tables and packages the archive.
type Orchestrator struct {
	rng          *utils.Random
	refData      *data.ReferenceData
	config       OrchestratorConfig
	log          *logrus.Entry
	showProgress bool

	dataset Dataset
}

// OrchestratorConfig holds settings for the orchestrator
type OrchestratorConfig struct {
	NumCustomers int
	NumLoans     int
	NumBranches  int
	MinOfficers  int
	MaxOfficers  int

	// Simulation window, inclusive
	StartDate time.Time
	EndDate   time.Time

	// Subsample fractions and the seeds that pick them
	RepaymentFraction float64
	FraudFraction     float64
	FeatureFraction   float64
	RepaymentSeed     int64
	FraudSeed         int64
	FeatureSeed       int64

	ReferenceYear int

	OutputDir   string
	ArchivePath string
	Seed        int64
}

// OrchestratorConfigFrom converts loaded generate settings, parsing the window
func OrchestratorConfigFrom(g config.GenerateConfig) (OrchestratorConfig, error) {
	start, end, err := g.Window()
	if err != nil {
		return OrchestratorConfig{}, err
	}
	return OrchestratorConfig{
		NumCustomers:      g.NumCustomers,
		NumLoans:          g.NumLoans,
		NumBranches:       g.NumBranches,
		MinOfficers:       g.MinOfficers,
		MaxOfficers:       g.MaxOfficers,
		StartDate:         start,
		EndDate:           end,
		RepaymentFraction: g.RepaymentFraction,
		FraudFraction:     g.FraudFraction,
		FeatureFraction:   g.FeatureFraction,
		RepaymentSeed:     g.RepaymentSeed,
		FraudSeed:         g.FraudSeed,
		FeatureSeed:       g.FeatureSeed,
		ReferenceYear:     g.ReferenceYear,
		OutputDir:         g.OutputDir,
		ArchivePath:       g.ArchivePath,
		Seed:              g.Seed,
	}, nil
}

// OrchestratorOptions holds optional settings for the orchestrator
type OrchestratorOptions struct {
	Verbose      bool
	ShowProgress bool
	// Logger receives stage logs; defaults to a stderr logger
	Logger *logrus.Logger
}

// Dataset holds every generated table in memory
type Dataset struct {
	Regions     []string
	Branches    []models.Branch
	Officers    []models.Officer
	Roster      *Roster
	Customers   []models.Customer
	Loans       []models.Loan
	Repayments  []models.Repayment
	Performance []models.DailyBranchPerformance
	Fraud       []models.FraudSignal
	Features    []models.AICustomerFeature
	Monthly     []models.MonthlyBranchSummary
}

// GenerationResult holds statistics from the generation run
type GenerationResult struct {
	RunID string
	Seed  uint64

	RegionCount      int
	BranchCount      int
	OfficerCount     int
	CustomerCount    int
	LoanCount        int
	RepaymentCount   int
	PerformanceCount int
	FraudCount       int
	FeatureCount     int
	MonthlyCount     int

	TotalDisbursed utils.Money

	OutputDir string
	Archive   *ArchiveResult
	Duration  time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(cfg OrchestratorConfig, opts OrchestratorOptions) (*Orchestrator, error) {
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s", FormatDate(cfg.EndDate), FormatDate(cfg.StartDate))
	}

	// Load reference data
	refData, err := data.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewStageLogger(os.Stderr, opts.Verbose)
	}

	rng := utils.NewRandom(cfg.Seed)

	return &Orchestrator{
		rng:          rng,
		refData:      refData,
		config:       cfg,
		log:          logger.WithField("seed", rng.Seed()),
		showProgress: opts.ShowProgress,
	}, nil
}

// NewStageLogger returns a logrus logger that only reports stage progress when verbose
func NewStageLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// Dataset returns the tables produced by the last Generate call
func (o *Orchestrator) Dataset() *Dataset {
	return &o.dataset
}

// Generate runs all stages and packages the archive. Stages run in a fixed
// order so the same seed and config reproduce byte-identical files.
func (o *Orchestrator) Generate() (*GenerationResult, error) {
	startTime := time.Now()
	result := &GenerationResult{
		RunID:     uuid.NewString(),
		Seed:      o.rng.Seed(),
		OutputDir: o.config.OutputDir,
	}
	o.log = o.log.WithField("run_id", result.RunID)
	ds := &o.dataset
	out := o.config.OutputDir

	// 1. Reference data: regions, branches, officers
	stage := o.beginStage("reference")
	ds.Regions = o.refData.RegionNames()
	branchGen := NewBranchGenerator(o.rng, o.refData, BranchGeneratorConfig{
		NumBranches: o.config.NumBranches,
		MinOfficers: o.config.MinOfficers,
		MaxOfficers: o.config.MaxOfficers,
	})
	ds.Branches = branchGen.GenerateBranches()
	ds.Officers = branchGen.GenerateOfficers(ds.Branches)
	ds.Roster = NewRoster(ds.Branches, ds.Officers)

	if _, err := WriteRegionsCSV(ds.Regions, out); err != nil {
		return nil, fmt.Errorf("write regions: %w", err)
	}
	if _, err := WriteBranchesCSV(ds.Branches, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write branches: %w", err)
	}
	if _, err := WriteOfficersCSV(ds.Officers, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write officers: %w", err)
	}
	result.RegionCount = len(ds.Regions)
	result.BranchCount = len(ds.Branches)
	result.OfficerCount = len(ds.Officers)
	stage.done(result.BranchCount + result.OfficerCount)

	// 2. Customers
	stage = o.beginStage("customers")
	ds.Customers = NewCustomerGenerator(o.rng, o.refData, ds.Roster, CustomerGeneratorConfig{
		NumCustomers:  o.config.NumCustomers,
		ReferenceYear: o.config.ReferenceYear,
	}).GenerateCustomers()
	if _, err := WriteCustomersCSV(ds.Customers, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write customers: %w", err)
	}
	result.CustomerCount = len(ds.Customers)
	stage.done(result.CustomerCount)

	// 3. Loans
	stage = o.beginStage("loans")
	ds.Loans = NewLoanGenerator(o.rng, ds.Roster, ds.Customers, LoanGeneratorConfig{
		NumLoans:  o.config.NumLoans,
		StartDate: o.config.StartDate,
		EndDate:   o.config.EndDate,
	}).GenerateLoans()
	if _, err := WriteLoansCSV(ds.Loans, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write loans: %w", err)
	}
	result.LoanCount = len(ds.Loans)
	for i := range ds.Loans {
		result.TotalDisbursed = result.TotalDisbursed.Add(ds.Loans[i].Amount)
	}
	stage.done(result.LoanCount)

	// 4. Repayments
	stage = o.beginStage("repayments")
	ds.Repayments = NewRepaymentSimulator(o.rng, utils.NewRandom(o.config.RepaymentSeed), RepaymentSimulatorConfig{
		Fraction:  o.config.RepaymentFraction,
		StartDate: o.config.StartDate,
		EndDate:   o.config.EndDate,
	}).SimulateRepayments(ds.Loans)
	if _, err := WriteRepaymentsCSV(ds.Repayments, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write repayments: %w", err)
	}
	result.RepaymentCount = len(ds.Repayments)
	stage.done(result.RepaymentCount)

	// 5. Daily branch performance
	stage = o.beginStage("daily_performance")
	ds.Performance = NewPerformanceGenerator(o.rng, patterns.NewTargetRampPattern(), PerformanceGeneratorConfig{
		StartDate: o.config.StartDate,
		EndDate:   o.config.EndDate,
	}).GeneratePerformance(ds.Branches)
	if _, err := WriteDailyPerformanceCSV(ds.Performance, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write daily performance: %w", err)
	}
	result.PerformanceCount = len(ds.Performance)
	stage.done(result.PerformanceCount)

	// 6. Derived tables
	stage = o.beginStage("derived")
	derived := NewDerivedGenerator(o.rng)
	ds.Fraud = derived.GenerateFraudSignals(ds.Customers, utils.NewRandom(o.config.FraudSeed), o.config.FraudFraction)
	ds.Features = derived.GenerateAIFeatures(ds.Customers, utils.NewRandom(o.config.FeatureSeed), o.config.FeatureFraction)
	ds.Monthly = SummarizeMonthly(ds.Performance)

	if _, err := WriteFraudSignalsCSV(ds.Fraud, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write fraud signals: %w", err)
	}
	if _, err := WriteAIFeaturesCSV(ds.Features, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write ai features: %w", err)
	}
	if _, err := WriteMonthlySummaryCSV(ds.Monthly, out, o.showProgress); err != nil {
		return nil, fmt.Errorf("write monthly summary: %w", err)
	}
	result.FraudCount = len(ds.Fraud)
	result.FeatureCount = len(ds.Features)
	result.MonthlyCount = len(ds.Monthly)
	stage.done(result.FraudCount + result.FeatureCount + result.MonthlyCount)

	// 7. Packaging
	stage = o.beginStage("package")
	archive, err := PackageArchive(out, o.config.ArchivePath, TableFiles, o.config.StartDate)
	if err != nil {
		return nil, fmt.Errorf("package archive: %w", err)
	}
	result.Archive = archive
	stage.done(len(archive.Entries))

	result.Duration = time.Since(startTime)
	o.log.WithFields(logrus.Fields{
		"output":   out,
		"archive":  archive.Path,
		"duration": result.Duration.Round(time.Millisecond),
	}).Info("generation complete")

	return result, nil
}

// stageTimer logs the start and end of a stage
type stageTimer struct {
	log   *logrus.Entry
	start time.Time
}

func (o *Orchestrator) beginStage(name string) *stageTimer {
	entry := o.log.WithField("stage", name)
	entry.Debug("stage started")
	return &stageTimer{log: entry, start: time.Now()}
}

func (s *stageTimer) done(rows int) {
	s.log.WithFields(logrus.Fields{
		"rows":    rows,
		"elapsed": time.Since(s.start).Round(time.Millisecond),
	}).Debug("stage finished")
}
