package generator

import (
	"time"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/generator/patterns"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// PerformanceGenerator creates synthetic daily operating metrics per branch.
// The numbers are driven by branch tier and day of month only; they are not
// reconciled against the loan or repayment tables.
type PerformanceGenerator struct {
	rng     *utils.Random
	pattern *patterns.MonthlyPattern
	config  PerformanceGeneratorConfig
}

// PerformanceGeneratorConfig holds settings for daily performance generation
type PerformanceGeneratorConfig struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewPerformanceGenerator creates a new performance generator
func NewPerformanceGenerator(rng *utils.Random, pattern *patterns.MonthlyPattern, cfg PerformanceGeneratorConfig) *PerformanceGenerator {
	if pattern == nil {
		pattern = patterns.NewTargetRampPattern()
	}
	return &PerformanceGenerator{
		rng:     rng,
		pattern: pattern,
		config:  cfg,
	}
}

// TierProfileFor returns the tier's baseline, treating unknown tiers as C
func TierProfileFor(tier models.Tier) config.TierProfile {
	if p, ok := config.TierProfiles[string(tier)]; ok {
		return p
	}
	return config.TierProfiles[string(models.TierC)]
}

// GeneratePerformance returns branches x days rows, branch-major in roster order
func (g *PerformanceGenerator) GeneratePerformance(branches []models.Branch) []models.DailyBranchPerformance {
	days := windowDays(g.config.StartDate, g.config.EndDate)
	rows := make([]models.DailyBranchPerformance, 0, len(branches)*days)

	for i := range branches {
		b := &branches[i]
		profile := TierProfileFor(b.Tier)
		for d := 0; d < days; d++ {
			rows = append(rows, g.generateDay(b, profile, g.config.StartDate.AddDate(0, 0, d)))
		}
	}
	return rows
}

// generateDay creates a single branch-day row
func (g *PerformanceGenerator) generateDay(b *models.Branch, profile config.TierProfile, date time.Time) models.DailyBranchPerformance {
	weight := g.pattern.GetMultiplierForDate(date)
	dailyTarget := profile.MonthlyTarget / config.TargetDaysPerMonth

	recruited := g.rng.Poisson(profile.BaseRecruit) * g.pattern.GetCountScale(date)

	disbursements := float64(g.rng.Poisson(profile.BaseDisbursements)) * weight
	ticket := g.rng.PickInt(config.DisbursementTicketSizes)
	disbursed := int64(disbursements * float64(ticket))

	dues := int64(float64(profile.MonthlyTarget) / config.TargetDaysPerMonth *
		g.rng.Float64Range(config.DuesFactorMin, config.DuesFactorMax))
	collected := int64(float64(dues) * g.rng.Float64Range(config.CollectionFactorMin, config.CollectionFactorMax))

	missed := g.rng.Poisson(config.MissedCallsMean)
	arrears := int64(g.rng.Poisson(config.ArrearsEventsMean))
	par := utils.Round(g.rng.Float64Range(config.PARMin, config.PARMax), 2)

	return models.DailyBranchPerformance{
		Date:            date,
		BranchID:        b.ID,
		Region:          b.Region,
		RecruitedToday:  recruited,
		DisbursedAmount: disbursed,
		DailyDues:       dues,
		Collected:       collected,
		MissedCalls:     missed,
		ArrearsNew:      arrears,
		PARPercent:      par,
		DailyTarget:     dailyTarget,
	}
}

// WriteDailyPerformanceCSV writes rows to daily_branch_performance.csv
func WriteDailyPerformanceCSV(rows []models.DailyBranchPerformance, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileDailyBranch,
		Headers: []string{
			"date", "branch_id", "region", "recruited_today", "disbursed_amount_ksh",
			"daily_dues_ksh", "collected_ksh", "missed_calls", "arrears_new_ksh",
			"par_percent", "daily_target_ksh",
		},
		Label: "  Daily performance",
	}, rows, func(p *models.DailyBranchPerformance) []string {
		return []string{
			FormatDate(p.Date),
			p.BranchID,
			p.Region,
			FormatInt(p.RecruitedToday),
			FormatInt64(p.DisbursedAmount),
			FormatInt64(p.DailyDues),
			FormatInt64(p.Collected),
			FormatInt(p.MissedCalls),
			FormatInt64(p.ArrearsNew),
			FormatFixed(p.PARPercent, 2),
			FormatInt64(p.DailyTarget),
		}
	}, showProgress)
}
