package generator

import (
	"cmp"
	"slices"

	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// Fraud flag probabilities
const (
	nationalIDMismatchRate = 0.05
	sharedPhoneRate        = 0.03
	distanceAnomalyRate    = 0.08
	suspiciousPatternRate  = 0.10
)

// AI feature score shapes
const (
	recommendedLimitMin = 5000
	recommendedLimitMax = 60000
	defaultProbMax      = 0.95
	fraudDefaultNudge   = 0.01
)

// DerivedGenerator builds the resampled customer tables. Each table picks its
// customers with its own sampler; attribute draws come from rng.
type DerivedGenerator struct {
	rng *utils.Random
}

// NewDerivedGenerator creates a new derived-table generator
func NewDerivedGenerator(rng *utils.Random) *DerivedGenerator {
	return &DerivedGenerator{rng: rng}
}

// GenerateFraudSignals resamples customers and attaches anomaly indicators
func (g *DerivedGenerator) GenerateFraudSignals(customers []models.Customer, sampler *utils.Random, fraction float64) []models.FraudSignal {
	picked := sampler.Sample(len(customers), SampleSize(fraction, len(customers)))

	signals := make([]models.FraudSignal, 0, len(picked))
	for _, idx := range picked {
		signals = append(signals, models.FraudSignal{
			CustomerID:                 customers[idx].ID,
			NationalIDMismatch:         g.rng.Probability(nationalIDMismatchRate),
			SharedPhoneNumber:          g.rng.Probability(sharedPhoneRate),
			DistanceAnomaly:            g.rng.Probability(distanceAnomalyRate),
			SuspiciousRepaymentPattern: g.rng.Probability(suspiciousPatternRate),
			SyntheticCustomerScore:     utils.Round(g.rng.Float64(), 3),
		})
	}
	return signals
}

// GenerateAIFeatures resamples customers and attaches model-ready scores.
// Default probability is nudged up for customers carrying the fraud flag.
func (g *DerivedGenerator) GenerateAIFeatures(customers []models.Customer, sampler *utils.Random, fraction float64) []models.AICustomerFeature {
	picked := sampler.Sample(len(customers), SampleSize(fraction, len(customers)))

	features := make([]models.AICustomerFeature, 0, len(picked))
	for _, idx := range picked {
		c := &customers[idx]

		risk := utils.Round(g.rng.Beta(2, 5)*100, 2)

		defaultProb := g.rng.Beta(1.5, 6)
		if c.FraudFlag {
			defaultProb += fraudDefaultNudge
		}
		defaultProb = utils.Round(utils.Clip(defaultProb, 0, defaultProbMax), 3)

		churn := utils.Round(g.rng.Beta(2, 4), 3)

		limit := int(float64(c.AvgWeeklyCash) * g.rng.Float64Range(2, 5))
		limit = min(max(limit, recommendedLimitMin), recommendedLimitMax)

		features = append(features, models.AICustomerFeature{
			CustomerID:          c.ID,
			PrimaryBranch:       c.PrimaryBranch,
			AvgWeeklyCash:       c.AvgWeeklyCash,
			HistoricalCycles:    c.HistoricalCycles,
			RiskScore:           risk,
			DefaultProb:         defaultProb,
			ChurnProb:           churn,
			RecommendedLimitKSh: limit,
		})
	}
	return features
}

// SummarizeMonthly groups daily rows by (branch, YYYY-MM), summing volumes and
// averaging PAR. Output is sorted by branch id then month.
func SummarizeMonthly(rows []models.DailyBranchPerformance) []models.MonthlyBranchSummary {
	type key struct{ branch, month string }

	index := make(map[key]int)
	var summaries []models.MonthlyBranchSummary
	parSums := make([]float64, 0)

	for i := range rows {
		r := &rows[i]
		k := key{r.BranchID, r.Month()}
		pos, ok := index[k]
		if !ok {
			pos = len(summaries)
			index[k] = pos
			summaries = append(summaries, models.MonthlyBranchSummary{BranchID: k.branch, Month: k.month})
			parSums = append(parSums, 0)
		}

		s := &summaries[pos]
		s.Recruited += r.RecruitedToday
		s.Disbursed += r.DisbursedAmount
		s.Dues += r.DailyDues
		s.Collected += r.Collected
		s.MissedCalls += r.MissedCalls
		s.Arrears += r.ArrearsNew
		s.Days++
		parSums[pos] += r.PARPercent
	}

	for i := range summaries {
		summaries[i].AvgPARPercent = parSums[i] / float64(summaries[i].Days)
	}

	slices.SortStableFunc(summaries, func(a, b models.MonthlyBranchSummary) int {
		if c := cmp.Compare(a.BranchID, b.BranchID); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return summaries
}

// WriteFraudSignalsCSV writes fraud_signals.csv
func WriteFraudSignalsCSV(signals []models.FraudSignal, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileFraudSignals,
		Headers: []string{
			"customer_id", "national_id_mismatch", "shared_phone_number",
			"distance_anomaly", "suspicious_repayment_pattern", "synthetic_customer_score",
		},
		Label: "  Fraud signals",
	}, signals, func(s *models.FraudSignal) []string {
		return []string{
			s.CustomerID,
			FormatBool(s.NationalIDMismatch),
			FormatBool(s.SharedPhoneNumber),
			FormatBool(s.DistanceAnomaly),
			FormatBool(s.SuspiciousRepaymentPattern),
			FormatFixed(s.SyntheticCustomerScore, 3),
		}
	}, showProgress)
}

// WriteAIFeaturesCSV writes ai_customer_features.csv
func WriteAIFeaturesCSV(features []models.AICustomerFeature, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileAIFeatures,
		Headers: []string{
			"customer_id", "primary_branch", "avg_weekly_cash", "historical_cycles",
			"risk_score_0_100", "default_prob", "churn_prob", "recommended_limit_ksh",
		},
		Label: "  AI features",
	}, features, func(f *models.AICustomerFeature) []string {
		return []string{
			f.CustomerID,
			f.PrimaryBranch,
			FormatInt(f.AvgWeeklyCash),
			FormatInt(f.HistoricalCycles),
			FormatFixed(f.RiskScore, 2),
			FormatFixed(f.DefaultProb, 3),
			FormatFixed(f.ChurnProb, 3),
			FormatInt(f.RecommendedLimitKSh),
		}
	}, showProgress)
}

// WriteMonthlySummaryCSV writes monthly_branch_summary.csv
func WriteMonthlySummaryCSV(summaries []models.MonthlyBranchSummary, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileMonthlyBranch,
		Headers: []string{
			"branch_id", "month", "recruited_monthly", "disbursed_monthly_ksh",
			"dues_monthly_ksh", "collected_monthly_ksh", "missed_calls_monthly",
			"arrears_monthly_ksh", "avg_par_percent",
		},
		Label: "  Monthly summary",
	}, summaries, func(s *models.MonthlyBranchSummary) []string {
		return []string{
			s.BranchID,
			s.Month,
			FormatInt(s.Recruited),
			FormatInt64(s.Disbursed),
			FormatInt64(s.Dues),
			FormatInt64(s.Collected),
			FormatInt(s.MissedCalls),
			FormatInt64(s.Arrears),
			FormatFloat64(s.AvgPARPercent),
		}
	}, showProgress)
}
