package generator

import (
	"fmt"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/data"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// CustomerGenerator creates borrowers assigned to a region and a primary branch.
type CustomerGenerator struct {
	rng     *utils.Random
	refData *data.ReferenceData
	roster  *Roster
	config  CustomerGeneratorConfig
}

// CustomerGeneratorConfig holds settings for customer generation
type CustomerGeneratorConfig struct {
	NumCustomers int
	// ReferenceYear is the year age is measured against
	ReferenceYear int
}

// NewCustomerGenerator creates a new customer generator
func NewCustomerGenerator(rng *utils.Random, refData *data.ReferenceData, roster *Roster, cfg CustomerGeneratorConfig) *CustomerGenerator {
	if cfg.ReferenceYear == 0 {
		cfg.ReferenceYear = config.ReferenceYear
	}
	return &CustomerGenerator{
		rng:     rng,
		refData: refData,
		roster:  roster,
		config:  cfg,
	}
}

// GenerateCustomers creates all customers with sequential C ids
func (g *CustomerGenerator) GenerateCustomers() []models.Customer {
	customers := make([]models.Customer, 0, g.config.NumCustomers)
	for i := 0; i < g.config.NumCustomers; i++ {
		customers = append(customers, g.generateCustomer(i))
	}
	return customers
}

// generateCustomer creates a single customer; idx is the zero-based row index
func (g *CustomerGenerator) generateCustomer(idx int) models.Customer {
	birthYear := g.rng.IntRange(config.BirthYearMin, config.BirthYearMax)

	gender := models.GenderFemale
	if g.rng.Probability(config.MaleRatio) {
		gender = models.GenderMale
	}

	regions := g.refData.RegionSet()
	region := regions.Names[g.rng.WeightedPick(regions.Weights)]

	business := g.refData.BusinessTypeSet()
	income := g.refData.IncomeBandSet()

	return models.Customer{
		ID:                fmt.Sprintf("C%07d", idx+1),
		FirstName:         g.rng.PickString(g.refData.GetFirstNames(gender == models.GenderMale)),
		LastName:          g.rng.PickString(g.refData.GetLastNames()),
		Gender:            gender,
		BirthYear:         birthYear,
		Age:               g.config.ReferenceYear - birthYear,
		NationalID:        NationalID(birthYear, idx),
		Phone:             g.generatePhone(),
		PrimaryBranch:     g.pickPrimaryBranch(region),
		Region:            region,
		BusinessType:      business.Names[g.rng.WeightedPick(business.Weights)],
		MonthlyIncomeBand: income.Names[g.rng.WeightedPick(income.Weights)],
		HistoricalCycles:  g.rng.Poisson(config.HistoricalCyclesMean),
		AvgWeeklyCash:     g.rng.IntRange(config.WeeklyCashMin, config.WeeklyCashMax),
		FraudFlag:         g.rng.Probability(config.CustomerFraudRate),
	}
}

// pickPrimaryBranch picks uniformly among the region's branches, falling back
// to any branch when the region has none.
func (g *CustomerGenerator) pickPrimaryBranch(region string) string {
	if ids := g.roster.BranchesIn(region); len(ids) > 0 {
		return g.rng.PickString(ids)
	}
	return g.rng.PickString(g.roster.BranchIDs())
}

// generatePhone creates a Kenyan mobile number: network prefix plus 7 digits
func (g *CustomerGenerator) generatePhone() string {
	return g.rng.PickString(g.refData.PhonePrefixes()) + FormatInt(g.rng.IntRange(1000000, 9999998))
}

// NationalID derives the synthetic national id: a two-digit prefix bucketed by
// birth year followed by 100000 + idx mod 900000. Ids can collide.
func NationalID(birthYear, idx int) string {
	var prefix string
	switch {
	case birthYear >= 1996 && birthYear <= 1998:
		prefix = "32"
	case birthYear >= 1990 && birthYear <= 1995:
		prefix = "31"
	case birthYear >= 1999:
		prefix = "33"
	case birthYear < 1990:
		prefix = "30"
	default:
		prefix = "34"
	}
	return prefix + FormatInt(100000+idx%900000)
}

// WriteCustomersCSV writes customers to customers.csv
func WriteCustomersCSV(customers []models.Customer, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileCustomers,
		Headers: []string{
			"customer_id", "first_name", "last_name", "gender", "birth_year", "age",
			"national_id", "phone", "primary_branch", "region", "business_type",
			"monthly_income_band", "historical_cycles", "avg_weekly_cash", "fraud_flag_initial",
		},
		Label: "  Customers",
	}, customers, func(c *models.Customer) []string {
		return []string{
			c.ID,
			c.FirstName,
			c.LastName,
			string(c.Gender),
			FormatInt(c.BirthYear),
			FormatInt(c.Age),
			c.NationalID,
			c.Phone,
			c.PrimaryBranch,
			c.Region,
			c.BusinessType,
			c.MonthlyIncomeBand,
			FormatInt(c.HistoricalCycles),
			FormatInt(c.AvgWeeklyCash),
			FormatBool(c.FraudFlag),
		}
	}, showProgress)
}
