package generator

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/willfong/mfi-generator/internal/data"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// testConfig returns a small run rooted in a fresh temp dir
func testConfig(t *testing.T, customers, loans, days int) OrchestratorConfig {
	t.Helper()
	dir := t.TempDir()
	return OrchestratorConfig{
		NumCustomers:      customers,
		NumLoans:          loans,
		NumBranches:       100,
		MinOfficers:       4,
		MaxOfficers:       12,
		StartDate:         testStart,
		EndDate:           testStart.AddDate(0, 0, days-1),
		RepaymentFraction: 1.0,
		FraudFraction:     0.05,
		FeatureFraction:   0.60,
		RepaymentSeed:     2,
		FraudSeed:         3,
		FeatureSeed:       4,
		ReferenceYear:     2025,
		OutputDir:         filepath.Join(dir, "dataset"),
		ArchivePath:       filepath.Join(dir, "dataset.zip"),
		Seed:              42,
	}
}

// runOrchestrator generates a dataset with logging silenced
func runOrchestrator(t *testing.T, cfg OrchestratorConfig) (*Orchestrator, *GenerationResult) {
	t.Helper()
	o, err := NewOrchestrator(cfg, OrchestratorOptions{Logger: NewStageLogger(io.Discard, false)})
	require.NoError(t, err)
	result, err := o.Generate()
	require.NoError(t, err)
	return o, result
}

// readCSV returns every record of a table file, header included
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// testRoster builds branches and officers from a fixed seed
func testRoster(t *testing.T, rng *utils.Random, numBranches int) (*data.ReferenceData, *Roster) {
	t.Helper()
	refData, err := data.Load()
	require.NoError(t, err)
	gen := NewBranchGenerator(rng, refData, BranchGeneratorConfig{NumBranches: numBranches, MinOfficers: 4, MaxOfficers: 12})
	branches := gen.GenerateBranches()
	return refData, NewRoster(branches, gen.GenerateOfficers(branches))
}

// testCustomers generates customers against a roster
func testCustomers(rng *utils.Random, refData *data.ReferenceData, roster *Roster, n int) []models.Customer {
	return NewCustomerGenerator(rng, refData, roster, CustomerGeneratorConfig{NumCustomers: n, ReferenceYear: 2025}).GenerateCustomers()
}
