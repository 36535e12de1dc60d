package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/generator"
	"github.com/willfong/mfi-generator/internal/ui"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the microfinance profile dataset",
	Long: `Generate a synthetic microfinance dataset and package it as a zip archive.

This command writes ten CSV tables:
- regions, branches and loan officers
- customers with region and primary branch
- loans with daily installments and miss rates
- daily repayments for a sample of loans
- daily branch performance against tier targets
- fraud signals, AI customer features and a monthly branch summary

Distribution tables and the tier profile are in config/defaults.go.

Example:
  mfigen generate
  mfigen generate --customers 1000 --loans 1500 --seed 7
  mfigen generate --start 2025-01-01 --end 2025-03-31 --output ./q1 --archive ./q1.zip`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.String("output", config.OutputDir, "output directory for CSV files")
	f.String("archive", config.ArchivePath, "zip archive path (outside the output directory)")
	f.Int("customers", config.NumCustomers, "number of customers to generate")
	f.Int("loans", config.NumLoans, "number of loans to generate")
	f.Int("branches", config.NumBranches, "number of branches")
	f.Float64("repay-fraction", config.RepaymentSampleFraction, "fraction of loans with daily repayment rows (0.0-1.0)")
	f.String("start", config.StartDate, "first day of the simulation window (YYYY-MM-DD)")
	f.String("end", config.EndDate, "last day of the simulation window (YYYY-MM-DD)")
	f.Int64("seed", config.Seed, "random seed for reproducibility (0 = random)")

	bindFlags(generateCmd, map[string]string{
		"generate.output_dir":         "output",
		"generate.archive_path":       "archive",
		"generate.num_customers":      "customers",
		"generate.num_loans":          "loans",
		"generate.num_branches":       "branches",
		"generate.repayment_fraction": "repay-fraction",
		"generate.start_date":         "start",
		"generate.end_date":           "end",
		"generate.seed":               "seed",
	})
}

// bindFlags binds command flags to viper keys
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	// Initialize UI
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	g := cfg.Generate

	orchCfg, err := generator.OrchestratorConfigFrom(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("Kechita Dataset Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Customers", fmt.Sprintf("%d", g.NumCustomers)))
	fmt.Println(u.KeyValue("Loans", fmt.Sprintf("%d", g.NumLoans)))
	fmt.Println(u.KeyValue("Branches", fmt.Sprintf("%d (%d-%d officers each)", g.NumBranches, g.MinOfficers, g.MaxOfficers)))
	fmt.Println(u.KeyValue("Window", fmt.Sprintf("%s to %s", g.StartDate, g.EndDate)))
	fmt.Println(u.KeyValue("Repayments", fmt.Sprintf("%.0f%% of loans", g.RepaymentFraction*100)))
	fmt.Println(u.KeyValue("Output", g.OutputDir))
	fmt.Println(u.KeyValue("Archive", g.ArchivePath))
	if g.Seed != 0 {
		fmt.Println(u.KeyValue("Seed", fmt.Sprintf("%d", g.Seed)))
	} else {
		fmt.Println(u.Warning("Seed 0 picks a random seed; the run will not be reproducible"))
	}
	fmt.Println()

	orchestrator, err := generator.NewOrchestrator(orchCfg, generator.OrchestratorOptions{
		Verbose:      cfg.Verbose,
		ShowProgress: !cfg.Verbose,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	u.Section("Generating tables...")
	result, err := orchestrator.Generate()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	printGenerateSummary(u, result)
	fmt.Println()
	fmt.Println(u.Success("Output files written to: " + result.OutputDir))
	fmt.Println(u.Success("Archive written to: " + result.Archive.Path))
}

// printGenerateSummary prints a styled generation summary
func printGenerateSummary(u *ui.UI, result *generator.GenerationResult) {
	items := []ui.KV{
		{Key: "Regions", Value: fmt.Sprintf("%d", result.RegionCount)},
		{Key: "Branches", Value: fmt.Sprintf("%d", result.BranchCount)},
		{Key: "Officers", Value: fmt.Sprintf("%d", result.OfficerCount)},
		{Key: "Customers", Value: fmt.Sprintf("%d", result.CustomerCount)},
		{Key: "Loans", Value: fmt.Sprintf("%d", result.LoanCount)},
		{Key: "Disbursed", Value: result.TotalDisbursed.Format("KES")},
		{Key: "Repayments", Value: fmt.Sprintf("%d", result.RepaymentCount)},
		{Key: "Branch days", Value: fmt.Sprintf("%d", result.PerformanceCount)},
		{Key: "Fraud signals", Value: fmt.Sprintf("%d", result.FraudCount)},
		{Key: "AI features", Value: fmt.Sprintf("%d", result.FeatureCount)},
		{Key: "Branch months", Value: fmt.Sprintf("%d", result.MonthlyCount)},
		{Key: "Archive", Value: fmt.Sprintf("%d files, %s", len(result.Archive.Entries), ui.FormatBytes(result.Archive.Size))},
		{Key: "Seed", Value: fmt.Sprintf("%d", result.Seed)},
		{Key: "Run ID", Value: result.RunID},
		{Key: "Duration", Value: result.Duration.Round(1 * 1e6).String()},
		{Key: "Status", Value: "Success"},
	}

	fmt.Println(u.SummaryBox("Generation Complete", items))
}
