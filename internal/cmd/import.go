package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/database"
	"github.com/willfong/mfi-generator/internal/generator"
	"github.com/willfong/mfi-generator/internal/ui"
)

var importInputDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the generated CSV tables into MySQL/MariaDB",
	Long: `Import a generated dataset directory into a MySQL/MariaDB database using
LOAD DATA LOCAL INFILE.

The import process:
1. Creates tables if they don't exist
2. Loads all ten tables in parallel with key checks disabled
3. Creates indexes and foreign keys after loading

Examples:
  mfigen import --db "user:pass@tcp(localhost:3306)/kechita"
  mfigen import --db "user:pass@tcp(localhost:3306)/kechita" --input ./q1`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	f := importCmd.Flags()
	f.String("db", "", "database connection string (required)")
	f.StringVar(&importInputDir, "input", config.OutputDir, "input directory containing CSV files")
	f.Int("db-max-open", config.DBMaxOpenConns, "max open database connections")
	f.Int("db-max-idle", config.DBMaxIdleConns, "max idle database connections")

	bindFlags(importCmd, map[string]string{
		"database.dsn":            "db",
		"database.max_open_conns": "db-max-open",
		"database.max_idle_conns": "db-max-idle",
	})
}

func runImport(cmd *cobra.Command, args []string) {
	// Initialize UI
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateDatabase()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("Kechita Dataset Importer"))
	fmt.Println()
	fmt.Println(u.KeyValue("Database", database.MaskDSN(cfg.Database.DSN)))
	fmt.Println(u.KeyValue("Input", importInputDir))
	fmt.Println(u.KeyValue("DB Pool", fmt.Sprintf("%d open / %d idle", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)))
	fmt.Println()

	if err := database.CheckInput(importInputDir); err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	spin := u.NewSpinner("Connecting to database")
	spin.Start()
	if err := pool.Connect(ctx); err != nil {
		spin.Error("connection failed: " + err.Error())
		os.Exit(1)
	}
	spin.Success("connected!")

	tables, err := readSchema("tables")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	spinTables := u.NewSpinner("Creating tables")
	spinTables.Start()
	if err := database.CreateTables(ctx, pool, string(tables)); err != nil {
		spinTables.Error("failed: " + err.Error())
		os.Exit(1)
	}
	spinTables.Success("tables ready")

	// Load all tables in parallel
	u.Section("Loading data...")
	loader := database.NewLoader(pool, importInputDir, generator.NewStageLogger(os.Stderr, cfg.Verbose).WithField("cmd", "import"))
	startTime := time.Now()
	results, loadErr := loader.LoadAll(ctx, func(r database.LoadResult) {
		u.PrintTableLoadResult(r.Table, r.Rows, r.Duration, r.Err)
	})
	loadDuration := time.Since(startTime)

	if loadErr != nil {
		for _, r := range results {
			if errors.Is(r.Err, context.Canceled) {
				fmt.Println(u.TableRow(r.Table, "not started", ui.StatusSkipped))
			}
		}
		fmt.Fprintln(os.Stderr, u.Error("Import stopped due to error: "+loadErr.Error()))
		printImportSummary(u, results, pool.Stats(), loadDuration)
		os.Exit(1)
	}

	// Create indexes
	u.Section("Creating indexes...")
	indexes, err := readSchema("indexes")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	var progress *ui.StepProgress
	err = database.CreateIndexes(ctx, pool, string(indexes), func(done, total int) {
		if progress == nil {
			progress = u.NewStepProgress("Creating indexes...", "indexes and constraints", total)
		}
		progress.Update(done)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error("Error creating indexes: "+err.Error()))
		os.Exit(1)
	}
	if progress != nil {
		progress.Complete()
	}

	printImportSummary(u, results, pool.Stats(), loadDuration)
}

func printImportSummary(u *ui.UI, results []database.LoadResult, stats database.PoolStats, totalDuration time.Duration) {
	var totalRows int64
	var failures, skipped int

	for _, r := range results {
		switch {
		case errors.Is(r.Err, context.Canceled):
			skipped++
		case r.Err != nil:
			failures++
		default:
			totalRows += r.Rows
		}
	}

	items := []ui.KV{
		{Key: "Total rows", Value: ui.FormatRowCount(totalRows)},
		{Key: "Total time", Value: ui.FormatDuration(totalDuration)},
		{Key: "Statements", Value: fmt.Sprintf("%d (%d failed, avg %s)", stats.TotalQueries, stats.FailedQueries, ui.FormatDuration(stats.AvgLatency))},
	}

	if failures > 0 {
		items = append(items, ui.KV{Key: "Failed", Value: fmt.Sprintf("%d tables (%d not started)", failures, skipped)})
		items = append(items, ui.KV{Key: "Status", Value: "Failed"})
	} else {
		items = append(items, ui.KV{Key: "Status", Value: "Success"})
	}

	fmt.Println(u.SummaryBox("Import Summary", items))
}
