package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/willfong/mfi-generator/internal/generator"
)

// Table maps one generated CSV file onto its database table. Columns follow
// the CSV header order.
type Table struct {
	Name    string
	File    string
	Columns []string
}

// Tables lists every table the importer loads. Reference tables come first so
// a sequential load also satisfies foreign keys.
var Tables = []Table{
	{Name: "regions", File: generator.FileRegions, Columns: []string{"region"}},
	{Name: "branches", File: generator.FileBranches, Columns: []string{
		"branch_id", "branch_name", "region", "urban_rural",
		"staff_count", "avg_target_tier", "latitude", "longitude",
	}},
	{Name: "officers", File: generator.FileOfficers, Columns: []string{"officer_id", "name", "branch_id", "role"}},
	{Name: "customers", File: generator.FileCustomers, Columns: []string{
		"customer_id", "first_name", "last_name", "gender", "birth_year", "age",
		"national_id", "phone", "primary_branch", "region", "business_type",
		"monthly_income_band", "historical_cycles", "avg_weekly_cash", "fraud_flag_initial",
	}},
	{Name: "loans", File: generator.FileLoans, Columns: []string{
		"loan_id", "customer_id", "branch_id", "officer_id",
		"disbursement_date", "due_date", "amount", "tenor_weeks",
		"daily_installment", "miss_rate", "rescheduled", "default_flag", "loan_status",
	}},
	{Name: "repayments", File: generator.FileRepayments, Columns: []string{
		"loan_id", "customer_id", "branch_id", "payment_date", "amount_paid", "status",
	}},
	{Name: "daily_branch_performance", File: generator.FileDailyBranch, Columns: []string{
		"date", "branch_id", "region", "recruited_today", "disbursed_amount_ksh",
		"daily_dues_ksh", "collected_ksh", "missed_calls", "arrears_new_ksh",
		"par_percent", "daily_target_ksh",
	}},
	{Name: "fraud_signals", File: generator.FileFraudSignals, Columns: []string{
		"customer_id", "national_id_mismatch", "shared_phone_number",
		"distance_anomaly", "suspicious_repayment_pattern", "synthetic_customer_score",
	}},
	{Name: "ai_customer_features", File: generator.FileAIFeatures, Columns: []string{
		"customer_id", "primary_branch", "avg_weekly_cash", "historical_cycles",
		"risk_score_0_100", "default_prob", "churn_prob", "recommended_limit_ksh",
	}},
	{Name: "monthly_branch_summary", File: generator.FileMonthlyBranch, Columns: []string{
		"branch_id", "month", "recruited_monthly", "disbursed_monthly_ksh",
		"dues_monthly_ksh", "collected_monthly_ksh", "missed_calls_monthly",
		"arrears_monthly_ksh", "avg_par_percent",
	}},
}

// LoadStatement returns the LOAD DATA statement for a CSV at path
func (t Table) LoadStatement(path string) string {
	return fmt.Sprintf(`LOAD DATA LOCAL INFILE '%s'
INTO TABLE %s
FIELDS TERMINATED BY ','
OPTIONALLY ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(%s)`, strings.ReplaceAll(path, "'", "\\'"), t.Name, strings.Join(t.Columns, ", "))
}

// LoadResult holds the outcome of loading one table
type LoadResult struct {
	Table    string
	Rows     int64
	Duration time.Duration
	Err      error
}

// Loader bulk-loads a generated dataset directory
type Loader struct {
	pool     *Pool
	inputDir string
	log      *logrus.Entry
}

// NewLoader creates a loader reading CSVs from inputDir
func NewLoader(pool *Pool, inputDir string, log *logrus.Entry) *Loader {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{pool: pool, inputDir: inputDir, log: log}
}

// CheckInput verifies inputDir is a directory holding every table file
func CheckInput(inputDir string) error {
	info, err := os.Stat(inputDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", inputDir)
	}

	var missing []string
	for _, t := range Tables {
		if _, err := os.Stat(filepath.Join(inputDir, t.File)); err != nil {
			missing = append(missing, t.File)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing table files in %s: %s", inputDir, strings.Join(missing, ", "))
	}
	return nil
}

// LoadAll loads every table concurrently and stops at the first failure.
// onDone is called as each table finishes.
func (l *Loader) LoadAll(ctx context.Context, onDone func(LoadResult)) ([]LoadResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]LoadResult, len(Tables))
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	for i, table := range Tables {
		wg.Add(1)
		go func(idx int, tbl Table) {
			defer wg.Done()

			// Check if cancelled before starting
			select {
			case <-ctx.Done():
				results[idx] = LoadResult{Table: tbl.Name, Err: ctx.Err()}
				return
			default:
			}

			result := l.loadTable(ctx, tbl)
			results[idx] = result

			mu.Lock()
			if onDone != nil {
				onDone(result)
			}
			if result.Err != nil && firstErr == nil {
				firstErr = result.Err
				cancel()
			}
			mu.Unlock()
		}(i, table)
	}

	wg.Wait()
	return results, firstErr
}

// loadTable loads one CSV on a reserved connection with key checks disabled
func (l *Loader) loadTable(ctx context.Context, tbl Table) LoadResult {
	start := time.Now()
	result := LoadResult{Table: tbl.Name}
	log := l.log.WithField("table", tbl.Name)

	absPath, err := filepath.Abs(filepath.Join(l.inputDir, tbl.File))
	if err != nil {
		result.Err = fmt.Errorf("%s: failed to get absolute path: %w", tbl.Name, err)
		return result
	}

	mysql.RegisterLocalFile(absPath)
	defer mysql.DeregisterLocalFile(absPath)

	conn, err := l.pool.Conn(ctx)
	if err != nil {
		result.Err = fmt.Errorf("%s: failed to reserve connection: %w", tbl.Name, err)
		return result
	}
	defer conn.Close()

	exec := func(ctx context.Context, q string) error {
		_, err := l.pool.execConn(ctx, conn, q)
		return err
	}
	var res sql.Result
	err = withKeyChecksOff(ctx, exec, func() error {
		log.WithField("file", absPath).Debug("loading")
		var err error
		if res, err = l.pool.execConn(ctx, conn, tbl.LoadStatement(absPath)); err != nil {
			return fmt.Errorf("LOAD DATA failed: %w", err)
		}
		return nil
	})
	if errors.Is(err, errChecksNotRestored) {
		// Discard the session; its checks may still be off
		conn.Raw(func(any) error { return driver.ErrBadConn })
	}
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", tbl.Name, err)
		return result
	}
	result.Rows, _ = res.RowsAffected()

	result.Duration = time.Since(start)
	log.WithFields(logrus.Fields{"rows": result.Rows, "elapsed": result.Duration}).Debug("loaded")
	return result
}

// keyCheckSettings are the session checks turned off while a table loads
var keyCheckSettings = []string{"FOREIGN_KEY_CHECKS", "UNIQUE_CHECKS"}

var errChecksNotRestored = errors.New("key checks not restored")

// withKeyChecksOff disables the session key checks, runs load, then turns back
// on every check it disabled, in reverse order. Restoring ignores ctx
// cancellation.
func withKeyChecksOff(ctx context.Context, exec func(context.Context, string) error, load func() error) (err error) {
	disabled := 0
	defer func() {
		restoreCtx := context.WithoutCancel(ctx)
		for i := disabled - 1; i >= 0; i-- {
			if rerr := exec(restoreCtx, "SET "+keyCheckSettings[i]+" = 1"); rerr != nil {
				err = errors.Join(err, fmt.Errorf("%w: %s: %v", errChecksNotRestored, keyCheckSettings[i], rerr))
			}
		}
	}()

	for _, name := range keyCheckSettings {
		if err := exec(ctx, "SET "+name+" = 0"); err != nil {
			return fmt.Errorf("disable %s: %w", name, err)
		}
		disabled++
	}
	return load()
}
