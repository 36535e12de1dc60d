package generator

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/willfong/mfi-generator/internal/utils"
)

// Table file names, in the order the stages produce them
const (
	FileRegions       = "regions.csv"
	FileBranches      = "branches.csv"
	FileOfficers      = "officers.csv"
	FileCustomers     = "customers.csv"
	FileLoans         = "loans.csv"
	FileRepayments    = "repayments.csv"
	FileDailyBranch   = "daily_branch_performance.csv"
	FileFraudSignals  = "fraud_signals.csv"
	FileAIFeatures    = "ai_customer_features.csv"
	FileMonthlyBranch = "monthly_branch_summary.csv"
)

// TableFiles lists every table file a complete run writes
var TableFiles = []string{
	FileRegions,
	FileBranches,
	FileOfficers,
	FileCustomers,
	FileLoans,
	FileRepayments,
	FileDailyBranch,
	FileFraudSignals,
	FileAIFeatures,
	FileMonthlyBranch,
}

// partialSuffix marks a table file that is still being written.
const partialSuffix = ".partial"

// CSVWriter streams rows for one table through a buffered encoding/csv writer.
// Rows go to "<name>.partial" and the file only takes its final name on
// Close, so a table that exists under its real name is always complete.
type CSVWriter struct {
	path    string
	file    *os.File
	buffer  *bufio.Writer
	writer  *csv.Writer
	columns int
	rows    int64
	closed  bool
}

// CSVWriterConfig holds configuration for creating a CSV writer
type CSVWriterConfig struct {
	OutputDir  string
	Filename   string   // e.g. "customers.csv"
	Headers    []string // written first; rows must match its width
	BufferSize int      // default 64KB
}

// NewCSVWriter creates the output directory if needed and writes the header row.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64 * 1024
	}

	path := filepath.Join(cfg.OutputDir, cfg.Filename)
	file, err := os.Create(path + partialSuffix)
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", path, err)
	}

	w := &CSVWriter{
		path:    path,
		file:    file,
		buffer:  bufio.NewWriterSize(file, cfg.BufferSize),
		columns: len(cfg.Headers),
	}
	w.writer = csv.NewWriter(w.buffer)

	if w.columns > 0 {
		if err := w.writer.Write(cfg.Headers); err != nil {
			w.Abort()
			return nil, fmt.Errorf("write header %s: %w", cfg.Filename, err)
		}
	}
	return w, nil
}

// WriteRow appends one record.
func (w *CSVWriter) WriteRow(row []string) error {
	if w.closed {
		return fmt.Errorf("write %s: writer is closed", filepath.Base(w.path))
	}
	if w.columns > 0 && len(row) != w.columns {
		return fmt.Errorf("write %s: row has %d fields, expected %d", filepath.Base(w.path), len(row), w.columns)
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(w.path), err)
	}
	w.rows++
	return nil
}

// Close flushes the table and renames it into place. Calling Close or
// Abort again is a no-op.
func (w *CSVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.writer.Flush()
	err := w.writer.Error()
	if err == nil {
		err = w.buffer.Flush()
	}
	if err != nil {
		w.Abort()
		return fmt.Errorf("flush %s: %w", filepath.Base(w.path), err)
	}

	w.closed = true
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("close %s: %w", filepath.Base(w.path), err)
	}
	if err := os.Rename(w.file.Name(), w.path); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("publish %s: %w", filepath.Base(w.path), err)
	}
	return nil
}

// Abort discards the partial file.
func (w *CSVWriter) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	w.file.Close()
	os.Remove(w.file.Name())
}

// RowCount returns the number of data rows written (excludes header).
func (w *CSVWriter) RowCount() int64 {
	return w.rows
}

// Path returns the table's final path.
func (w *CSVWriter) Path() string {
	return w.path
}

// tableSpec names a table file and its header row
type tableSpec struct {
	Filename string
	Headers  []string
	Label    string // progress label
}

// writeTable streams rows through a CSVWriter, converting each record with toRow.
func writeTable[T any](outputDir string, spec tableSpec, records []T, toRow func(*T) []string, showProgress bool) (int64, error) {
	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  spec.Filename,
		Headers:   spec.Headers,
	})
	if err != nil {
		return 0, err
	}
	defer writer.Abort()

	var progress *ProgressReporter
	if showProgress {
		progress = NewProgressReporter(ProgressConfig{
			Total: int64(len(records)),
			Label: spec.Label,
		})
	}

	for i := range records {
		if err := writer.WriteRow(toRow(&records[i])); err != nil {
			return writer.RowCount(), err
		}

		if progress != nil && (i+1)%1000 == 0 {
			progress.Set(int64(i + 1))
		}
	}

	if progress != nil {
		progress.Set(int64(len(records)))
		progress.Finish()
	}

	if err := writer.Close(); err != nil {
		return writer.RowCount(), err
	}
	return writer.RowCount(), nil
}

// FormatBool converts a boolean to "1" or "0" for CSV/database compatibility
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatDate formats a time.Time for CSV in MySQL date format
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatInt64 formats an int64 for CSV
func FormatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatInt formats an int for CSV
func FormatInt(n int) string {
	return strconv.Itoa(n)
}

// FormatFloat64 formats a float64 for CSV with six decimal places
func FormatFloat64(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// FormatFixed formats a float64 for CSV with the given number of decimal places
func FormatFixed(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}

// FormatMoney formats a Money value for CSV as shillings with two decimals
func FormatMoney(m utils.Money) string {
	return m.String()
}
