package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mfi-generator/internal/utils"
)

func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: filepath.Join(dir, "nested"),
		Filename:  "people.csv",
		Headers:   []string{"id", "name"},
	})
	require.NoError(t, err)

	require.NoError(t, w.WriteRow([]string{"1", "Wanjiru"}))
	require.NoError(t, w.WriteRow([]string{"2", "Otieno, Jr"}))
	assert.Error(t, w.WriteRow([]string{"3"}), "short rows are rejected")
	assert.Equal(t, int64(2), w.RowCount())
	assert.NoFileExists(t, w.Path(), "table is not visible until closed")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "Close is idempotent")
	assert.Error(t, w.WriteRow([]string{"4", "x"}))

	body, err := os.ReadFile(filepath.Join(dir, "nested", "people.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Wanjiru\n2,\"Otieno, Jr\"\n", string(body))
	assert.NoFileExists(t, w.Path()+partialSuffix)
}

func TestCSVWriterAbort(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(CSVWriterConfig{OutputDir: dir, Filename: "loans.csv", Headers: []string{"loan_id"}})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]string{"L0000001"}))

	w.Abort()
	require.NoError(t, w.Close(), "Close after Abort is a no-op")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCSVWriterRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory where the table should land blocks the rename
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "loans.csv", "keep"), 0755))

	w, err := NewCSVWriter(CSVWriterConfig{OutputDir: dir, Filename: "loans.csv", Headers: []string{"loan_id"}})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]string{"L00000001"}))

	err = w.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish loans.csv")
	assert.NoFileExists(t, filepath.Join(dir, "loans.csv"+partialSuffix))
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	type pair struct{ k, v string }
	rows := []pair{{"a", "1"}, {"b", "2"}}

	n, err := writeTable(dir, tableSpec{Filename: "pairs.csv", Headers: []string{"k", "v"}}, rows,
		func(p *pair) []string { return []string{p.k, p.v} }, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records := readCSV(t, filepath.Join(dir, "pairs.csv"))
	assert.Equal(t, [][]string{{"k", "v"}, {"a", "1"}, {"b", "2"}}, records)

	// Empty tables still get a header
	n, err = writeTable(dir, tableSpec{Filename: "empty.csv", Headers: []string{"k"}}, []pair(nil),
		func(p *pair) []string { return []string{p.k} }, false)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, readCSV(t, filepath.Join(dir, "empty.csv")), 1)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1", FormatBool(true))
	assert.Equal(t, "0", FormatBool(false))
	assert.Equal(t, "2025-03-07", FormatDate(time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-42", FormatInt64(-42))
	assert.Equal(t, "0.125000", FormatFloat64(0.125))
	assert.Equal(t, "3.14", FormatFixed(3.14159, 2))
	assert.Equal(t, "178.57", FormatMoney(utils.Shillings(5000).DivRound(28)))
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(ProgressConfig{Total: 10, Label: "  Loans", Output: &buf, UpdateFrequency: time.Nanosecond})
	p.Set(1)
	p.Set(5)
	p.Set(6)
	p.Set(10)
	p.Finish()
	p.Finish()

	out := buf.String()
	assert.NotContains(t, out, "1/10")
	assert.Contains(t, out, "  Loans: 5/10 (50%)\n")
	assert.NotContains(t, out, "6/10", "no line until the next quarter")
	assert.Contains(t, out, "  Loans: 10/10 (100%)\n")
	assert.Contains(t, out, "  Loans: 10 rows in")
	assert.Equal(t, 1, strings.Count(out, "rows in"), "Finish prints once")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
}

func TestProgressReporterWithoutTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(ProgressConfig{Label: "  Monthly", Output: &buf})
	p.Set(42)
	p.Finish()

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "  Monthly: 42 rows in")
}
