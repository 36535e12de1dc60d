package database

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/generator"
)

func TestEnableLocalInfile(t *testing.T) {
	dsn, err := EnableLocalInfile("mfi:secret@tcp(localhost:3306)/kechita")
	if err != nil {
		t.Fatalf("EnableLocalInfile() failed: %v", err)
	}
	if !strings.Contains(dsn, "allowAllFiles=true") {
		t.Errorf("Expected allowAllFiles=true in %q", dsn)
	}
	if !strings.Contains(dsn, "/kechita") {
		t.Errorf("Expected database name preserved in %q", dsn)
	}

	if _, err := EnableLocalInfile("not a dsn"); err == nil {
		t.Error("Expected error for invalid DSN")
	}
}

func TestMaskDSN(t *testing.T) {
	masked := MaskDSN("mfi:secret@tcp(db:3306)/kechita")
	if strings.Contains(masked, "secret") {
		t.Errorf("Password leaked in %q", masked)
	}
	if !strings.Contains(masked, "***") {
		t.Errorf("Expected mask in %q", masked)
	}
	if got := MaskDSN("garbage"); got != "(invalid DSN)" {
		t.Errorf("Expected invalid marker, got %q", got)
	}
}

func TestNewPool(t *testing.T) {
	if _, err := NewPool(config.DatabaseConfig{}); err == nil {
		t.Error("Expected error for empty DSN")
	}

	pool, err := NewPool(config.DatabaseConfig{
		DSN:          "mfi:secret@tcp(127.0.0.1:3306)/kechita",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	defer pool.Close()

	stats := pool.Stats()
	if stats.TotalQueries != 0 || stats.AvgLatency != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	pool.recordQuery(2*time.Millisecond, nil)
	pool.recordQuery(4*time.Millisecond, io.EOF)
	stats = pool.Stats()
	if stats.TotalQueries != 2 || stats.FailedQueries != 1 {
		t.Errorf("Expected 2 queries with 1 failure, got %+v", stats)
	}
	if stats.AvgLatency != 3*time.Millisecond {
		t.Errorf("Expected 3ms average, got %v", stats.AvgLatency)
	}
}

func TestSplitStatements(t *testing.T) {
	script := `-- header
USE kechita;

CREATE TABLE a (
  id INT
);
-- between
CREATE INDEX idx_a ON a (id);
`
	got := SplitStatements(script)
	if len(got) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "CREATE TABLE a") || !strings.HasSuffix(got[0], ");") {
		t.Errorf("Unexpected first statement %q", got[0])
	}
	if got[1] != "CREATE INDEX idx_a ON a (id);" {
		t.Errorf("Unexpected second statement %q", got[1])
	}
}

func TestLoadStatement(t *testing.T) {
	tbl := Table{Name: "officers", File: "officers.csv", Columns: []string{"officer_id", "name"}}
	stmt := tbl.LoadStatement("/data/o'brien/officers.csv")

	for _, want := range []string{
		`LOAD DATA LOCAL INFILE '/data/o\'brien/officers.csv'`,
		"INTO TABLE officers",
		"IGNORE 1 LINES",
		"(officer_id, name)",
	} {
		if !strings.Contains(stmt, want) {
			t.Errorf("Expected %q in statement:\n%s", want, stmt)
		}
	}
}

func TestTablesCoverEveryFile(t *testing.T) {
	var files []string
	for _, tbl := range Tables {
		files = append(files, tbl.File)
	}
	want := slices.Clone(generator.TableFiles)
	slices.Sort(want)
	slices.Sort(files)
	if !slices.Equal(want, files) {
		t.Errorf("Expected tables for %v, got %v", want, files)
	}
}

func TestColumnsMatchGeneratedHeaders(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	orch, err := generator.NewOrchestrator(generator.OrchestratorConfig{
		NumCustomers:      20,
		NumLoans:          20,
		NumBranches:       5,
		MinOfficers:       4,
		MaxOfficers:       12,
		StartDate:         start,
		EndDate:           start.AddDate(0, 0, 6),
		RepaymentFraction: 1,
		FraudFraction:     0.5,
		FeatureFraction:   0.5,
		RepaymentSeed:     2,
		FraudSeed:         3,
		FeatureSeed:       4,
		ReferenceYear:     2025,
		OutputDir:         filepath.Join(dir, "out"),
		ArchivePath:       filepath.Join(dir, "out.zip"),
		Seed:              1,
	}, generator.OrchestratorOptions{Logger: generator.NewStageLogger(io.Discard, false)})
	if err != nil {
		t.Fatalf("NewOrchestrator() failed: %v", err)
	}
	if _, err := orch.Generate(); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if err := CheckInput(filepath.Join(dir, "out")); err != nil {
		t.Fatalf("CheckInput() failed on a generated dataset: %v", err)
	}

	for _, tbl := range Tables {
		t.Run(tbl.Name, func(t *testing.T) {
			f, err := os.Open(filepath.Join(dir, "out", tbl.File))
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()
			header, err := csv.NewReader(f).Read()
			if err != nil {
				t.Fatalf("read header: %v", err)
			}
			if !slices.Equal(header, tbl.Columns) {
				t.Errorf("Expected columns %v, got header %v", tbl.Columns, header)
			}
		})
	}
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()

	if err := CheckInput(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}

	if err := os.WriteFile(filepath.Join(dir, generator.FileLoans), []byte("loan_id\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := CheckInput(dir)
	if err == nil {
		t.Fatal("Expected error for incomplete dataset")
	}
	if !strings.Contains(err.Error(), generator.FileCustomers) {
		t.Errorf("Expected missing customers file in error, got %v", err)
	}
	if strings.Contains(err.Error(), generator.FileLoans) {
		t.Errorf("Present file reported missing: %v", err)
	}

	if err := CheckInput(filepath.Join(dir, generator.FileLoans)); err == nil {
		t.Error("Expected error for a file path")
	}
}

// recordingExec captures session statements and fails the ones listed in failOn
type recordingExec struct {
	stmts   []string
	failOn  map[string]bool
	ctxLive []bool
}

func (r *recordingExec) exec(ctx context.Context, q string) error {
	r.stmts = append(r.stmts, q)
	r.ctxLive = append(r.ctxLive, ctx.Err() == nil)
	if r.failOn[q] {
		return errors.New("server gone")
	}
	return nil
}

func TestWithKeyChecksOff(t *testing.T) {
	all := []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"SET UNIQUE_CHECKS = 0",
		"SET UNIQUE_CHECKS = 1",
		"SET FOREIGN_KEY_CHECKS = 1",
	}

	t.Run("success", func(t *testing.T) {
		rec := &recordingExec{}
		if err := withKeyChecksOff(context.Background(), rec.exec, func() error { return nil }); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !slices.Equal(rec.stmts, all) {
			t.Errorf("Expected %v, got %v", all, rec.stmts)
		}
	})

	t.Run("failed load still restores", func(t *testing.T) {
		rec := &recordingExec{}
		loadErr := errors.New("LOAD DATA failed")
		err := withKeyChecksOff(context.Background(), rec.exec, func() error { return loadErr })
		if !errors.Is(err, loadErr) {
			t.Errorf("Expected load error, got %v", err)
		}
		if errors.Is(err, errChecksNotRestored) {
			t.Errorf("Expected checks restored, got %v", err)
		}
		if !slices.Equal(rec.stmts, all) {
			t.Errorf("Expected %v, got %v", all, rec.stmts)
		}
	})

	t.Run("cancelled context still restores", func(t *testing.T) {
		rec := &recordingExec{}
		ctx, cancel := context.WithCancel(context.Background())
		err := withKeyChecksOff(ctx, rec.exec, func() error {
			cancel()
			return ctx.Err()
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if !slices.Equal(rec.stmts, all) {
			t.Fatalf("Expected %v, got %v", all, rec.stmts)
		}
		if !rec.ctxLive[2] || !rec.ctxLive[3] {
			t.Error("Expected restore statements to run on a live context")
		}
	})

	t.Run("partial disable restores only what was disabled", func(t *testing.T) {
		rec := &recordingExec{failOn: map[string]bool{"SET UNIQUE_CHECKS = 0": true}}
		loaded := false
		err := withKeyChecksOff(context.Background(), rec.exec, func() error {
			loaded = true
			return nil
		})
		if err == nil || loaded {
			t.Errorf("Expected disable failure before load, got err=%v loaded=%v", err, loaded)
		}
		want := []string{"SET FOREIGN_KEY_CHECKS = 0", "SET UNIQUE_CHECKS = 0", "SET FOREIGN_KEY_CHECKS = 1"}
		if !slices.Equal(rec.stmts, want) {
			t.Errorf("Expected %v, got %v", want, rec.stmts)
		}
	})

	t.Run("restore failure is reported", func(t *testing.T) {
		rec := &recordingExec{failOn: map[string]bool{"SET FOREIGN_KEY_CHECKS = 1": true}}
		err := withKeyChecksOff(context.Background(), rec.exec, func() error { return nil })
		if !errors.Is(err, errChecksNotRestored) {
			t.Errorf("Expected errChecksNotRestored, got %v", err)
		}
	})
}
