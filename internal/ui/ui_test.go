package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPlainOutput(t *testing.T) {
	u := &UI{IsTTY: false, Width: 80}

	if got := u.Header("Kechita"); got != "=== Kechita ===" {
		t.Errorf("Expected plain header, got %q", got)
	}
	if got := u.KeyValue("Loans", "150"); got != "Loans:     150" {
		t.Errorf("Expected plain key/value, got %q", got)
	}
	if got := u.Success("done"); got != "[OK] done" {
		t.Errorf("Expected plain success, got %q", got)
	}
	if got := u.Error("boom"); got != "[FAILED] boom" {
		t.Errorf("Expected plain error, got %q", got)
	}
	if got := u.TableRow("loans", "oops", StatusError); !strings.Contains(got, "FAILED: oops") {
		t.Errorf("Expected failed row, got %q", got)
	}
	if got := u.TableRow("repayments", "not started", StatusSkipped); got != "  repayments:                skipped: not started" {
		t.Errorf("Expected skipped row, got %q", got)
	}

	box := u.SummaryBox("Generation Complete", []KV{{Key: "Loans", Value: "150"}, {Key: "Status", Value: "Success"}})
	for _, want := range []string{"=== Generation Complete ===", "Loans:", "150", "Status:"} {
		if !strings.Contains(box, want) {
			t.Errorf("Expected %q in summary box:\n%s", want, box)
		}
	}
}

func TestNoColorDisablesStyling(t *testing.T) {
	u := &UI{IsTTY: true}
	u.SetNoColor(true)
	if u.shouldStyle() {
		t.Error("Expected no styling with NoColor set")
	}
}

func TestFormatRowCount(t *testing.T) {
	tests := []struct {
		rows int64
		want string
	}{
		{999, "999"},
		{1500, "1.5K"},
		{2_400_000, "2.4M"},
	}
	for _, tt := range tests {
		if got := FormatRowCount(tt.rows); got != tt.want {
			t.Errorf("FormatRowCount(%d): expected %s, got %s", tt.rows, tt.want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{40 * time.Millisecond, "40ms"},
		{2500 * time.Millisecond, "2.5s"},
		{75 * time.Second, "1m15s"},
		{125 * time.Minute, "2h5m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v): expected %s, got %s", tt.d, tt.want, got)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(512); got != "512 B" {
		t.Errorf("Expected 512 B, got %s", got)
	}
	if got := FormatBytes(1536); got != "1.5 KB" {
		t.Errorf("Expected 1.5 KB, got %s", got)
	}
	if got := FormatBytes(3 * 1024 * 1024); got != "3.0 MB" {
		t.Errorf("Expected 3.0 MB, got %s", got)
	}
}

func TestSpinnerPlainOutput(t *testing.T) {
	u := &UI{IsTTY: false}
	var buf bytes.Buffer

	spin := u.NewSpinner("Creating tables")
	spin.out = &buf
	spin.Success("ignored before start")
	spin.Start()
	spin.Success("tables ready")
	spin.Error("second finish is ignored")

	if got := buf.String(); got != "Creating tables... tables ready\n" {
		t.Errorf("Expected single plain spinner line, got %q", got)
	}
}
