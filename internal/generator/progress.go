package generator

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"
)

// ProgressReporter shows how far a table write has got. On a terminal it
// redraws a bar in place; otherwise it prints a line at each quarter.
type ProgressReporter struct {
	mu sync.Mutex

	out      io.Writer
	label    string
	total    int64
	interval time.Duration
	isTTY    bool
	bar      progress.Model

	current  int64
	quarter  int64
	started  time.Time
	lastDraw time.Time
	finished bool
}

// ProgressConfig holds settings for the progress reporter
type ProgressConfig struct {
	Total int64  // rows expected; 0 prints only the final line
	Label string // e.g. "  Repayments"
	// Output defaults to os.Stderr.
	Output io.Writer
	// UpdateFrequency throttles terminal redraws (default 100ms).
	UpdateFrequency time.Duration
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(cfg ProgressConfig) *ProgressReporter {
	p := &ProgressReporter{
		out:      cfg.Output,
		label:    cfg.Label,
		total:    cfg.Total,
		interval: cfg.UpdateFrequency,
		started:  time.Now(),
	}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.interval == 0 {
		p.interval = 100 * time.Millisecond
	}
	if f, ok := p.out.(*os.File); ok {
		p.isTTY = term.IsTerminal(int(f.Fd()))
	}
	p.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	return p
}

// Set records that n rows have been written.
func (p *ProgressReporter) Set(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = n
	if p.total <= 0 {
		return
	}

	if !p.isTTY {
		q := min(n*4/p.total, 4)
		if q > p.quarter {
			p.quarter = q
			fmt.Fprintf(p.out, "%s: %d/%d (%d%%)\n", p.label, n, p.total, n*100/p.total)
		}
		return
	}

	now := time.Now()
	if now.Sub(p.lastDraw) < p.interval {
		return
	}
	p.lastDraw = now
	fmt.Fprintf(p.out, "\r%s: %s %d/%d\033[K", p.label, p.bar.ViewAs(float64(n)/float64(p.total)), n, p.total)
}

// Finish prints the final row count and elapsed time. Later calls are no-ops.
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true

	line := fmt.Sprintf("%s: %d rows in %s", p.label, p.current, formatDuration(time.Since(p.started)))
	if p.isTTY {
		line = "\r" + line + "\033[K"
	}
	fmt.Fprintln(p.out, line)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
