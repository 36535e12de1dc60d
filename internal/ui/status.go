package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepProgress shows a bar for a fixed number of sequential steps.
type StepProgress struct {
	ui      *UI
	label   string
	noun    string
	total   int
	current int
	bar     progress.Model
	mu      sync.Mutex
}

// NewStepProgress creates a step display. noun names what a step produces
// ("indexes") for the completion line.
func (u *UI) NewStepProgress(label, noun string, total int) *StepProgress {
	return &StepProgress{
		ui:    u,
		label: label,
		noun:  noun,
		total: total,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// Update sets the number of finished steps.
func (p *StepProgress) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = current

	if !p.ui.shouldStyle() {
		fmt.Printf("  [%d/%d] %s\r", current, p.total, p.label)
		return
	}

	pct := 0.0
	if p.total > 0 {
		pct = float64(current) / float64(p.total)
	}
	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s",
		p.bar.ViewAs(pct),
		StyleMuted.Render(fmt.Sprintf("[%d/%d]", current, p.total)),
		StyleMuted.Render(p.label),
	)
}

// Complete finishes the display with a success line.
func (p *StepProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Printf("\n  Created %d %s\n", p.current, p.noun)
		return
	}
	fmt.Fprintf(os.Stdout, "\r\033[K  %s Created %d %s\n", StyleSuccess.Render(SymbolSuccess), p.current, p.noun)
}

// PrintTableLoadResult prints one line per loaded table.
func (u *UI) PrintTableLoadResult(name string, rows int64, duration time.Duration, err error) {
	if err != nil {
		fmt.Println(u.TableRow(name, "FAILED", StatusError))
		fmt.Println("    " + u.Error(err.Error()))
		return
	}
	fmt.Println(u.TableRow(name, fmt.Sprintf("%s rows in %s", FormatRowCount(rows), FormatDuration(duration)), StatusSuccess))
}

// Section prints a section header.
func (u *UI) Section(title string) {
	if !u.shouldStyle() {
		fmt.Printf("\n%s\n", title)
		return
	}

	fmt.Printf("\n%s\n", lipgloss.NewStyle().Bold(true).Render(title))
}

// FormatRowCount formats a row count with K/M suffix.
func FormatRowCount(rows int64) string {
	if rows >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(rows)/1_000_000)
	}
	if rows >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(rows)/1_000)
	}
	return fmt.Sprintf("%d", rows)
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatBytes formats bytes into human readable form.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
