// Package ui renders mfigen's terminal output: headers, key/value lines,
// summary boxes, spinners and step bars. Output falls back to plain text
// when stdout is not a terminal or NO_COLOR is set.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods.
type UI struct {
	IsTTY   bool
	Width   int
	NoColor bool
}

// KV represents a key-value pair for summary displays.
type KV struct {
	Key   string
	Value string
}

// noColorEnv is the standard environment variable to disable colors.
var noColorEnv = os.Getenv("NO_COLOR") != ""

// New creates a new UI instance with TTY detection.
func New() *UI {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	width := 80
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	return &UI{
		IsTTY:   isTTY,
		Width:   width,
		NoColor: noColorEnv,
	}
}

// SetNoColor disables colors and animations.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

// shouldStyle returns true if we should use styled output.
func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// Header renders a bordered header box.
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("=== %s ===", title)
	}

	return StyleHeader.Render(title)
}

// KeyValue renders a styled key-value pair.
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("%-10s %s", key+":", value)
	}

	return "  " + keyStyle(12).Render(key) + " " + StyleValue.Render(value)
}

// Success renders a success message with a green checkmark.
func (u *UI) Success(msg string) string {
	if !u.shouldStyle() {
		return "[OK] " + msg
	}

	return StyleSuccess.Render(SymbolSuccess+" ") + msg
}

// Error renders an error message with a red X.
func (u *UI) Error(msg string) string {
	if !u.shouldStyle() {
		return "[FAILED] " + msg
	}

	return StyleError.Render(SymbolError+" "+msg)
}

// Warning renders a warning message.
func (u *UI) Warning(msg string) string {
	if !u.shouldStyle() {
		return "[WARN] " + msg
	}

	return StyleWarning.Render(SymbolWarning+" "+msg)
}

// SummaryBox renders a bordered summary section.
func (u *UI) SummaryBox(title string, items []KV) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\n=== %s ===\n", title))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", item.Key+":", item.Value))
		}
		return sb.String()
	}

	// Calculate max key width
	maxKeyWidth := 0
	for _, item := range items {
		if len(item.Key) > maxKeyWidth {
			maxKeyWidth = len(item.Key)
		}
	}

	keys := keyStyle(maxKeyWidth + 2)
	var lines []string
	for _, item := range items {
		value := item.Value
		if item.Key == "Status" && strings.Contains(strings.ToLower(value), "success") {
			value = StyleSuccess.Render(SymbolSuccess + " " + value)
		} else if item.Key == "Status" && strings.Contains(strings.ToLower(value), "fail") {
			value = StyleError.Render(SymbolError + " " + value)
		} else {
			value = StyleValue.Render(value)
		}

		lines = append(lines, "  "+keys.Render(item.Key)+" "+value)
	}

	return "\n" + StyleSummaryTitle.Render("  "+title) + "\n" + StyleSummaryBox.Render(strings.Join(lines, "\n"))
}

// Status is the outcome shown beside a table row.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusSkipped
)

type rowLook struct {
	symbol     string
	symbolFmt  lipgloss.Style
	valueFmt   lipgloss.Style
	plainLabel string
}

var rowLooks = map[Status]rowLook{
	StatusSuccess: {SymbolSuccess, StyleSuccess, lipgloss.NewStyle(), ""},
	StatusError:   {SymbolError, StyleError, StyleError, "FAILED: "},
	StatusSkipped: {SymbolPending, StyleMuted, StyleMuted, "skipped: "},
}

// tableNameWidth fits the longest table name (ai_customer_features).
const tableNameWidth = 26

// TableRow renders one table's name with its status and a detail value.
func (u *UI) TableRow(name string, value string, status Status) string {
	look := rowLooks[status]
	if !u.shouldStyle() {
		return fmt.Sprintf("  %-*s %s%s", tableNameWidth, name+":", look.plainLabel, value)
	}

	nameCol := lipgloss.NewStyle().Width(tableNameWidth).Render(name)
	return fmt.Sprintf("  %s %s %s", look.symbolFmt.Render(look.symbol), nameCol, look.valueFmt.Render(value))
}
