package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spinner animates a single line while an import step is running
// (connecting, creating tables).
type Spinner struct {
	ui     *UI
	out    io.Writer
	label  string
	frames spinner.Spinner

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a spinner writing to stdout.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:     u,
		out:    os.Stdout,
		label:  label,
		frames: spinner.MiniDot,
		done:   make(chan struct{}),
	}
}

// Start begins the animation. Plain output prints the label once.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go s.animate()
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	style := lipgloss.NewStyle().Foreground(ColorPrimary)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for frame := 0; ; frame = (frame + 1) % len(s.frames.Frames) {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %s...", style.Render(s.frames.Frames[frame]), s.label)
		}
	}
}

// Success stops the spinner and reports the step as done.
func (s *Spinner) Success(msg string) {
	s.finish(StyleSuccess.Render(SymbolSuccess), msg, lipgloss.NewStyle())
}

// Error stops the spinner and reports the step as failed.
func (s *Spinner) Error(msg string) {
	s.finish(StyleError.Render(SymbolError), msg, StyleError)
}

func (s *Spinner) finish(symbol, msg string, msgStyle lipgloss.Style) {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.done)
	s.mu.Unlock()
	s.wg.Wait()

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.out, "\r\033[K%s %s... %s\n", symbol, s.label, msgStyle.Render(msg))
}
