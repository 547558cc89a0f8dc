// Package ui renders the command line's human-readable output: status
// lines and the build summary box. Everything goes to stderr so stdout
// stays free for -json summaries.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex

	out io.Writer = os.Stderr
)

// SetSilent enables or disables silent mode (suppresses all but errors)
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// SetOutput redirects UI output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	uiMu.Lock()
	defer uiMu.Unlock()
	prev := out
	out = w
	return prev
}

func writer() io.Writer {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return out
}

func emit(quiet bool, line string) {
	if quiet && IsSilent() {
		return
	}
	fmt.Fprintln(writer(), SanitizeString(line))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	emit(true, PassStyle.Render("  "+Icon("✔", "[+]")+" "+message))
}

// PrintError prints an error message. It is shown even in silent mode.
func PrintError(message string) {
	emit(false, FailStyle.Render("  "+Icon("✖", "[X]")+" "+message))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	emit(true, WarnStyle.Render("  [!] "+message))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	emit(true, fmt.Sprintf("  %s %s", InfoStyle.Render("*"), message))
}
