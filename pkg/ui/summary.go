package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Summary is what the CLI knows about a finished build.
type Summary struct {
	Output   string
	ReportID string
	Status   string
	Pages    int
	Bytes    int
	Charts   int
	Failed   []string
}

// RenderSummary returns the boxed summary shown after a build.
func RenderSummary(s Summary) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
	}

	rows := []string{
		TitleStyle.Render("Portfolio Report"),
		"",
		row("Output", ValueStyle.Render(s.Output)),
		row("Report ID", s.ReportID),
		row("Status", StatusStyle(s.Status).Render(s.Status)),
		row("Pages", ValueStyle.Render(fmt.Sprint(s.Pages))),
		row("Size", formatBytes(s.Bytes)),
		row("Charts", fmt.Sprintf("%d embedded, %d failed", s.Charts-len(s.Failed), len(s.Failed))),
	}
	if len(s.Failed) > 0 {
		rows = append(rows, row("Placeholders", FailStyle.Render(strings.Join(s.Failed, ", "))))
	}
	box := BoxStyle
	if !UnicodeTerminal() {
		box = box.Border(asciiBorder)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// PrintSummary prints the summary box unless silent mode is on.
func PrintSummary(s Summary) {
	emit(true, RenderSummary(s))
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
