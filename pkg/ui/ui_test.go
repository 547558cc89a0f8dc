package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetSilent(false)
	})
	SetNoColor(true)
	return &buf
}

func TestPrintMessages(t *testing.T) {
	buf := capture(t)

	PrintSuccess("written")
	PrintWarning("chart pie failed")
	PrintInfo("loading payload")
	PrintError("boom")

	out := buf.String()
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "[!] chart pie failed")
	assert.Contains(t, out, "* loading payload")
	assert.Contains(t, out, "boom")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestSilentKeepsErrors(t *testing.T) {
	buf := capture(t)
	SetSilent(true)

	PrintSuccess("hidden")
	PrintInfo("hidden")
	PrintSummary(Summary{Output: "hidden.pdf"})
	PrintError("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRenderSummary(t *testing.T) {
	capture(t)

	out := RenderSummary(Summary{
		Output:   "report.pdf",
		ReportID: "abc-123",
		Status:   "partial",
		Pages:    4,
		Bytes:    3 << 10,
		Charts:   3,
		Failed:   []string{"mc"},
	})

	for _, want := range []string{"report.pdf", "abc-123", "partial", "4", "3.0 KiB", "2 embedded, 1 failed", "mc"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2<<20))
}

func TestSanitizeString(t *testing.T) {
	// Tests run with stderr piped, so glyphs are stripped.
	if UnicodeTerminal() {
		t.Skip("stderr is a Unicode terminal")
	}
	assert.Equal(t, "Café  ok", SanitizeString("Café 📈 ok"))
	assert.Equal(t, "[+]", Icon("✔", "[+]"))
}
