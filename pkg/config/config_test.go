package config

import (
	"errors"
	"flag"
	"os"
	"strings"
	"testing"
)

// resetFlags resets the flag package for each test
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
}

func parseArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	resetFlags()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"cmd"}, args...)
	return ParseFlags()
}

// TestConfigDefaults verifies default values are set correctly
func TestConfigDefaults(t *testing.T) {
	cfg, err := parseArgs(t, "-payload", "payload.json")
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.OutputFile != "portfolio_report.pdf" {
		t.Errorf("OutputFile default: got %q, want 'portfolio_report.pdf'", cfg.OutputFile)
	}
	if cfg.EnvFile != ".env" {
		t.Errorf("EnvFile default: got %q, want '.env'", cfg.EnvFile)
	}
	if len(cfg.Charts) != 0 {
		t.Errorf("Charts default: got %v, want none", cfg.Charts)
	}
	if cfg.Verbose || cfg.Silent || cfg.NoColor || cfg.Validate || cfg.NoBrowser {
		t.Errorf("boolean flags should default to false: %+v", cfg)
	}
}

// TestConfigPayloadPositional verifies the payload can be passed as an argument
func TestConfigPayloadPositional(t *testing.T) {
	cfg, err := parseArgs(t, "-o", "out.pdf", "analysis.json")
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.PayloadFile != "analysis.json" {
		t.Errorf("PayloadFile: got %q, want 'analysis.json'", cfg.PayloadFile)
	}
	if cfg.OutputFile != "out.pdf" {
		t.Errorf("OutputFile: got %q, want 'out.pdf'", cfg.OutputFile)
	}
}

// TestConfigPayloadRequired verifies a missing payload is rejected
func TestConfigPayloadRequired(t *testing.T) {
	_, err := parseArgs(t, "-o", "out.pdf")
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

// TestConfigVerboseSilentConflict verifies -v and -s cannot be combined
func TestConfigVerboseSilentConflict(t *testing.T) {
	_, err := parseArgs(t, "-p", "x.json", "-v", "-s")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// TestConfigAliases verifies short aliases map to the same fields
func TestConfigAliases(t *testing.T) {
	cfg, err := parseArgs(t, "-p", "x.json", "-c", "report.yaml", "-nc", "-v")
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.PayloadFile != "x.json" || cfg.ConfigFile != "report.yaml" || !cfg.NoColor || !cfg.Verbose {
		t.Errorf("aliases not applied: %+v", cfg)
	}
}

// TestConfigCharts verifies repeated -chart flags keep their order
func TestConfigCharts(t *testing.T) {
	cfg, err := parseArgs(t,
		"-p", "x.json",
		"-chart", "pie=charts/pie.png",
		"-chart", "history = charts/history,2024.html",
		"-chart", "mc=mc.SVG",
	)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	want := ChartFlags{
		{Key: "pie", Path: "charts/pie.png"},
		{Key: "history", Path: "charts/history,2024.html"},
		{Key: "mc", Path: "mc.SVG"},
	}
	if len(cfg.Charts) != len(want) {
		t.Fatalf("Charts: got %v, want %v", cfg.Charts, want)
	}
	for i := range want {
		if cfg.Charts[i] != want[i] {
			t.Errorf("Charts[%d]: got %+v, want %+v", i, cfg.Charts[i], want[i])
		}
	}

	kinds := []string{"image", "html", "svg"}
	for i, k := range kinds {
		if got := cfg.Charts[i].Kind(); got != k {
			t.Errorf("Charts[%d].Kind(): got %q, want %q", i, got, k)
		}
	}
}

// TestChartFlagsInvalid verifies malformed chart values are rejected
func TestChartFlagsInvalid(t *testing.T) {
	for _, v := range []string{"pie", "=pie.png", "pie=", " = "} {
		var c ChartFlags
		if err := c.Set(v); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Set(%q): expected ErrInvalidConfig, got %v", v, err)
		}
	}
}

func TestChartFlagsString(t *testing.T) {
	c := ChartFlags{{Key: "pie", Path: "a.png"}, {Key: "mc", Path: "b.svg"}}
	if got := c.String(); got != "pie=a.png,mc=b.svg" {
		t.Errorf("String(): got %q", got)
	}
}

// TestErrorSentinels verifies the two failure modes stay distinguishable
func TestErrorSentinels(t *testing.T) {
	if errors.Is(ErrMissingRequired, ErrInvalidConfig) || errors.Is(ErrInvalidConfig, ErrMissingRequired) {
		t.Fatal("sentinels must not match each other")
	}

	_, err := parseArgs(t, "-p", "x.json", "-o", "")
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("empty output: expected ErrMissingRequired, got %v", err)
	}
	if !strings.Contains(err.Error(), "output path") {
		t.Errorf("error should name the missing output path: %v", err)
	}
}
