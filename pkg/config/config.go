package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// ChartFlag is one -chart key=path argument.
type ChartFlag struct {
	Key  string
	Path string
}

// ChartFlags implements flag.Value for repeated -chart flags. Paths may
// contain commas, so values are never split.
type ChartFlags []ChartFlag

func (c *ChartFlags) String() string {
	parts := make([]string, 0, len(*c))
	for _, f := range *c {
		parts = append(parts, f.Key+"="+f.Path)
	}
	return strings.Join(parts, ",")
}

func (c *ChartFlags) Set(value string) error {
	key, path, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	path = strings.TrimSpace(path)
	if !ok || key == "" || path == "" {
		return fmt.Errorf("%w: chart must be key=path, got %q", ErrInvalidConfig, value)
	}
	*c = append(*c, ChartFlag{Key: key, Path: path})
	return nil
}

// Kind classifies the chart file by extension: "html", "svg" or "image".
func (f ChartFlag) Kind() string {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".html", ".htm":
		return "html"
	case ".svg":
		return "svg"
	default:
		return "image"
	}
}

// Config holds all CLI configuration options
type Config struct {
	// Input settings
	PayloadFile string     // Payload JSON file ("-" = stdin)
	Charts      ChartFlags // Chart files keyed by name
	ConfigFile  string     // Report/browser/telemetry YAML file
	EnvFile     string     // .env file loaded before env overrides

	// Output settings
	OutputFile  string // PDF output path
	SummaryJSON bool   // Print the build summary as JSON on stdout
	Verbose     bool   // Debug logging
	Silent      bool   // Only errors
	NoColor     bool   // Disable colored output

	// Rendering settings
	ChromePath string // Chrome executable for HTML/SVG charts
	NoBrowser  bool   // Never start Chrome
	Validate   bool   // Validate the PDF before writing it

	// Telemetry settings
	OTLPEndpoint string // OTLP gRPC endpoint (host:port)
	MetricsFile  string // Prometheus text file written after the build
}

// ParseFlags parses command line arguments and returns Config
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	// === INPUT ===
	flag.StringVar(&cfg.PayloadFile, "payload", "", "Payload JSON file (- for stdin)")
	flag.StringVar(&cfg.PayloadFile, "p", "", "Payload file (alias)")
	flag.Var(&cfg.Charts, "chart", "Chart as key=path (.png/.jpg/.gif/.bmp/.tiff/.webp, .svg, .html); repeatable")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Report config YAML file")
	flag.StringVar(&cfg.ConfigFile, "c", "", "Config file (alias)")
	flag.StringVar(&cfg.EnvFile, "env-file", ".env", "Environment file with PORTFOLIO_REPORT_* overrides")

	// === OUTPUT ===
	flag.StringVar(&cfg.OutputFile, "output", "portfolio_report.pdf", "PDF output path")
	flag.StringVar(&cfg.OutputFile, "o", "portfolio_report.pdf", "Output path (alias)")
	flag.BoolVar(&cfg.SummaryJSON, "json", false, "Print build summary as JSON")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")
	flag.BoolVar(&cfg.Silent, "silent", false, "Silent mode - errors only")
	flag.BoolVar(&cfg.Silent, "s", false, "Silent (alias)")
	flag.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")

	// === RENDERING ===
	flag.StringVar(&cfg.ChromePath, "chrome", "", "Chrome executable for HTML/SVG charts")
	flag.BoolVar(&cfg.NoBrowser, "no-browser", false, "Do not start Chrome; markup charts become placeholders")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate the PDF structure before writing")

	// === TELEMETRY ===
	flag.StringVar(&cfg.OTLPEndpoint, "otel-endpoint", "", "OTLP gRPC endpoint for traces (host:port)")
	flag.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	// Parse
	flag.Parse()

	if cfg.PayloadFile == "" && flag.NArg() > 0 {
		cfg.PayloadFile = flag.Arg(0)
	}
	if cfg.PayloadFile == "" {
		return nil, fmt.Errorf("%w: payload required: use -payload or pass a file", ErrMissingRequired)
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("%w: output path must not be empty", ErrMissingRequired)
	}
	if cfg.Verbose && cfg.Silent {
		return nil, fmt.Errorf("%w: -verbose and -silent are mutually exclusive", ErrInvalidConfig)
	}

	return cfg, nil
}
