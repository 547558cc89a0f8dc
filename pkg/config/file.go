package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/report"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/sanitize"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PORTFOLIO_REPORT_"

// File is the YAML configuration file.
//
//	report:
//	  title: Quarterly Review
//	  sections: [summary, metrics, charts]
//	browser:
//	  exec_path: /usr/bin/chromium
//	telemetry:
//	  otlp_endpoint: localhost:4317
type File struct {
	Report    report.Config `yaml:"report"`
	Browser   Browser       `yaml:"browser"`
	Telemetry Telemetry     `yaml:"telemetry"`
}

// Browser configures headless Chrome for HTML and SVG charts.
type Browser struct {
	Disabled       bool          `yaml:"disabled"`
	ExecPath       string        `yaml:"exec_path"`
	NoSandbox      bool          `yaml:"no_sandbox"`
	Settle         time.Duration `yaml:"settle"`
	StartupTimeout time.Duration `yaml:"startup_timeout"`
}

// Telemetry configures tracing and metrics export.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	MetricsFile  string `yaml:"metrics_file"`
}

// Default returns the configuration used when no file is given. Report is
// left zero so the page limit is derived from whatever page size ends up
// configured; report.NewBuilder fills the rest.
func Default() *File {
	return &File{
		Browser: Browser{
			NoSandbox:      true,
			Settle:         duration.BrowserSettle,
			StartupTimeout: duration.BrowserStartup,
		},
	}
}

// Load reads the YAML file at path on top of Default. Unknown keys are
// rejected so typos do not silently fall back to defaults. An empty path
// returns Default.
func Load(path string) (*File, error) {
	f := Default()
	if path == "" {
		return f, nil
	}
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer r.Close()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return f, nil
}

// LoadEnv loads KEY=value pairs from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadEnv(files ...string) error {
	for _, name := range files {
		if name == "" {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from PORTFOLIO_REPORT_* variables found by
// lookup, normally os.LookupEnv.
func (f *File) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}

	str("TITLE", &f.Report.Title)
	str("AUTHOR", &f.Report.Author)
	str("PAGE_SIZE", &f.Report.PageSize)
	str("ORIENTATION", &f.Report.Orientation)
	str("TEMP_DIR", &f.Report.TempDir)
	str("CHROME_PATH", &f.Browser.ExecPath)
	str("OTLP_ENDPOINT", &f.Telemetry.OTLPEndpoint)
	str("METRICS_FILE", &f.Telemetry.MetricsFile)

	if v, ok := lookup(EnvPrefix + "CHARSET"); ok && v != "" {
		p, ok := sanitize.ParsePolicy(v)
		if !ok {
			return fmt.Errorf("%w: %sCHARSET: unknown charset %q", ErrInvalidConfig, EnvPrefix, v)
		}
		f.Report.Charset = p
	}

	for _, err := range []error{
		dur("CHART_TIMEOUT", &f.Report.ChartTimeout),
		dur("BROWSER_SETTLE", &f.Browser.Settle),
		boolean("VALIDATE", &f.Report.Validate),
		boolean("RAW_TEXT", &f.Report.RawText),
		boolean("NO_BROWSER", &f.Browser.Disabled),
		boolean("NO_SANDBOX", &f.Browser.NoSandbox),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge applies command line settings over the file. Flags win over both
// the file and the environment.
func (f *File) Merge(c *Config) {
	if c.ChromePath != "" {
		f.Browser.ExecPath = c.ChromePath
	}
	if c.NoBrowser {
		f.Browser.Disabled = true
	}
	if c.Validate {
		f.Report.Validate = true
	}
	if c.OTLPEndpoint != "" {
		f.Telemetry.OTLPEndpoint = c.OTLPEndpoint
	}
	if c.MetricsFile != "" {
		f.Telemetry.MetricsFile = c.MetricsFile
	}
}
