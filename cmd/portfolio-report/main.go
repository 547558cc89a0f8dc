// Command portfolio-report renders a portfolio analysis payload and its
// charts into a PDF report.
//
//	portfolio-report -payload analysis.json -chart pie=pie.png -chart history=history.html -o report.pdf
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/config"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/jsonutil"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/rasterize"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/report"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/telemetry"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/ui"
)

// Exit codes
const (
	exitOK    = 0
	exitBuild = 1 // the report could not be built or written
	exitUsage = 2 // bad flags, config or input files
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	cfg, err := config.ParseFlags()
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}
	ui.SetNoColor(cfg.NoColor)
	ui.SetSilent(cfg.Silent)
	logger := newLogger(os.Stderr, cfg)

	if err := config.LoadEnv(cfg.EnvFile); err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}
	file, err := config.Load(cfg.ConfigFile)
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}
	if err := file.ApplyEnv(os.LookupEnv); err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}
	file.Merge(cfg)

	payload, err := readPayload(cfg.PayloadFile)
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}
	charts, err := loadCharts(cfg.Charts)
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		ui.PrintError(err.Error())
		return exitBuild
	}
	opts := []report.Option{report.WithLogger(logger), report.WithMetrics(metrics.Report)}

	if ep := file.Telemetry.OTLPEndpoint; ep != "" {
		tracing, err := telemetry.NewTracing(telemetry.TracingOptions{
			Endpoint:    ep,
			ServiceName: file.Telemetry.ServiceName,
			Insecure:    true,
		})
		if err != nil {
			ui.PrintWarning(fmt.Sprintf("tracing disabled: %v", err))
		} else {
			defer func() {
				if err := tracing.Shutdown(context.Background()); err != nil {
					logger.Debug("trace flush failed", slog.String("error", err.Error()))
				}
			}()
			opts = append(opts, report.WithTracer(tracing.Tracer(defaults.ToolName+"/report")))
		}
	}

	var browser *rasterize.Browser
	if !file.Browser.Disabled && needsBrowser(cfg.Charts) {
		browser = rasterize.NewBrowser(rasterize.BrowserConfig{
			ExecPath:       file.Browser.ExecPath,
			NoSandbox:      file.Browser.NoSandbox,
			Settle:         file.Browser.Settle,
			StartupTimeout: file.Browser.StartupTimeout,
			Logger:         logger,
		})
		defer browser.Close()
	}

	builder, err := report.NewBuilder(file.Report, rasterize.Default(browser), opts...)
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}

	ui.PrintInfo(fmt.Sprintf("building report from %s (%d charts)", cfg.PayloadFile, charts.Len()))
	res, err := builder.Build(ctx, payload, charts)
	if err != nil {
		var be *report.BuildError
		if errors.As(err, &be) {
			ui.PrintError(fmt.Sprintf("report build failed during %s: %v", be.Stage, be.Err))
		} else {
			ui.PrintError(err.Error())
		}
		writeMetrics(metrics, file.Telemetry.MetricsFile, logger)
		return exitBuild
	}

	if err := os.WriteFile(cfg.OutputFile, res.PDF, 0o644); err != nil {
		ui.PrintError(fmt.Sprintf("write %s: %v", cfg.OutputFile, err))
		return exitBuild
	}
	writeMetrics(metrics, file.Telemetry.MetricsFile, logger)

	for _, c := range res.FailedCharts() {
		ui.PrintWarning(fmt.Sprintf("chart %q replaced by placeholder: %s", c.Key, c.Reason))
	}
	if cfg.SummaryJSON {
		if err := jsonutil.NewStreamEncoder(os.Stdout).Encode(newSummary(cfg.OutputFile, res)); err != nil {
			ui.PrintError(err.Error())
			return exitBuild
		}
		return exitOK
	}
	ui.PrintSummary(summaryView(cfg.OutputFile, res))
	ui.PrintSuccess("report written to " + cfg.OutputFile)
	return exitOK
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Silent:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func readPayload(path string) (*report.Payload, error) {
	if path == "-" {
		return report.ReadPayload(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	defer f.Close()
	return report.ReadPayload(f)
}

func writeMetrics(m *telemetry.Metrics, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := m.WriteFile(path); err != nil {
		logger.Warn("metrics not written", slog.String("path", path), slog.String("error", err.Error()))
	}
}
