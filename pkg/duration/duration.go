// Package duration provides canonical time constants for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all time-based configuration.
//
// Usage:
//
//	ctx, cancel := context.WithTimeout(ctx, duration.ChartRender)
//
// DO NOT use hardcoded time.Duration values like `30 * time.Second` anywhere.
// Instead, reference the appropriate constant from this package.
package duration

import "time"

// ============================================================================
// RASTERIZATION TIMEOUTS
// ============================================================================
//
// Use these to bound calls into the chart rendering collaborator.
// ============================================================================

const (
	// ChartRender bounds a single chart rasterization (30s)
	ChartRender = 30 * time.Second

	// BrowserStartup bounds launching headless Chrome (20s)
	BrowserStartup = 20 * time.Second

	// BrowserSettle is the wait after loading chart markup before capture (250ms)
	BrowserSettle = 250 * time.Millisecond

	// BrowserShutdown bounds a graceful Chrome shutdown before the process
	// tree is killed (5s)
	BrowserShutdown = 5 * time.Second
)

// ============================================================================
// TELEMETRY TIMEOUTS
// ============================================================================

const (
	// ExporterConnect bounds connecting the OTLP exporter (10s)
	ExporterConnect = 10 * time.Second

	// ExporterShutdown bounds flushing spans on exit (5s)
	ExporterShutdown = 5 * time.Second
)
