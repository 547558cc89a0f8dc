// Package report lays out a portfolio analysis report onto a paginated
// canvas and returns the finished PDF bytes.
//
// The package is organized by logical concern across multiple files:
//
// # Inputs (payload.go, charts.go)
//
// Payload, Diagnosis, Metrics and ChartSet. All payload fields are
// optional; a missing field omits its section.
//
// # Configuration (config.go)
//
// Config selects sections, metrics layout, chart order, page geometry,
// text policy and chart raster settings. The page limit is derived once
// from the page size by PageLimitFor.
//
// # Building (builder.go, sections.go, embed.go)
//
// Builder drives the section order, the Pager decides page breaks, and
// embedChart rasterizes one chart through a temp file that is always
// removed. A chart that fails to rasterize becomes a one-line placeholder;
// it never fails the build.
//
// # Results and errors (result.go, errors.go)
//
// Build returns either a Result holding valid PDF bytes, possibly partial
// when charts failed, or a *BuildError matching ErrBuild.
//
// # Instrumentation (metrics.go)
//
// Optional Prometheus collectors and OpenTelemetry spans around builds and
// charts.
package report
