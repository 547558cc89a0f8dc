// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for page geometry, raster sizes and
// report identity.
//
// Usage:
//
//	cfg.ChartWidth = defaults.ChartWidth
//	limit := defaults.PageBottomReserve
//
// DO NOT hardcode layout numbers like `170` or `270` in render code.
// Instead, reference the appropriate constant from this package.
package defaults

// Version is the current portfolio-report version
const Version = "0.4.0"

// ToolName is used for service names, PDF creator metadata and log attributes.
const ToolName = "portfolio-report"

// ReportTitle is the running header printed on every page.
const ReportTitle = "Portfolio Analysis Report"

// ============================================================================
// PAGE GEOMETRY (millimetres)
// ============================================================================
//
// Layout units are millimetres throughout. The page limit is derived once
// from the page height minus PageBottomReserve; A4 portrait gives 270.
// ============================================================================

const (
	// PageSize is the default page size name
	PageSize = "A4"

	// Orientation is the default orientation ("P" portrait, "L" landscape)
	Orientation = "P"

	// MarginLeft is the left/right page margin (10mm)
	MarginLeft = 10.0

	// MarginTop is the top margin before the running header (10mm)
	MarginTop = 10.0

	// HeaderHeight is the running header plus its gap (15mm). Content
	// starts at MarginTop + HeaderHeight.
	HeaderHeight = 15.0

	// AutoBreakMargin is the bottom margin at which fpdf starts a page on
	// its own (15mm). Page limits must stay above it.
	AutoBreakMargin = 15.0

	// MinUsableHeight is the smallest page body a limit may leave: a
	// section title plus one table row (20mm).
	MinUsableHeight = 20.0

	// PageBottomReserve is subtracted from the page height to get the
	// pagination limit (27mm). Leaves room for the footer.
	PageBottomReserve = 27.0
)

// ============================================================================
// TEXT METRICS
// ============================================================================

const (
	// LineHeight is the body text line height (5mm)
	LineHeight = 5.0

	// TitleHeight is the section title bar height (6mm)
	TitleHeight = 6.0

	// TitleGap is the vertical gap after a section title (4mm)
	TitleGap = 4.0

	// TableRowHeight is the table row height (7mm)
	TableRowHeight = 7.0

	// TableLabelWidth is the label column width of key/value tables (70mm)
	TableLabelWidth = 70.0

	// DisclaimerLineHeight is the line height of the disclaimer block (4mm)
	DisclaimerLineHeight = 4.0
)

// ============================================================================
// CHART RASTERIZATION
// ============================================================================
//
// Charts are rasterized at RasterWidth x RasterHeight CSS pixels times
// RasterScale, then placed ChartWidth millimetres wide.
// ============================================================================

const (
	// ChartWidth is the placed image width (170mm)
	ChartWidth = 170.0

	// RasterWidth is the logical raster width in pixels (600)
	RasterWidth = 600

	// RasterHeight is the logical raster height in pixels (350)
	RasterHeight = 350

	// RasterScale is the device scale factor applied to the raster (2)
	RasterScale = 2.0

	// CaptionHeight is the height of the "Figure:" caption line (8mm)
	CaptionHeight = 8.0
)
