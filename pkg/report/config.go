package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/rasterize"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/sanitize"
)

// Section names an optional part of the report. The disclaimer is not a
// Section: it is always rendered.
type Section string

const (
	SectionAdvisorNote Section = "advisor_note"
	SectionSummary     Section = "summary" // AI diagnosis and detailed review
	SectionMetrics     Section = "metrics"
	SectionStats       Section = "stats"
	SectionCharts      Section = "charts"
	SectionFactor      Section = "factor"
	SectionMonteCarlo  Section = "monte_carlo"
)

// AllSections lists every optional section in render order.
var AllSections = []Section{
	SectionAdvisorNote,
	SectionSummary,
	SectionMetrics,
	SectionStats,
	SectionCharts,
	SectionFactor,
	SectionMonteCarlo,
}

// MetricsLayout selects how key metrics are drawn.
type MetricsLayout string

const (
	// MetricsTable draws a bordered two-column table with a header row.
	MetricsTable MetricsLayout = "table"
	// MetricsList draws "label: value" lines as body text.
	MetricsList MetricsLayout = "list"
)

// DefaultChartOrder is the priority order of the well-known chart keys.
var DefaultChartOrder = []string{"pie", "correlation", "history", "factor_beta", "mc", "attribution"}

// Config parameterizes a report variant. The zero value is usable;
// unset fields take the defaults documented on each field.
type Config struct {
	// Title is the running page header and PDF title (default "Portfolio Analysis Report").
	Title   string `yaml:"title" json:"title"`
	Author  string `yaml:"author" json:"author"`
	Subject string `yaml:"subject" json:"subject"`

	// PageSize is A3, A4, A5, Letter or Legal (default A4).
	PageSize string `yaml:"page_size" json:"page_size"`
	// Orientation is P or L (default P).
	Orientation string `yaml:"orientation" json:"orientation"`
	// PageLimit is the Y coordinate, in mm, below which no block may end.
	// Zero derives it from the page size via PageLimitFor.
	PageLimit float64 `yaml:"page_limit" json:"page_limit"`

	// Sections lists the optional sections to render. Empty means all.
	Sections []Section `yaml:"sections" json:"sections"`
	// MetricsLayout is table or list (default table).
	MetricsLayout MetricsLayout `yaml:"metrics_layout" json:"metrics_layout"`
	// ChartOrder gives the priority order of chart keys (default DefaultChartOrder).
	// Keys not listed follow in insertion order.
	ChartOrder []string `yaml:"chart_order" json:"chart_order"`

	// ChartWidth is the placed chart width in mm (default 170).
	ChartWidth float64 `yaml:"chart_width" json:"chart_width"`
	// Raster is the pixel geometry requested from the rasterizer (default 600x350 at scale 2).
	RasterWidth  int     `yaml:"raster_width" json:"raster_width"`
	RasterHeight int     `yaml:"raster_height" json:"raster_height"`
	RasterScale  float64 `yaml:"raster_scale" json:"raster_scale"`
	// ChartTimeout bounds each rasterization (default 30s).
	ChartTimeout time.Duration `yaml:"chart_timeout" json:"chart_timeout"`
	// TempDir holds the transient chart rasters (default os.TempDir()).
	TempDir string `yaml:"temp_dir" json:"temp_dir"`

	// Charset is the text policy, latin1 or ascii (default latin1).
	Charset sanitize.Policy `yaml:"charset" json:"charset"`
	// RawText disables Markdown flattening of the AI commentary fields.
	RawText bool `yaml:"raw_text" json:"raw_text"`

	// Validate runs a structural PDF check on the output before returning it.
	Validate bool `yaml:"validate" json:"validate"`
}

// DefaultConfig returns the configuration with every default filled in.
func DefaultConfig() Config {
	cfg, _ := Config{}.withDefaults()
	return cfg
}

// withDefaults returns a copy of c with defaults applied and the page limit
// derived. It fails on unknown page sizes, orientations or sections.
func (c Config) withDefaults() (Config, error) {
	if c.Title == "" {
		c.Title = defaults.ReportTitle
	}
	if c.PageSize == "" {
		c.PageSize = defaults.PageSize
	}
	if c.Orientation == "" {
		c.Orientation = defaults.Orientation
	}
	height, err := pageHeight(c.PageSize, c.Orientation)
	if err != nil {
		return c, err
	}
	c.Orientation = strings.ToUpper(c.Orientation[:1])
	if c.PageLimit <= 0 {
		c.PageLimit = height - defaults.PageBottomReserve
	}
	// Above the fpdf break margin the canvas would start pages inside a
	// block without the pager noticing.
	if hi := height - defaults.AutoBreakMargin; c.PageLimit > hi {
		return c, fmt.Errorf("%w: page limit %.1fmm exceeds %.1fmm for %s", ErrConfig, c.PageLimit, hi, c.PageSize)
	}
	if lo := defaults.MarginTop + defaults.HeaderHeight + defaults.MinUsableHeight; c.PageLimit < lo {
		return c, fmt.Errorf("%w: page limit %.1fmm is below %.1fmm", ErrConfig, c.PageLimit, lo)
	}
	if len(c.Sections) == 0 {
		c.Sections = slices.Clone(AllSections)
	}
	for _, s := range c.Sections {
		if !slices.Contains(AllSections, s) {
			return c, fmt.Errorf("%w: unknown section %q", ErrConfig, s)
		}
	}
	switch c.MetricsLayout {
	case "":
		c.MetricsLayout = MetricsTable
	case MetricsTable, MetricsList:
	default:
		return c, fmt.Errorf("%w: unknown metrics layout %q", ErrConfig, c.MetricsLayout)
	}
	if len(c.ChartOrder) == 0 {
		c.ChartOrder = slices.Clone(DefaultChartOrder)
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = defaults.ChartWidth
	}
	if c.RasterWidth <= 0 {
		c.RasterWidth = defaults.RasterWidth
	}
	if c.RasterHeight <= 0 {
		c.RasterHeight = defaults.RasterHeight
	}
	if c.RasterScale <= 0 {
		c.RasterScale = defaults.RasterScale
	}
	if c.ChartTimeout <= 0 {
		c.ChartTimeout = duration.ChartRender
	}
	return c, nil
}

// Has reports whether section s is enabled.
func (c Config) Has(s Section) bool {
	return len(c.Sections) == 0 || slices.Contains(c.Sections, s)
}

// RasterOptions returns the options handed to the rasterizer.
func (c Config) RasterOptions() rasterize.Options {
	return rasterize.Options{Width: c.RasterWidth, Height: c.RasterHeight, Scale: c.RasterScale}
}

// page sizes in mm, portrait.
var pageSizes = map[string][2]float64{
	"a3":     {297, 420},
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// PageLimitFor returns the pagination limit for a page size and
// orientation: the page height minus defaults.PageBottomReserve. A4
// portrait gives 270.
func PageLimitFor(size, orientation string) (float64, error) {
	h, err := pageHeight(size, orientation)
	if err != nil {
		return 0, err
	}
	return h - defaults.PageBottomReserve, nil
}

func pageHeight(size, orientation string) (float64, error) {
	dims, ok := pageSizes[strings.ToLower(size)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown page size %q", ErrConfig, size)
	}
	switch strings.ToUpper(orientation) {
	case "P", "PORTRAIT", "":
		return dims[1], nil
	case "L", "LANDSCAPE":
		return dims[0], nil
	default:
		return 0, fmt.Errorf("%w: unknown orientation %q", ErrConfig, orientation)
	}
}
