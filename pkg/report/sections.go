package report

import (
	"fmt"
	"strings"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/mdtext"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/strutil"
)

// Disclaimer is the legal notice closing every non-empty report.
const Disclaimer = "DISCLAIMER: These results are statistical estimates based on historical data " +
	"and do not guarantee future performance. Market conditions vary and past performance " +
	"is not indicative of future results."

// NoDataTitle is the only section of a report built from an empty payload.
const NoDataTitle = "No Data Available"

// Placeholder returns the line drawn in place of a chart that could not be
// rasterized.
func Placeholder(key string) string {
	return fmt.Sprintf("[Chart Generation Failed: %s]", key)
}

var (
	bodyStyle    = layout.Style{Family: "Helvetica", Size: 10}
	boldStyle    = bodyStyle.With(func(s *layout.Style) { s.Bold = true })
	headingStyle = boldStyle.With(func(s *layout.Style) { s.Size = 11 })
	titleStyle   = boldStyle.With(func(s *layout.Style) { s.Size = 12 }).Filled(layout.TitleFill)
	noteStyle    = bodyStyle.With(func(s *layout.Style) { s.Italic = true }).Filled(layout.StripeRow)
	riskStyle    = boldStyle.With(func(s *layout.Style) { s.Text = layout.Danger })
	actionStyle  = boldStyle.With(func(s *layout.Style) { s.Text = layout.Success })

	tableHeadStyle = boldStyle.With(func(s *layout.Style) {
		s.Text = layout.White
		s.Border = true
	}).Filled(layout.HeaderRow)
	tableCellStyle = bodyStyle.With(func(s *layout.Style) { s.Border = true })
	tableAltStyle  = tableCellStyle.Filled(layout.StripeRow)

	captionStyle     = boldStyle
	placeholderStyle = layout.Style{Family: "Helvetica", Italic: true, Size: 8, Text: layout.Failure}
	disclaimerStyle  = layout.Style{Family: "Helvetica", Italic: true, Size: 8, Text: layout.Muted, Align: layout.AlignCenter}
)

const (
	headingHeight  = 8.0
	noteLabelH     = 10.0
	sectionGap     = 5.0
	blockGap       = 2.0
	disclaimerGap  = 10.0
	cellPadding    = 2.0
	chartGap       = 5.0
	metricsHeading = "Key Metrics"
)

// renderer draws report sections onto one canvas. Every primitive gets a
// complete style value; the renderer holds no drawing state of its own.
type renderer struct {
	c     layout.Canvas
	pager *layout.Pager
	cfg   Config
	num   int // last major section number
}

func newRenderer(c layout.Canvas, cfg Config) *renderer {
	return &renderer{c: c, pager: layout.NewPager(c, cfg.PageLimit), cfg: cfg}
}

// clean sanitizes text for the configured charset. Commentary written by
// the AI collaborator is Markdown and is flattened first unless disabled.
func (r *renderer) clean(s string, markdown bool) string {
	if markdown && !r.cfg.RawText {
		s = mdtext.Flatten(s)
	}
	return r.cfg.Charset.Apply(s)
}

// section draws a numbered major section title.
func (r *renderer) section(name string) {
	r.num++
	r.renderTitle(fmt.Sprintf("%d. %s", r.num, name))
}

// renderTitle draws a filled title bar followed by a small gap. The title is
// kept on the same page as the first line of what follows it.
func (r *renderer) renderTitle(text string) {
	r.pager.EnsureSpace(defaults.TitleHeight + defaults.TitleGap + defaults.LineHeight)
	r.c.Cell(0, defaults.TitleHeight, r.clean(text, false), titleStyle, true)
	r.pager.Advance(defaults.TitleGap)
}

// renderHeading draws a bold sub-heading kept with the next line.
func (r *renderer) renderHeading(text string, h float64, st layout.Style) {
	r.pager.EnsureSpace(h + defaults.LineHeight)
	r.c.Cell(0, h, r.clean(text, false), st, true)
}

// renderBody wraps already-clean text to the content width and places it
// line by line, breaking pages between lines only.
func (r *renderer) renderBody(text string, st layout.Style) {
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, line := range r.c.SplitText(text, r.c.ContentWidth(), st) {
		r.pager.EnsureSpace(defaults.LineHeight)
		r.c.Cell(0, defaults.LineHeight, line, st, true)
	}
}

// renderLabeled draws a sub-heading and its body text.
func (r *renderer) renderLabeled(label, text string, labelStyle layout.Style) {
	if blank(text) {
		return
	}
	r.renderHeading(label, defaults.LineHeight, labelStyle)
	r.renderBody(r.clean(text, true), bodyStyle)
	r.pager.Advance(blockGap)
}

// renderEntries draws label/value pairs either as a two-column table or as
// "label: value" body lines.
func (r *renderer) renderEntries(entries []Entry, tabular bool) {
	if len(entries) == 0 {
		return
	}
	if !tabular {
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, r.clean(e.Label, false)+": "+r.clean(e.Value, false))
		}
		r.renderBody(strings.Join(lines, "\n"), bodyStyle)
		return
	}

	rowH := defaults.TableRowHeight
	labelW := defaults.TableLabelWidth
	valueW := r.c.ContentWidth() - labelW

	// Header plus first row, so a header never ends a page alone.
	r.pager.EnsureSpace(2 * rowH)
	r.tableHeader(labelW, rowH)
	for i, e := range entries {
		if r.pager.EnsureSpace(rowH) {
			r.tableHeader(labelW, rowH)
		}
		st := tableCellStyle
		if i%2 == 1 {
			st = tableAltStyle
		}
		r.c.Cell(labelW, rowH, r.fit(r.clean(e.Label, false), labelW, st), st, false)
		r.c.Cell(valueW, rowH, r.fit(r.clean(e.Value, false), valueW, st), st, true)
	}
}

func (r *renderer) tableHeader(labelW, rowH float64) {
	r.c.Cell(labelW, rowH, "Metric", tableHeadStyle, false)
	r.c.Cell(0, rowH, "Value", tableHeadStyle, true)
}

// fit truncates s so it stays inside a cell of width w.
func (r *renderer) fit(s string, w float64, st layout.Style) string {
	return strutil.TruncateWidth(s, w-cellPadding, func(t string) float64 {
		return r.c.StringWidth(t, st)
	})
}

// renderPlaceholder draws the single-line substitute for a failed chart.
func (r *renderer) renderPlaceholder(key string) {
	r.pager.EnsureSpace(defaults.LineHeight)
	r.c.Cell(0, defaults.LineHeight, Placeholder(r.clean(key, false)), placeholderStyle, true)
}

// renderDisclaimer draws the closing legal notice as one unsplit block.
func (r *renderer) renderDisclaimer() {
	lines := r.c.SplitText(Disclaimer, r.c.ContentWidth(), disclaimerStyle)
	h := float64(len(lines)) * defaults.DisclaimerLineHeight
	if !r.pager.EnsureSpace(disclaimerGap + h) {
		r.pager.Advance(disclaimerGap)
	}
	for _, line := range lines {
		r.c.Cell(0, defaults.DisclaimerLineHeight, line, disclaimerStyle, true)
	}
}

// renderNoData draws the notice used for an empty payload.
func (r *renderer) renderNoData() {
	r.renderTitle(NoDataTitle)
	r.renderBody("The report payload contained no analysis content.", bodyStyle)
}

// renderAdvisorNote draws the advisor's note as a shaded italic block.
func (r *renderer) renderAdvisorNote(note string) {
	r.renderHeading("Advisor's Note:", noteLabelH, headingStyle)
	r.renderBody(r.clean(note, true), noteStyle)
	r.pager.Advance(sectionGap)
}

// renderSummary draws the executive summary: diagnosis, detailed review,
// key metrics and statistics, each when present and enabled.
func (r *renderer) renderSummary(p *Payload) {
	showDiag := r.cfg.Has(SectionSummary) && !p.Diagnosis.IsEmpty()
	showReview := r.cfg.Has(SectionSummary) && !blank(p.DetailedReview)
	showMetrics := r.cfg.Has(SectionMetrics) && len(p.Metrics) > 0
	showStats := r.cfg.Has(SectionStats) && !blank(p.Stats)
	if !showDiag && !showReview && !showMetrics && !showStats {
		return
	}

	r.section("Portfolio Executive Summary")

	if showDiag {
		r.renderHeading("Diagnosis & Action Plan:", headingHeight, headingStyle)
		r.renderLabeled("[ Diagnosis ]", p.Diagnosis.Status, boldStyle)
		r.renderLabeled("[ Risk Alert ]", p.Diagnosis.Risk, riskStyle)
		r.renderLabeled("[ Action Plan ]", p.Diagnosis.Action, actionStyle)
		r.pager.Advance(blockGap)
	}
	if showReview {
		r.renderHeading("AI Strategic Assessment:", defaults.TitleHeight, boldStyle)
		r.renderBody(r.clean(p.DetailedReview, true), bodyStyle)
		r.pager.Advance(sectionGap)
	}
	if showMetrics {
		r.renderHeading(metricsHeading, headingHeight, headingStyle)
		r.renderEntries(p.Metrics.Entries(), r.cfg.MetricsLayout == MetricsTable)
		r.pager.Advance(sectionGap)
	}
	if showStats {
		r.renderHeading("Portfolio Statistics:", defaults.TitleHeight, boldStyle)
		r.renderBody(r.clean(p.Stats, false), bodyStyle)
		r.pager.Advance(sectionGap)
	}
}

// renderCommentary draws a numbered section holding AI commentary.
func (r *renderer) renderCommentary(title, text string) {
	r.section(title)
	r.renderBody(r.clean(text, true), bodyStyle)
	r.pager.Advance(sectionGap)
}
