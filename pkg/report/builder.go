package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/bufpool"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/pdfcanvas"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/rasterize"
)

// CanvasFactory creates the canvas for one build.
type CanvasFactory func(cfg Config, reportID string) layout.Canvas

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for chart warnings and build summaries.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithMetrics records builds and charts in m.
func WithMetrics(m *BuildMetrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// WithTracer sets the tracer used for build and chart spans.
func WithTracer(t trace.Tracer) Option {
	return func(b *Builder) { b.tracer = t }
}

// WithCanvas replaces the PDF canvas, for alternate backends and tests.
func WithCanvas(f CanvasFactory) Option {
	return func(b *Builder) { b.newCanvas = f }
}

// Builder renders reports. It holds only immutable configuration and can
// be shared between goroutines; every Build owns its canvas and pager.
type Builder struct {
	cfg       Config
	raster    rasterize.Rasterizer
	logger    *slog.Logger
	metrics   *BuildMetrics
	tracer    trace.Tracer
	newCanvas CanvasFactory
}

// NewBuilder validates cfg and returns a Builder. r rasterizes chart
// handles; a nil r makes every chart fall back to its placeholder.
func NewBuilder(cfg Config, r rasterize.Rasterizer, opts ...Option) (*Builder, error) {
	full, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	b := &Builder{cfg: full, raster: r}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.tracer == nil {
		b.tracer = otel.Tracer(defaults.ToolName + "/report")
	}
	if b.newCanvas == nil {
		b.newCanvas = pdfCanvas
	}
	return b, nil
}

// Config returns the effective configuration with defaults applied.
func (b *Builder) Config() Config { return b.cfg }

func pdfCanvas(cfg Config, reportID string) layout.Canvas {
	return pdfcanvas.New(pdfcanvas.Config{
		PageSize:    cfg.PageSize,
		Orientation: cfg.Orientation,
		HeaderTitle: cfg.Title,
		PageNumbers: true,
		Title:       cfg.Title,
		Author:      cfg.Author,
		Subject:     cfg.Subject,
		Keywords:    "report-id:" + reportID,
	})
}

// Build lays out payload and charts and returns the finished document.
// It returns either a Result with non-empty PDF bytes or an error matching
// ErrBuild; chart failures only mark the result partial.
func (b *Builder) Build(ctx context.Context, p *Payload, charts ChartSet) (*Result, error) {
	start := time.Now()
	res := &Result{ReportID: uuid.NewString(), Empty: p.IsEmpty()}

	ctx, span := b.tracer.Start(ctx, "report.Build", trace.WithAttributes(
		attribute.String("report.id", res.ReportID),
		attribute.Int("report.charts", charts.Len()),
		attribute.Bool("report.empty", res.Empty),
	))
	defer span.End()

	pdf, pages, err := b.build(ctx, p, charts, res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")
		b.metrics.observeBuild(buildFailed, time.Since(start).Seconds(), 0)
		b.logger.Error("report build failed",
			slog.String("report_id", res.ReportID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	res.PDF = pdf
	res.Pages = pages

	status := res.Status()
	span.SetAttributes(attribute.Int("report.pages", pages), attribute.String("report.status", status))
	b.metrics.observeBuild(status, time.Since(start).Seconds(), pages)
	b.logger.Info("report built",
		slog.String("report_id", res.ReportID),
		slog.String("status", status),
		slog.Int("pages", pages),
		slog.Int("charts", len(res.Charts)),
		slog.Int("failed_charts", len(res.FailedCharts())),
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (b *Builder) build(ctx context.Context, p *Payload, charts ChartSet, res *Result) ([]byte, int, error) {
	c := b.newCanvas(b.cfg, res.ReportID)
	if err := b.layout(ctx, c, p, charts, res); err != nil {
		return nil, 0, err
	}

	buf := bufpool.Get()
	defer bufpool.Put(buf)
	if err := output(c, buf); err != nil {
		return nil, 0, buildError(StageOutput, err)
	}
	if buf.Len() == 0 {
		return nil, 0, buildError(StageOutput, errors.New("canvas produced no bytes"))
	}
	pdf := bufpool.Bytes(buf)

	pages := c.PageNo()
	if b.cfg.Validate {
		if err := pdfapi.Validate(bytes.NewReader(pdf), nil); err != nil {
			return nil, 0, buildError(StageValidate, err)
		}
		n, err := pdfapi.PageCount(bytes.NewReader(pdf), nil)
		if err != nil {
			return nil, 0, buildError(StageValidate, err)
		}
		pages = n
	}
	return pdf, pages, nil
}

// layout drives the section order. Panics raised by the canvas are turned
// into a BuildError.
func (b *Builder) layout(ctx context.Context, c layout.Canvas, p *Payload, charts ChartSet, res *Result) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = buildError(StageLayout, fmt.Errorf("panic: %v", v))
		}
	}()

	r := newRenderer(c, b.cfg)
	c.AddPage()

	if res.Empty {
		r.renderNoData()
		return canvasErr(c)
	}

	if b.cfg.Has(SectionAdvisorNote) && !blank(p.AdvisorNote) {
		r.renderAdvisorNote(p.AdvisorNote)
	}
	r.renderSummary(p)

	if b.cfg.Has(SectionCharts) && charts.Len() > 0 {
		if !r.pager.AtTop() {
			r.pager.NewPage()
		}
		r.section("Visual Analysis")
		for _, ch := range charts.Ordered(b.cfg.ChartOrder) {
			res.Charts = append(res.Charts, b.embedChart(ctx, r, ch))
		}
	}

	if b.cfg.Has(SectionFactor) && !blank(p.FactorComment) {
		r.renderCommentary("Factor Analysis & AI Insight", p.FactorComment)
	}
	if b.cfg.Has(SectionMonteCarlo) && !blank(p.MCStats) {
		r.renderCommentary("Future Projections (Monte Carlo)", p.MCStats)
	}

	r.renderDisclaimer()

	if err := ctx.Err(); err != nil {
		return buildError(StageLayout, err)
	}
	return canvasErr(c)
}

func canvasErr(c layout.Canvas) error {
	if err := c.Err(); err != nil {
		return buildError(StageLayout, err)
	}
	return nil
}

// output serializes the canvas, converting a panic into an error.
func output(c layout.Canvas, w *bytes.Buffer) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return c.Output(w)
}
