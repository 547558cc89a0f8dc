package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/strutil"
)

var errNoRasterizer = errors.New("no rasterizer configured")

// embedChart places one chart, or its placeholder when anything between
// rasterization and placement fails. It never fails the build.
func (b *Builder) embedChart(ctx context.Context, r *renderer, ch Chart) ChartOutcome {
	ctx, span := b.tracer.Start(ctx, "report.embedChart", trace.WithAttributes(
		attribute.String("chart.key", ch.Key),
		attribute.String("chart.handle", fmt.Sprintf("%T", ch.Handle)),
	))
	defer span.End()

	out := ChartOutcome{Key: ch.Key, Status: ChartEmbedded}
	if err := b.placeChart(ctx, r, ch); err != nil {
		out.Status = ChartFailed
		out.Reason = err.Error()
		r.renderPlaceholder(ch.Key)

		span.RecordError(err)
		span.SetStatus(codes.Error, "chart failed")
		b.logger.Warn("chart generation failed",
			slog.String("chart", ch.Key),
			slog.String("error", err.Error()),
		)
	}
	b.metrics.observeChart(out.Status)
	return out
}

// placeChart rasterizes the chart into a temp file, registers it with the
// canvas and draws caption and image. The temp file is removed on every
// path, including a rasterizer that wrote a partial file and then failed.
func (b *Builder) placeChart(ctx context.Context, r *renderer, ch Chart) error {
	if b.raster == nil {
		return errNoRasterizer
	}

	f, err := os.CreateTemp(b.cfg.TempDir, "chart-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := b.rasterize(ctx, ch, path); err != nil {
		return err
	}

	info, err := r.c.RegisterImage(path)
	if err != nil {
		return fmt.Errorf("register image: %w", err)
	}
	aspect := info.Aspect()
	if aspect <= 0 {
		return fmt.Errorf("register image: degenerate size %vx%v", info.Width, info.Height)
	}

	w := b.cfg.ChartWidth
	if cw := r.c.ContentWidth(); w > cw {
		w = cw
	}
	h := w * aspect
	if maxH := r.pager.Usable() - defaults.CaptionHeight; h > maxH {
		h = maxH
		w = h / aspect
	}

	r.pager.EnsureSpace(defaults.CaptionHeight + h)
	r.c.Cell(0, defaults.CaptionHeight, "Figure: "+r.clean(strutil.Caption(ch.Key), false), captionStyle, true)
	r.c.Image(info, w, h)
	r.pager.Advance(chartGap)
	return nil
}

// rasterize calls the collaborator under the chart timeout. A panic in the
// collaborator is reported as an ordinary chart failure.
func (b *Builder) rasterize(ctx context.Context, ch Chart, path string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.ChartTimeout)
	defer cancel()
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("rasterize: panic: %v", v)
		}
	}()
	if err := b.raster.Rasterize(ctx, ch.Handle, path, b.cfg.RasterOptions()); err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}
	return nil
}
