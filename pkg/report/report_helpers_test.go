package report

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout/layouttest"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/rasterize"
)

// size is a fake chart handle rasterized to a solid PNG of that size.
type size struct{ w, h int }

// pngRasterizer writes a w x h PNG for size handles and fails for keys
// listed in fail.
func pngRasterizer(fail map[string]error) rasterize.Rasterizer {
	return rasterize.Func(func(ctx context.Context, chart any, path string, _ rasterize.Options) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch h := chart.(type) {
		case size:
			return writeSolidPNG(path, h.w, h.h)
		case string:
			if err, ok := fail[h]; ok {
				return err
			}
			return writeSolidPNG(path, 1200, 700)
		}
		return rasterize.ErrUnsupportedChart
	})
}

func writeSolidPNG(path string, w, h int) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRecorderBuilder returns a builder drawing on rec.
func newRecorderBuilder(t *testing.T, cfg Config, r rasterize.Rasterizer, rec *layouttest.Recorder, opts ...Option) *Builder {
	t.Helper()
	opts = append([]Option{
		WithLogger(discardLogger()),
		WithCanvas(func(Config, string) layout.Canvas { return rec }),
	}, opts...)
	b, err := NewBuilder(cfg, r, opts...)
	require.NoError(t, err)
	return b
}

func fullPayload() *Payload {
	return &Payload{
		AdvisorNote: "Client prefers **low** turnover.",
		Metrics: Metrics{
			{Name: "CAGR", Value: "7.2%"},
			{Name: "Volatility", Value: "14.1%"},
			{Name: "Sharpe Ratio", Value: "0.61"},
		},
		Diagnosis: &Diagnosis{
			Status: "Growth tilted.",
			Risk:   "Concentration in technology.",
			Action: "Rebalance quarterly.",
		},
		DetailedReview: "## Review\n\nThe portfolio tracks its benchmark closely.",
		FactorComment:  "Market beta of 1.1 dominates.",
		MCStats:        "Median terminal value 1.8x after 10 years.",
		Stats:          "Observations: 120 months",
	}
}

func testCharts(keys ...string) ChartSet {
	var cs ChartSet
	for _, k := range keys {
		cs.Add(k, k)
	}
	return cs
}

// cellsWithStyle returns the recorded cells drawn in st.
func cellsWithStyle(rec *layouttest.Recorder, st layout.Style) []layouttest.Op {
	var out []layouttest.Op
	for _, op := range rec.Ops {
		if op.Kind == layouttest.OpCell && op.Style == st {
			out = append(out, op)
		}
	}
	return out
}

func joinText(ops []layouttest.Op) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		parts = append(parts, op.Text)
	}
	return strings.Join(parts, " ")
}

// indexOf returns the position of the first cell whose text equals text.
func indexOf(t *testing.T, cells []string, text string) int {
	t.Helper()
	for i, c := range cells {
		if c == text {
			return i
		}
	}
	require.Fail(t, fmt.Sprintf("cell %q not found", text), "cells: %q", cells)
	return -1
}
