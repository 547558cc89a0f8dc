// Package rasterize turns opaque chart handles into PNG files on disk.
//
// The report engine never inspects a chart; it hands the handle and a
// destination path to a Rasterizer and only looks at the file afterwards.
// Implementations here cover decoded images and image files (Static),
// figures that can render themselves (Self), and HTML/SVG markup rendered
// by headless Chrome (Browser). Chain combines them.
package rasterize

import (
	"context"
	"errors"
	"fmt"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
)

// ErrUnsupportedChart is returned by a Rasterizer that does not know how to
// render the given handle. Chain moves on to the next rasterizer on it.
var ErrUnsupportedChart = errors.New("rasterize: unsupported chart handle")

// Options is the requested raster geometry. Width and Height are logical
// pixels; Scale is the device scale factor.
type Options struct {
	Width  int
	Height int
	Scale  float64
}

// DefaultOptions returns the standard 600x350 raster at scale 2.
func DefaultOptions() Options {
	return Options{
		Width:  defaults.RasterWidth,
		Height: defaults.RasterHeight,
		Scale:  defaults.RasterScale,
	}
}

// Pixels returns the device pixel size, falling back to the defaults for
// unset fields.
func (o Options) Pixels() (int, int) {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	return int(float64(o.Width) * o.Scale), int(float64(o.Height) * o.Scale)
}

// Rasterizer writes a PNG rendering of chart to path. path already exists
// (an empty file) and is owned by the caller, who removes it afterwards.
// Implementations must honour ctx cancellation.
type Rasterizer interface {
	Rasterize(ctx context.Context, chart any, path string, opts Options) error
}

// Func adapts a plain function to Rasterizer.
type Func func(ctx context.Context, chart any, path string, opts Options) error

func (f Func) Rasterize(ctx context.Context, chart any, path string, opts Options) error {
	return f(ctx, chart, path, opts)
}

// Chain tries each rasterizer in order and returns the result of the first
// one that accepts the handle.
type Chain []Rasterizer

func (c Chain) Rasterize(ctx context.Context, chart any, path string, opts Options) error {
	for _, r := range c {
		if r == nil {
			continue
		}
		err := r.Rasterize(ctx, chart, path, opts)
		if errors.Is(err, ErrUnsupportedChart) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedChart, chart)
}

// Default returns the chain used by the CLI: static images and
// self-rendering figures first, then browser for markup when b is non-nil.
func Default(b *Browser) Rasterizer {
	chain := Chain{Static{}, Self{}}
	if b != nil {
		chain = append(chain, b)
	}
	return chain
}
