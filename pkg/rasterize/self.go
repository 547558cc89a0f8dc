package rasterize

import "context"

// ImageWriter is implemented by figures that know how to export themselves
// as a PNG file.
type ImageWriter interface {
	WriteImage(ctx context.Context, path string, opts Options) error
}

// Self rasterizes handles implementing ImageWriter.
type Self struct{}

func (Self) Rasterize(ctx context.Context, chart any, path string, opts Options) error {
	w, ok := chart.(ImageWriter)
	if !ok {
		return ErrUnsupportedChart
	}
	return w.WriteImage(ctx, path, opts)
}
