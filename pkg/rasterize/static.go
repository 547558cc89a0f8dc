package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// File is a chart handle naming an image file on disk.
type File string

// Static rasterizes already-rendered charts: image.Image values, File paths
// and encoded image bytes. The image is scaled to fit the requested pixel
// box, keeping its aspect ratio.
type Static struct {
	// NoScale keeps the source resolution.
	NoScale bool
}

func (s Static) Rasterize(ctx context.Context, chart any, path string, opts Options) error {
	var (
		img image.Image
		err error
	)
	switch v := chart.(type) {
	case image.Image:
		img = v
	case File:
		img, err = decodeFile(string(v))
	case []byte:
		img, _, err = image.Decode(bytes.NewReader(v))
	default:
		return ErrUnsupportedChart
	}
	if err != nil {
		return fmt.Errorf("rasterize: decode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.NoScale {
		img = fit(img, opts)
	}
	return writePNG(path, img)
}

func decodeFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// fit scales img to fit inside the option's pixel box.
func fit(img image.Image, opts Options) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	maxW, maxH := opts.Pixels()
	w, h := maxW, b.Dy()*maxW/b.Dx()
	if h > maxH {
		w, h = b.Dx()*maxH/b.Dy(), maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// writePNG encodes img into the existing file at path.
func writePNG(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("rasterize: open output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("rasterize: encode png: %w", err)
	}
	return f.Close()
}
