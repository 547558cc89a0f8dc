// Package layouttest provides an in-memory layout.Canvas that records every
// draw call, for asserting on pagination and content without parsing PDFs.
package layouttest

import (
	"fmt"
	"image"
	_ "image/png" // register PNG for DecodeConfig
	"io"
	"os"
	"strings"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
)

// OpKind identifies a recorded draw call.
type OpKind string

const (
	OpPage  OpKind = "page"
	OpCell  OpKind = "cell"
	OpImage OpKind = "image"
)

// Op is one recorded draw call. Y is the top of the box on its page.
type Op struct {
	Kind  OpKind
	Page  int
	Y     float64
	H     float64
	Text  string
	Style layout.Style
	Image string
}

// Bottom returns the Y coordinate of the lower edge of the op.
func (o Op) Bottom() float64 { return o.Y + o.H }

// Recorder is a deterministic layout.Canvas. Text width is approximated
// as CharWidth millimetres per rune at 10pt, scaled by font size.
type Recorder struct {
	PageHeight   float64
	PageWidth    float64
	Margin       float64
	HeaderHeight float64
	CharWidth    float64

	// RegisterErr, when set, is returned by every RegisterImage call.
	RegisterErr error
	// OutputErr, when set, is returned by Output.
	OutputErr error
	// PanicOnPage panics inside AddPage when the given page would start.
	PanicOnPage int

	Ops []Op

	page int
	y    float64
	err  error
}

// New returns an A4 portrait recorder with a 10mm margin and a 15mm header.
func New() *Recorder {
	return &Recorder{
		PageHeight:   297,
		PageWidth:    210,
		Margin:       10,
		HeaderHeight: 15,
		CharWidth:    1.8,
	}
}

var _ layout.Canvas = (*Recorder)(nil)

func (r *Recorder) AddPage() {
	if r.PanicOnPage > 0 && r.page+1 == r.PanicOnPage {
		panic(fmt.Sprintf("layouttest: page %d refused", r.PanicOnPage))
	}
	r.page++
	r.y = r.TopY()
	r.Ops = append(r.Ops, Op{Kind: OpPage, Page: r.page, Y: r.y})
}

func (r *Recorder) PageNo() int           { return r.page }
func (r *Recorder) Y() float64            { return r.y }
func (r *Recorder) TopY() float64         { return r.Margin + r.HeaderHeight }
func (r *Recorder) ContentWidth() float64 { return r.PageWidth - 2*r.Margin }

func (r *Recorder) Ln(h float64) { r.y += h }

func (r *Recorder) Cell(w, h float64, text string, st layout.Style, ln bool) {
	r.Ops = append(r.Ops, Op{Kind: OpCell, Page: r.page, Y: r.y, H: h, Text: text, Style: st})
	if ln {
		r.y += h
	}
}

func (r *Recorder) SplitText(text string, w float64, st layout.Style) []string {
	per := int(w / r.charWidth(st))
	if per < 1 {
		per = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len([]rune(word)) > per {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				rs := []rune(word)
				lines = append(lines, string(rs[:per]))
				word = string(rs[per:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= per:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Recorder) StringWidth(text string, st layout.Style) float64 {
	return float64(len([]rune(text))) * r.charWidth(st)
}

func (r *Recorder) charWidth(st layout.Style) float64 {
	size := st.Size
	if size <= 0 {
		size = 10
	}
	return r.CharWidth * size / 10
}

func (r *Recorder) RegisterImage(path string) (layout.ImageInfo, error) {
	if r.RegisterErr != nil {
		return layout.ImageInfo{}, r.RegisterErr
	}
	f, err := os.Open(path)
	if err != nil {
		return layout.ImageInfo{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return layout.ImageInfo{}, fmt.Errorf("layouttest: decode %s: %w", path, err)
	}
	return layout.ImageInfo{Name: path, Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func (r *Recorder) Image(info layout.ImageInfo, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Page: r.page, Y: r.y, H: h, Image: info.Name})
	r.y += h
}

// Fail makes the canvas report err from now on.
func (r *Recorder) Fail(err error) { r.err = err }

func (r *Recorder) Err() error { return r.err }

// Output writes a plain-text transcript, one cell per line.
func (r *Recorder) Output(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	if r.OutputErr != nil {
		return r.OutputErr
	}
	fmt.Fprintf(w, "%%RECORDER pages=%d\n", r.page)
	for _, op := range r.Ops {
		switch op.Kind {
		case OpCell:
			fmt.Fprintf(w, "%d %.1f %s\n", op.Page, op.Y, op.Text)
		case OpImage:
			fmt.Fprintf(w, "%d %.1f [image]\n", op.Page, op.Y)
		}
	}
	return nil
}

// Cells returns the text of every cell op, in draw order.
func (r *Recorder) Cells() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpCell {
			out = append(out, op.Text)
		}
	}
	return out
}

// Text returns all cell text joined with newlines.
func (r *Recorder) Text() string {
	return strings.Join(r.Cells(), "\n")
}

// Find returns the cell ops whose text contains substr.
func (r *Recorder) Find(substr string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpCell && strings.Contains(op.Text, substr) {
			out = append(out, op)
		}
	}
	return out
}

// Images returns the image ops in draw order.
func (r *Recorder) Images() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpImage {
			out = append(out, op)
		}
	}
	return out
}

// Pages returns the number of pages started.
func (r *Recorder) Pages() int { return r.page }
