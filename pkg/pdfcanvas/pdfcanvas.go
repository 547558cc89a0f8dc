// Package pdfcanvas implements layout.Canvas on top of go-pdf/fpdf using the
// built-in core fonts.
//
// Text handed to the canvas is expected to be sanitized already; it is
// encoded to the single-byte form the core fonts use right before drawing.
// Images are decoded and re-encoded as plain 8-bit PNG before fpdf sees
// them, so an odd input file fails registration instead of poisoning the
// whole document.
package pdfcanvas

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"time"

	gofpdf "github.com/go-pdf/fpdf"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/sanitize"
)

// Config configures the PDF document.
type Config struct {
	PageSize    string // A3, A4, A5, Letter, Legal
	Orientation string // P or L

	// HeaderTitle is drawn centred at the top of every page. Empty disables
	// the running header.
	HeaderTitle string
	// PageNumbers draws a "Page N of M" footer.
	PageNumbers bool

	Title    string
	Author   string
	Subject  string
	Keywords string

	// CreatedAt pins the document creation date; zero uses the current time.
	CreatedAt time.Time

	// NoCompress disables stream compression so text is searchable in the
	// raw bytes. Intended for tests.
	NoCompress bool
}

// Canvas is a layout.Canvas backed by a single fpdf document.
type Canvas struct {
	pdf  *gofpdf.Fpdf
	cfg  Config
	top  float64
	left float64
}

var _ layout.Canvas = (*Canvas)(nil)

var (
	headerStyle = layout.Style{Family: "Helvetica", Bold: true, Size: 15, Align: layout.AlignCenter}
	footerStyle = layout.Style{Family: "Helvetica", Italic: true, Size: 8, Text: layout.Muted, Align: layout.AlignCenter}
)

// New creates an empty document. No page exists until AddPage is called.
func New(cfg Config) *Canvas {
	if cfg.PageSize == "" {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.Orientation == "" {
		cfg.Orientation = defaults.Orientation
	}

	pdf := gofpdf.New(cfg.Orientation, "mm", cfg.PageSize, "")
	pdf.SetMargins(defaults.MarginLeft, defaults.MarginTop, defaults.MarginLeft)
	pdf.SetAutoPageBreak(true, defaults.AutoBreakMargin)
	pdf.SetCompression(!cfg.NoCompress)
	pdf.SetCreator(defaults.ToolName+" "+defaults.Version, false)
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, true)
	}
	if cfg.Subject != "" {
		pdf.SetSubject(cfg.Subject, true)
	}
	if cfg.Keywords != "" {
		pdf.SetKeywords(cfg.Keywords, true)
	}
	if !cfg.CreatedAt.IsZero() {
		pdf.SetCreationDate(cfg.CreatedAt)
	}

	c := &Canvas{
		pdf:  pdf,
		cfg:  cfg,
		top:  defaults.MarginTop,
		left: defaults.MarginLeft,
	}

	if cfg.HeaderTitle != "" {
		title := sanitize.Encode(sanitize.Text(cfg.HeaderTitle))
		c.top = defaults.MarginTop + defaults.HeaderHeight
		pdf.SetHeaderFunc(func() {
			c.apply(headerStyle)
			pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
			pdf.Ln(5)
		})
	}
	if cfg.PageNumbers {
		pdf.AliasNbPages("")
		pdf.SetFooterFunc(func() {
			pdf.SetY(-15)
			c.apply(footerStyle)
			pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		})
	}
	return c
}

// Fpdf exposes the underlying document for callers that need primitives
// the Canvas interface does not cover.
func (c *Canvas) Fpdf() *gofpdf.Fpdf { return c.pdf }

func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	c.top = c.pdf.GetY()
}

func (c *Canvas) PageNo() int   { return c.pdf.PageNo() }
func (c *Canvas) Y() float64    { return c.pdf.GetY() }
func (c *Canvas) TopY() float64 { return c.top }

func (c *Canvas) ContentWidth() float64 {
	w, _ := c.pdf.GetPageSize()
	left, _, right, _ := c.pdf.GetMargins()
	return w - left - right
}

func (c *Canvas) Ln(h float64) { c.pdf.Ln(h) }

func (c *Canvas) Cell(w, h float64, text string, st layout.Style, ln bool) {
	c.apply(st)
	border := ""
	if st.Border {
		border = "1"
	}
	lnMode := 0
	if ln {
		lnMode = 1
	}
	align := string(st.Align)
	if align == "" {
		align = string(layout.AlignLeft)
	}
	c.pdf.CellFormat(w, h, sanitize.Encode(text), border, lnMode, align, st.Fill != nil, 0, "")
}

func (c *Canvas) SplitText(text string, w float64, st layout.Style) []string {
	if w <= 0 {
		w = c.ContentWidth()
	}
	c.apply(st)
	// fpdf indexes core font widths by rune, so only Latin-1 may reach it.
	return c.pdf.SplitText(sanitize.Text(text), w)
}

func (c *Canvas) StringWidth(text string, st layout.Style) float64 {
	c.apply(st)
	return c.pdf.GetStringWidth(sanitize.Encode(sanitize.Text(text)))
}

// RegisterImage decodes the raster at path (PNG, JPEG, GIF, WebP, TIFF or
// BMP), normalizes it to 8-bit PNG and registers it under path.
func (c *Canvas) RegisterImage(path string) (layout.ImageInfo, error) {
	if err := c.pdf.Error(); err != nil {
		return layout.ImageInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: open image: %w", err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: empty %s image", format)
	}

	// fpdf rejects 16-bit and interlaced PNGs; NRGBA always encodes as 8-bit.
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: encode image: %w", err)
	}

	info := c.pdf.RegisterImageOptionsReader(path, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: register image: %w", err)
	}
	if info == nil {
		return layout.ImageInfo{}, fmt.Errorf("pdfcanvas: register image: no image info for %s", path)
	}
	return layout.ImageInfo{Name: path, Width: float64(b.Dx()), Height: float64(b.Dy())}, nil
}

func (c *Canvas) Image(info layout.ImageInfo, w, h float64) {
	c.pdf.ImageOptions(info.Name, c.left, 0, w, h, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (c *Canvas) Err() error { return c.pdf.Error() }

func (c *Canvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

// apply pushes a complete style into fpdf before a draw call.
func (c *Canvas) apply(st layout.Style) {
	family := st.Family
	if family == "" {
		family = "Helvetica"
	}
	size := st.Size
	if size <= 0 {
		size = 10
	}
	c.pdf.SetFont(family, st.FontStyle(), size)
	c.pdf.SetTextColor(st.Text.R, st.Text.G, st.Text.B)
	if st.Fill != nil {
		c.pdf.SetFillColor(st.Fill.R, st.Fill.G, st.Fill.B)
	}
	if st.Border {
		c.pdf.SetDrawColor(0, 0, 0)
	}
}
