// Package layout holds the page model shared by the report renderer and its
// backends: the Canvas primitive interface, immutable draw styles, and the
// Pager that decides where page breaks happen.
package layout

import "io"

// ImageInfo describes a registered raster image.
type ImageInfo struct {
	Name   string
	Width  float64 // intrinsic width, any unit
	Height float64 // intrinsic height, same unit as Width
}

// Aspect returns height/width, or 0 for a degenerate image.
func (i ImageInfo) Aspect() float64 {
	if i.Width <= 0 {
		return 0
	}
	return i.Height / i.Width
}

// Canvas is the drawing surface the report is laid out on. Units are
// millimetres; Y grows downwards. Implementations record the first error
// they hit and turn later calls into no-ops; callers check Err.
type Canvas interface {
	// AddPage finalizes the current page and starts a new one. The header,
	// if any, is drawn and Y is left just below it.
	AddPage()
	PageNo() int

	Y() float64
	// TopY is the Y position right after the header on a fresh page.
	TopY() float64
	// ContentWidth is the usable width between the side margins.
	ContentWidth() float64
	// Ln moves to the left margin, h below the current line.
	Ln(h float64)

	// Cell draws one line of text in a w x h box. w == 0 extends to the
	// right margin. When ln is true the cursor moves to the next line,
	// otherwise it moves right by w.
	Cell(w, h float64, text string, st Style, ln bool)

	// SplitText wraps text to lines no wider than w for style st.
	SplitText(text string, w float64, st Style) []string
	// StringWidth returns the rendered width of text in style st.
	StringWidth(text string, st Style) float64

	// RegisterImage loads the image at path so it can be placed later.
	// A failure here does not poison the canvas.
	RegisterImage(path string) (ImageInfo, error)
	// Image places a registered image at the left margin and current Y,
	// then moves Y below it.
	Image(info ImageInfo, w, h float64)

	Err() error
	Output(w io.Writer) error
}
