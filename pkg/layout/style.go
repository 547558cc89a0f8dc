package layout

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R, G, B int
}

// Common colors used by the report sections.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	Muted     = Color{100, 100, 100}
	Danger    = Color{200, 50, 50}
	Success   = Color{0, 100, 0}
	Failure   = Color{255, 0, 0}
	TitleFill = Color{200, 220, 255}
	HeaderRow = Color{30, 41, 59}
	StripeRow = Color{245, 248, 252}
)

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Style describes how a single primitive is drawn. It is a plain value:
// every draw call receives the complete style, so no drawing state leaks
// from one call to the next.
type Style struct {
	Family string
	Bold   bool
	Italic bool
	Size   float64
	Text   Color
	Fill   *Color
	Border bool
	Align  Align
}

// FontStyle returns the fpdf-style font variant string ("", "B", "I", "BI").
func (s Style) FontStyle() string {
	switch {
	case s.Bold && s.Italic:
		return "BI"
	case s.Bold:
		return "B"
	case s.Italic:
		return "I"
	default:
		return ""
	}
}

// With returns a copy of s with fn applied. The receiver is not modified.
func (s Style) With(fn func(*Style)) Style {
	fn(&s)
	return s
}

// Filled returns a copy of s with a background fill.
func (s Style) Filled(c Color) Style {
	s.Fill = &c
	return s
}
