package layout

// State is the pagination state for a block of a given height.
type State int

const (
	// OnPage means the block fits below the cursor on the current page.
	OnPage State = iota
	// NeedsBreak means the block would cross the page limit.
	NeedsBreak
)

func (s State) String() string {
	if s == NeedsBreak {
		return "needs_break"
	}
	return "on_page"
}

// topEpsilon absorbs float noise when checking for a fresh page.
const topEpsilon = 0.01

// Pager is the pagination controller. The vertical cursor lives in the
// canvas; the pager only decides when a block must move to a new page.
//
// Callers pass a conservative height estimate to EnsureSpace before drawing
// any block, so a block is never split across pages.
type Pager struct {
	c      Canvas
	limit  float64
	breaks int
}

// NewPager returns a pager that breaks pages when content would pass limit.
func NewPager(c Canvas, limit float64) *Pager {
	return &Pager{c: c, limit: limit}
}

// Limit returns the page limit the pager was built with.
func (p *Pager) Limit() float64 { return p.limit }

// Breaks returns the number of pages the pager has started.
func (p *Pager) Breaks() int { return p.breaks }

// Remaining returns the vertical space left above the limit.
func (p *Pager) Remaining() float64 { return p.limit - p.c.Y() }

// Usable returns the height available on a fresh page.
func (p *Pager) Usable() float64 { return p.limit - p.c.TopY() }

// State reports whether a block of height h fits on the current page.
func (p *Pager) State(h float64) State {
	if p.c.Y()+h > p.limit {
		return NeedsBreak
	}
	return OnPage
}

// EnsureSpace starts a new page when a block of height h would cross the
// limit. It reports whether a break happened. A block taller than a whole
// page does not trigger a break on a page that is still empty; use Fit to
// shrink such blocks first.
func (p *Pager) EnsureSpace(h float64) bool {
	if p.State(h) == OnPage || p.AtTop() {
		return false
	}
	p.NewPage()
	return true
}

// AtTop reports whether the cursor sits at the top of a fresh page.
func (p *Pager) AtTop() bool {
	return p.c.Y() <= p.c.TopY()+topEpsilon
}

// Advance moves the cursor down by h after a block was drawn.
func (p *Pager) Advance(h float64) {
	p.c.Ln(h)
}

// NewPage starts a new page regardless of the remaining space.
func (p *Pager) NewPage() {
	p.c.AddPage()
	p.breaks++
}

// Fit clamps h to the usable page height.
func (p *Pager) Fit(h float64) float64 {
	if u := p.Usable(); h > u {
		return u
	}
	return h
}
