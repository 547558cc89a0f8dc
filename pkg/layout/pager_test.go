package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/layout/layouttest"
)

func newPager(t *testing.T) (*layouttest.Recorder, *layout.Pager) {
	t.Helper()
	rec := layouttest.New()
	rec.AddPage()
	return rec, layout.NewPager(rec, 270)
}

func TestPager_EnsureSpaceNoBreakWhenFits(t *testing.T) {
	rec, p := newPager(t)

	assert.Equal(t, layout.OnPage, p.State(50))
	assert.False(t, p.EnsureSpace(50))
	assert.Equal(t, 1, rec.Pages())
	assert.Equal(t, 0, p.Breaks())
}

func TestPager_EnsureSpaceBreaksBeforeBlock(t *testing.T) {
	rec, p := newPager(t)
	p.Advance(240) // y = 265

	assert.Equal(t, layout.NeedsBreak, p.State(10))
	require.True(t, p.EnsureSpace(10))
	assert.Equal(t, 2, rec.Pages())
	assert.Equal(t, rec.TopY(), rec.Y(), "cursor resets to the top margin")
	assert.True(t, p.AtTop())
}

func TestPager_ExactFitDoesNotBreak(t *testing.T) {
	rec, p := newPager(t)
	p.Advance(270 - rec.Y() - 5)

	assert.False(t, p.EnsureSpace(5))
	assert.InDelta(t, 5, p.Remaining(), 1e-9)
}

func TestPager_OversizedBlockOnFreshPage(t *testing.T) {
	rec, p := newPager(t)

	// A block taller than the page must not cause an endless run of breaks.
	assert.False(t, p.EnsureSpace(400))
	assert.Equal(t, 1, rec.Pages())
	assert.InDelta(t, p.Usable(), p.Fit(400), 1e-9)
	assert.InDelta(t, 30.0, p.Fit(30), 1e-9)
}

func TestPager_NewPageAlwaysBreaks(t *testing.T) {
	rec, p := newPager(t)

	p.NewPage()
	p.NewPage()
	assert.Equal(t, 3, rec.Pages())
	assert.Equal(t, 2, p.Breaks())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "on_page", layout.OnPage.String())
	assert.Equal(t, "needs_break", layout.NeedsBreak.String())
}

func TestStyle_ValueSemantics(t *testing.T) {
	base := layout.Style{Family: "Helvetica", Size: 10}
	bold := base.With(func(s *layout.Style) { s.Bold = true })
	filled := bold.Filled(layout.TitleFill)

	assert.False(t, base.Bold, "With must not modify the receiver")
	assert.Nil(t, bold.Fill, "Filled must not modify the receiver")
	assert.Equal(t, "B", filled.FontStyle())
	assert.Equal(t, "BI", filled.With(func(s *layout.Style) { s.Italic = true }).FontStyle())
	assert.Equal(t, layout.TitleFill, *filled.Fill)
}

func TestImageInfo_Aspect(t *testing.T) {
	assert.InDelta(t, 0.5, layout.ImageInfo{Width: 600, Height: 300}.Aspect(), 1e-9)
	assert.Zero(t, layout.ImageInfo{}.Aspect())
}
