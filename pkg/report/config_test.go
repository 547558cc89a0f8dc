package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/sanitize"
)

func TestPageLimitFor(t *testing.T) {
	tests := []struct {
		size, orient string
		want         float64
	}{
		{"A4", "P", 270},
		{"a4", "portrait", 270},
		{"A4", "L", 183},
		{"Letter", "P", 252.4},
		{"A3", "landscape", 270},
		{"legal", "", 328.6},
	}
	for _, tt := range tests {
		t.Run(tt.size+"/"+tt.orient, func(t *testing.T) {
			got, err := PageLimitFor(tt.size, tt.orient)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := PageLimitFor("B5", "P")
	assert.ErrorIs(t, err, ErrConfig)
	_, err = PageLimitFor("A4", "sideways")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Portfolio Analysis Report", cfg.Title)
	assert.Equal(t, "A4", cfg.PageSize)
	assert.Equal(t, "P", cfg.Orientation)
	assert.Equal(t, 270.0, cfg.PageLimit)
	assert.Equal(t, AllSections, cfg.Sections)
	assert.Equal(t, MetricsTable, cfg.MetricsLayout)
	assert.Equal(t, DefaultChartOrder, cfg.ChartOrder)
	assert.Equal(t, 170.0, cfg.ChartWidth)
	assert.Equal(t, duration.ChartRender, cfg.ChartTimeout)
	assert.Equal(t, sanitize.Latin1, cfg.Charset)

	w, h := cfg.RasterOptions().Pixels()
	assert.Equal(t, 1200, w)
	assert.Equal(t, 700, h)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg, err := Config{Orientation: "landscape", PageLimit: 150}.withDefaults()
	require.NoError(t, err)
	assert.Equal(t, "L", cfg.Orientation)
	assert.Equal(t, 150.0, cfg.PageLimit, "explicit limit is kept")

	_, err = Config{Sections: []Section{"appendix"}}.withDefaults()
	assert.ErrorIs(t, err, ErrConfig)

	_, err = Config{MetricsLayout: "grid"}.withDefaults()
	assert.ErrorIs(t, err, ErrConfig)

	_, err = Config{Orientation: "pizza"}.withDefaults()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfig_PageLimitBounds(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"derived", Config{}, false},
		{"at break margin", Config{PageLimit: 297 - 15}, false},
		{"past break margin", Config{PageLimit: 295}, true},
		{"past break margin landscape", Config{Orientation: "L", PageLimit: 200}, true},
		{"smallest body", Config{PageLimit: 45}, false},
		{"no room for a row", Config{PageLimit: 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.withDefaults()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Has(t *testing.T) {
	assert.True(t, Config{}.Has(SectionFactor))

	cfg := Config{Sections: []Section{SectionCharts}}
	assert.True(t, cfg.Has(SectionCharts))
	assert.False(t, cfg.Has(SectionAdvisorNote))
}

func TestConfig_YAML(t *testing.T) {
	src := `
title: Quarterly Review
page_size: Letter
orientation: L
sections: [summary, metrics, charts]
metrics_layout: list
chart_order: [history, pie]
chart_timeout: 45s
charset: ascii
validate: true
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	assert.Equal(t, "Quarterly Review", cfg.Title)
	assert.Equal(t, []Section{SectionSummary, SectionMetrics, SectionCharts}, cfg.Sections)
	assert.Equal(t, MetricsList, cfg.MetricsLayout)
	assert.Equal(t, 45*time.Second, cfg.ChartTimeout)
	assert.Equal(t, sanitize.ASCII, cfg.Charset)
	assert.True(t, cfg.Validate)

	full, err := cfg.withDefaults()
	require.NoError(t, err)
	assert.InDelta(t, 215.9-27, full.PageLimit, 1e-9)
}
