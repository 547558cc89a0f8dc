package report

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Build outcomes used as the status label of portfolio_report_builds_total.
const (
	buildOK      = "ok"
	buildPartial = "partial"
	buildEmpty   = "empty"
	buildFailed  = "failed"
)

// BuildMetrics holds the Prometheus collectors updated by a Builder. A nil
// *BuildMetrics is valid and records nothing.
type BuildMetrics struct {
	builds   *prometheus.CounterVec
	charts   *prometheus.CounterVec
	duration prometheus.Histogram
	pages    prometheus.Histogram
}

// NewBuildMetrics creates the report collectors and registers them with
// reg. Collectors already registered under the same names are reused, so
// several builders can share one registry.
func NewBuildMetrics(reg prometheus.Registerer) (*BuildMetrics, error) {
	m := &BuildMetrics{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_report_builds_total",
				Help: "Total number of report builds by outcome",
			},
			[]string{"status"},
		),
		charts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_report_charts_total",
				Help: "Total number of charts processed by outcome",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portfolio_report_build_duration_seconds",
				Help:    "Report build duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		pages: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portfolio_report_pages",
				Help:    "Number of pages per built report",
				Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 24},
			},
		),
	}

	var err error
	if m.builds, err = register(reg, m.builds); err != nil {
		return nil, err
	}
	if m.charts, err = register(reg, m.charts); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.pages, err = register(reg, m.pages); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

func (m *BuildMetrics) observeBuild(status string, seconds float64, pages int) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(status).Inc()
	m.duration.Observe(seconds)
	if pages > 0 {
		m.pages.Observe(float64(pages))
	}
}

func (m *BuildMetrics) observeChart(status ChartStatus) {
	if m == nil {
		return
	}
	m.charts.WithLabelValues(string(status)).Inc()
}
