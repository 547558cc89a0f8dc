package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/report"
)

// Metrics bundles a private registry with the report collectors.
type Metrics struct {
	Registry *prometheus.Registry
	Report   *report.BuildMetrics
}

// NewMetrics creates a registry holding the report collectors plus the Go
// runtime collector. The default registry is left untouched.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("telemetry: register go collector: %w", err)
	}
	rm, err := report.NewBuildMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: register report metrics: %w", err)
	}
	return &Metrics{Registry: reg, Report: rm}, nil
}

// WriteFile writes the current metrics in the Prometheus text format, for
// pickup by the node exporter textfile collector. The file is replaced
// atomically.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("telemetry: write metrics: %w", err)
	}
	return nil
}
