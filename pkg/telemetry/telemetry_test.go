package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/report"
)

func TestNewTracing_RequiresEndpoint(t *testing.T) {
	_, err := NewTracing(TracingOptions{})
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

// The gRPC connection is established lazily, so the exporter can be built
// without a collector listening.
func TestNewTracing_Defaults(t *testing.T) {
	tr, err := NewTracing(TracingOptions{
		Endpoint:        "127.0.0.1:1",
		Insecure:        true,
		ShutdownTimeout: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, defaults.ToolName, tr.ServiceName())
	assert.Equal(t, "127.0.0.1:1", tr.Endpoint())

	_, span := tr.Tracer("test").Start(context.Background(), "build")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	// Flushing to an unreachable collector fails or times out but returns.
	done := make(chan struct{})
	go func() {
		_ = tr.Shutdown(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not honour its timeout")
	}
}

func TestMetrics_WriteFile(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	b, err := report.NewBuilder(report.Config{}, nil, report.WithMetrics(m.Report))
	require.NoError(t, err)
	_, err = b.Build(context.Background(), &report.Payload{Stats: "n=1"}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `portfolio_report_builds_total{status="ok"} 1`)
	assert.Contains(t, text, "portfolio_report_build_duration_seconds_count 1")
	assert.Contains(t, text, "go_goroutines")
}

func TestMetrics_WriteFileBadPath(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	assert.Error(t, m.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}
