package main

import (
	"fmt"
	"os"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/config"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/iohelper"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/rasterize"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/report"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/ui"
)

// loadCharts turns -chart flags into chart handles. Image files are passed
// by path and decoded by the rasterizer; markup is read up front so a
// missing file is reported before the build starts.
func loadCharts(flags config.ChartFlags) (report.ChartSet, error) {
	var set report.ChartSet
	for _, f := range flags {
		switch f.Kind() {
		case "html", "svg":
			data, err := iohelper.ReadFile(f.Path, iohelper.MaxChartSize)
			if err != nil {
				return nil, fmt.Errorf("chart %s: %w", f.Key, err)
			}
			if f.Kind() == "html" {
				set.Add(f.Key, rasterize.HTML(data))
			} else {
				set.Add(f.Key, rasterize.SVG(data))
			}
		default:
			if _, err := os.Stat(f.Path); err != nil {
				return nil, fmt.Errorf("chart %s: %w", f.Key, err)
			}
			set.Add(f.Key, rasterize.File(f.Path))
		}
	}
	return set, nil
}

func needsBrowser(flags config.ChartFlags) bool {
	for _, f := range flags {
		if f.Kind() != "image" {
			return true
		}
	}
	return false
}

// summary is the -json output.
type summary struct {
	Output   string                `json:"output"`
	ReportID string                `json:"report_id"`
	Status   string                `json:"status"`
	Pages    int                   `json:"pages"`
	Bytes    int                   `json:"bytes"`
	Charts   []report.ChartOutcome `json:"charts,omitempty"`
}

func newSummary(output string, res *report.Result) summary {
	return summary{
		Output:   output,
		ReportID: res.ReportID,
		Status:   res.Status(),
		Pages:    res.Pages,
		Bytes:    len(res.PDF),
		Charts:   res.Charts,
	}
}

func summaryView(output string, res *report.Result) ui.Summary {
	s := ui.Summary{
		Output:   output,
		ReportID: res.ReportID,
		Status:   res.Status(),
		Pages:    res.Pages,
		Bytes:    len(res.PDF),
		Charts:   len(res.Charts),
	}
	for _, c := range res.FailedCharts() {
		s.Failed = append(s.Failed, c.Key)
	}
	return s
}
