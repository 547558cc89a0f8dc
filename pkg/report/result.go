package report

// ChartStatus is the outcome of embedding one chart.
type ChartStatus string

const (
	ChartEmbedded ChartStatus = "embedded"
	ChartFailed   ChartStatus = "failed"
)

// ChartOutcome records what happened to one chart. Reason is for logs and
// callers only; it never appears in the document.
type ChartOutcome struct {
	Key    string      `json:"key"`
	Status ChartStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// Result is a successfully built report.
type Result struct {
	// PDF is the complete document. Never empty.
	PDF []byte `json:"-"`
	// Pages is the number of pages in the document.
	Pages int `json:"pages"`
	// ReportID is a random identifier also written to the PDF keywords.
	ReportID string `json:"report_id"`
	// Empty is set when the payload had no content and the document only
	// holds the "No Data Available" notice.
	Empty  bool           `json:"empty"`
	Charts []ChartOutcome `json:"charts,omitempty"`
}

// Status summarizes the build outcome: "empty", "partial" or "ok".
func (r *Result) Status() string {
	switch {
	case r.Empty:
		return buildEmpty
	case r.Partial():
		return buildPartial
	default:
		return buildOK
	}
}

// Partial reports whether any chart was replaced by a placeholder.
func (r *Result) Partial() bool {
	return len(r.FailedCharts()) > 0
}

// FailedCharts returns the outcomes of charts that could not be embedded.
func (r *Result) FailedCharts() []ChartOutcome {
	var out []ChartOutcome
	for _, c := range r.Charts {
		if c.Status == ChartFailed {
			out = append(out, c)
		}
	}
	return out
}
