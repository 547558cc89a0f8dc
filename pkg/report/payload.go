package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/shopspring/decimal"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/iohelper"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/jsonutil"
)

// Payload is the analysis content of one report. Every field is optional.
type Payload struct {
	AdvisorNote    string     `json:"advisor_note,omitempty"`
	Metrics        Metrics    `json:"metrics,omitempty"`
	Diagnosis      *Diagnosis `json:"ai_diagnosis,omitempty"`
	DetailedReview string     `json:"detailed_review,omitempty"`
	FactorComment  string     `json:"factor_comment,omitempty"`
	MCStats        string     `json:"mc_stats,omitempty"`
	Stats          string     `json:"stats,omitempty"`
}

// Diagnosis is the AI-generated assessment block.
type Diagnosis struct {
	Status string `json:"status,omitempty"`
	Risk   string `json:"risk,omitempty"`
	Action string `json:"action,omitempty"`
}

// IsEmpty reports whether the diagnosis has no text at all.
func (d *Diagnosis) IsEmpty() bool {
	return d == nil || blank(d.Status) && blank(d.Risk) && blank(d.Action)
}

// IsEmpty reports whether p carries nothing to render. A nil payload is
// empty.
func (p *Payload) IsEmpty() bool {
	if p == nil {
		return true
	}
	return blank(p.AdvisorNote) &&
		len(p.Metrics) == 0 &&
		p.Diagnosis.IsEmpty() &&
		blank(p.DetailedReview) &&
		blank(p.FactorComment) &&
		blank(p.MCStats) &&
		blank(p.Stats)
}

// ReadPayload decodes one JSON payload from r. Payloads larger than
// iohelper.MaxPayloadSize are rejected.
func ReadPayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := jsonutil.UnmarshalRead(iohelper.LimitReader(r, iohelper.MaxPayloadSize), &p); err != nil {
		return nil, fmt.Errorf("report: decode payload: %w", err)
	}
	return &p, nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Metric is one named key metric.
type Metric struct {
	Name  string
	Value string
}

// Metrics is an ordered list of key metrics. In JSON it is an object whose
// key order is preserved.
type Metrics []Metric

// Get returns the value of the first metric named name.
func (m Metrics) Get(name string) (string, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns the metrics as label/value pairs for rendering.
func (m Metrics) Entries() []Entry {
	out := make([]Entry, 0, len(m))
	for _, e := range m {
		out = append(out, Entry{Label: e.Name, Value: e.Value})
	}
	return out
}

// MarshalJSONTo writes the metrics as a JSON object in order.
func (m Metrics) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, e := range m {
		if err := enc.WriteToken(jsontext.String(e.Name)); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String(e.Value)); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// UnmarshalJSONFrom reads a JSON object keeping key order. Strings are
// taken as-is, numbers are normalized through decimal so 0.10 and 1e-1 both
// read "0.1", null reads "N/A", and nested values are kept as compact JSON.
func (m *Metrics) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case 'n':
		*m = nil
		return nil
	case '{':
	default:
		return fmt.Errorf("report: metrics must be a JSON object, got %v", tok.Kind())
	}

	out := Metrics{}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		name := tok.String() // tok is invalidated by the next read
		val, err := dec.ReadValue()
		if err != nil {
			return err
		}
		text, err := metricText(val)
		if err != nil {
			return fmt.Errorf("report: metric %q: %w", name, err)
		}
		out = append(out, Metric{Name: name, Value: text})
	}
	if _, err := dec.ReadToken(); err != nil {
		return err
	}
	*m = out
	return nil
}

func metricText(v jsontext.Value) (string, error) {
	switch v.Kind() {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case '0':
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return "", err
		}
		return d.String(), nil
	case 'n':
		return "N/A", nil
	default:
		c := v.Clone()
		if err := c.Compact(); err != nil {
			return "", err
		}
		return string(c), nil
	}
}

// Entry is one row of a label/value block.
type Entry struct {
	Label string
	Value string
}
