package report

// Chart is one named chart handle. The handle is opaque to the report and
// only handed to the rasterizer.
type Chart struct {
	Key    string
	Handle any
}

// ChartSet is an ordered collection of charts keyed by name.
type ChartSet []Chart

// Add sets the handle for key, replacing an earlier entry in place.
func (s *ChartSet) Add(key string, handle any) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Handle = handle
			return
		}
	}
	*s = append(*s, Chart{Key: key, Handle: handle})
}

// Len returns the number of charts with a non-nil handle.
func (s ChartSet) Len() int {
	n := 0
	for _, c := range s {
		if c.Handle != nil {
			n++
		}
	}
	return n
}

// Ordered returns the charts in render order: keys named in priority
// first, in that order, then the remaining keys in insertion order. Charts
// with a nil handle are skipped.
func (s ChartSet) Ordered(priority []string) []Chart {
	out := make([]Chart, 0, len(s))
	taken := make(map[string]bool, len(s))
	for _, key := range priority {
		for _, c := range s {
			if c.Key == key && c.Handle != nil && !taken[key] {
				out = append(out, c)
				taken[key] = true
			}
		}
	}
	for _, c := range s {
		if c.Handle != nil && !taken[c.Key] {
			out = append(out, c)
			taken[c.Key] = true
		}
	}
	return out
}
