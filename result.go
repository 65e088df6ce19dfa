package filtereval

// ComparisonResult pairs an original waveform with one filter's output.
// Filtered always has the same length and sample rate as Original.
type ComparisonResult struct {
	Name       string
	Original   Waveform
	Filtered   Waveform
	Adjustment LengthAdjustment
	Metrics    []MetricValue
}

// Metric returns the value of the named metric, if it was computed.
func (r *ComparisonResult) Metric(name string) (float64, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// ComparisonSet is an insertion-ordered mapping from filter name to result.
type ComparisonSet struct {
	results []*ComparisonResult
	index   map[string]int
}

func newComparisonSet(capacity int) *ComparisonSet {
	return &ComparisonSet{
		results: make([]*ComparisonResult, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (s *ComparisonSet) add(r *ComparisonResult) {
	s.index[r.Name] = len(s.results)
	s.results = append(s.results, r)
}

// Len returns the number of results.
func (s *ComparisonSet) Len() int { return len(s.results) }

// Names returns the filter names in insertion order.
func (s *ComparisonSet) Names() []string {
	names := make([]string, len(s.results))
	for i, r := range s.results {
		names[i] = r.Name
	}
	return names
}

// Get returns the result for name.
func (s *ComparisonSet) Get(name string) (*ComparisonResult, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.results[i], true
}

// Results returns the results in insertion order.
func (s *ComparisonSet) Results() []*ComparisonResult {
	out := make([]*ComparisonResult, len(s.results))
	copy(out, s.results)
	return out
}
