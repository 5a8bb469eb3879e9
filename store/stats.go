package store

// Stats aggregates record counts by status label, plus the grand total.
// Total equals the sum of the per-status counts whenever the counts and the
// collection share a source of truth.
type Stats struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func newStats() Stats {
	return Stats{Counts: map[string]int{}}
}

// Clone returns an independent copy.
func (s Stats) Clone() Stats {
	ret := Stats{Counts: make(map[string]int, len(s.Counts)), Total: s.Total}
	for k, v := range s.Counts {
		ret.Counts[k] = v
	}
	return ret
}

// Count returns the count for one status label.
func (s Stats) Count(status string) int {
	return s.Counts[status]
}

// add applies a single create/delete delta: the status count and the total
// move together. Counts never go below zero even if the store briefly
// diverges from the server.
func (s *Stats) add(status string, delta int) {
	if s.Counts == nil {
		s.Counts = map[string]int{}
	}
	s.Counts[status] += delta
	s.Total += delta
	if s.Counts[status] < 0 {
		s.Counts[status] = 0
	}
	if s.Total < 0 {
		s.Total = 0
	}
}

// move applies a status-change delta: one count down, another up, total
// unchanged.
func (s *Stats) move(from, to string) {
	if from == to {
		return
	}
	if s.Counts == nil {
		s.Counts = map[string]int{}
	}
	if s.Counts[from] > 0 {
		s.Counts[from]--
	}
	s.Counts[to]++
}

// statsFromSummary builds Stats from a server-provided summary. A "total"
// key is authoritative when present; otherwise the counts are summed.
func statsFromSummary(summary map[string]int) Stats {
	ret := newStats()
	for k, v := range summary {
		if k == "total" {
			continue
		}
		ret.Counts[k] = v
		ret.Total += v
	}
	if total, ok := summary["total"]; ok {
		ret.Total = total
	}
	return ret
}
