package trace

import "math"

// TraceSummary aggregates statistics from a DecisionTrace.
type TraceSummary struct {
	Candidates int
	Failed     int
	BestID     string
	BestCost   float64
	MeanCost   float64
	Margin     float64            // second-best total minus best total; 0 with fewer than two scored
	ByManeuver map[string]float64 // maneuver → lowest total among its candidates
}

// Summarize computes aggregate statistics from a DecisionTrace.
// Safe for nil or empty traces (returns zero-value fields).
// Ties for best go to the earliest record.
func Summarize(dt *DecisionTrace) *TraceSummary {
	summary := &TraceSummary{
		ByManeuver: make(map[string]float64),
	}
	if dt == nil {
		return summary
	}

	summary.Candidates = len(dt.Records)
	best, second := math.Inf(1), math.Inf(1)
	scored := 0
	total := 0.0
	for _, r := range dt.Records {
		if r.Failed() {
			summary.Failed++
			continue
		}
		scored++
		total += r.Total
		if prev, ok := summary.ByManeuver[r.Maneuver]; !ok || r.Total < prev {
			summary.ByManeuver[r.Maneuver] = r.Total
		}
		switch {
		case r.Total < best:
			second = best
			best = r.Total
			summary.BestID = r.CandidateID
		case r.Total < second:
			second = r.Total
		}
	}

	if scored > 0 {
		summary.BestCost = best
		summary.MeanCost = total / float64(scored)
	}
	if scored > 1 {
		summary.Margin = second - best
	}
	return summary
}
