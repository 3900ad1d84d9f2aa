// Package trace provides decision-trace recording for trajectory cost evaluation.
// It has no dependencies on planner/ and stores pure data types.
package trace

// EvaluationRecord captures the cost evaluation of a single candidate trajectory.
type EvaluationRecord struct {
	CandidateID  string
	Maneuver     string
	IntendedLane int
	FinalLane    int
	Total        float64
	Terms        map[string]float64 // cost name → weighted contribution (nil on failure)
	Err          string             // empty when the candidate was scored
}

// Failed reports whether the candidate could not be scored.
func (r EvaluationRecord) Failed() bool { return r.Err != "" }
