package trace

// TraceLevel selects whether candidate evaluations are recorded.
type TraceLevel string

const (
	// TraceLevelNone records nothing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions keeps one record per evaluated candidate.
	TraceLevelDecisions TraceLevel = "decisions"
)

// knownTraceLevels lists the --trace values the CLI accepts.
var knownTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // same as none
}

// IsValidTraceLevel reports whether level names a known trace level.
func IsValidTraceLevel(level string) bool {
	return knownTraceLevels[TraceLevel(level)]
}

// DecisionTrace collects evaluation records for one planning cycle.
type DecisionTrace struct {
	Level   TraceLevel
	Records []EvaluationRecord
}

// NewDecisionTrace creates a DecisionTrace ready for recording.
func NewDecisionTrace(level TraceLevel) *DecisionTrace {
	return &DecisionTrace{
		Level:   level,
		Records: make([]EvaluationRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (dt *DecisionTrace) Enabled() bool {
	return dt != nil && dt.Level == TraceLevelDecisions
}

// Record appends an evaluation record. No-op when tracing is disabled.
func (dt *DecisionTrace) Record(record EvaluationRecord) {
	if !dt.Enabled() {
		return
	}
	dt.Records = append(dt.Records, record)
}
