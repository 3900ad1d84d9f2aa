package metrics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behavior-planner/lanecost/planner"
)

func TestPromSink_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	sink.RecordBreakdown(planner.Breakdown{
		Terms: []planner.TermCost{{Name: planner.GoalDistanceName, Weighted: 0.05}},
		Total: 0.05,
	})
	sink.RecordFailure(fmt.Errorf("wrapped: %w", planner.ErrMalformedTrajectory))
	sink.RecordFailure(planner.ErrInvalidConfig)
	sink.RecordFailure(fmt.Errorf("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeMalformed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeInvalidConfig)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeError)))
	assert.Equal(t, 2, testutil.CollectAndCount(sink.costs))
}

func TestPromSink_EvaluationsCounter_LabelledByOutcomeOnly(t *testing.T) {
	sink, err := NewPromSink(prometheus.NewRegistry())
	require.NoError(t, err)
	sink.RecordBreakdown(planner.Breakdown{Total: 0.1})
	sink.RecordFailure(planner.ErrInvalidConfig)

	expected := `
# HELP lanecost_evaluations_total Total number of candidate trajectory evaluations
# TYPE lanecost_evaluations_total counter
lanecost_evaluations_total{outcome="invalid_config"} 1
lanecost_evaluations_total{outcome="scored"} 1
`
	require.NoError(t, testutil.CollectAndCompare(sink.evaluations, strings.NewReader(expected), "lanecost_evaluations_total"))
}

func TestPromSink_RecordResults(t *testing.T) {
	sink, err := NewPromSink(prometheus.NewRegistry())
	require.NoError(t, err)

	sink.RecordResults([]planner.Result{
		{Breakdown: planner.Breakdown{Total: 0.2}},
		{Err: planner.ErrMalformedTrajectory},
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.evaluations.WithLabelValues(OutcomeMalformed)))
}

func TestNewPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSink(reg)
	require.NoError(t, err)
	second, err := NewPromSink(reg)
	require.NoError(t, err)

	first.RecordFailure(planner.ErrInvalidConfig)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.evaluations.WithLabelValues(OutcomeInvalidConfig)))
}
