// Package metrics exports trajectory cost evaluation outcomes to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/behavior-planner/lanecost/planner"
)

// Outcome label values.
const (
	OutcomeScored        = "scored"
	OutcomeMalformed     = "malformed_trajectory"
	OutcomeInvalidConfig = "invalid_config"
	OutcomeError         = "error"
)

// totalCostLabel is the cost label used for the aggregated total.
const totalCostLabel = "total"

// PromSink records evaluation results in Prometheus metrics.
type PromSink struct {
	evaluations *prometheus.CounterVec
	costs       *prometheus.HistogramVec
}

// NewPromSink registers evaluation metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lanecost_evaluations_total",
		Help: "Total number of candidate trajectory evaluations",
	}, []string{"outcome"})
	costs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lanecost_cost_value",
		Help:    "Weighted cost per cost function and in total",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"cost"})

	if err := reg.Register(evaluations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			evaluations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(costs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			costs = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{evaluations: evaluations, costs: costs}, nil
}

// RecordBreakdown counts a scored evaluation and observes its weighted terms.
func (s *PromSink) RecordBreakdown(bd planner.Breakdown) {
	s.evaluations.WithLabelValues(OutcomeScored).Inc()
	for _, t := range bd.Terms {
		s.costs.WithLabelValues(t.Name).Observe(t.Weighted)
	}
	s.costs.WithLabelValues(totalCostLabel).Observe(bd.Total)
}

// RecordFailure counts an evaluation that returned err.
func (s *PromSink) RecordFailure(err error) {
	s.evaluations.WithLabelValues(classify(err)).Inc()
}

// RecordResults records every ranked result.
func (s *PromSink) RecordResults(results []planner.Result) {
	for _, r := range results {
		if r.Err != nil {
			s.RecordFailure(r.Err)
			continue
		}
		s.RecordBreakdown(r.Breakdown)
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, planner.ErrMalformedTrajectory):
		return OutcomeMalformed
	case errors.Is(err, planner.ErrInvalidConfig):
		return OutcomeInvalidConfig
	default:
		return OutcomeError
	}
}
