package planner

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// weightedCost binds a cost function to its weight so the two cannot drift apart.
type weightedCost struct {
	name   string
	weight float64
	fn     CostFunction
}

// TermCost is one cost function's contribution to a total.
type TermCost struct {
	Name     string
	Weight   float64
	Cost     float64 // unweighted
	Weighted float64 // Weight * Cost
}

// Breakdown is a fully itemized evaluation of one trajectory.
type Breakdown struct {
	Features Features
	Terms    []TermCost // in weight-table order
	Total    float64
}

// Evaluator sums weighted cost functions into a total cost per trajectory.
// It is immutable after construction and safe for concurrent use.
type Evaluator struct {
	terms []weightedCost
}

// NewEvaluator builds an Evaluator from a weight table. A nil or empty table
// selects DefaultCostConfigs.
func NewEvaluator(configs []CostConfig) (*Evaluator, error) {
	if len(configs) == 0 {
		configs = DefaultCostConfigs()
	}
	if err := ValidateCostConfigs(configs); err != nil {
		return nil, err
	}
	terms := make([]weightedCost, len(configs))
	for i, c := range configs {
		terms[i] = weightedCost{name: c.Name, weight: c.Weight, fn: newCostFunction(c.Name)}
	}
	return &Evaluator{terms: terms}, nil
}

// NewEvaluatorWith builds an Evaluator from caller-supplied cost functions,
// keyed by each function's Name. Used to plug in cost functions that are not
// in the built-in registry.
func NewEvaluatorWith(weights map[string]float64, fns ...CostFunction) (*Evaluator, error) {
	terms := make([]weightedCost, 0, len(fns))
	seen := make(map[string]bool, len(fns))
	for _, fn := range fns {
		name := fn.Name()
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate cost %q", ErrInvalidConfig, name)
		}
		seen[name] = true
		w, ok := weights[name]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for cost %q", ErrInvalidConfig, name)
		}
		if err := ValidateWeight(name, w); err != nil {
			return nil, err
		}
		terms = append(terms, weightedCost{name: name, weight: w, fn: fn})
	}
	if len(weights) != len(terms) {
		return nil, fmt.Errorf("%w: %d weights given for %d cost functions", ErrInvalidConfig, len(weights), len(terms))
	}
	return &Evaluator{terms: terms}, nil
}

// Configs returns the evaluator's weight table.
func (e *Evaluator) Configs() []CostConfig {
	out := make([]CostConfig, len(e.terms))
	for i, t := range e.terms {
		out[i] = CostConfig{Name: t.name, Weight: t.weight}
	}
	return out
}

// CalculateCost returns the total weighted cost of traj.
func (e *Evaluator) CalculateCost(v Vehicle, traj Trajectory, preds Predictions) (float64, error) {
	bd, err := e.Breakdown(v, traj, preds)
	if err != nil {
		return 0, err
	}
	return bd.Total, nil
}

// Breakdown evaluates traj and itemizes each cost function's contribution.
// Features are extracted once and shared by every cost function.
func (e *Evaluator) Breakdown(v Vehicle, traj Trajectory, preds Predictions) (Breakdown, error) {
	f, err := ExtractFeatures(v, traj)
	if err != nil {
		return Breakdown{}, err
	}
	if f.EndDistanceToGoal < Epsilon {
		logrus.Debugf("trajectory ends %.3f from goal; distance floored at %v", f.EndDistanceToGoal, Epsilon)
	}

	bd := Breakdown{Features: f, Terms: make([]TermCost, len(e.terms))}
	weighted := make([]float64, len(e.terms))
	for i, t := range e.terms {
		c, err := t.fn.Evaluate(v, traj, preds, f)
		if err != nil {
			return Breakdown{}, fmt.Errorf("cost %q: %w", t.name, err)
		}
		weighted[i] = t.weight * c
		bd.Terms[i] = TermCost{Name: t.name, Weight: t.weight, Cost: c, Weighted: weighted[i]}
		logrus.Debugf("%s cost for trajectory: %v (weight %v)", t.name, c, t.weight)
	}
	bd.Total = sumAscending(weighted)
	return bd, nil
}

// sumAscending sums xs smallest-first so the total does not depend on the
// order cost functions were registered in. xs is sorted in place.
func sumAscending(xs []float64) float64 {
	sort.Float64s(xs)
	return floats.Sum(xs)
}
