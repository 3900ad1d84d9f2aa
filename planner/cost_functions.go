package planner

import (
	"fmt"
	"math"
	"sort"
)

// Epsilon floors the remaining distance in goal-distance cost so the cost stays
// finite and positive at and beyond the goal.
const Epsilon = 1e-2

// CostFunction scores one aspect of a candidate trajectory. Lower is better;
// implementations return a value ≥ 0.
type CostFunction interface {
	Name() string
	Evaluate(v Vehicle, traj Trajectory, preds Predictions, f Features) (float64, error)
}

// Registered cost function names.
const (
	GoalDistanceName = "goal-distance"
	InefficiencyName = "inefficiency"
)

// costFactories maps cost names to constructors. Unexported to prevent mutation.
var costFactories = map[string]func() CostFunction{
	GoalDistanceName: func() CostFunction { return GoalDistanceCost{} },
	InefficiencyName: func() CostFunction { return InefficiencyCost{Horizon: Horizon} },
}

// IsValidCost returns true if name is a registered cost function.
func IsValidCost(name string) bool {
	_, ok := costFactories[name]
	return ok
}

// ValidCostNames returns sorted registered cost function names.
func ValidCostNames() []string {
	names := make([]string, 0, len(costFactories))
	for name := range costFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newCostFunction builds the named cost function.
// Panics on unknown name (validation should catch this before reaching here).
func newCostFunction(name string) CostFunction {
	factory, ok := costFactories[name]
	if !ok {
		panic(fmt.Sprintf("unknown cost function %q", name))
	}
	return factory()
}

// GoalDistanceCost grows with the lane gap between the trajectory and the goal
// lane, and grows faster the closer the trajectory ends to the goal.
//
//	cost = ((|goal - intended| + |goal - final|) / 2) / max(distance to goal, Epsilon)
type GoalDistanceCost struct{}

// Name implements CostFunction.
func (GoalDistanceCost) Name() string { return GoalDistanceName }

// Evaluate implements CostFunction.
func (GoalDistanceCost) Evaluate(v Vehicle, _ Trajectory, _ Predictions, f Features) (float64, error) {
	goal := v.GoalLane()
	laneDelta := absInt(goal-f.IntendedLane) + absInt(goal-f.FinalLane)
	averageLaneDelta := float64(laneDelta) / 2
	return averageLaneDelta / math.Max(f.EndDistanceToGoal, Epsilon), nil
}

// InefficiencyCost prefers lanes whose traffic lets the vehicle make more
// progress over Horizon seconds. The result is the mean remaining distance to
// the goal across intended and final lanes, normalized by the goal position.
type InefficiencyCost struct {
	Horizon float64 // projection time, seconds
}

// Name implements CostFunction.
func (InefficiencyCost) Name() string { return InefficiencyName }

// Evaluate implements CostFunction.
func (c InefficiencyCost) Evaluate(v Vehicle, _ Trajectory, preds Predictions, f Features) (float64, error) {
	goalS := v.GoalS()
	if goalS <= 0 || math.IsNaN(goalS) || math.IsInf(goalS, 0) {
		return 0, fmt.Errorf("%w: %s needs a finite positive goal_s, got %v", ErrInvalidConfig, InefficiencyName, goalS)
	}
	intended, err := c.remaining(v, preds, f.IntendedLane, goalS)
	if err != nil {
		return 0, err
	}
	final, err := c.remaining(v, preds, f.FinalLane, goalS)
	if err != nil {
		return 0, err
	}
	return (intended + final) / 2 / goalS, nil
}

// remaining is the distance left to goalS after Horizon seconds in lane; overshoot counts as 0.
func (c InefficiencyCost) remaining(v Vehicle, preds Predictions, lane int, goalS float64) (float64, error) {
	k, err := v.Kinematics(preds, lane)
	if err != nil {
		return 0, fmt.Errorf("kinematics for lane %d: %w", lane, err)
	}
	return math.Max(goalS-k.ProjectedPosition(c.Horizon), 0), nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
