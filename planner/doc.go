// Package planner provides the trajectory cost model for a lane-change behavior planner.
//
// # Reading Guide
//
// Start with these files to understand how a candidate trajectory is scored:
//   - trajectory.go: maneuver tags, planner states and the Trajectory contract
//   - features.go: intent metadata derived from a trajectory's final state
//   - cost_functions.go: the CostFunction interface and built-in heuristics
//   - evaluator.go: weighted aggregation of cost functions into one total
//
// # Architecture
//
// The planner package defines the cost model and its data contracts; supporting
// code lives in sub-packages:
//   - planner/scenario/: YAML scenario files (ego, traffic, candidates, weights)
//   - planner/trace/: per-candidate decision records and summaries
//   - planner/metrics/: Prometheus sink for evaluation outcomes
//
// # Key Interfaces
//
//   - Vehicle: goal lane, goal position and achievable kinematics per lane
//   - CostFunction: evaluate(vehicle, trajectory, predictions, features) → cost ≥ 0
//
// Every operation is a pure function of its arguments. An Evaluator is immutable
// once built and may be shared across goroutines.
package planner
