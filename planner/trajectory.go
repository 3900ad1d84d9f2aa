package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTrajectory is returned when a trajectory does not carry a final state.
	ErrMalformedTrajectory = errors.New("malformed trajectory")
	// ErrInvalidConfig is returned for degenerate planner setup (zero goal, bad weights).
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Maneuver is a behavior-planner state tag.
type Maneuver string

const (
	// KeepLane stays in the current lane.
	KeepLane Maneuver = "KL"
	// PrepareLaneChangeLeft signals intent to move one lane left.
	PrepareLaneChangeLeft Maneuver = "PLCL"
	// PrepareLaneChangeRight signals intent to move one lane right.
	PrepareLaneChangeRight Maneuver = "PLCR"
	// LaneChangeLeft executes a left lane change.
	LaneChangeLeft Maneuver = "LCL"
	// LaneChangeRight executes a right lane change.
	LaneChangeRight Maneuver = "LCR"
	// ConstantSpeed holds speed and lane; the planner's initial state.
	ConstantSpeed Maneuver = "CS"
)

// validManeuvers maps maneuver tags to validity. Unexported to prevent mutation.
var validManeuvers = map[Maneuver]bool{
	KeepLane:               true,
	PrepareLaneChangeLeft:  true,
	PrepareLaneChangeRight: true,
	LaneChangeLeft:         true,
	LaneChangeRight:        true,
	ConstantSpeed:          true,
}

// IsValidManeuver returns true if name is a recognized maneuver tag.
func IsValidManeuver(name string) bool { return validManeuvers[Maneuver(name)] }

// LaneOffset is the lane index change implied by a prepare-lane-change tag.
// Lane indices grow to the left.
func (m Maneuver) LaneOffset() int {
	switch m {
	case PrepareLaneChangeLeft:
		return 1
	case PrepareLaneChangeRight:
		return -1
	default:
		return 0
	}
}

// PlannerState is one state of a candidate trajectory.
// V and A are carried for callers that track them; the cost model reads only
// Maneuver, Lane and S.
type PlannerState struct {
	Maneuver Maneuver
	Lane     int
	S        float64
	V        float64
	A        float64
}

// Trajectory is an ordered (previous, final) pair of planner states.
type Trajectory []PlannerState

// Final returns the trajectory's final planned state.
func (t Trajectory) Final() (PlannerState, error) {
	if len(t) < 2 {
		return PlannerState{}, fmt.Errorf("%w: trajectory has %d states, need 2", ErrMalformedTrajectory, len(t))
	}
	return t[1], nil
}
