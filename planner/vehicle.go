package planner

import "math"

// Vehicle is the ego vehicle as seen by the cost model.
type Vehicle interface {
	GoalLane() int
	GoalS() float64
	// Kinematics estimates the motion the vehicle could achieve next step if it
	// occupied lane, accounting for traffic in that lane.
	Kinematics(preds Predictions, lane int) (Kinematics, error)
}

// Ego is a reference Vehicle that follows the lane-change FSM's one-step
// kinematics: accelerate toward the target speed unless a leading vehicle in
// the lane caps it.
type Ego struct {
	Lane            int
	S               float64
	V               float64
	A               float64
	TargetSpeed     float64 // also the free-flow speed limit
	MaxAcceleration float64
	PreferredBuffer float64 // gap kept to a leading vehicle, m
	Goal            int     // goal lane
	GoalPosition    float64 // goal s
}

var _ Vehicle = (*Ego)(nil)

// GoalLane implements Vehicle.
func (e *Ego) GoalLane() int { return e.Goal }

// GoalS implements Vehicle.
func (e *Ego) GoalS() float64 { return e.GoalPosition }

// Kinematics implements Vehicle.
//
// Boxed in (leader and follower): match the leader's speed. Leader only: close
// the gap down to PreferredBuffer without exceeding the acceleration limit or
// target speed. Free lane: accelerate toward the target speed.
func (e *Ego) Kinematics(preds Predictions, lane int) (Kinematics, error) {
	maxVelAccel := e.MaxAcceleration + e.V
	var newV float64

	ahead, hasAhead := nearestInLane(preds, lane, e.S, true)
	_, hasBehind := nearestInLane(preds, lane, e.S, false)
	switch {
	case hasAhead && hasBehind:
		newV = ahead.V
	case hasAhead:
		maxVelInFront := (ahead.S - e.S - e.PreferredBuffer) + ahead.V - 0.5*e.A
		newV = math.Min(math.Min(maxVelInFront, maxVelAccel), e.TargetSpeed)
	default:
		newV = math.Min(maxVelAccel, e.TargetSpeed)
	}

	newA := newV - e.V
	return Kinematics{
		Position:     e.S + newV + newA/2,
		Velocity:     newV,
		Acceleration: newA,
	}, nil
}

// LaneSpeed returns the prevailing traffic speed in lane, or TargetSpeed when
// no traffic is observed there.
func (e *Ego) LaneSpeed(preds Predictions, lane int) float64 {
	if v, ok := LaneVelocity(preds, lane); ok {
		return v
	}
	return e.TargetSpeed
}
