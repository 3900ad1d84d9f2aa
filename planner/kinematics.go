package planner

// Horizon is the look-ahead time (seconds) used when projecting a vehicle's
// position for cost evaluation.
const Horizon = 2.0

// Kinematics is the achievable motion state of a vehicle in a given lane.
type Kinematics struct {
	Position     float64 // longitudinal position s, m
	Velocity     float64 // m/s
	Acceleration float64 // m/s²
}

// PositionAt returns the position reached after t seconds under constant acceleration.
func PositionAt(position, velocity, acceleration, t float64) float64 {
	return position + velocity*t + 0.5*acceleration*t*t
}

// ProjectedPosition projects k forward by t seconds.
func (k Kinematics) ProjectedPosition(t float64) float64 {
	return PositionAt(k.Position, k.Velocity, k.Acceleration, t)
}
