package planner

import "sync"

// stubVehicle is a Vehicle with fixed per-lane kinematics.
type stubVehicle struct {
	goalLane int
	goalS    float64
	lanes    map[int]Kinematics // missing lanes return defaultK
	defaultK Kinematics
	err      error

	mu    sync.Mutex
	calls []int // lanes queried, in order
}

func (s *stubVehicle) GoalLane() int  { return s.goalLane }
func (s *stubVehicle) GoalS() float64 { return s.goalS }

func (s *stubVehicle) Kinematics(_ Predictions, lane int) (Kinematics, error) {
	s.mu.Lock()
	s.calls = append(s.calls, lane)
	s.mu.Unlock()
	if s.err != nil {
		return Kinematics{}, s.err
	}
	if k, ok := s.lanes[lane]; ok {
		return k, nil
	}
	return s.defaultK, nil
}

// traj builds a two-state trajectory whose final state is (m, lane, s).
func traj(m Maneuver, lane int, s float64) Trajectory {
	return Trajectory{
		{Maneuver: ConstantSpeed, Lane: lane, S: 0},
		{Maneuver: m, Lane: lane, S: s},
	}
}
