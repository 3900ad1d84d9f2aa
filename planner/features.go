package planner

// Features is the intent metadata derived from a trajectory's final state.
//
// IntendedLane and FinalLane differ only while preparing a lane change, which
// lets cost functions tell planning a lane change apart from executing one.
type Features struct {
	IntendedLane      int
	FinalLane         int
	EndDistanceToGoal float64 // goal_s - final s; negative once the goal is passed
}

// ExtractFeatures derives Features for traj as driven by v.
func ExtractFeatures(v Vehicle, traj Trajectory) (Features, error) {
	last, err := traj.Final()
	if err != nil {
		return Features{}, err
	}
	return Features{
		IntendedLane:      last.Lane + last.Maneuver.LaneOffset(),
		FinalLane:         last.Lane,
		EndDistanceToGoal: v.GoalS() - last.S,
	}, nil
}
