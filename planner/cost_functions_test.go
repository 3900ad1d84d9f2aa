package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalDistance(t *testing.T, goalLane int, goalS float64, tr Trajectory) float64 {
	t.Helper()
	v := &stubVehicle{goalLane: goalLane, goalS: goalS}
	f, err := ExtractFeatures(v, tr)
	require.NoError(t, err)
	c, err := GoalDistanceCost{}.Evaluate(v, tr, nil, f)
	require.NoError(t, err)
	return c
}

func TestGoalDistanceCost_KeepLaneInGoalLane_Zero(t *testing.T) {
	assert.Equal(t, 0.0, goalDistance(t, 0, 100, traj(KeepLane, 0, 90)))
}

func TestGoalDistanceCost_PrepareLeftAwayFromGoal(t *testing.T) {
	// intended=1, final=0, lane delta 1, 10 m to goal → 0.5 / 10
	assert.InDelta(t, 0.05, goalDistance(t, 0, 100, traj(PrepareLaneChangeLeft, 0, 90)), 1e-12)
}

func TestGoalDistanceCost_AtGoal_EpsilonFloor(t *testing.T) {
	// lane delta 2 at the goal → 1 / 0.01
	c := goalDistance(t, 0, 100, traj(KeepLane, 1, 100))
	assert.InDelta(t, 100.0, c, 1e-9)
}

func TestGoalDistanceCost_PastGoal_FinitePositive(t *testing.T) {
	c := goalDistance(t, 2, 100, traj(KeepLane, 0, 250))
	assert.False(t, math.IsInf(c, 0) || math.IsNaN(c))
	assert.InDelta(t, 2/Epsilon, c, 1e-9)
}

func TestGoalDistanceCost_DecreasesWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for _, s := range []float64{99, 90, 50, 0, -1000, -1e6} {
		c := goalDistance(t, 0, 100, traj(PrepareLaneChangeLeft, 1, s))
		assert.GreaterOrEqual(t, c, 0.0)
		assert.Less(t, c, prev, "s=%v", s)
		prev = c
	}
	assert.Less(t, prev, 1e-5, "cost approaches zero far from the goal")
}

func TestInefficiencyCost_AveragesIntendedAndFinalLanes(t *testing.T) {
	// GIVEN lane 0 projects to 70 and lane 1 projects to 92 with goal_s 100
	v := &stubVehicle{
		goalS: 100,
		lanes: map[int]Kinematics{
			0: {Position: 50, Velocity: 10},
			1: {Position: 50, Velocity: 20, Acceleration: 1},
		},
	}
	tr := traj(PrepareLaneChangeLeft, 0, 50)
	f, err := ExtractFeatures(v, tr)
	require.NoError(t, err)

	// WHEN evaluated
	c, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, tr, nil, f)

	// THEN cost = (8 + 30) / 2 / 100
	require.NoError(t, err)
	assert.InDelta(t, 0.19, c, 1e-12)
	assert.Equal(t, []int{1, 0}, v.calls, "intended lane first, then final lane")
}

func TestInefficiencyCost_OvershootClampedToZero(t *testing.T) {
	v := &stubVehicle{goalS: 100, defaultK: Kinematics{Position: 95, Velocity: 10}}
	tr := traj(KeepLane, 0, 95)
	f, err := ExtractFeatures(v, tr)
	require.NoError(t, err)
	c, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, tr, nil, f)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)
}

func TestInefficiencyCost_BoundedInUnitInterval(t *testing.T) {
	for _, pos := range []float64{0, 10, 60, 99, 150} {
		v := &stubVehicle{goalS: 100, defaultK: Kinematics{Position: pos}}
		tr := traj(KeepLane, 0, 0)
		f, err := ExtractFeatures(v, tr)
		require.NoError(t, err)
		c, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, tr, nil, f)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
}

func TestInefficiencyCost_ZeroGoal_InvalidConfig(t *testing.T) {
	v := &stubVehicle{goalS: 0}
	_, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, traj(KeepLane, 0, 0), nil, Features{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "goal_s")
}

func TestInefficiencyCost_NonPositiveOrNonFiniteGoal_InvalidConfig(t *testing.T) {
	for _, goalS := range []float64{-50, -1e-9, math.NaN(), math.Inf(1), math.Inf(-1)} {
		v := &stubVehicle{goalS: goalS, defaultK: Kinematics{Position: -100}}
		_, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, traj(KeepLane, 0, -100), nil, Features{})
		assert.ErrorIs(t, err, ErrInvalidConfig, "goal_s=%v", goalS)
	}
}

func TestInefficiencyCost_KinematicsErrorPropagates(t *testing.T) {
	boom := errors.New("no lane 7")
	v := &stubVehicle{goalS: 100, err: boom}
	_, err := InefficiencyCost{Horizon: Horizon}.Evaluate(v, traj(KeepLane, 7, 0), nil, Features{IntendedLane: 7, FinalLane: 7})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "lane 7")
}

func TestValidCostNames_SortedAndRegistered(t *testing.T) {
	names := ValidCostNames()
	assert.Equal(t, []string{GoalDistanceName, InefficiencyName}, names)
	for _, n := range names {
		assert.True(t, IsValidCost(n))
		assert.Equal(t, n, newCostFunction(n).Name())
	}
	assert.False(t, IsValidCost("speed"))
	assert.Panics(t, func() { newCostFunction("speed") })
}
