// Package scenario loads planning scenarios (ego vehicle, traffic predictions,
// candidate trajectories and cost weights) from YAML files.
package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/behavior-planner/lanecost/planner"
)

// Scenario is the top-level scenario file.
// Loaded from YAML via Load(path).
type Scenario struct {
	Version     string               `yaml:"version"`
	Ego         EgoSpec              `yaml:"ego"`
	Predictions []VehicleSpec        `yaml:"predictions"`
	Candidates  []CandidateSpec      `yaml:"candidates"`
	Costs       []planner.CostConfig `yaml:"costs,omitempty"` // empty = default weight table
}

// EgoSpec describes the ego vehicle.
type EgoSpec struct {
	Lane            int     `yaml:"lane"`
	S               float64 `yaml:"s"`
	V               float64 `yaml:"v"`
	A               float64 `yaml:"a"`
	TargetSpeed     float64 `yaml:"target_speed"`
	MaxAcceleration float64 `yaml:"max_acceleration"`
	PreferredBuffer float64 `yaml:"preferred_buffer"`
	GoalLane        int     `yaml:"goal_lane"`
	GoalS           float64 `yaml:"goal_s"`
}

// VehicleSpec is one traffic vehicle's predicted states, nearest-term first.
type VehicleSpec struct {
	ID     int              `yaml:"id"`
	States []PredictionSpec `yaml:"states"`
}

// PredictionSpec is one predicted traffic state.
type PredictionSpec struct {
	Lane int     `yaml:"lane"`
	S    float64 `yaml:"s"`
	V    float64 `yaml:"v"`
}

// CandidateSpec is a candidate trajectory.
type CandidateSpec struct {
	ID     string      `yaml:"id"`
	States []StateSpec `yaml:"states"`
}

// StateSpec is one planner state of a candidate trajectory.
type StateSpec struct {
	State string  `yaml:"state"`
	Lane  int     `yaml:"lane"`
	S     float64 `yaml:"s"`
	V     float64 `yaml:"v,omitempty"`
	A     float64 `yaml:"a,omitempty"`
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario document with strict field checking.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Version == "" {
		s.Version = "1"
	}
	if s.Version != "1" {
		logrus.Warnf("scenario version %q is newer than this build understands; parsing as version 1", s.Version)
	}
	return &s, nil
}

// Validate checks that all fields in the scenario are valid.
func (s *Scenario) Validate() error {
	if err := validateFinite("ego", s.Ego.S, s.Ego.V, s.Ego.A, s.Ego.TargetSpeed, s.Ego.MaxAcceleration, s.Ego.PreferredBuffer); err != nil {
		return err
	}
	if math.IsNaN(s.Ego.GoalS) || math.IsInf(s.Ego.GoalS, 0) || s.Ego.GoalS <= 0 {
		return fmt.Errorf("%w: ego.goal_s must be a finite positive number, got %v", planner.ErrInvalidConfig, s.Ego.GoalS)
	}

	ids := make(map[int]bool, len(s.Predictions))
	for i, v := range s.Predictions {
		prefix := fmt.Sprintf("predictions[%d]", i)
		if v.ID == planner.EgoID {
			return fmt.Errorf("%s: id %d is reserved for the ego vehicle", prefix, planner.EgoID)
		}
		if ids[v.ID] {
			return fmt.Errorf("%s: duplicate vehicle id %d", prefix, v.ID)
		}
		ids[v.ID] = true
		if len(v.States) == 0 {
			return fmt.Errorf("%s: at least one predicted state required", prefix)
		}
		for j, p := range v.States {
			if err := validateFinite(fmt.Sprintf("%s.states[%d]", prefix, j), p.S, p.V); err != nil {
				return err
			}
		}
	}

	if len(s.Candidates) == 0 {
		return fmt.Errorf("at least one candidate trajectory required")
	}
	names := make(map[string]bool, len(s.Candidates))
	for i, c := range s.Candidates {
		prefix := fmt.Sprintf("candidates[%d]", i)
		if c.ID == "" {
			return fmt.Errorf("%s: id required", prefix)
		}
		if names[c.ID] {
			return fmt.Errorf("%s: duplicate candidate id %q", prefix, c.ID)
		}
		names[c.ID] = true
		for j, st := range c.States {
			if !planner.IsValidManeuver(st.State) {
				return fmt.Errorf("%s.states[%d]: unknown state %q; valid: KL, PLCL, PLCR, LCL, LCR, CS", prefix, j, st.State)
			}
			if err := validateFinite(fmt.Sprintf("%s.states[%d]", prefix, j), st.S, st.V, st.A); err != nil {
				return err
			}
		}
	}
	return planner.ValidateCostConfigs(s.Costs)
}

// Vehicle returns the scenario's ego vehicle.
func (s *Scenario) Vehicle() *planner.Ego {
	e := s.Ego
	return &planner.Ego{
		Lane:            e.Lane,
		S:               e.S,
		V:               e.V,
		A:               e.A,
		TargetSpeed:     e.TargetSpeed,
		MaxAcceleration: e.MaxAcceleration,
		PreferredBuffer: e.PreferredBuffer,
		Goal:            e.GoalLane,
		GoalPosition:    e.GoalS,
	}
}

// TrafficPredictions returns the scenario's predictions keyed by vehicle id.
func (s *Scenario) TrafficPredictions() planner.Predictions {
	preds := make(planner.Predictions, len(s.Predictions))
	for _, v := range s.Predictions {
		states := make([]planner.Prediction, len(v.States))
		for i, p := range v.States {
			states[i] = planner.Prediction{Lane: p.Lane, S: p.S, V: p.V}
		}
		preds[v.ID] = states
	}
	return preds
}

// CandidateTrajectories returns the candidates in file order.
func (s *Scenario) CandidateTrajectories() []planner.Candidate {
	out := make([]planner.Candidate, len(s.Candidates))
	for i, c := range s.Candidates {
		traj := make(planner.Trajectory, len(c.States))
		for j, st := range c.States {
			traj[j] = planner.PlannerState{Maneuver: planner.Maneuver(st.State), Lane: st.Lane, S: st.S, V: st.V, A: st.A}
		}
		out[i] = planner.Candidate{ID: c.ID, Trajectory: traj}
	}
	return out
}

func validateFinite(prefix string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: values must be finite numbers, got %v", prefix, v)
		}
	}
	return nil
}
