package planner

import "sort"

// EgoID identifies the ego vehicle in a Predictions map. It is never treated as traffic.
const EgoID = -1

// Prediction is one predicted future state of a traffic vehicle.
type Prediction struct {
	Lane int
	S    float64
	V    float64
}

// Predictions maps vehicle id to its predicted states, nearest-term first.
type Predictions map[int][]Prediction

// trafficIDs returns non-ego vehicle ids with at least one prediction, ascending.
func (p Predictions) trafficIDs() []int {
	ids := make([]int, 0, len(p))
	for id, states := range p {
		if id == EgoID || len(states) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LaneVelocity returns the speed of traffic in lane, read from the nearest-term
// prediction of a non-ego vehicle occupying it. The second result is false when
// no such vehicle exists; callers then fall back to the speed limit.
//
// All traffic in a lane is assumed to share one speed. Vehicles are scanned in
// ascending id order, so the result is stable, but which vehicle represents a
// lane with mixed speeds is unspecified.
func LaneVelocity(preds Predictions, lane int) (float64, bool) {
	for _, id := range preds.trafficIDs() {
		if now := preds[id][0]; now.Lane == lane {
			return now.V, true
		}
	}
	return 0, false
}

// nearestInLane returns the closest non-ego vehicle in lane strictly ahead of
// (ahead=true) or behind s, using nearest-term predictions.
func nearestInLane(preds Predictions, lane int, s float64, ahead bool) (Prediction, bool) {
	var (
		best  Prediction
		found bool
	)
	for _, id := range preds.trafficIDs() {
		now := preds[id][0]
		if now.Lane != lane {
			continue
		}
		if ahead && now.S > s && (!found || now.S < best.S) {
			best, found = now, true
		}
		if !ahead && now.S < s && (!found || now.S > best.S) {
			best, found = now, true
		}
	}
	return best, found
}
