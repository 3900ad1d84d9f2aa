package planner

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/behavior-planner/lanecost/planner/trace"
)

// Candidate is a named trajectory offered to the ranker.
type Candidate struct {
	ID         string
	Trajectory Trajectory
}

// Result is the evaluation of one candidate. Err is set when the candidate
// could not be scored; other candidates are unaffected.
type Result struct {
	Candidate Candidate
	Index     int // position in the input slice
	Breakdown Breakdown
	Err       error
}

// RankOptions controls candidate evaluation.
type RankOptions struct {
	Parallelism int // max concurrent evaluations; ≤ 1 evaluates sequentially
}

// Rank evaluates every candidate and returns results ordered best first:
// scored candidates by ascending total cost, ties broken by input index, then
// failed candidates in input order. The only error returned is ctx's.
func Rank(ctx context.Context, ev *Evaluator, v Vehicle, candidates []Candidate, preds Predictions, opts RankOptions) ([]Result, error) {
	results := make([]Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bd, err := ev.Breakdown(v, c.Trajectory, preds)
			results[i] = Result{Candidate: c, Index: i, Breakdown: bd, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Err == nil && a.Breakdown.Total != b.Breakdown.Total {
			return a.Breakdown.Total < b.Breakdown.Total
		}
		return a.Index < b.Index
	})
	return results, nil
}

// Best returns the lowest-cost successfully scored result from Rank output.
func Best(results []Result) (Result, bool) {
	if len(results) == 0 || results[0].Err != nil {
		return Result{}, false
	}
	return results[0], true
}

// Record converts r into a decision-trace record.
func (r Result) Record() trace.EvaluationRecord {
	rec := trace.EvaluationRecord{CandidateID: r.Candidate.ID}
	if last, err := r.Candidate.Trajectory.Final(); err == nil {
		rec.Maneuver = string(last.Maneuver)
	}
	if r.Err != nil {
		rec.Err = r.Err.Error()
		return rec
	}
	rec.IntendedLane = r.Breakdown.Features.IntendedLane
	rec.FinalLane = r.Breakdown.Features.FinalLane
	rec.Total = r.Breakdown.Total
	rec.Terms = make(map[string]float64, len(r.Breakdown.Terms))
	for _, t := range r.Breakdown.Terms {
		rec.Terms[t.Name] = t.Weighted
	}
	return rec
}
