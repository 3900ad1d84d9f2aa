package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/behavior-planner/lanecost/planner"
	"github.com/behavior-planner/lanecost/planner/metrics"
	"github.com/behavior-planner/lanecost/planner/scenario"
	"github.com/behavior-planner/lanecost/planner/trace"
)

var (
	scenarioPath string // Path to the YAML scenario file
	costsFlag    string // Weight table override, "name:weight,..."
	parallelism  int    // Concurrent candidate evaluations
	outputFormat string // table or json
	traceLevel   string // none or decisions
	printMetrics bool   // Dump Prometheus metrics after evaluation
)

// evaluateCmd scores every candidate trajectory in a scenario file
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Rank the candidate trajectories of a scenario by cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scenarioPath == "" {
			return fmt.Errorf("--scenario is required")
		}
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("unknown --format %q; valid: table, json", outputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("unknown --trace %q; valid: none, decisions", traceLevel)
		}

		sc, err := scenario.Load(scenarioPath)
		if err != nil {
			return err
		}
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("invalid scenario %s: %w", scenarioPath, err)
		}

		configs := sc.Costs
		if cmd.Flags().Changed("costs") {
			if configs, err = planner.ParseCostConfigs(costsFlag); err != nil {
				return err
			}
		}
		ev, err := planner.NewEvaluator(configs)
		if err != nil {
			return err
		}
		logrus.Infof("Evaluating %d candidates from %s with costs %s",
			len(sc.Candidates), scenarioPath, planner.FormatCostConfigs(ev.Configs()))

		reg := prometheus.NewRegistry()
		sink, err := metrics.NewPromSink(reg)
		if err != nil {
			return err
		}

		results, err := planner.Rank(cmd.Context(), ev, sc.Vehicle(), sc.CandidateTrajectories(),
			sc.TrafficPredictions(), planner.RankOptions{Parallelism: parallelism})
		if err != nil {
			return err
		}
		sink.RecordResults(results)

		dt := trace.NewDecisionTrace(trace.TraceLevel(traceLevel))
		for _, r := range results {
			if r.Err != nil {
				logrus.Warnf("candidate %q not scored: %v", r.Candidate.ID, r.Err)
			}
			dt.Record(r.Record())
		}

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			err = writeJSON(out, results, dt)
		default:
			writeTable(out, results, dt)
		}
		if err != nil {
			return err
		}
		if printMetrics {
			return writeMetrics(out, reg)
		}
		return nil
	},
}

// candidateOutput is the JSON shape of one ranked candidate.
type candidateOutput struct {
	Rank         int                `json:"rank"`
	ID           string             `json:"id"`
	IntendedLane int                `json:"intended_lane"`
	FinalLane    int                `json:"final_lane"`
	Total        float64            `json:"total_cost"`
	Terms        map[string]float64 `json:"terms,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type evaluationOutput struct {
	Best       string              `json:"best,omitempty"`
	Candidates []candidateOutput   `json:"candidates"`
	Summary    *trace.TraceSummary `json:"summary,omitempty"`
}

func writeJSON(w io.Writer, results []planner.Result, dt *trace.DecisionTrace) error {
	out := evaluationOutput{Candidates: make([]candidateOutput, len(results))}
	if best, ok := planner.Best(results); ok {
		out.Best = best.Candidate.ID
	}
	for i, r := range results {
		rec := r.Record()
		out.Candidates[i] = candidateOutput{
			Rank:         i + 1,
			ID:           rec.CandidateID,
			IntendedLane: rec.IntendedLane,
			FinalLane:    rec.FinalLane,
			Total:        rec.Total,
			Terms:        rec.Terms,
			Error:        rec.Err,
		}
	}
	if dt.Enabled() {
		out.Summary = trace.Summarize(dt)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, results []planner.Result, dt *trace.DecisionTrace) {
	fmt.Fprintln(w, "=== Candidate Costs ===")
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%2d. %-12s : error: %v\n", i+1, r.Candidate.ID, r.Err)
			continue
		}
		f := r.Breakdown.Features
		fmt.Fprintf(w, "%2d. %-12s : total=%.6f intended_lane=%d final_lane=%d\n",
			i+1, r.Candidate.ID, r.Breakdown.Total, f.IntendedLane, f.FinalLane)
		for _, t := range r.Breakdown.Terms {
			fmt.Fprintf(w, "      %-16s cost=%.6f weight=%g weighted=%.6f\n", t.Name, t.Cost, t.Weight, t.Weighted)
		}
	}
	if best, ok := planner.Best(results); ok {
		fmt.Fprintf(w, "Best candidate       : %s\n", best.Candidate.ID)
	} else {
		fmt.Fprintln(w, "Best candidate       : none (no candidate could be scored)")
	}
	if dt.Enabled() {
		s := trace.Summarize(dt)
		fmt.Fprintln(w, "=== Decision Summary ===")
		fmt.Fprintf(w, "Candidates           : %d (%d failed)\n", s.Candidates, s.Failed)
		fmt.Fprintf(w, "Mean cost            : %.6f\n", s.MeanCost)
		fmt.Fprintf(w, "Margin to runner-up  : %.6f\n", s.Margin)
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(w, "=== Metrics ===")
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func init() {
	evaluateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file")
	evaluateCmd.Flags().StringVar(&costsFlag, "costs", "", "Weight table as name:weight pairs, e.g. goal-distance:1,inefficiency:0.5 (overrides the scenario)")
	evaluateCmd.Flags().IntVar(&parallelism, "parallel", 1, "Maximum number of candidates evaluated concurrently")
	evaluateCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
	evaluateCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	evaluateCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print Prometheus metrics after evaluation")
}
