package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CostConfig describes a named cost function with a weight for aggregation.
type CostConfig struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// DefaultCostConfigs returns the default weight table:
// goal-distance:1.0, inefficiency:0.5.
func DefaultCostConfigs() []CostConfig {
	return []CostConfig{
		{Name: GoalDistanceName, Weight: 1.0},
		{Name: InefficiencyName, Weight: 0.5},
	}
}

// ParseCostConfigs parses a comma-separated string of "name:weight" pairs.
// Returns nil for empty input. Returns error for unknown or duplicate names,
// negative weights, NaN, Inf, or malformed input.
func ParseCostConfigs(s string) ([]CostConfig, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	configs := make([]CostConfig, 0, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid cost config %q (expected name:weight)", strings.TrimSpace(part))
		}
		name := strings.TrimSpace(kv[0])
		weight, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for cost %q: %w", name, err)
		}
		configs = append(configs, CostConfig{Name: name, Weight: weight})
	}
	if err := ValidateCostConfigs(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// ValidateCostConfigs checks that every entry names a registered cost function
// at most once and carries a finite, non-negative weight.
func ValidateCostConfigs(configs []CostConfig) error {
	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		if !IsValidCost(c.Name) {
			return fmt.Errorf("%w: unknown cost %q; valid: %s", ErrInvalidConfig, c.Name, strings.Join(ValidCostNames(), ", "))
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate cost %q; each cost may appear at most once", ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
		if err := ValidateWeight(c.Name, c.Weight); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWeight rejects negative, NaN and infinite weights. A zero weight
// keeps the cost function registered but removes it from the total.
func ValidateWeight(name string, w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: cost %q weight must be a finite non-negative number, got %v", ErrInvalidConfig, name, w)
	}
	return nil
}

// FormatCostConfigs renders configs in the "name:weight" form ParseCostConfigs accepts.
func FormatCostConfigs(configs []CostConfig) string {
	parts := make([]string, len(configs))
	for i, c := range configs {
		parts[i] = c.Name + ":" + strconv.FormatFloat(c.Weight, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
