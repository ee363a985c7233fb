// Package scoring implements the weighted multi-factor scorer shared by the
// product, supplier, influencer, content, and fraud engines: a composite
// total over named factors, a confidence value derived from factor spread,
// and a grade assigned by ordered threshold lookup.
package scoring

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// FactorSet maps factor names to their values. Values are conventionally in
// [0,100] but are never clamped or rejected; callers needing strict bounds
// clamp before scoring. Factors not referenced by the weight table are
// ignored; factors referenced but absent score as zero.
type FactorSet map[string]float64

// Weight is a single weight table entry.
type Weight struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// WeightTable is the ordered set of factors a scorer considers. Weights need
// not sum to 1; the convention throughout this repo is that they do, which
// keeps totals in [0,100] for in-range factors.
type WeightTable []Weight

// Grade is a single threshold entry: the label applies to any total at or
// above Min, unless a higher threshold matched first.
type Grade struct {
	Min   float64 `json:"min" yaml:"min"`
	Label string  `json:"label" yaml:"label"`
}

// GradeThresholds is evaluated top to bottom, first match wins. Entries must
// be strictly decreasing by Min and the last entry acts as the floor label.
type GradeThresholds []Grade

// ScoreResult is the output of a single scoring call. Factors holds the
// values actually used (missing factors recorded as zero) for auditability.
type ScoreResult struct {
	Total      float64   `json:"total" yaml:"total"`
	Confidence float64   `json:"confidence" yaml:"confidence"`
	Grade      string    `json:"grade" yaml:"grade"`
	Factors    FactorSet `json:"factors" yaml:"factors"`
}

// ConfigurationError indicates a structurally invalid weight or threshold
// table. It is returned only at construction time and should abort startup
// of the owning module rather than be suppressed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid scorer configuration: %s", e.Reason)
}

// Scorer computes composite scores against a fixed weight table and grade
// thresholds. It is immutable after construction and safe for concurrent use.
type Scorer struct {
	weights    WeightTable
	thresholds GradeThresholds
}

// New validates the tables and returns a Scorer. The weight table must be
// non-empty with unique names and non-negative weights; the thresholds must
// be non-empty and strictly decreasing by Min.
func New(weights WeightTable, thresholds GradeThresholds) (*Scorer, error) {
	if len(weights) == 0 {
		return nil, &ConfigurationError{Reason: "weight table is empty"}
	}
	seen := make(map[string]bool, len(weights))
	for _, w := range weights {
		if w.Name == "" {
			return nil, &ConfigurationError{Reason: "weight table contains an unnamed factor"}
		}
		if w.Weight < 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("negative weight for factor %q", w.Name)}
		}
		if seen[w.Name] {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate factor %q", w.Name)}
		}
		seen[w.Name] = true
	}

	if len(thresholds) == 0 {
		return nil, &ConfigurationError{Reason: "threshold table is empty"}
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].Min >= thresholds[i-1].Min {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("thresholds not strictly decreasing at %q", thresholds[i].Label),
			}
		}
	}

	s := &Scorer{
		weights:    make(WeightTable, len(weights)),
		thresholds: make(GradeThresholds, len(thresholds)),
	}
	copy(s.weights, weights)
	copy(s.thresholds, thresholds)
	return s, nil
}

// Must is New that panics on configuration errors. Intended for the
// package-level tables the domain engines declare at init.
func Must(weights WeightTable, thresholds GradeThresholds) *Scorer {
	s, err := New(weights, thresholds)
	if err != nil {
		panic(err)
	}
	return s
}

// Score computes the composite total, confidence, and grade for the given
// factors. Factors absent from the input count as zero; values are used as
// given without clamping. The call is pure and cannot fail.
func (s *Scorer) Score(factors FactorSet) ScoreResult {
	used := make(FactorSet, len(s.weights))
	values := make([]float64, 0, len(s.weights))

	var total float64
	for _, w := range s.weights {
		v := factors[w.Name]
		used[w.Name] = v
		values = append(values, v)
		total += v * w.Weight
	}

	// Confidence reads the spread of the raw factor values, not the
	// weighted contributions: factors that agree are treated as a more
	// reliable signal than a divergent set.
	stddev := stat.PopStdDev(values, nil)
	confidence := clamp(100-stddev, 0, 100)

	return ScoreResult{
		Total:      total,
		Confidence: confidence,
		Grade:      s.gradeFor(total),
		Factors:    used,
	}
}

// Weights returns a copy of the scorer's weight table, in declaration order.
func (s *Scorer) Weights() WeightTable {
	out := make(WeightTable, len(s.weights))
	copy(out, s.weights)
	return out
}

func (s *Scorer) gradeFor(total float64) string {
	for _, g := range s.thresholds {
		if total >= g.Min {
			return g.Label
		}
	}
	// Below every threshold, including the floor.
	return s.thresholds[len(s.thresholds)-1].Label
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
