package schema

// BreakdownKey names an intermediate value reported by --explain.
type BreakdownKey string

// Breakdown keys used by the formula library.
const (
	BreakdownImpact                 BreakdownKey = "impact"
	BreakdownExploitability         BreakdownKey = "exploitability"
	BreakdownModifiedImpact         BreakdownKey = "modified_impact"
	BreakdownModifiedExploitability BreakdownKey = "modified_exploitability"
	BreakdownAdjustedImpact         BreakdownKey = "adjusted_impact"
	BreakdownAdjustedTemporal       BreakdownKey = "adjusted_temporal"
)

// Breakdown maps intermediate values to their unrounded results.
type Breakdown map[BreakdownKey]float64
