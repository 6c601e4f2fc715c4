package algo

import (
	"math"

	"github.com/huangsam/rvss/schema"
)

func cvss2ImpactOf(c, i, a float64) float64 {
	return 10.41 * (1 - (1-c)*(1-i)*(1-a))
}

func cvss2Impact(r schema.Resolved) float64 {
	return cvss2ImpactOf(r.Weight(schema.Confidentiality), r.Weight(schema.Integrity), r.Weight(schema.Availability))
}

func cvss2Exploitability(r schema.Resolved) float64 {
	return 20 * r.Weight(schema.AccessVector) * r.Weight(schema.AccessComplexity) * r.Weight(schema.Authentication)
}

func cvss2BaseOf(impact, exploitability float64) float64 {
	f := 1.176
	if impact == 0 {
		f = 0
	}
	return RoundHalfUp1((0.6*impact + 0.4*exploitability - 1.5) * f)
}

func cvss2TemporalFactor(r schema.Resolved) float64 {
	return r.Weight(schema.Exploitability) * r.Weight(schema.RemediationLevel) * r.Weight(schema.ReportConfidence)
}

func cvss2AdjustedImpact(r schema.Resolved) float64 {
	return math.Min(10, cvss2ImpactOf(
		r.Weight(schema.Confidentiality)*r.Weight(schema.ConfidentialityRequirement),
		r.Weight(schema.Integrity)*r.Weight(schema.IntegrityRequirement),
		r.Weight(schema.Availability)*r.Weight(schema.AvailabilityRequirement),
	))
}

func cvss2AdjustedTemporal(r schema.Resolved) float64 {
	adjustedBase := cvss2BaseOf(cvss2AdjustedImpact(r), cvss2Exploitability(r))
	return RoundHalfUp1(adjustedBase * cvss2TemporalFactor(r))
}

// CVSS2Base computes the CVSS v2 base score.
func CVSS2Base(r schema.Resolved) float64 {
	return cvss2BaseOf(cvss2Impact(r), cvss2Exploitability(r))
}

// CVSS2Temporal computes the CVSS v2 temporal score.
func CVSS2Temporal(r schema.Resolved) float64 {
	return RoundHalfUp1(CVSS2Base(r) * cvss2TemporalFactor(r))
}

// CVSS2Environmental computes the CVSS v2 environmental score.
func CVSS2Environmental(r schema.Resolved) float64 {
	at := cvss2AdjustedTemporal(r)
	cdp := r.Weight(schema.CollateralDamagePotential)
	return RoundHalfUp1((at + (10-at)*cdp) * r.Weight(schema.TargetDistribution))
}

// CVSS2 computes all CVSS v2 scores.
func CVSS2(r schema.Resolved) Scores {
	return Scores{Base: CVSS2Base(r), Temporal: CVSS2Temporal(r), Environmental: CVSS2Environmental(r)}
}

// ExplainCVSS2 returns the unrounded CVSS v2 subscores.
func ExplainCVSS2(r schema.Resolved) schema.Breakdown {
	return schema.Breakdown{
		schema.BreakdownImpact:           cvss2Impact(r),
		schema.BreakdownExploitability:   cvss2Exploitability(r),
		schema.BreakdownAdjustedImpact:   cvss2AdjustedImpact(r),
		schema.BreakdownAdjustedTemporal: cvss2AdjustedTemporal(r),
	}
}
