package algo

import (
	"math"

	"github.com/huangsam/rvss/schema"
)

// Scores is the result of the built-in scoring systems.
type Scores struct {
	Base          float64 `json:"base" yaml:"base"`
	Temporal      float64 `json:"temporal" yaml:"temporal"`
	Environmental float64 `json:"environmental" yaml:"environmental"`
}

// Privileges Required weights when the scope is changed.
var changedPrivileges = map[string]float64{
	"N": 0.85,
	"L": 0.68,
	"H": 0.5,
}

const (
	scopeChanged    = "C"
	exploitFactor   = 8.22
	unchangedFactor = 6.42
	missCap         = 0.915
)

// v3Model carries the differences between CVSS v3.0, v3.1 and RVSS v1.
type v3Model struct {
	v31    bool // v3.1 changed-scope environmental formula
	robots bool // RVSS Age and Safety metrics
}

var (
	cvss30Model = v3Model{}
	cvss31Model = v3Model{v31: true}
	rvss1Model  = v3Model{robots: true}
)

// privileges returns the weight of a Privileges Required token under the given scope.
func privileges(token string, weight float64, changed bool) float64 {
	if changed {
		if w, ok := changedPrivileges[token]; ok {
			return w
		}
	}
	return weight
}

// modified returns the modified metric's weight, falling back to the base
// metric when the modified one is Not Defined.
func modified(r schema.Resolved, name, base string) float64 {
	if r.Token(name) == schema.NotDefined {
		return r.Weight(base)
	}
	return r.Weight(name)
}

// modifiedToken returns the effective token of a modified metric.
func modifiedToken(r schema.Resolved, name, base string) string {
	if t := r.Token(name); t != schema.NotDefined {
		return t
	}
	return r.Token(base)
}

func (m v3Model) impact(r schema.Resolved) float64 {
	changed := r.Token(schema.Scope) == scopeChanged
	iss := 1 - (1-r.Weight(schema.Confidentiality))*(1-r.Weight(schema.Integrity))*(1-r.Weight(schema.Availability))
	if m.robots {
		iss = 1 - (1-iss)*(1-r.Weight(schema.Safety))
	}
	if changed {
		return 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	}
	return unchangedFactor * iss
}

func (m v3Model) exploitability(r schema.Resolved) float64 {
	changed := r.Token(schema.Scope) == scopeChanged
	pr := privileges(r.Token(schema.PrivilegesRequired), r.Weight(schema.PrivilegesRequired), changed)
	e := exploitFactor * r.Weight(schema.AttackVector) * r.Weight(schema.AttackComplexity) * pr * r.Weight(schema.UserInteraction)
	if m.robots {
		e *= r.Weight(schema.Age)
	}
	return e
}

func (m v3Model) base(r schema.Resolved) float64 {
	impact := m.impact(r)
	if impact <= 0 {
		return 0
	}
	sum := impact + m.exploitability(r)
	if r.Token(schema.Scope) == scopeChanged {
		sum *= 1.08
	}
	return RoundUp1(math.Min(sum, 10))
}

func temporalFactor(r schema.Resolved) float64 {
	return r.Weight(schema.ExploitCodeMaturity) * r.Weight(schema.RemediationLevel) * r.Weight(schema.ReportConfidence)
}

func (m v3Model) temporal(r schema.Resolved) float64 {
	return RoundUp1(m.base(r) * temporalFactor(r))
}

func (m v3Model) modifiedImpact(r schema.Resolved) float64 {
	changed := modifiedToken(r, schema.ModifiedScope, schema.Scope) == scopeChanged
	keep := (1 - r.Weight(schema.ConfidentialityRequirement)*modified(r, schema.ModifiedConfidentiality, schema.Confidentiality)) *
		(1 - r.Weight(schema.IntegrityRequirement)*modified(r, schema.ModifiedIntegrity, schema.Integrity)) *
		(1 - r.Weight(schema.AvailabilityRequirement)*modified(r, schema.ModifiedAvailability, schema.Availability))
	miss := math.Min(1-keep, missCap)
	if m.robots {
		// RVSS impact includes Safety and is not held to the CVSS MISS cap.
		keep *= 1 - modified(r, schema.ModifiedSafety, schema.Safety)
		miss = 1 - keep
	}

	switch {
	case !changed:
		return unchangedFactor * miss
	case m.v31:
		return 7.52*(miss-0.029) - 3.25*math.Pow(miss*0.9731-0.02, 13)
	default:
		return 7.52*(miss-0.029) - 3.25*math.Pow(miss-0.02, 15)
	}
}

func (m v3Model) modifiedExploitability(r schema.Resolved) float64 {
	changed := modifiedToken(r, schema.ModifiedScope, schema.Scope) == scopeChanged
	prToken := modifiedToken(r, schema.ModifiedPrivilegesRequired, schema.PrivilegesRequired)
	pr := privileges(prToken, modified(r, schema.ModifiedPrivilegesRequired, schema.PrivilegesRequired), changed)
	e := exploitFactor *
		modified(r, schema.ModifiedAttackVector, schema.AttackVector) *
		modified(r, schema.ModifiedAttackComplexity, schema.AttackComplexity) *
		pr *
		modified(r, schema.ModifiedUserInteraction, schema.UserInteraction)
	if m.robots {
		e *= modified(r, schema.ModifiedAge, schema.Age)
	}
	return e
}

func (m v3Model) environmental(r schema.Resolved) float64 {
	impact := m.modifiedImpact(r)
	if impact <= 0 {
		return 0
	}
	sum := impact + m.modifiedExploitability(r)
	if modifiedToken(r, schema.ModifiedScope, schema.Scope) == scopeChanged {
		sum *= 1.08
	}
	return RoundUp1(RoundUp1(math.Min(sum, 10)) * temporalFactor(r))
}

func (m v3Model) scores(r schema.Resolved) Scores {
	return Scores{Base: m.base(r), Temporal: m.temporal(r), Environmental: m.environmental(r)}
}

func (m v3Model) explain(r schema.Resolved) schema.Breakdown {
	return schema.Breakdown{
		schema.BreakdownImpact:                 m.impact(r),
		schema.BreakdownExploitability:         m.exploitability(r),
		schema.BreakdownModifiedImpact:         m.modifiedImpact(r),
		schema.BreakdownModifiedExploitability: m.modifiedExploitability(r),
	}
}

// CVSS3Base computes the CVSS v3.x base score. It is identical in v3.0 and v3.1.
func CVSS3Base(r schema.Resolved) float64 {
	return cvss30Model.base(r)
}

// CVSS3Temporal computes the CVSS v3.x temporal score.
func CVSS3Temporal(r schema.Resolved) float64 {
	return cvss30Model.temporal(r)
}

// CVSS30Environmental computes the CVSS v3.0 environmental score.
func CVSS30Environmental(r schema.Resolved) float64 {
	return cvss30Model.environmental(r)
}

// CVSS31Environmental computes the CVSS v3.1 environmental score.
func CVSS31Environmental(r schema.Resolved) float64 {
	return cvss31Model.environmental(r)
}

// CVSS30 computes all CVSS v3.0 scores.
func CVSS30(r schema.Resolved) Scores {
	return cvss30Model.scores(r)
}

// CVSS31 computes all CVSS v3.1 scores.
func CVSS31(r schema.Resolved) Scores {
	return cvss31Model.scores(r)
}

// ExplainCVSS30 returns the unrounded CVSS v3.0 subscores.
func ExplainCVSS30(r schema.Resolved) schema.Breakdown {
	return cvss30Model.explain(r)
}

// ExplainCVSS31 returns the unrounded CVSS v3.1 subscores.
func ExplainCVSS31(r schema.Resolved) schema.Breakdown {
	return cvss31Model.explain(r)
}

// RVSS1Base computes the RVSS v1 base score.
func RVSS1Base(r schema.Resolved) float64 {
	return rvss1Model.base(r)
}

// RVSS1Temporal computes the RVSS v1 temporal score.
func RVSS1Temporal(r schema.Resolved) float64 {
	return rvss1Model.temporal(r)
}

// RVSS1Environmental computes the RVSS v1 environmental score.
func RVSS1Environmental(r schema.Resolved) float64 {
	return rvss1Model.environmental(r)
}

// RVSS1 computes all RVSS v1 scores.
func RVSS1(r schema.Resolved) Scores {
	return rvss1Model.scores(r)
}

// ExplainRVSS1 returns the unrounded RVSS v1 subscores.
func ExplainRVSS1(r schema.Resolved) schema.Breakdown {
	return rvss1Model.explain(r)
}
