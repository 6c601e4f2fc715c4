package core

import (
	"github.com/huangsam/rvss/core/algo"
	"github.com/huangsam/rvss/schema"
)

// Names of the built-in scoring systems.
const (
	CVSS2Name  = "cvss2"
	CVSS3Name  = "cvss3"
	CVSS31Name = "cvss31"
	RVSS1Name  = "rvss1"
)

var (
	cvss2Requires = []string{
		schema.AccessVector, schema.AccessComplexity, schema.Authentication,
		schema.Confidentiality, schema.Integrity, schema.Availability,
		schema.Exploitability, schema.RemediationLevel, schema.ReportConfidence,
		schema.CollateralDamagePotential, schema.TargetDistribution,
		schema.ConfidentialityRequirement, schema.IntegrityRequirement, schema.AvailabilityRequirement,
	}
	cvss3Requires = []string{
		schema.AttackVector, schema.AttackComplexity, schema.PrivilegesRequired, schema.UserInteraction,
		schema.Scope, schema.Confidentiality, schema.Integrity, schema.Availability,
		schema.ExploitCodeMaturity, schema.RemediationLevel, schema.ReportConfidence,
		schema.ConfidentialityRequirement, schema.IntegrityRequirement, schema.AvailabilityRequirement,
		schema.ModifiedAttackVector, schema.ModifiedAttackComplexity, schema.ModifiedPrivilegesRequired,
		schema.ModifiedUserInteraction, schema.ModifiedScope,
		schema.ModifiedConfidentiality, schema.ModifiedIntegrity, schema.ModifiedAvailability,
	}
	rvss1Requires = append([]string{
		schema.Age, schema.Safety, schema.ModifiedAge, schema.ModifiedSafety,
	}, cvss3Requires...)
)

// formula is a built-in calculator backed by the algo package.
type formula struct {
	requires []string
	scores   func(schema.Resolved) algo.Scores
	explain  func(schema.Resolved) schema.Breakdown
	rate     func(float64) schema.Severity
}

func (f formula) Requires() []string { return f.requires }

func (f formula) Calculate(r schema.Resolved) (any, error) { return f.scores(r), nil }

func (f formula) Explain(r schema.Resolved) schema.Breakdown { return f.explain(r) }

func (f formula) Rate(score float64) schema.Severity { return f.rate(score) }

var builtins = []struct {
	name   string
	schema *schema.Schema
	calc   formula
}{
	{CVSS2Name, schema.CVSS2, formula{cvss2Requires, algo.CVSS2, algo.ExplainCVSS2, schema.RateV2}},
	{CVSS3Name, schema.CVSS30, formula{cvss3Requires, algo.CVSS30, algo.ExplainCVSS30, schema.RateV3}},
	{CVSS31Name, schema.CVSS31, formula{cvss3Requires, algo.CVSS31, algo.ExplainCVSS31, schema.RateV3}},
	{RVSS1Name, schema.RVSS1, formula{rvss1Requires, algo.RVSS1, algo.ExplainRVSS1, schema.RateV3}},
}

// NewDefaultRegistry returns a registry holding the built-in systems. It is
// not frozen so that user systems can still be added.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, b := range builtins {
		if _, err := reg.register(b.name, b.schema, b.calc, true); err != nil {
			panic(err)
		}
	}
	return reg
}
