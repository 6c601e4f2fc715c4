package schema

// Version prefixes of the built-in schemas.
const (
	CVSS2Prefix  = "CVSS:2.0"
	CVSS30Prefix = "CVSS:3.0"
	CVSS31Prefix = "CVSS:3.1"
	RVSS1Prefix  = "RVSS:1.0"
)

// Built-in CVSS v3 schemas. Both versions share metrics and weights; they
// differ only in the environmental formula.
var (
	CVSS30 = MustNew(CVSS30Prefix, cvss3Metrics())
	CVSS31 = MustNew(CVSS31Prefix, cvss3Metrics())
)

var (
	cvss3AttackVector = []Value{
		{Token: "N", Title: "Network", Weight: 0.85},
		{Token: "A", Title: "Adjacent", Weight: 0.62},
		{Token: "L", Title: "Local", Weight: 0.55},
		{Token: "P", Title: "Physical", Weight: 0.2},
	}
	cvss3AttackComplexity = []Value{
		{Token: "L", Title: "Low", Weight: 0.77},
		{Token: "H", Title: "High", Weight: 0.44},
	}
	// Weights for an unchanged scope; see algo for the changed-scope table.
	cvss3PrivilegesRequired = []Value{
		{Token: "N", Title: "None", Weight: 0.85},
		{Token: "L", Title: "Low", Weight: 0.62},
		{Token: "H", Title: "High", Weight: 0.27},
	}
	cvss3UserInteraction = []Value{
		{Token: "N", Title: "None", Weight: 0.85},
		{Token: "R", Title: "Required", Weight: 0.62},
	}
	cvss3Scope = []Value{
		{Token: "U", Title: "Unchanged"},
		{Token: "C", Title: "Changed"},
	}
	cvss3Impact = []Value{
		{Token: "H", Title: "High", Weight: 0.56},
		{Token: "L", Title: "Low", Weight: 0.22},
		{Token: "N", Title: "None", Weight: 0},
	}
	cvss3ExploitCodeMaturity = []Value{
		{Token: "X", Title: "Not Defined", Weight: 1},
		{Token: "H", Title: "High", Weight: 1},
		{Token: "F", Title: "Functional", Weight: 0.97},
		{Token: "P", Title: "Proof-of-Concept", Weight: 0.94},
		{Token: "U", Title: "Unproven", Weight: 0.91},
	}
	cvss3RemediationLevel = []Value{
		{Token: "X", Title: "Not Defined", Weight: 1},
		{Token: "U", Title: "Unavailable", Weight: 1},
		{Token: "W", Title: "Workaround", Weight: 0.97},
		{Token: "T", Title: "Temporary Fix", Weight: 0.96},
		{Token: "O", Title: "Official Fix", Weight: 0.95},
	}
	cvss3ReportConfidence = []Value{
		{Token: "X", Title: "Not Defined", Weight: 1},
		{Token: "C", Title: "Confirmed", Weight: 1},
		{Token: "R", Title: "Reasonable", Weight: 0.96},
		{Token: "U", Title: "Unknown", Weight: 0.92},
	}
	cvss3Requirement = []Value{
		{Token: "X", Title: "Not Defined", Weight: 1},
		{Token: "H", Title: "High", Weight: 1.5},
		{Token: "M", Title: "Medium", Weight: 1},
		{Token: "L", Title: "Low", Weight: 0.5},
	}
)

// notDefined prepends the X token to a base metric's values. X carries no
// weight of its own; calculators substitute the base metric.
func notDefined(values []Value) []Value {
	out := make([]Value, 0, len(values)+1)
	out = append(out, Value{Token: NotDefined, Title: "Not Defined"})
	return append(out, values...)
}

func cvss3Metrics() []Metric {
	metrics := []Metric{
		{Name: AttackVector, Code: "AV", Title: "Attack Vector", Group: BaseGroup, Values: cvss3AttackVector},
		{Name: AttackComplexity, Code: "AC", Title: "Attack Complexity", Group: BaseGroup, Values: cvss3AttackComplexity},
		{Name: PrivilegesRequired, Code: "PR", Title: "Privileges Required", Group: BaseGroup, Values: cvss3PrivilegesRequired},
		{Name: UserInteraction, Code: "UI", Title: "User Interaction", Group: BaseGroup, Values: cvss3UserInteraction},
		{Name: Scope, Code: "S", Title: "Scope", Group: BaseGroup, Values: cvss3Scope},
		{Name: Confidentiality, Code: "C", Title: "Confidentiality Impact", Group: BaseGroup, Values: cvss3Impact},
		{Name: Integrity, Code: "I", Title: "Integrity Impact", Group: BaseGroup, Values: cvss3Impact},
		{Name: Availability, Code: "A", Title: "Availability Impact", Group: BaseGroup, Values: cvss3Impact},
	}
	metrics = append(metrics, cvss3Temporal()...)
	metrics = append(metrics, cvss3Requirements()...)
	return append(metrics,
		Metric{Name: ModifiedAttackVector, Code: "MAV", Title: "Modified Attack Vector", Group: EnvironmentalGroup, Values: notDefined(cvss3AttackVector), Default: NotDefined},
		Metric{Name: ModifiedAttackComplexity, Code: "MAC", Title: "Modified Attack Complexity", Group: EnvironmentalGroup, Values: notDefined(cvss3AttackComplexity), Default: NotDefined},
		Metric{Name: ModifiedPrivilegesRequired, Code: "MPR", Title: "Modified Privileges Required", Group: EnvironmentalGroup, Values: notDefined(cvss3PrivilegesRequired), Default: NotDefined},
		Metric{Name: ModifiedUserInteraction, Code: "MUI", Title: "Modified User Interaction", Group: EnvironmentalGroup, Values: notDefined(cvss3UserInteraction), Default: NotDefined},
		Metric{Name: ModifiedScope, Code: "MS", Title: "Modified Scope", Group: EnvironmentalGroup, Values: notDefined(cvss3Scope), Default: NotDefined},
		Metric{Name: ModifiedConfidentiality, Code: "MC", Title: "Modified Confidentiality", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
		Metric{Name: ModifiedIntegrity, Code: "MI", Title: "Modified Integrity", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
		Metric{Name: ModifiedAvailability, Code: "MA", Title: "Modified Availability", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
	)
}

func cvss3Temporal() []Metric {
	return []Metric{
		{Name: ExploitCodeMaturity, Code: "E", Title: "Exploit Code Maturity", Group: TemporalGroup, Values: cvss3ExploitCodeMaturity, Default: NotDefined},
		{Name: RemediationLevel, Code: "RL", Title: "Remediation Level", Group: TemporalGroup, Values: cvss3RemediationLevel, Default: NotDefined},
		{Name: ReportConfidence, Code: "RC", Title: "Report Confidence", Group: TemporalGroup, Values: cvss3ReportConfidence, Default: NotDefined},
	}
}

func cvss3Requirements() []Metric {
	return []Metric{
		{Name: ConfidentialityRequirement, Code: "CR", Title: "Confidentiality Requirement", Group: EnvironmentalGroup, Values: cvss3Requirement, Default: NotDefined},
		{Name: IntegrityRequirement, Code: "IR", Title: "Integrity Requirement", Group: EnvironmentalGroup, Values: cvss3Requirement, Default: NotDefined},
		{Name: AvailabilityRequirement, Code: "AR", Title: "Availability Requirement", Group: EnvironmentalGroup, Values: cvss3Requirement, Default: NotDefined},
	}
}
