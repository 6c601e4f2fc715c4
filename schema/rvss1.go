package schema

// RVSS1 is the built-in Robot Vulnerability Scoring System v1 schema. It
// extends CVSS v3 with the Age (Y) and Safety (H) base metrics and robot
// specific attack vectors.
var RVSS1 = MustNew(RVSS1Prefix, rvss1Metrics())

var (
	rvss1AttackVector = []Value{
		{Token: "RN", Title: "Remote Network", Weight: 0.85},
		{Token: "AN", Title: "Adjacent Network", Weight: 0.62},
		{Token: "IN", Title: "Internal Network", Weight: 0.58},
		{Token: "L", Title: "Local", Weight: 0.55},
		{Token: "PP", Title: "Physical Public", Weight: 0.25},
		{Token: "PR", Title: "Physical Restricted", Weight: 0.2},
	}
	rvss1Age = []Value{
		{Token: "O", Title: "Old", Weight: 1},
		{Token: "U", Title: "Unknown", Weight: 0.95},
		{Token: "Z", Title: "Zero-day", Weight: 0.85},
	}
	rvss1Safety = []Value{
		{Token: "N", Title: "None", Weight: 0},
		{Token: "E", Title: "Environmental", Weight: 0.3},
		{Token: "H", Title: "Human", Weight: 0.6},
	}
)

func rvss1Metrics() []Metric {
	metrics := []Metric{
		{Name: AttackVector, Code: "AV", Title: "Attack Vector", Group: BaseGroup, Values: rvss1AttackVector},
		{Name: AttackComplexity, Code: "AC", Title: "Attack Complexity", Group: BaseGroup, Values: cvss3AttackComplexity},
		{Name: PrivilegesRequired, Code: "PR", Title: "Privileges Required", Group: BaseGroup, Values: cvss3PrivilegesRequired},
		{Name: UserInteraction, Code: "UI", Title: "User Interaction", Group: BaseGroup, Values: cvss3UserInteraction},
		{Name: Age, Code: "Y", Title: "Age", Group: BaseGroup, Values: rvss1Age},
		{Name: Scope, Code: "S", Title: "Scope", Group: BaseGroup, Values: cvss3Scope},
		{Name: Confidentiality, Code: "C", Title: "Confidentiality Impact", Group: BaseGroup, Values: cvss3Impact},
		{Name: Integrity, Code: "I", Title: "Integrity Impact", Group: BaseGroup, Values: cvss3Impact},
		{Name: Availability, Code: "A", Title: "Availability Impact", Group: BaseGroup, Values: cvss3Impact},
		{Name: Safety, Code: "H", Title: "Safety Impact", Group: BaseGroup, Values: rvss1Safety},
	}
	metrics = append(metrics, cvss3Temporal()...)
	metrics = append(metrics, cvss3Requirements()...)
	return append(metrics,
		Metric{Name: ModifiedAttackVector, Code: "MAV", Title: "Modified Attack Vector", Group: EnvironmentalGroup, Values: notDefined(rvss1AttackVector), Default: NotDefined},
		Metric{Name: ModifiedAttackComplexity, Code: "MAC", Title: "Modified Attack Complexity", Group: EnvironmentalGroup, Values: notDefined(cvss3AttackComplexity), Default: NotDefined},
		Metric{Name: ModifiedPrivilegesRequired, Code: "MPR", Title: "Modified Privileges Required", Group: EnvironmentalGroup, Values: notDefined(cvss3PrivilegesRequired), Default: NotDefined},
		Metric{Name: ModifiedUserInteraction, Code: "MUI", Title: "Modified User Interaction", Group: EnvironmentalGroup, Values: notDefined(cvss3UserInteraction), Default: NotDefined},
		Metric{Name: ModifiedAge, Code: "MY", Title: "Modified Age", Group: EnvironmentalGroup, Values: notDefined(rvss1Age), Default: NotDefined},
		Metric{Name: ModifiedScope, Code: "MS", Title: "Modified Scope", Group: EnvironmentalGroup, Values: notDefined(cvss3Scope), Default: NotDefined},
		Metric{Name: ModifiedConfidentiality, Code: "MC", Title: "Modified Confidentiality", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
		Metric{Name: ModifiedIntegrity, Code: "MI", Title: "Modified Integrity", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
		Metric{Name: ModifiedAvailability, Code: "MA", Title: "Modified Availability", Group: EnvironmentalGroup, Values: notDefined(cvss3Impact), Default: NotDefined},
		Metric{Name: ModifiedSafety, Code: "MH", Title: "Modified Safety", Group: EnvironmentalGroup, Values: notDefined(rvss1Safety), Default: NotDefined},
	)
}
