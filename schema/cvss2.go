package schema

// CVSS2 is the built-in CVSS v2 schema. Vectors in the wild usually carry no
// prefix, so it is a legacy schema.
var CVSS2 = MustNew(CVSS2Prefix, []Metric{
	{Name: AccessVector, Code: "AV", Title: "Access Vector", Group: BaseGroup, Values: []Value{
		{Token: "L", Title: "Local", Weight: 0.395},
		{Token: "A", Title: "Adjacent Network", Weight: 0.646},
		{Token: "N", Title: "Network", Weight: 1},
	}},
	{Name: AccessComplexity, Code: "AC", Title: "Access Complexity", Group: BaseGroup, Values: []Value{
		{Token: "H", Title: "High", Weight: 0.35},
		{Token: "M", Title: "Medium", Weight: 0.61},
		{Token: "L", Title: "Low", Weight: 0.71},
	}},
	{Name: Authentication, Code: "Au", Title: "Authentication", Group: BaseGroup, Values: []Value{
		{Token: "M", Title: "Multiple", Weight: 0.45},
		{Token: "S", Title: "Single", Weight: 0.56},
		{Token: "N", Title: "None", Weight: 0.704},
	}},
	{Name: Confidentiality, Code: "C", Title: "Confidentiality Impact", Group: BaseGroup, Values: cvss2Impact},
	{Name: Integrity, Code: "I", Title: "Integrity Impact", Group: BaseGroup, Values: cvss2Impact},
	{Name: Availability, Code: "A", Title: "Availability Impact", Group: BaseGroup, Values: cvss2Impact},
	{Name: Exploitability, Code: "E", Title: "Exploitability", Group: TemporalGroup, Default: "ND", Values: []Value{
		{Token: "U", Title: "Unproven", Weight: 0.85},
		{Token: "POC", Title: "Proof-of-Concept", Weight: 0.9},
		{Token: "F", Title: "Functional", Weight: 0.95},
		{Token: "H", Title: "High", Weight: 1},
		{Token: "ND", Title: "Not Defined", Weight: 1},
	}},
	{Name: RemediationLevel, Code: "RL", Title: "Remediation Level", Group: TemporalGroup, Default: "ND", Values: []Value{
		{Token: "OF", Title: "Official Fix", Weight: 0.87},
		{Token: "TF", Title: "Temporary Fix", Weight: 0.9},
		{Token: "W", Title: "Workaround", Weight: 0.95},
		{Token: "U", Title: "Unavailable", Weight: 1},
		{Token: "ND", Title: "Not Defined", Weight: 1},
	}},
	{Name: ReportConfidence, Code: "RC", Title: "Report Confidence", Group: TemporalGroup, Default: "ND", Values: []Value{
		{Token: "UC", Title: "Unconfirmed", Weight: 0.9},
		{Token: "UR", Title: "Uncorroborated", Weight: 0.95},
		{Token: "C", Title: "Confirmed", Weight: 1},
		{Token: "ND", Title: "Not Defined", Weight: 1},
	}},
	{Name: CollateralDamagePotential, Code: "CDP", Title: "Collateral Damage Potential", Group: EnvironmentalGroup, Default: "ND", Values: []Value{
		{Token: "N", Title: "None", Weight: 0},
		{Token: "L", Title: "Low", Weight: 0.1},
		{Token: "LM", Title: "Low-Medium", Weight: 0.3},
		{Token: "MH", Title: "Medium-High", Weight: 0.4},
		{Token: "H", Title: "High", Weight: 0.5},
		{Token: "ND", Title: "Not Defined", Weight: 0},
	}},
	{Name: TargetDistribution, Code: "TD", Title: "Target Distribution", Group: EnvironmentalGroup, Default: "ND", Values: []Value{
		{Token: "N", Title: "None", Weight: 0},
		{Token: "L", Title: "Low", Weight: 0.25},
		{Token: "M", Title: "Medium", Weight: 0.75},
		{Token: "H", Title: "High", Weight: 1},
		{Token: "ND", Title: "Not Defined", Weight: 1},
	}},
	{Name: ConfidentialityRequirement, Code: "CR", Title: "Confidentiality Requirement", Group: EnvironmentalGroup, Default: "ND", Values: cvss2Requirement},
	{Name: IntegrityRequirement, Code: "IR", Title: "Integrity Requirement", Group: EnvironmentalGroup, Default: "ND", Values: cvss2Requirement},
	{Name: AvailabilityRequirement, Code: "AR", Title: "Availability Requirement", Group: EnvironmentalGroup, Default: "ND", Values: cvss2Requirement},
}, Legacy())

var (
	cvss2Impact = []Value{
		{Token: "N", Title: "None", Weight: 0},
		{Token: "P", Title: "Partial", Weight: 0.275},
		{Token: "C", Title: "Complete", Weight: 0.66},
	}
	cvss2Requirement = []Value{
		{Token: "L", Title: "Low", Weight: 0.5},
		{Token: "M", Title: "Medium", Weight: 1},
		{Token: "H", Title: "High", Weight: 1.51},
		{Token: "ND", Title: "Not Defined", Weight: 1},
	}
)
