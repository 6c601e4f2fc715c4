package schema

// Metric names of the built-in schemas. Calculators bind to these keys.
const (
	AttackVector       = "attack_vector"
	AttackComplexity   = "attack_complexity"
	PrivilegesRequired = "privileges_required"
	UserInteraction    = "user_interaction"
	Scope              = "scope"
	Confidentiality    = "confidentiality"
	Integrity          = "integrity"
	Availability       = "availability"
	Age                = "age"
	Safety             = "safety"

	ExploitCodeMaturity = "exploit_code_maturity"
	RemediationLevel    = "remediation_level"
	ReportConfidence    = "report_confidence"

	ConfidentialityRequirement = "confidentiality_requirement"
	IntegrityRequirement       = "integrity_requirement"
	AvailabilityRequirement    = "availability_requirement"
	ModifiedAttackVector       = "modified_attack_vector"
	ModifiedAttackComplexity   = "modified_attack_complexity"
	ModifiedPrivilegesRequired = "modified_privileges_required"
	ModifiedUserInteraction    = "modified_user_interaction"
	ModifiedScope              = "modified_scope"
	ModifiedConfidentiality    = "modified_confidentiality"
	ModifiedIntegrity          = "modified_integrity"
	ModifiedAvailability       = "modified_availability"
	ModifiedAge                = "modified_age"
	ModifiedSafety             = "modified_safety"

	// CVSS v2 only.
	AccessVector              = "access_vector"
	AccessComplexity          = "access_complexity"
	Authentication            = "authentication"
	Exploitability            = "exploitability"
	CollateralDamagePotential = "collateral_damage_potential"
	TargetDistribution        = "target_distribution"
)

// NotDefined is the token modified and temporal metrics use to defer to the base value.
const NotDefined = "X"
