package schema

// Custom string types for type safety.
type (
	// Group represents the metric group a metric belongs to.
	Group string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for score history.
	DatabaseBackend string

	// Severity represents a qualitative severity rating.
	Severity string
)

// All metric groups supported.
const (
	BaseGroup          Group = "base"
	TemporalGroup      Group = "temporal"
	EnvironmentalGroup Group = "environmental"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Qualitative severity ratings.
const (
	SeverityNone     Severity = "None"
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// ValidGroups lists all valid metric groups.
var ValidGroups = map[Group]struct{}{
	BaseGroup:          {},
	TemporalGroup:      {},
	EnvironmentalGroup: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
