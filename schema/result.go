package schema

// ScoreResult is the render model of one scored vector.
// Custom holds the opaque result of a user-defined system; the three score
// fields are only meaningful when Custom is nil.
type ScoreResult struct {
	Source        string            `json:"source,omitempty" yaml:"source,omitempty"`
	Vector        string            `json:"vector" yaml:"vector"`
	System        string            `json:"system" yaml:"system"`
	Base          float64           `json:"base" yaml:"base"`
	Temporal      float64           `json:"temporal" yaml:"temporal"`
	Environmental float64           `json:"environmental" yaml:"environmental"`
	Severity      Severity          `json:"severity,omitempty" yaml:"severity,omitempty"`
	Custom        any               `json:"custom,omitempty" yaml:"custom,omitempty"`
	Breakdown     Breakdown         `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	Metrics       map[string]string `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Error         string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// MetricRow is the render model of one resolved metric.
type MetricRow struct {
	Code       string  `json:"code" yaml:"code"`
	Name       string  `json:"name" yaml:"name"`
	Title      string  `json:"title" yaml:"title"`
	Group      Group   `json:"group" yaml:"group"`
	Token      string  `json:"token" yaml:"token"`
	ValueTitle string  `json:"value_title" yaml:"value_title"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Default    bool    `json:"default" yaml:"default"`
}

// ParseResult is the render model of a parsed vector.
type ParseResult struct {
	Input     string      `json:"input" yaml:"input"`
	System    string      `json:"system" yaml:"system"`
	Canonical string      `json:"canonical" yaml:"canonical"`
	Metrics   []MetricRow `json:"metrics" yaml:"metrics"`
}

// SystemInfo is the render model of a registered scoring system.
type SystemInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Prefix  string   `json:"prefix" yaml:"prefix"`
	Legacy  bool     `json:"legacy" yaml:"legacy"`
	Builtin bool     `json:"builtin" yaml:"builtin"`
	Metrics int      `json:"metrics" yaml:"metrics"`
	Groups  []Group  `json:"groups" yaml:"groups"`
	Codes   []string `json:"codes" yaml:"codes"`
}

// SystemDescription is the render model of a system with its full metric enumeration.
type SystemDescription struct {
	SystemInfo `yaml:",inline"`
	Schema     []Metric `json:"schema" yaml:"schema"`
}
