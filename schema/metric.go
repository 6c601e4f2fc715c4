// Package schema has the metric schema model, resolved metric sets and the
// built-in schemas for CVSS v2, CVSS v3.x and RVSS v1.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"slices"
)

var (
	// PrefixPattern matches a version prefix such as CVSS:3.0 or RVSS:1.0.
	PrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*:[0-9]+\.[0-9]+$`)

	codePattern  = regexp.MustCompile(`^[A-Za-z]+$`)
	tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Value is one admissible value of a metric.
type Value struct {
	Token  string  `json:"token" yaml:"token"`
	Title  string  `json:"title" yaml:"title"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Metric is one dimension of a scoring schema.
// Name is the stable key calculators bind to, Code is the letter(s) used in
// vector strings. An empty Default makes the metric mandatory.
type Metric struct {
	Name    string  `json:"name" yaml:"name"`
	Code    string  `json:"code" yaml:"code"`
	Title   string  `json:"title" yaml:"title"`
	Group   Group   `json:"group" yaml:"group"`
	Values  []Value `json:"values" yaml:"values"`
	Default string  `json:"default,omitempty" yaml:"default,omitempty"`
}

// Value returns the value with the given token.
func (m Metric) Value(token string) (Value, bool) {
	for _, v := range m.Values {
		if v.Token == token {
			return v, true
		}
	}
	return Value{}, false
}

// Required reports whether the metric must appear in every vector.
func (m Metric) Required() bool {
	return m.Default == ""
}

// IsDefault reports whether token is the metric's default.
func (m Metric) IsDefault(token string) bool {
	return m.Default != "" && token == m.Default
}

// Tokens returns the admissible tokens in declaration order.
func (m Metric) Tokens() []string {
	tokens := make([]string, len(m.Values))
	for i, v := range m.Values {
		tokens[i] = v.Token
	}
	return tokens
}

func (m Metric) clone() Metric {
	m.Values = slices.Clone(m.Values)
	return m
}

// Schema is an immutable ordered set of metrics tied to a version prefix.
// A legacy schema also accepts and produces vectors without the prefix.
type Schema struct {
	prefix  string
	legacy  bool
	metrics []Metric
	byCode  map[string]int
	byName  map[string]int
}

// Option configures a Schema at construction time.
type Option func(*Schema)

// Legacy marks the schema as accepting vectors without a prefix.
func Legacy() Option {
	return func(s *Schema) {
		s.legacy = true
	}
}

// New validates the metrics and builds a Schema. Every violation is reported
// as ErrSchema.
func New(prefix string, metrics []Metric, opts ...Option) (*Schema, error) {
	if !PrefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("%w: prefix %q must look like NAME:1.0", ErrSchema, prefix)
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("%w: %s has no metrics", ErrSchema, prefix)
	}

	s := &Schema{
		prefix:  prefix,
		metrics: make([]Metric, 0, len(metrics)),
		byCode:  make(map[string]int, len(metrics)),
		byName:  make(map[string]int, len(metrics)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, m := range metrics {
		if err := validateMetric(m); err != nil {
			return nil, fmt.Errorf("%w: %s metric %d: %v", ErrSchema, prefix, i, err)
		}
		if _, ok := s.byCode[m.Code]; ok {
			return nil, fmt.Errorf("%w: %s has duplicate code %q", ErrSchema, prefix, m.Code)
		}
		if _, ok := s.byName[m.Name]; ok {
			return nil, fmt.Errorf("%w: %s has duplicate name %q", ErrSchema, prefix, m.Name)
		}
		s.byCode[m.Code] = i
		s.byName[m.Name] = i
		s.metrics = append(s.metrics, m.clone())
	}
	return s, nil
}

// MustNew is New for package-level built-in schemas.
func MustNew(prefix string, metrics []Metric, opts ...Option) *Schema {
	s, err := New(prefix, metrics, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateMetric(m Metric) error {
	if m.Name == "" {
		return fmt.Errorf("empty name")
	}
	if !codePattern.MatchString(m.Code) {
		return fmt.Errorf("code %q must be letters only", m.Code)
	}
	if _, ok := ValidGroups[m.Group]; !ok {
		return fmt.Errorf("%s has invalid group %q", m.Code, m.Group)
	}
	if len(m.Values) == 0 {
		return fmt.Errorf("%s has no values", m.Code)
	}
	seen := make(map[string]struct{}, len(m.Values))
	for _, v := range m.Values {
		if !tokenPattern.MatchString(v.Token) {
			return fmt.Errorf("%s has invalid token %q", m.Code, v.Token)
		}
		if _, ok := seen[v.Token]; ok {
			return fmt.Errorf("%s has duplicate token %q", m.Code, v.Token)
		}
		if math.IsNaN(v.Weight) || math.IsInf(v.Weight, 0) {
			return fmt.Errorf("%s:%s has non-finite weight", m.Code, v.Token)
		}
		seen[v.Token] = struct{}{}
	}
	if m.Default != "" {
		if _, ok := seen[m.Default]; !ok {
			return fmt.Errorf("%s default %q is not one of its values", m.Code, m.Default)
		}
	}
	return nil
}

// Prefix returns the version prefix, e.g. CVSS:3.0.
func (s *Schema) Prefix() string {
	return s.prefix
}

// IsLegacy reports whether unprefixed vectors are accepted.
func (s *Schema) IsLegacy() bool {
	return s.legacy
}

// Len returns the number of metrics.
func (s *Schema) Len() int {
	return len(s.metrics)
}

// Metrics returns a copy of the metrics in schema order.
func (s *Schema) Metrics() []Metric {
	out := make([]Metric, len(s.metrics))
	for i, m := range s.metrics {
		out[i] = m.clone()
	}
	return out
}

// Names returns the metric names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		names[i] = m.Name
	}
	return names
}

// Metric returns the metric bound to name.
func (s *Schema) Metric(name string) (Metric, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Metric{}, false
	}
	return s.metrics[i].clone(), true
}

// ByCode returns the metric with the given vector code.
func (s *Schema) ByCode(code string) (Metric, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return Metric{}, false
	}
	return s.metrics[i].clone(), true
}

// Has reports whether name is a metric of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Groups returns the groups present in the schema, in canonical order.
func (s *Schema) Groups() []Group {
	var groups []Group
	for _, g := range []Group{BaseGroup, TemporalGroup, EnvironmentalGroup} {
		for _, m := range s.metrics {
			if m.Group == g {
				groups = append(groups, g)
				break
			}
		}
	}
	return groups
}
