package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/rvss/schema"
)

// Calculator turns a resolved metric set into a score. Requires names the
// metrics the calculator reads; the registry checks them against the schema
// once, at registration.
type Calculator interface {
	Requires() []string
	Calculate(r schema.Resolved) (any, error)
}

// Explainer is implemented by calculators that can report intermediate values.
type Explainer interface {
	Explain(r schema.Resolved) schema.Breakdown
}

// Rater is implemented by calculators with a qualitative severity scale.
type Rater interface {
	Rate(score float64) schema.Severity
}

type calculatorFunc struct {
	requires []string
	fn       func(schema.Resolved) (any, error)
}

func (c calculatorFunc) Requires() []string { return slices.Clone(c.requires) }

func (c calculatorFunc) Calculate(r schema.Resolved) (any, error) { return c.fn(r) }

// CalculatorFunc adapts a plain function to the Calculator interface.
func CalculatorFunc(requires []string, fn func(schema.Resolved) (any, error)) Calculator {
	return calculatorFunc{requires: slices.Clone(requires), fn: fn}
}

// System is a registered scoring system: a schema bound to a calculator.
type System struct {
	name    string
	schema  *schema.Schema
	calc    Calculator
	builtin bool
}

// Name returns the registered name, e.g. cvss3.
func (s *System) Name() string { return s.name }

// Prefix returns the schema's version prefix.
func (s *System) Prefix() string { return s.schema.Prefix() }

// Schema returns the system's schema.
func (s *System) Schema() *schema.Schema { return s.schema }

// Builtin reports whether the system ships with the registry.
func (s *System) Builtin() bool { return s.builtin }

// Calculate scores r, which must belong to the system's schema.
func (s *System) Calculate(r schema.Resolved) (any, error) {
	if r.Schema() != s.schema {
		return nil, fmt.Errorf("%w: metrics do not belong to %s", schema.ErrVersionMismatch, s.schema.Prefix())
	}
	return s.calc.Calculate(r)
}

// Explain returns intermediate values when the calculator supports it.
func (s *System) Explain(r schema.Resolved) (schema.Breakdown, bool) {
	ex, ok := s.calc.(Explainer)
	if !ok || r.Schema() != s.schema {
		return nil, false
	}
	return ex.Explain(r), true
}

// Rate maps a score to a severity when the calculator has a scale.
func (s *System) Rate(score float64) (schema.Severity, bool) {
	rater, ok := s.calc.(Rater)
	if !ok {
		return "", false
	}
	return rater.Rate(score), true
}

// Info returns the render model of the system.
func (s *System) Info() schema.SystemInfo {
	metrics := s.schema.Metrics()
	codes := make([]string, len(metrics))
	for i, m := range metrics {
		codes[i] = m.Code
	}
	return schema.SystemInfo{
		Name:    s.name,
		Prefix:  s.schema.Prefix(),
		Legacy:  s.schema.IsLegacy(),
		Builtin: s.builtin,
		Metrics: len(metrics),
		Groups:  s.schema.Groups(),
		Codes:   codes,
	}
}

// Describe returns the system with its full metric enumeration.
func (s *System) Describe() schema.SystemDescription {
	return schema.SystemDescription{SystemInfo: s.Info(), Schema: s.schema.Metrics()}
}

// Registry maps version prefixes to scoring systems. Registration happens
// during start-up; after Freeze the registry is read-only and safe to share
// between goroutines.
type Registry struct {
	systems  []*System
	byPrefix map[string]*System
	byName   map[string]*System
	legacy   *System
	frozen   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPrefix: make(map[string]*System),
		byName:   make(map[string]*System),
	}
}

// Register binds sch to calc under name. It fails with schema.ErrSchema when
// the name or prefix is taken, a second legacy schema is added or the
// registry is frozen, and with schema.ErrBinding when calc requires a metric
// the schema does not have.
func (r *Registry) Register(name string, sch *schema.Schema, calc Calculator) (*System, error) {
	return r.register(name, sch, calc, false)
}

func (r *Registry) register(name string, sch *schema.Schema, calc Calculator, builtin bool) (*System, error) {
	switch {
	case r.frozen:
		return nil, fmt.Errorf("%w: registry is frozen, cannot add %q", schema.ErrSchema, name)
	case name == "":
		return nil, fmt.Errorf("%w: system name is empty", schema.ErrSchema)
	case sch == nil:
		return nil, fmt.Errorf("%w: system %q has no schema", schema.ErrSchema, name)
	case calc == nil:
		return nil, fmt.Errorf("%w: system %q has no calculator", schema.ErrBinding, name)
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: system %q is already registered", schema.ErrSchema, name)
	}
	if other, ok := r.byPrefix[sch.Prefix()]; ok {
		return nil, fmt.Errorf("%w: prefix %s is already registered by %q", schema.ErrSchema, sch.Prefix(), other.name)
	}
	if sch.IsLegacy() && r.legacy != nil {
		return nil, fmt.Errorf("%w: %q cannot accept unprefixed vectors, %q already does", schema.ErrSchema, name, r.legacy.name)
	}
	for _, key := range calc.Requires() {
		if !sch.Has(key) {
			return nil, fmt.Errorf("%w: %q requires metric %q which %s does not define", schema.ErrBinding, name, key, sch.Prefix())
		}
	}

	sys := &System{name: name, schema: sch, calc: calc, builtin: builtin}
	r.systems = append(r.systems, sys)
	r.byName[name] = sys
	r.byPrefix[sch.Prefix()] = sys
	if sch.IsLegacy() {
		r.legacy = sys
	}
	return sys, nil
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Lookup returns the system for prefix. An empty prefix selects the legacy system.
func (r *Registry) Lookup(prefix string) (*System, error) {
	if prefix == "" {
		if r.legacy == nil {
			return nil, fmt.Errorf("%w: vector has no prefix and no legacy system is registered", schema.ErrUnknownSystem)
		}
		return r.legacy, nil
	}
	sys, ok := r.byPrefix[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownSystem, prefix)
	}
	return sys, nil
}

// System returns the system registered under a name or prefix.
func (r *Registry) System(nameOrPrefix string) (*System, error) {
	if sys, ok := r.byName[nameOrPrefix]; ok {
		return sys, nil
	}
	if sys, ok := r.byPrefix[nameOrPrefix]; ok {
		return sys, nil
	}
	return nil, fmt.Errorf("%w: %s", schema.ErrUnknownSystem, nameOrPrefix)
}

// Systems returns the registered systems in registration order.
func (r *Registry) Systems() []*System {
	return slices.Clone(r.systems)
}
