package schema

import (
	"fmt"
	"iter"
	"slices"
)

// Resolved holds exactly one value for every metric of a schema.
// The zero value is empty and belongs to no schema.
type Resolved struct {
	schema *Schema
	picks  []int
}

// Resolve builds a Resolved from metric name to token. Metrics that are not
// present take their default; a mandatory metric that is not present fails
// with ErrMissingMetric.
func (s *Schema) Resolve(tokens map[string]string) (Resolved, error) {
	for name := range tokens {
		if !s.Has(name) {
			return Resolved{}, fmt.Errorf("%w: %q is not part of %s", ErrUnknownMetric, name, s.prefix)
		}
	}

	picks := make([]int, len(s.metrics))
	for i, m := range s.metrics {
		token, ok := tokens[m.Name]
		if !ok {
			if m.Required() {
				return Resolved{}, NewVectorError(ErrMissingMetric, m.Code, "")
			}
			token = m.Default
		}
		idx := slices.IndexFunc(m.Values, func(v Value) bool { return v.Token == token })
		if idx < 0 {
			return Resolved{}, &VectorError{Kind: ErrUnknownValue, Code: m.Code, Token: token, Position: -1, Offset: -1}
		}
		picks[i] = idx
	}
	return Resolved{schema: s, picks: picks}, nil
}

// Schema returns the schema the values belong to.
func (r Resolved) Schema() *Schema {
	return r.schema
}

// IsZero reports whether r is the empty Resolved.
func (r Resolved) IsZero() bool {
	return r.schema == nil
}

// Value returns the resolved value of the named metric.
func (r Resolved) Value(name string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	i, ok := r.schema.byName[name]
	if !ok {
		return Value{}, false
	}
	return r.schema.metrics[i].Values[r.picks[i]], true
}

// Token returns the token of the named metric, or "" if it is not in the schema.
func (r Resolved) Token(name string) string {
	v, _ := r.Value(name)
	return v.Token
}

// Weight returns the weight of the named metric, or 0 if it is not in the schema.
func (r Resolved) Weight(name string) float64 {
	v, _ := r.Value(name)
	return v.Weight
}

// IsDefault reports whether the named metric holds its default value.
func (r Resolved) IsDefault(name string) bool {
	if r.schema == nil {
		return false
	}
	i, ok := r.schema.byName[name]
	if !ok {
		return false
	}
	m := r.schema.metrics[i]
	return m.IsDefault(m.Values[r.picks[i]].Token)
}

// With returns a copy of r with the named metric set to token.
func (r Resolved) With(name, token string) (Resolved, error) {
	if r.schema == nil {
		return Resolved{}, fmt.Errorf("%w: empty metric set", ErrSchema)
	}
	i, ok := r.schema.byName[name]
	if !ok {
		return Resolved{}, fmt.Errorf("%w: %q is not part of %s", ErrUnknownMetric, name, r.schema.prefix)
	}
	m := r.schema.metrics[i]
	idx := slices.IndexFunc(m.Values, func(v Value) bool { return v.Token == token })
	if idx < 0 {
		return Resolved{}, &VectorError{Kind: ErrUnknownValue, Code: m.Code, Token: token, Position: -1, Offset: -1}
	}
	picks := slices.Clone(r.picks)
	picks[i] = idx
	return Resolved{schema: r.schema, picks: picks}, nil
}

// All yields each metric with its resolved value in schema order.
func (r Resolved) All() iter.Seq2[Metric, Value] {
	return func(yield func(Metric, Value) bool) {
		if r.schema == nil {
			return
		}
		for i, m := range r.schema.metrics {
			if !yield(m.clone(), m.Values[r.picks[i]]) {
				return
			}
		}
	}
}

// Tokens returns metric name to token.
func (r Resolved) Tokens() map[string]string {
	out := make(map[string]string, len(r.picks))
	for m, v := range r.All() {
		out[m.Name] = v.Token
	}
	return out
}

// Weights returns metric name to weight.
func (r Resolved) Weights() map[string]float64 {
	out := make(map[string]float64, len(r.picks))
	for m, v := range r.All() {
		out[m.Name] = v.Weight
	}
	return out
}

// Equal reports whether both sets belong to the same schema and hold the same tokens.
func (r Resolved) Equal(other Resolved) bool {
	return r.schema == other.schema && slices.Equal(r.picks, other.picks)
}
