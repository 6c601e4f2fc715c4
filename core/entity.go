package core

import (
	"fmt"
	"maps"

	"github.com/huangsam/rvss/core/codec"
	"github.com/huangsam/rvss/schema"
)

// Entity is a value scored by one system. It can be filled from a vector or
// metric by metric, and converted back to a vector at any point.
type Entity struct {
	sys    *System
	tokens map[string]string
}

// NewEntity returns an empty entity scored by sys.
func NewEntity(sys *System) *Entity {
	return &Entity{sys: sys, tokens: make(map[string]string)}
}

// System returns the scoring system of the entity.
func (e *Entity) System() *System {
	return e.sys
}

// FromVector replaces the entity's metrics with the ones in text.
func (e *Entity) FromVector(text string) error {
	res, err := codec.Parse(text, e.sys.Schema())
	if err != nil {
		return err
	}
	e.tokens = res.Tokens()
	return nil
}

// Set assigns token to the named metric.
func (e *Entity) Set(name, token string) error {
	m, ok := e.sys.Schema().Metric(name)
	if !ok {
		return fmt.Errorf("%w: %q is not part of %s", schema.ErrUnknownMetric, name, e.sys.Prefix())
	}
	if _, ok := m.Value(token); !ok {
		return &schema.VectorError{Kind: schema.ErrUnknownValue, Code: m.Code, Token: token, Position: -1, Offset: -1}
	}
	e.tokens[name] = token
	return nil
}

// Get returns the token assigned to the named metric, if any.
func (e *Entity) Get(name string) (string, bool) {
	token, ok := e.tokens[name]
	return token, ok
}

// Resolved returns the complete metric set, applying defaults. It fails with
// schema.ErrMissingMetric while a mandatory metric is unset.
func (e *Entity) Resolved() (schema.Resolved, error) {
	return e.sys.Schema().Resolve(maps.Clone(e.tokens))
}

// ToVector returns the canonical vector of the entity.
func (e *Entity) ToVector(opts ...codec.Option) (string, error) {
	res, err := e.Resolved()
	if err != nil {
		return "", err
	}
	return codec.Serialize(res, opts...), nil
}

// Calculate scores the entity with its system.
func (e *Entity) Calculate() (any, error) {
	res, err := e.Resolved()
	if err != nil {
		return nil, err
	}
	return e.sys.Calculate(res)
}
