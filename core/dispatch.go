package core

import (
	"github.com/huangsam/rvss/core/algo"
	"github.com/huangsam/rvss/core/codec"
	"github.com/huangsam/rvss/schema"
)

// Route returns the system responsible for text, based on its prefix.
func (r *Registry) Route(text string) (*System, error) {
	return r.Lookup(codec.SplitPrefix(text))
}

// Parse routes text to its system and decodes it.
func (r *Registry) Parse(text string) (*System, schema.Resolved, error) {
	sys, err := r.Route(text)
	if err != nil {
		return nil, schema.Resolved{}, err
	}
	res, err := codec.Parse(text, sys.Schema())
	if err != nil {
		return sys, schema.Resolved{}, err
	}
	return sys, res, nil
}

// Calculate routes text to its system, decodes it and scores it. Built-in
// systems return algo.Scores; user systems return whatever they compute.
func (r *Registry) Calculate(text string) (any, error) {
	sys, res, err := r.Parse(text)
	if err != nil {
		return nil, err
	}
	return sys.Calculate(res)
}

// Canonical returns the canonical form of text.
func (r *Registry) Canonical(text string, opts ...codec.Option) (string, error) {
	_, res, err := r.Parse(text)
	if err != nil {
		return "", err
	}
	return codec.Serialize(res, opts...), nil
}

// Score calculates text and returns the render model used by the CLI, the
// batch runner and the MCP tools. Failures are reported in the Error field.
func (r *Registry) Score(text string, explain bool) schema.ScoreResult {
	result := schema.ScoreResult{Vector: text}

	sys, res, err := r.Parse(text)
	if sys != nil {
		result.System = sys.Name()
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	out, err := sys.Calculate(res)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Vector = codec.Serialize(res)
	result.Metrics = res.Tokens()
	if scores, ok := out.(algo.Scores); ok {
		result.Base = scores.Base
		result.Temporal = scores.Temporal
		result.Environmental = scores.Environmental
		if sev, ok := sys.Rate(scores.Environmental); ok {
			result.Severity = sev
		}
	} else {
		result.Custom = out
	}
	if explain {
		if b, ok := sys.Explain(res); ok {
			result.Breakdown = b
		}
	}
	return result
}

// Rows returns the render model of a resolved metric set.
func Rows(res schema.Resolved) []schema.MetricRow {
	rows := make([]schema.MetricRow, 0, res.Schema().Len())
	for m, v := range res.All() {
		rows = append(rows, schema.MetricRow{
			Code:       m.Code,
			Name:       m.Name,
			Title:      m.Title,
			Group:      m.Group,
			Token:      v.Token,
			ValueTitle: v.Title,
			Weight:     v.Weight,
			Default:    m.IsDefault(v.Token),
		})
	}
	return rows
}

// Describe parses text and returns the render model of its metrics.
func (r *Registry) Describe(text string, opts ...codec.Option) (schema.ParseResult, error) {
	sys, res, err := r.Parse(text)
	if err != nil {
		return schema.ParseResult{}, err
	}
	return schema.ParseResult{
		Input:     text,
		System:    sys.Name(),
		Canonical: codec.Serialize(res, opts...),
		Metrics:   Rows(res),
	}, nil
}
