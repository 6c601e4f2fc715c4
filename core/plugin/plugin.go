// Package plugin loads user-defined scoring systems written in CUE.
//
// A plugin file declares a system name, a version prefix, its metrics, an
// input struct whose fields name the metrics the formula reads, and a score
// expression over those inputs:
//
//	name:   "dread"
//	prefix: "DREAD:1.0"
//	metrics: [{name: "damage", code: "D", title: "Damage", group: "base",
//		values: [{token: "L", title: "Low", weight: 1}, {token: "H", title: "High", weight: 3}]}]
//	input: damage: number
//	score: input.damage * 10 / 3
//
// Each input field receives the weight of the resolved value as a CUE
// number, so input fields must be declared as number (optionally with
// bounds such as number & >=0). int and float constraints are rejected.
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/huangsam/rvss/core"
	"github.com/huangsam/rvss/schema"
)

// Definition is a compiled plugin, ready to be registered.
type Definition struct {
	Name   string
	Schema *schema.Schema
	Calc   core.Calculator
	Source string
}

// Load reads and compiles the plugin at path.
func Load(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin %s: %w", path, err)
	}
	def, err := Compile(filepath.Base(path), content)
	if err != nil {
		return nil, err
	}
	def.Source = path
	return def, nil
}

// Compile builds a Definition from CUE source.
func Compile(filename string, content []byte) (*Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(content, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile plugin %s: %w", filename, err)
	}

	name, err := lookupString(v, "name")
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", filename, err)
	}
	prefix, err := lookupString(v, "prefix")
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", filename, err)
	}

	var metrics []schema.Metric
	if err := v.LookupPath(cue.ParsePath("metrics")).Decode(&metrics); err != nil {
		return nil, fmt.Errorf("%w: plugin %s has invalid metrics: %v", schema.ErrSchema, filename, err)
	}
	sch, err := schema.New(prefix, metrics)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", filename, err)
	}

	names, err := inputNames(v)
	if err != nil {
		return nil, fmt.Errorf("%w: plugin %s: %v", schema.ErrBinding, filename, err)
	}
	if !v.LookupPath(cue.ParsePath("score")).Exists() {
		return nil, fmt.Errorf("%w: plugin %s has no score expression", schema.ErrBinding, filename)
	}

	return &Definition{
		Name:   name,
		Schema: sch,
		Calc:   &calculator{value: v, names: names},
	}, nil
}

// Register adds the plugin's system to reg.
func (d *Definition) Register(reg *core.Registry) (*core.System, error) {
	return reg.Register(d.Name, d.Schema, d.Calc)
}

// LoadAll loads and registers every plugin in paths, stopping at the first failure.
func LoadAll(reg *core.Registry, paths []string) ([]*core.System, error) {
	systems := make([]*core.System, 0, len(paths))
	for _, path := range paths {
		def, err := Load(path)
		if err != nil {
			return nil, err
		}
		sys, err := def.Register(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register plugin %s: %w", path, err)
		}
		systems = append(systems, sys)
	}
	return systems, nil
}

func lookupString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", fmt.Errorf("%w: missing %q", schema.ErrSchema, field)
	}
	s, err := f.String()
	if err != nil {
		return "", fmt.Errorf("%w: %q must be a string: %v", schema.ErrSchema, field, err)
	}
	return s, nil
}

func inputNames(v cue.Value) ([]string, error) {
	input := v.LookupPath(cue.ParsePath("input"))
	if !input.Exists() {
		return nil, fmt.Errorf("missing input struct")
	}
	it, err := input.Fields()
	if err != nil {
		return nil, err
	}
	var names []string
	for it.Next() {
		name := it.Selector().Unquoted()
		if k := it.Value().IncompleteKind(); k != cue.NumberKind {
			return nil, fmt.Errorf("input %q must be a number, got %s", name, k)
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// calculator evaluates the score expression of a plugin. A cue.Value is not
// safe for concurrent use, so evaluations are serialized.
type calculator struct {
	mu    sync.Mutex
	value cue.Value
	names []string
}

func (c *calculator) Requires() []string {
	return slices.Clone(c.names)
}

func (c *calculator) Calculate(r schema.Resolved) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.value
	for _, name := range c.names {
		v = v.FillPath(cue.MakePath(cue.Str("input"), cue.Str(name)), r.Weight(name))
	}
	score := v.LookupPath(cue.ParsePath("score"))
	if err := score.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("failed to evaluate score: %w", err)
	}
	var out any
	if err := score.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode score: %w", err)
	}
	return out, nil
}
