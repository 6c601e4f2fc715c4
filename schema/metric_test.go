package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	good := Metric{Name: "damage", Code: "D", Group: BaseGroup, Values: []Value{{Token: "L", Weight: 1}, {Token: "H", Weight: 3}}}

	tests := []struct {
		name    string
		prefix  string
		metrics []Metric
	}{
		{"bad prefix", "DREAD", []Metric{good}},
		{"no metrics", "DREAD:1.0", nil},
		{"empty name", "DREAD:1.0", []Metric{{Code: "D", Group: BaseGroup, Values: good.Values}}},
		{"bad code", "DREAD:1.0", []Metric{{Name: "d", Code: "D1", Group: BaseGroup, Values: good.Values}}},
		{"bad group", "DREAD:1.0", []Metric{{Name: "d", Code: "D", Group: "other", Values: good.Values}}},
		{"empty enumeration", "DREAD:1.0", []Metric{{Name: "d", Code: "D", Group: BaseGroup}}},
		{"duplicate token", "DREAD:1.0", []Metric{{Name: "d", Code: "D", Group: BaseGroup, Values: []Value{{Token: "L"}, {Token: "L"}}}}},
		{"unknown default", "DREAD:1.0", []Metric{{Name: "d", Code: "D", Group: BaseGroup, Values: good.Values, Default: "M"}}},
		{"duplicate code", "DREAD:1.0", []Metric{good, {Name: "other", Code: "D", Group: BaseGroup, Values: good.Values}}},
		{"duplicate name", "DREAD:1.0", []Metric{good, {Name: "damage", Code: "R", Group: BaseGroup, Values: good.Values}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.prefix, tt.metrics)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))
		})
	}

	s, err := New("DREAD:1.0", []Metric{good})
	require.NoError(t, err)
	assert.Equal(t, "DREAD:1.0", s.Prefix())
	assert.False(t, s.IsLegacy())
}

func TestSchemaIsImmutable(t *testing.T) {
	metrics := CVSS30.Metrics()
	metrics[0].Values[0].Weight = 99
	metrics[0].Code = "ZZ"

	av, ok := CVSS30.Metric(AttackVector)
	require.True(t, ok)
	assert.Equal(t, "AV", av.Code)
	assert.Equal(t, 0.85, av.Values[0].Weight)
}

func TestBuiltinSchemas(t *testing.T) {
	tests := []struct {
		schema *Schema
		prefix string
		legacy bool
		count  int
	}{
		{CVSS2, "CVSS:2.0", true, 14},
		{CVSS30, "CVSS:3.0", false, 22},
		{CVSS31, "CVSS:3.1", false, 22},
		{RVSS1, "RVSS:1.0", false, 26},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.prefix, tt.schema.Prefix())
			assert.Equal(t, tt.legacy, tt.schema.IsLegacy())
			assert.Equal(t, tt.count, tt.schema.Len())
			for _, m := range tt.schema.Metrics() {
				if m.Group == BaseGroup {
					assert.True(t, m.Required(), m.Code)
				} else {
					assert.False(t, m.Required(), m.Code)
				}
			}
		})
	}

	au, ok := CVSS2.ByCode("Au")
	require.True(t, ok)
	assert.Equal(t, Authentication, au.Name)
	assert.Equal(t, []Group{BaseGroup, TemporalGroup, EnvironmentalGroup}, RVSS1.Groups())
}

func TestResolve(t *testing.T) {
	base := map[string]string{
		AttackVector: "N", AttackComplexity: "L", PrivilegesRequired: "N", UserInteraction: "N",
		Scope: "U", Confidentiality: "H", Integrity: "H", Availability: "H",
	}

	r, err := CVSS30.Resolve(base)
	require.NoError(t, err)
	assert.Equal(t, "N", r.Token(AttackVector))
	assert.Equal(t, 0.85, r.Weight(AttackVector))
	assert.Equal(t, NotDefined, r.Token(ExploitCodeMaturity))
	assert.True(t, r.IsDefault(ModifiedScope))
	assert.False(t, r.IsDefault(Scope))
	assert.Len(t, r.Tokens(), CVSS30.Len())

	t.Run("missing required", func(t *testing.T) {
		partial := map[string]string{AttackVector: "N"}
		_, err := CVSS30.Resolve(partial)
		assert.ErrorIs(t, err, ErrMissingMetric)
	})

	t.Run("unknown name", func(t *testing.T) {
		extra := map[string]string{Safety: "H"}
		_, err := CVSS30.Resolve(extra)
		assert.ErrorIs(t, err, ErrUnknownMetric)
	})

	t.Run("with", func(t *testing.T) {
		changed, err := r.With(Scope, "C")
		require.NoError(t, err)
		assert.Equal(t, "C", changed.Token(Scope))
		assert.Equal(t, "U", r.Token(Scope))
		assert.False(t, r.Equal(changed))

		_, err = r.With(Scope, "Z")
		assert.ErrorIs(t, err, ErrUnknownValue)
	})

	t.Run("equal", func(t *testing.T) {
		again, err := CVSS30.Resolve(base)
		require.NoError(t, err)
		assert.True(t, r.Equal(again))

		other, err := CVSS31.Resolve(base)
		require.NoError(t, err)
		assert.False(t, r.Equal(other))
	})
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityNone, RateV3(0))
	assert.Equal(t, SeverityLow, RateV3(0.1))
	assert.Equal(t, SeverityMedium, RateV3(6.9))
	assert.Equal(t, SeverityHigh, RateV3(7.0))
	assert.Equal(t, SeverityCritical, RateV3(9.8))
	assert.Equal(t, SeverityLow, RateV2(3.9))
	assert.Equal(t, SeverityHigh, RateV2(10))
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
}

func TestVectorErrorMessage(t *testing.T) {
	err := &VectorError{Kind: ErrUnknownValue, Code: "AV", Token: "Z", Position: 1, Offset: 9, Vector: "CVSS:3.0/AV:Z"}
	assert.Equal(t, `unknown metric value AV:Z at segment 1 (offset 9) in "CVSS:3.0/AV:Z"`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownValue)
}
