package algo

import (
	"math"
	"testing"

	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolve is a test helper that builds a metric set from name/token pairs.
func resolve(t *testing.T, s *schema.Schema, tokens map[string]string) schema.Resolved {
	t.Helper()
	r, err := s.Resolve(tokens)
	require.NoError(t, err)
	return r
}

func cvss3Base(av, ac, pr, ui, s, c, i, a string) map[string]string {
	return map[string]string{
		schema.AttackVector: av, schema.AttackComplexity: ac, schema.PrivilegesRequired: pr,
		schema.UserInteraction: ui, schema.Scope: s,
		schema.Confidentiality: c, schema.Integrity: i, schema.Availability: a,
	}
}

func TestRoundUp1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.0, 4.0},
		{4.02, 4.1},
		{4.000000000000001, 4.0},
		{7.2521, 7.3},
		{8.7, 8.7},
		{9.99, 10.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUp1(tt.in), "RoundUp1(%v)", tt.in)
	}
}

func TestRoundUp1IgnoresFloatNoise(t *testing.T) {
	// CVSS v3.0 and RVSS share this roundup with v3.1. A plain ceil(x*10)/10
	// only differs on binary noise.
	a, b := 0.1, 0.2
	noisy := a + b
	assert.Equal(t, 0.4, math.Ceil(noisy*10)/10)
	assert.Equal(t, 0.3, RoundUp1(noisy))

	assert.Equal(t, math.Ceil(4.02*10)/10, RoundUp1(4.02))
	assert.Equal(t, math.Ceil(7.2521*10)/10, RoundUp1(7.2521))
}

func TestRoundHalfUp1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.35, 4.4},
		{4.349, 4.3},
		{5.36655, 5.4},
		{6.92, 6.9},
		{10, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp1(tt.in), "RoundHalfUp1(%v)", tt.in)
	}
}

func TestCVSS30(t *testing.T) {
	tests := []struct {
		name   string
		tokens map[string]string
		want   Scores
	}{
		{
			name:   "adjacent full impact",
			tokens: cvss3Base("A", "L", "N", "N", "U", "H", "H", "H"),
			want:   Scores{Base: 8.8, Temporal: 8.8, Environmental: 8.8},
		},
		{
			name:   "network critical",
			tokens: cvss3Base("N", "L", "N", "N", "U", "H", "H", "H"),
			want:   Scores{Base: 9.8, Temporal: 9.8, Environmental: 9.8},
		},
		{
			name:   "scope changed",
			tokens: cvss3Base("N", "L", "N", "N", "C", "H", "H", "H"),
			want:   Scores{Base: 10, Temporal: 10, Environmental: 10},
		},
		{
			name:   "no impact",
			tokens: cvss3Base("N", "L", "N", "N", "U", "N", "N", "N"),
			want:   Scores{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolve(t, schema.CVSS30, tt.tokens)
			assert.Equal(t, tt.want, CVSS30(r))
		})
	}
}

func TestCVSS30ModifiedPrivileges(t *testing.T) {
	tokens := cvss3Base("L", "L", "H", "R", "U", "H", "N", "H")
	tokens[schema.ModifiedPrivilegesRequired] = "N"
	r := resolve(t, schema.CVSS30, tokens)

	assert.Equal(t, Scores{Base: 5.8, Temporal: 5.8, Environmental: 7.1}, CVSS30(r))
}

func TestCVSS3Temporal(t *testing.T) {
	tokens := cvss3Base("N", "L", "N", "N", "U", "H", "H", "H")
	tokens[schema.ExploitCodeMaturity] = "P"
	tokens[schema.RemediationLevel] = "O"
	tokens[schema.ReportConfidence] = "C"
	r := resolve(t, schema.CVSS30, tokens)

	// 9.8 * 0.94 * 0.95 = 8.7514
	assert.Equal(t, 8.8, CVSS3Temporal(r))
	assert.Equal(t, 8.8, CVSS30Environmental(r))
}

func TestCVSS31ChangedScopeEnvironmental(t *testing.T) {
	tokens := cvss3Base("N", "L", "N", "N", "U", "H", "H", "H")
	tokens[schema.ModifiedScope] = "C"
	tokens[schema.ConfidentialityRequirement] = "H"
	tokens[schema.IntegrityRequirement] = "H"
	tokens[schema.AvailabilityRequirement] = "H"

	r30 := resolve(t, schema.CVSS30, tokens)
	r31 := resolve(t, schema.CVSS31, tokens)

	assert.Equal(t, CVSS3Base(r30), CVSS3Base(r31))
	assert.Equal(t, 10.0, CVSS30Environmental(r30))
	assert.Equal(t, 10.0, CVSS31Environmental(r31))

	tokens[schema.ModifiedConfidentiality] = "L"
	tokens[schema.ModifiedIntegrity] = "N"
	tokens[schema.ModifiedAvailability] = "N"
	tokens[schema.ConfidentialityRequirement] = "M"
	r30 = resolve(t, schema.CVSS30, tokens)
	r31 = resolve(t, schema.CVSS31, tokens)

	// MISS = 0.22: v3.0 impact 1.4344, v3.1 impact 1.4344 less a smaller power term.
	b30 := ExplainCVSS30(r30)
	b31 := ExplainCVSS31(r31)
	assert.InDelta(t, 7.52*(0.22-0.029)-3.25*math.Pow(0.2, 15), b30[schema.BreakdownModifiedImpact], 1e-9)
	assert.InDelta(t, 7.52*(0.22-0.029)-3.25*math.Pow(0.22*0.9731-0.02, 13), b31[schema.BreakdownModifiedImpact], 1e-9)
}

func TestMissIsCapped(t *testing.T) {
	tokens := cvss3Base("N", "L", "N", "N", "U", "H", "H", "H")
	tokens[schema.ConfidentialityRequirement] = "H"
	r := resolve(t, schema.CVSS30, tokens)

	b := ExplainCVSS30(r)
	assert.InDelta(t, 6.42*0.915, b[schema.BreakdownModifiedImpact], 1e-9)
}

func TestCVSS2(t *testing.T) {
	r := resolve(t, schema.CVSS2, map[string]string{
		schema.AccessVector: "L", schema.AccessComplexity: "M", schema.Authentication: "N",
		schema.Confidentiality: "N", schema.Integrity: "P", schema.Availability: "C",
		schema.Exploitability: "POC", schema.RemediationLevel: "W", schema.ReportConfidence: "UR",
		schema.CollateralDamagePotential: "LM", schema.TargetDistribution: "H",
		schema.ConfidentialityRequirement: "M", schema.IntegrityRequirement: "L", schema.AvailabilityRequirement: "H",
	})
	assert.Equal(t, Scores{Base: 5.4, Temporal: 4.4, Environmental: 6.9}, CVSS2(r))

	b := ExplainCVSS2(r)
	assert.LessOrEqual(t, math.Abs(b[schema.BreakdownImpact]-7.843935), 1e-6)
	assert.Equal(t, 10.0, b[schema.BreakdownAdjustedImpact])
	assert.Equal(t, 5.6, b[schema.BreakdownAdjustedTemporal])
}

func TestCVSS2Defaults(t *testing.T) {
	r := resolve(t, schema.CVSS2, map[string]string{
		schema.AccessVector: "N", schema.AccessComplexity: "L", schema.Authentication: "N",
		schema.Confidentiality: "C", schema.Integrity: "C", schema.Availability: "C",
	})
	// Not Defined temporal and environmental metrics leave the base score intact.
	assert.Equal(t, Scores{Base: 10, Temporal: 10, Environmental: 10}, CVSS2(r))

	none := resolve(t, schema.CVSS2, map[string]string{
		schema.AccessVector: "N", schema.AccessComplexity: "L", schema.Authentication: "N",
		schema.Confidentiality: "N", schema.Integrity: "N", schema.Availability: "N",
	})
	assert.Equal(t, 0.0, CVSS2Base(none))
}

func TestRVSS1(t *testing.T) {
	r := resolve(t, schema.RVSS1, map[string]string{
		schema.AttackVector: "AN", schema.AttackComplexity: "L", schema.PrivilegesRequired: "N",
		schema.UserInteraction: "N", schema.Age: "O", schema.Scope: "U",
		schema.Confidentiality: "N", schema.Integrity: "L", schema.Availability: "N", schema.Safety: "H",
	})
	assert.Equal(t, Scores{Base: 7.3, Temporal: 7.3, Environmental: 7.3}, RVSS1(r))

	b := ExplainRVSS1(r)
	assert.InDelta(t, 4.41696, b[schema.BreakdownImpact], 1e-9)
	assert.InDelta(t, b[schema.BreakdownImpact], b[schema.BreakdownModifiedImpact], 1e-9)

	zeroDay, err := r.With(schema.Age, "Z")
	require.NoError(t, err)
	assert.Less(t, RVSS1Base(zeroDay), RVSS1Base(r))

	safe, err := r.With(schema.ModifiedSafety, "N")
	require.NoError(t, err)
	assert.Less(t, RVSS1Environmental(safe), RVSS1Environmental(r))
	assert.Equal(t, RVSS1Temporal(r), RVSS1Temporal(safe))
}

func rvss1Base(av, pr, s, c, i, a, h string) map[string]string {
	tokens := cvss3Base(av, "L", pr, "N", s, c, i, a)
	tokens[schema.Age] = "O"
	tokens[schema.Safety] = h
	return tokens
}

func TestRVSS1HighSafetyEnvironmental(t *testing.T) {
	tests := []struct {
		av   string
		want Scores
	}{
		{"RN", Scores{Base: 10, Temporal: 10, Environmental: 10}},
		{"PR", Scores{Base: 7.2, Temporal: 7.2, Environmental: 7.2}},
	}
	for _, tt := range tests {
		t.Run(tt.av, func(t *testing.T) {
			r := resolve(t, schema.RVSS1, rvss1Base(tt.av, "N", "U", "H", "H", "H", "H"))
			assert.Equal(t, tt.want, RVSS1(r))

			b := ExplainRVSS1(r)
			assert.Greater(t, b[schema.BreakdownImpact], 6.42*0.915)
			assert.InDelta(t, b[schema.BreakdownImpact], b[schema.BreakdownModifiedImpact], 1e-9)
		})
	}
}

func TestRVSS1ScopeChanged(t *testing.T) {
	changed := resolve(t, schema.RVSS1, rvss1Base("RN", "L", "C", "L", "L", "N", "N"))
	assert.Equal(t, Scores{Base: 6.4, Temporal: 6.4, Environmental: 6.4}, RVSS1(changed))

	b := ExplainRVSS1(changed)
	assert.InDelta(t, 7.52*(0.3916-0.029)-3.25*math.Pow(0.3916-0.02, 15), b[schema.BreakdownImpact], 1e-9)
	assert.InDelta(t, 8.22*0.85*0.77*0.68*0.85, b[schema.BreakdownExploitability], 1e-9)

	unchanged := resolve(t, schema.RVSS1, rvss1Base("RN", "L", "U", "L", "L", "N", "N"))
	assert.Equal(t, Scores{Base: 5.4, Temporal: 5.4, Environmental: 5.4}, RVSS1(unchanged))

	scoped, err := unchanged.With(schema.ModifiedScope, "C")
	require.NoError(t, err)
	assert.Equal(t, Scores{Base: 5.4, Temporal: 5.4, Environmental: 6.4}, RVSS1(scoped))
}

func BenchmarkCVSS31(b *testing.B) {
	tokens := cvss3Base("N", "L", "N", "N", "C", "H", "H", "H")
	r, err := schema.CVSS31.Resolve(tokens)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_ = CVSS31(r)
	}
}
