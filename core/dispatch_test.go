package core

import (
	"testing"

	"github.com/huangsam/rvss/core/algo"
	"github.com/huangsam/rvss/core/codec"
	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownVectors = []struct {
	vector string
	system string
	want   algo.Scores
}{
	{
		vector: "RVSS:1.0/AV:AN/AC:L/PR:N/UI:N/Y:O/S:U/C:N/I:L/A:N/H:H",
		system: RVSS1Name,
		want:   algo.Scores{Base: 7.3, Temporal: 7.3, Environmental: 7.3},
	},
	{
		vector: "CVSS:3.0/AV:A/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		system: CVSS3Name,
		want:   algo.Scores{Base: 8.8, Temporal: 8.8, Environmental: 8.8},
	},
	{
		vector: "CVSS:2.0/AV:L/AC:M/Au:N/C:N/I:P/A:C/E:POC/RL:W/RC:UR/CDP:LM/TD:H/CR:M/IR:L/AR:H",
		system: CVSS2Name,
		want:   algo.Scores{Base: 5.4, Temporal: 4.4, Environmental: 6.9},
	},
	{
		vector: "CVSS:3.0/AV:L/AC:L/PR:H/UI:R/S:U/C:H/I:N/A:H/MPR:N",
		system: CVSS3Name,
		want:   algo.Scores{Base: 5.8, Temporal: 5.8, Environmental: 7.1},
	},
	{
		vector: "AV:N/AC:L/Au:N/C:C/I:C/A:C",
		system: CVSS2Name,
		want:   algo.Scores{Base: 10, Temporal: 10, Environmental: 10},
	},
	{
		vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		system: CVSS31Name,
		want:   algo.Scores{Base: 9.8, Temporal: 9.8, Environmental: 9.8},
	},
}

// checkKnownVectors runs the built-in regression suite against reg.
func checkKnownVectors(t *testing.T, reg *Registry) {
	t.Helper()
	for _, kv := range knownVectors {
		t.Run(kv.vector, func(t *testing.T) {
			sys, err := reg.Route(kv.vector)
			require.NoError(t, err)
			assert.Equal(t, kv.system, sys.Name())

			out, err := reg.Calculate(kv.vector)
			require.NoError(t, err)
			assert.Equal(t, kv.want, out)
		})
	}
}

func TestKnownVectors(t *testing.T) {
	checkKnownVectors(t, NewDefaultRegistry())
}

func TestDeterminism(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, kv := range knownVectors {
		first, err := reg.Calculate(kv.vector)
		require.NoError(t, err)
		for range 10 {
			again, err := reg.Calculate(kv.vector)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestPluginIsolation(t *testing.T) {
	reg := NewDefaultRegistry()
	checkKnownVectors(t, reg)

	_, err := reg.Register("risk", riskSchema, riskCalculator("likelihood", "impact"))
	require.NoError(t, err)
	reg.Freeze()

	checkKnownVectors(t, reg)

	out, err := reg.Calculate("RISK:1.0/L:H/I:H")
	require.NoError(t, err)
	assert.Equal(t, 9.0, out)

	out, err = reg.Calculate("RISK:1.0/L:H")
	require.NoError(t, err)
	assert.Equal(t, 3.0, out)
}

func TestCalculateErrors(t *testing.T) {
	reg := NewDefaultRegistry()

	_, err := reg.Calculate("CVSS:3.0/AV:Z")
	assert.ErrorIs(t, err, schema.ErrUnknownValue)

	_, err = reg.Calculate("CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H")
	assert.ErrorIs(t, err, schema.ErrMissingMetric)

	_, err = reg.Calculate("CVSS:9.9/AV:N")
	assert.ErrorIs(t, err, schema.ErrUnknownSystem)

	_, err = reg.Calculate("CVSS:3.0/AV:N/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	assert.ErrorIs(t, err, schema.ErrDuplicateMetric)

	sys, err := reg.System(CVSS3Name)
	require.NoError(t, err)
	_, v31, err := reg.Parse("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	require.NoError(t, err)
	_, err = sys.Calculate(v31)
	assert.ErrorIs(t, err, schema.ErrVersionMismatch)
}

func TestScore(t *testing.T) {
	reg := NewDefaultRegistry()

	res := reg.Score("CVSS:3.0/AV:L/AC:L/PR:H/UI:R/S:U/C:H/I:N/A:H/MPR:N/E:X", true)
	assert.Empty(t, res.Error)
	assert.Equal(t, CVSS3Name, res.System)
	assert.Equal(t, "CVSS:3.0/AV:L/AC:L/PR:H/UI:R/S:U/C:H/I:N/A:H/MPR:N", res.Vector)
	assert.Equal(t, 5.8, res.Base)
	assert.Equal(t, 7.1, res.Environmental)
	assert.Equal(t, schema.SeverityHigh, res.Severity)
	assert.Equal(t, "N", res.Metrics[schema.ModifiedPrivilegesRequired])
	assert.Contains(t, res.Breakdown, schema.BreakdownModifiedExploitability)

	bad := reg.Score("CVSS:3.0/AV:Z", false)
	assert.Equal(t, CVSS3Name, bad.System)
	assert.Contains(t, bad.Error, "unknown metric value")

	_, err := reg.Register("risk", riskSchema, riskCalculator("likelihood", "impact"))
	require.NoError(t, err)
	custom := reg.Score("RISK:1.0/L:H/I:H", true)
	assert.Equal(t, 9.0, custom.Custom)
	assert.Empty(t, custom.Severity)
	assert.Nil(t, custom.Breakdown)
}

func TestDescribe(t *testing.T) {
	reg := NewDefaultRegistry()

	parsed, err := reg.Describe("(AV:N/AC:L/Au:N/C:P/I:P/A:P)", codec.WithPrefix())
	require.NoError(t, err)
	assert.Equal(t, CVSS2Name, parsed.System)
	assert.Equal(t, "CVSS:2.0/AV:N/AC:L/Au:N/C:P/I:P/A:P", parsed.Canonical)
	require.Len(t, parsed.Metrics, 14)
	assert.Equal(t, "Au", parsed.Metrics[2].Code)
	assert.Equal(t, 0.704, parsed.Metrics[2].Weight)
	assert.True(t, parsed.Metrics[6].Default)

	_, err = reg.Describe("CVSS:3.0/AV:Z")
	assert.ErrorIs(t, err, schema.ErrUnknownValue)
}
