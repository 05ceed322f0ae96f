package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
)

func TestPresetsBuild(t *testing.T) {
	tests := []struct {
		name      string
		rules     int
		current   int
		desired   int
		firstRule string
	}{
		{PresetGaussian, 23, 7, 7, "super_frio & baja -> medio"},
		{PresetTriangular, 10, 4, 3, "muy_frio & media -> alto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb, err := Build(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.rules, rb.Len())
			assert.Equal(t, tt.firstRule, rb.Rule(0).Label)

			current, ok := rb.Antecedent(CurrentTemp)
			require.True(t, ok)
			assert.Len(t, current.Terms(), tt.current)
			desired, ok := rb.Antecedent(DesiredTemp)
			require.True(t, ok)
			assert.Len(t, desired.Terms(), tt.desired)

			for _, v := range rb.Antecedents() {
				assert.Equal(t, 151, v.Universe().Len())
				assert.Equal(t, MinTemp, v.Universe().Min())
				assert.Equal(t, MaxTemp, v.Universe().Max())
			}

			out := rb.Consequent()
			assert.Equal(t, HeaterUsage, out.Name())
			assert.Equal(t, fuzzy.Consequent, out.Role())
			assert.Equal(t, 101, out.Universe().Len())
			names := make([]string, 0, 5)
			for _, term := range out.Terms() {
				names = append(names, term.Name)
			}
			assert.Equal(t, []string{UsageVeryLow, UsageLow, UsageMedium, UsageHigh, UsageVeryHigh}, names)
		})
	}
}

func TestGaussianTerms(t *testing.T) {
	rb, err := Gaussian()
	require.NoError(t, err)
	current, _ := rb.Antecedent(CurrentTemp)

	term, ok := current.Term(Mild)
	require.True(t, ok)
	assert.Equal(t, fuzzy.Gaussian{Mean: 10, Sigma: 10}, term.MF)

	term, ok = current.Term(ExtremelyHot)
	require.True(t, ok)
	assert.Equal(t, fuzzy.Gaussian{Mean: 60, Sigma: 10}, term.MF)
}

func TestTriangularContainsReferenceRule(t *testing.T) {
	rb, err := Triangular()
	require.NoError(t, err)

	found := false
	for _, r := range rb.Rules() {
		if r.Label == "templado & alta -> medio" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLookup(t *testing.T) {
	p, err := Lookup(PresetTriangular)
	require.NoError(t, err)
	assert.Equal(t, PresetTriangular, p.Name)
	assert.NotEmpty(t, p.Description)

	_, err = Lookup("sugeno")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = Build("sugeno")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{PresetGaussian, PresetTriangular}, Names())
	presets := Presets()
	require.Len(t, presets, 2)
	assert.Equal(t, PresetGaussian, presets[0].Name)
	assert.Contains(t, Names(), DefaultPreset)
}

func TestInputs(t *testing.T) {
	in := Inputs(-5, 30)
	assert.Equal(t, -5.0, in[CurrentTemp])
	assert.Equal(t, 30.0, in[DesiredTemp])
	assert.NoError(t, in.Require(CurrentTemp, DesiredTemp))
}
