package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputsRequire(t *testing.T) {
	in := Inputs{"a": 1, "b": 2}
	assert.NoError(t, in.Require("a", "b"))
	assert.NoError(t, in.Require())

	err := Inputs{}.Require("z", "a")
	assert.EqualError(t, err, "missing value for [a z]")

	err = Inputs{"a": math.NaN()}.Require("a")
	assert.ErrorContains(t, err, "not finite")

	var nilInputs Inputs
	assert.Error(t, nilInputs.Require("a"))
	_, ok := nilInputs.Value("a")
	assert.False(t, ok)
}

func TestResultFired(t *testing.T) {
	r := InferenceResult{Activations: []RuleActivation{
		{Rank: 1, Index: 2, Fired: true},
		{Rank: 2, Index: 0, Fired: true},
		{Rank: 3, Index: 1},
	}}
	fired := r.Fired()
	assert.Len(t, fired, 2)
	assert.Equal(t, 2, fired[0].Index)
	assert.Empty(t, InferenceResult{}.Fired())
}
