// Package rules holds the compiled-in rule bases of the water heater controller.
//
// Both presets share the same variables: the current and the desired water
// temperature in degrees Celsius over [-90, 60], and the heater usage in
// percent over [0, 100].
package rules

import (
	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// Variable names.
const (
	CurrentTemp = "temp_actual"
	DesiredTemp = "temp_deseada"
	HeaterUsage = "calentador"
)

// Admissible temperature domain, in degrees Celsius.
const (
	MinTemp = -90.0
	MaxTemp = 60.0
)

// Heater usage terms.
const (
	UsageVeryLow  = "muy_bajo"
	UsageLow      = "bajo"
	UsageMedium   = "medio"
	UsageHigh     = "alto"
	UsageVeryHigh = "muy_alto"
)

// Inputs builds engine inputs from a current and a desired temperature.
func Inputs(current, desired float64) types.Inputs {
	return types.Inputs{
		CurrentTemp: current,
		DesiredTemp: desired,
	}
}

func temperatureUniverse() fuzzy.Universe {
	return fuzzy.MustArange(MinTemp, MaxTemp+1, 1)
}

// heaterUsage builds the consequent shared by every preset.
func heaterUsage() (*fuzzy.Variable, error) {
	v := fuzzy.NewConsequent(HeaterUsage, fuzzy.MustArange(0, 101, 1))
	return v, addTerms(v, []term{
		{UsageVeryLow, fuzzy.Triangular{A: 0, B: 0, C: 25}},
		{UsageLow, fuzzy.Triangular{A: 10, B: 30, C: 50}},
		{UsageMedium, fuzzy.Triangular{A: 40, B: 50, C: 70}},
		{UsageHigh, fuzzy.Triangular{A: 60, B: 75, C: 90}},
		{UsageVeryHigh, fuzzy.Triangular{A: 75, B: 90, C: 100}},
	})
}

type term struct {
	name string
	mf   fuzzy.MembershipFunction
}

func addTerms(v *fuzzy.Variable, terms []term) error {
	for _, t := range terms {
		if err := v.AddTerm(t.name, t.mf); err != nil {
			return err
		}
	}
	return nil
}

// when is shorthand for a two-clause heater rule.
func when(current, desired, usage string) fuzzy.Rule {
	return fuzzy.If(CurrentTemp, current).And(DesiredTemp, desired).Then(HeaterUsage, usage)
}
