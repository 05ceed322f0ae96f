package rules

import (
	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
)

// Triangular builds the 10-rule preset with triangular temperature terms.
// It covers fewer combinations than the Gaussian preset; some inputs fire no rule.
func Triangular() (*fuzzy.RuleBase, error) {
	current := fuzzy.NewAntecedent(CurrentTemp, temperatureUniverse())
	if err := addTerms(current, []term{
		{VeryCold, fuzzy.Triangular{A: -90, B: -90, C: -45}},
		{Cold, fuzzy.Triangular{A: -60, B: -30, C: 0}},
		{Mild, fuzzy.Triangular{A: -20, B: 10, C: 40}},
		{Hot, fuzzy.Triangular{A: 20, B: 40, C: 60}},
	}); err != nil {
		return nil, err
	}

	desired := fuzzy.NewAntecedent(DesiredTemp, temperatureUniverse())
	if err := addTerms(desired, []term{
		{Low, fuzzy.Triangular{A: -90, B: -90, C: 0}},
		{Medium, fuzzy.Triangular{A: -20, B: 10, C: 40}},
		{High, fuzzy.Triangular{A: 10, B: 35, C: 60}},
	}); err != nil {
		return nil, err
	}

	usage, err := heaterUsage()
	if err != nil {
		return nil, err
	}

	return fuzzy.NewRuleBase([]*fuzzy.Variable{current, desired}, usage,
		when(VeryCold, Medium, UsageHigh),
		when(VeryCold, High, UsageVeryHigh),
		when(Cold, Low, UsageLow),
		when(Cold, Medium, UsageMedium),
		when(Cold, High, UsageHigh),
		when(Mild, Low, UsageVeryLow),
		when(Mild, Medium, UsageLow),
		when(Mild, High, UsageMedium),
		when(Hot, High, UsageLow),
		when(Hot, Medium, UsageVeryLow),
	)
}
