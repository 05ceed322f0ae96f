package rules

import (
	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
)

// Temperature term names, shared by both presets.
const (
	SuperCold    = "super_frio"
	VeryCold     = "muy_frio"
	Cold         = "frio"
	Mild         = "templado"
	Hot          = "caliente"
	VeryHot      = "muy_caliente"
	ExtremelyHot = "extremadamente_caliente"

	SuperLow      = "super_baja"
	VeryLow       = "muy_baja"
	Low           = "baja"
	Medium        = "media"
	High          = "alta"
	VeryHigh      = "muy_alta"
	ExtremelyHigh = "extremadamente_alta"
)

const gaussianSigma = 10

// Gaussian builds the 23-rule preset with Gaussian temperature terms.
func Gaussian() (*fuzzy.RuleBase, error) {
	current := fuzzy.NewAntecedent(CurrentTemp, temperatureUniverse())
	if err := addTerms(current, gaussianTerms(
		SuperCold, VeryCold, Cold, Mild, Hot, VeryHot, ExtremelyHot,
	)); err != nil {
		return nil, err
	}

	desired := fuzzy.NewAntecedent(DesiredTemp, temperatureUniverse())
	if err := addTerms(desired, gaussianTerms(
		SuperLow, VeryLow, Low, Medium, High, VeryHigh, ExtremelyHigh,
	)); err != nil {
		return nil, err
	}

	usage, err := heaterUsage()
	if err != nil {
		return nil, err
	}

	return fuzzy.NewRuleBase([]*fuzzy.Variable{current, desired}, usage,
		when(SuperCold, Low, UsageMedium),
		when(SuperCold, Medium, UsageHigh),
		when(SuperCold, High, UsageHigh),
		when(SuperCold, ExtremelyHigh, UsageVeryHigh),

		when(VeryCold, Low, UsageLow),
		when(VeryCold, Medium, UsageMedium),
		when(VeryCold, High, UsageHigh),

		when(Cold, Low, UsageLow),
		when(Cold, Medium, UsageMedium),
		when(Cold, High, UsageHigh),

		when(Mild, Low, UsageLow),
		when(Mild, Medium, UsageMedium),
		when(Mild, High, UsageMedium),
		when(Mild, ExtremelyHigh, UsageHigh),

		when(Hot, Low, UsageVeryLow),
		when(Hot, Medium, UsageLow),
		when(Hot, High, UsageMedium),

		when(VeryHot, Low, UsageVeryLow),
		when(VeryHot, Medium, UsageVeryLow),
		when(VeryHot, High, UsageLow),

		when(ExtremelyHot, Low, UsageVeryLow),
		when(ExtremelyHot, Medium, UsageLow),
		when(ExtremelyHot, High, UsageVeryLow),
	)
}

// gaussianMeans are shared by both temperature variables, coldest first.
var gaussianMeans = []float64{-90, -60, -20, 10, 30, 50, 60}

func gaussianTerms(names ...string) []term {
	out := make([]term, len(names))
	for i, name := range names {
		out[i] = term{name, fuzzy.Gaussian{Mean: gaussianMeans[i], Sigma: gaussianSigma}}
	}
	return out
}
