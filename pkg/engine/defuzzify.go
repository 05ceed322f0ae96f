package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// Defuzzifier turns an aggregated output curve into one crisp value.
// Implementations must be safe for concurrent use.
type Defuzzifier interface {
	// Name identifies the method in results and metrics.
	Name() string

	// Defuzzify reduces membership degrees mu sampled at points x to a crisp value.
	// x and mu have equal length. A curve with no mass must yield ErrNoRuleFired.
	Defuzzify(x, mu []float64) (float64, error)
}

// Centroid is the center of mass of the curve over the sample points:
// sum(x*mu) / sum(mu).
type Centroid struct{}

func (Centroid) Name() string { return "centroid" }

func (Centroid) Defuzzify(x, mu []float64) (float64, error) {
	if len(x) != len(mu) {
		return 0, fmt.Errorf("centroid: %d sample points but %d degrees", len(x), len(mu))
	}
	if len(mu) == 0 {
		return 0, fmt.Errorf("centroid: %w", ErrNoRuleFired)
	}
	mass := floats.Sum(mu)
	if mass <= types.MassTolerance {
		return 0, fmt.Errorf("centroid undefined for zero mass: %w", ErrNoRuleFired)
	}
	return floats.Dot(x, mu) / mass, nil
}
