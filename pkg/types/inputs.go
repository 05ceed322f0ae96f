package types

import (
	"fmt"
	"math"
	"sort"
)

// Inputs holds the crisp value supplied for each antecedent variable, keyed by variable name.
type Inputs map[string]float64

// Value returns the crisp value for the named variable.
func (in Inputs) Value(variable string) (float64, bool) {
	v, ok := in[variable]
	return v, ok
}

// Require checks that every named variable has a finite value.
// Missing names are reported in sorted order so the error text is stable.
func (in Inputs) Require(variables ...string) error {
	var missing []string
	for _, name := range variables {
		v, ok := in[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value for %q is not finite: %v", name, v)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing value for %v", missing)
	}
	return nil
}

// Point is one sample of a membership curve.
type Point struct {
	X      float64 `json:"x"`
	Degree float64 `json:"degree"`
}

// Curve is a membership curve sampled over a universe.
type Curve []Point
