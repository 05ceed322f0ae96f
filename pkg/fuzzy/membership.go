package fuzzy

import (
	"fmt"
	"math"
)

// MembershipFunction maps a crisp value to a degree in [0, 1].
type MembershipFunction interface {
	Degree(x float64) float64
	Validate() error
	String() string
}

// Gaussian is exp(-(x-Mean)^2 / (2*Sigma^2)).
type Gaussian struct {
	Mean  float64
	Sigma float64
}

func (g Gaussian) Degree(x float64) float64 {
	return math.Exp(g.LogDegree(x))
}

// LogDegree is the natural log of Degree. It stays finite where Degree underflows to 0.
func (g Gaussian) LogDegree(x float64) float64 {
	d := x - g.Mean
	return -(d * d) / (2 * g.Sigma * g.Sigma)
}

func (g Gaussian) Validate() error {
	if math.IsNaN(g.Mean) || math.IsInf(g.Mean, 0) {
		return configErrorf("gaussian mean must be finite, got %v", g.Mean)
	}
	if !(g.Sigma > 0) || math.IsInf(g.Sigma, 0) {
		return configErrorf("gaussian sigma must be positive and finite, got %v", g.Sigma)
	}
	return nil
}

func (g Gaussian) String() string {
	return fmt.Sprintf("gauss(%g, %g)", g.Mean, g.Sigma)
}

// Triangular rises linearly from A to the peak at B and falls to C.
// A degenerate side (A == B or B == C) is a vertical shoulder with degree 1 at the peak.
type Triangular struct {
	A, B, C float64
}

func (t Triangular) Degree(x float64) float64 {
	switch {
	case x == t.B:
		return 1
	case x > t.A && x < t.B:
		return (x - t.A) / (t.B - t.A)
	case x > t.B && x < t.C:
		return (t.C - x) / (t.C - t.B)
	default:
		return 0
	}
}

func (t Triangular) Validate() error {
	for _, v := range []float64{t.A, t.B, t.C} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return configErrorf("triangular points must be finite, got %v", t)
		}
	}
	if t.A > t.B || t.B > t.C {
		return configErrorf("triangular points must satisfy a <= b <= c, got %v", t)
	}
	return nil
}

func (t Triangular) String() string {
	return fmt.Sprintf("tri(%g, %g, %g)", t.A, t.B, t.C)
}

// LogMembership is implemented by membership functions that can report the
// log of their degree without passing through float64 underflow.
type LogMembership interface {
	LogDegree(x float64) float64
}

// LogDegree returns log(mf.Degree(x)), or -Inf where the degree is exactly 0.
func LogDegree(mf MembershipFunction, x float64) float64 {
	if l, ok := mf.(LogMembership); ok {
		return l.LogDegree(x)
	}
	return math.Log(mf.Degree(x))
}

// Sample evaluates mf at every point of u.
func Sample(mf MembershipFunction, u Universe) []float64 {
	out := make([]float64, u.Len())
	for i, x := range u.points {
		out[i] = mf.Degree(x)
	}
	return out
}
