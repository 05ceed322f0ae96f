package fuzzy

import (
	"math"
)

// Universe is an ordered, discretized numeric domain.
type Universe struct {
	points []float64
}

// NewUniverse builds a universe from strictly increasing, finite sample points.
// The slice is copied.
func NewUniverse(points []float64) (Universe, error) {
	if len(points) == 0 {
		return Universe{}, configErrorf("universe is empty")
	}
	for i, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Universe{}, configErrorf("universe point %d is not finite", i)
		}
		if i > 0 && p <= points[i-1] {
			return Universe{}, configErrorf("universe is not strictly increasing at index %d (%v <= %v)", i, p, points[i-1])
		}
	}
	cp := make([]float64, len(points))
	copy(cp, points)
	return Universe{points: cp}, nil
}

// Arange samples [start, stop) with a fixed step.
func Arange(start, stop, step float64) (Universe, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return Universe{}, configErrorf("universe step must be positive, got %v", step)
	}
	if !(stop > start) {
		return Universe{}, configErrorf("universe stop %v must be greater than start %v", stop, start)
	}
	n := int(math.Ceil((stop - start) / step))
	points := make([]float64, n)
	for i := range points {
		// multiply instead of accumulating so the samples do not drift
		points[i] = start + float64(i)*step
	}
	return NewUniverse(points)
}

// MustArange is Arange for compiled-in configuration; it panics on error.
func MustArange(start, stop, step float64) Universe {
	u, err := Arange(start, stop, step)
	if err != nil {
		panic(err)
	}
	return u
}

// Points returns a copy of the sample points.
func (u Universe) Points() []float64 {
	cp := make([]float64, len(u.points))
	copy(cp, u.points)
	return cp
}

// Len returns the number of sample points.
func (u Universe) Len() int { return len(u.points) }

func (u Universe) Min() float64 { return u.points[0] }

func (u Universe) Max() float64 { return u.points[len(u.points)-1] }

// Contains reports whether x lies within [Min, Max].
func (u Universe) Contains(x float64) bool {
	return len(u.points) > 0 && x >= u.Min() && x <= u.Max()
}
