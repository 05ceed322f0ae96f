package types

// Numeric tolerances used by the inference engine.
const (
	// DefaultEpsilon is the firing strength at or below which a rule counts as not fired.
	DefaultEpsilon = 1e-9
	// MassTolerance is the smallest aggregated mass the centroid divides by.
	MassTolerance = 1e-12
)
