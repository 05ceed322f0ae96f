// Package fuzzy defines the configuration side of a Mamdani fuzzy controller:
// universes, membership functions, linguistic variables and rule bases.
//
// Everything in this package is built once and is read-only afterwards,
// so values can be shared freely between goroutines.
package fuzzy

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every construction-time validation error.
var ErrConfiguration = errors.New("fuzzy: invalid configuration")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
