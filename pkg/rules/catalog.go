package rules

import (
	"fmt"
	"sort"

	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
)

// Preset names.
const (
	PresetGaussian   = "gaussian"
	PresetTriangular = "triangular"
)

// DefaultPreset is the rule base used when none is configured.
const DefaultPreset = PresetGaussian

// Preset is a named, compiled-in rule base.
type Preset struct {
	Name        string
	Description string
	Build       func() (*fuzzy.RuleBase, error)
}

var catalog = map[string]Preset{
	PresetGaussian: {
		Name:        PresetGaussian,
		Description: "23 rules, Gaussian temperature terms (sigma 10)",
		Build:       Gaussian,
	},
	PresetTriangular: {
		Name:        PresetTriangular,
		Description: "10 rules, triangular temperature terms",
		Build:       Triangular,
	},
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, error) {
	p, ok := catalog[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %v)", name, Names())
	}
	return p, nil
}

// Build looks up and builds the named preset.
func Build(name string) (*fuzzy.RuleBase, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	rb, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("build preset %s: %w", name, err)
	}
	return rb, nil
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets lists the presets in name order.
func Presets() []Preset {
	names := Names()
	out := make([]Preset, len(names))
	for i, name := range names {
		out[i] = catalog[name]
	}
	return out
}
