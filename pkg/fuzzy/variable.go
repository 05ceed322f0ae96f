package fuzzy

import (
	"fmt"

	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// Role selects what the engine does with a variable.
type Role int

const (
	// Antecedent variables are fuzzified from crisp inputs.
	Antecedent Role = iota
	// Consequent variables are the target of aggregation and defuzzification.
	Consequent
)

func (r Role) String() string {
	switch r {
	case Antecedent:
		return "antecedent"
	case Consequent:
		return "consequent"
	default:
		return "unknown"
	}
}

// Term is a named fuzzy set of a variable.
type Term struct {
	Name string
	MF   MembershipFunction
}

// Variable is a linguistic variable: named terms sharing one universe.
type Variable struct {
	name     string
	role     Role
	universe Universe
	terms    []Term
	index    map[string]int
}

// NewAntecedent creates an input variable.
func NewAntecedent(name string, u Universe) *Variable {
	return newVariable(name, Antecedent, u)
}

// NewConsequent creates an output variable.
func NewConsequent(name string, u Universe) *Variable {
	return newVariable(name, Consequent, u)
}

func newVariable(name string, role Role, u Universe) *Variable {
	return &Variable{
		name:     name,
		role:     role,
		universe: u,
		index:    make(map[string]int),
	}
}

// AddTerm registers a term. Terms keep insertion order.
func (v *Variable) AddTerm(name string, mf MembershipFunction) error {
	if name == "" {
		return configErrorf("variable %q: term name is empty", v.name)
	}
	if _, dup := v.index[name]; dup {
		return configErrorf("variable %q: duplicate term %q", v.name, name)
	}
	if mf == nil {
		return configErrorf("variable %q: term %q has no membership function", v.name, name)
	}
	if err := mf.Validate(); err != nil {
		return fmt.Errorf("variable %q term %q: %w", v.name, name, err)
	}
	if v.role == Consequent {
		var mass float64
		for _, d := range Sample(mf, v.universe) {
			mass += d
		}
		if mass == 0 {
			return configErrorf("variable %q: term %q is zero over the whole universe", v.name, name)
		}
	}
	v.index[name] = len(v.terms)
	v.terms = append(v.terms, Term{Name: name, MF: mf})
	return nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Role returns whether v is an antecedent or a consequent.
func (v *Variable) Role() Role { return v.role }

// Universe returns the domain v is sampled over.
func (v *Variable) Universe() Universe { return v.universe }

// Terms returns the terms in insertion order.
func (v *Variable) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Term looks up a term by name.
func (v *Variable) Term(name string) (Term, bool) {
	i, ok := v.index[name]
	if !ok {
		return Term{}, false
	}
	return v.terms[i], true
}

// Curves samples every term over the universe, keyed by term name.
func (v *Variable) Curves() map[string]types.Curve {
	out := make(map[string]types.Curve, len(v.terms))
	for _, t := range v.terms {
		out[t.Name] = curve(t.MF, v.universe)
	}
	return out
}

func curve(mf MembershipFunction, u Universe) types.Curve {
	c := make(types.Curve, u.Len())
	for i, x := range u.points {
		c[i] = types.Point{X: x, Degree: mf.Degree(x)}
	}
	return c
}
