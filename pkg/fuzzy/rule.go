package fuzzy

import (
	"fmt"
	"strings"
)

// Clause names one term of one variable.
type Clause struct {
	Variable string
	Term     string
}

func (c Clause) String() string {
	return c.Variable + "[" + c.Term + "]"
}

// Rule is a conjunction of antecedent clauses implying one consequent clause.
type Rule struct {
	Label string
	If    []Clause
	Then  Clause
}

// Name returns the rule label, or a label derived from its clauses.
func (r Rule) Name() string {
	if r.Label != "" {
		return r.Label
	}
	terms := make([]string, len(r.If))
	for i, c := range r.If {
		terms[i] = c.Term
	}
	return strings.Join(terms, " & ") + " -> " + r.Then.Term
}

// RuleBuilder accumulates antecedent clauses for a rule.
type RuleBuilder struct {
	clauses []Clause
}

// If starts a rule with its first antecedent clause.
func If(variable, term string) *RuleBuilder {
	return &RuleBuilder{clauses: []Clause{{Variable: variable, Term: term}}}
}

// And adds another antecedent clause.
func (b *RuleBuilder) And(variable, term string) *RuleBuilder {
	b.clauses = append(b.clauses, Clause{Variable: variable, Term: term})
	return b
}

// Then completes the rule with its consequent clause.
func (b *RuleBuilder) Then(variable, term string) Rule {
	clauses := make([]Clause, len(b.clauses))
	copy(clauses, b.clauses)
	return Rule{If: clauses, Then: Clause{Variable: variable, Term: term}}
}

// RuleBase is an ordered, validated set of rules over fixed variables.
type RuleBase struct {
	antecedents []*Variable
	byName      map[string]*Variable
	consequent  *Variable
	rules       []Rule
	// resolved term indexes, parallel to rules
	resolved []resolvedRule
}

type resolvedRule struct {
	vars  []int // index into antecedents
	terms []int // index into that variable's terms
	then  int   // index into consequent terms
}

// NewRuleBase validates every rule against the given variables.
// Any dangling variable or term reference is a configuration error.
func NewRuleBase(antecedents []*Variable, consequent *Variable, rules ...Rule) (*RuleBase, error) {
	if len(antecedents) == 0 {
		return nil, configErrorf("rule base needs at least one antecedent variable")
	}
	if consequent == nil {
		return nil, configErrorf("rule base needs a consequent variable")
	}
	if consequent.Role() != Consequent {
		return nil, configErrorf("variable %q is not a consequent", consequent.Name())
	}
	if len(consequent.terms) == 0 {
		return nil, configErrorf("consequent %q has no terms", consequent.Name())
	}
	if len(rules) == 0 {
		return nil, configErrorf("rule base has no rules")
	}

	rb := &RuleBase{
		antecedents: make([]*Variable, len(antecedents)),
		byName:      make(map[string]*Variable, len(antecedents)),
		consequent:  consequent,
		rules:       make([]Rule, len(rules)),
		resolved:    make([]resolvedRule, len(rules)),
	}
	copy(rb.antecedents, antecedents)
	position := make(map[string]int, len(antecedents))
	for i, v := range antecedents {
		if v == nil {
			return nil, configErrorf("antecedent %d is nil", i)
		}
		if v.Role() != Antecedent {
			return nil, configErrorf("variable %q is not an antecedent", v.Name())
		}
		if len(v.terms) == 0 {
			return nil, configErrorf("antecedent %q has no terms", v.Name())
		}
		if _, dup := rb.byName[v.Name()]; dup || v.Name() == consequent.Name() {
			return nil, configErrorf("duplicate variable name %q", v.Name())
		}
		rb.byName[v.Name()] = v
		position[v.Name()] = i
	}

	for i, r := range rules {
		res, err := rb.resolve(r, position)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, r.Name(), err)
		}
		rb.rules[i] = Rule{Label: r.Name(), If: append([]Clause(nil), r.If...), Then: r.Then}
		rb.resolved[i] = res
	}
	return rb, nil
}

func (rb *RuleBase) resolve(r Rule, position map[string]int) (resolvedRule, error) {
	if len(r.If) == 0 {
		return resolvedRule{}, configErrorf("no antecedent clauses")
	}
	res := resolvedRule{
		vars:  make([]int, len(r.If)),
		terms: make([]int, len(r.If)),
	}
	for j, c := range r.If {
		pos, ok := position[c.Variable]
		if !ok {
			return resolvedRule{}, configErrorf("unknown antecedent variable %q", c.Variable)
		}
		ti, ok := rb.antecedents[pos].index[c.Term]
		if !ok {
			return resolvedRule{}, configErrorf("variable %q has no term %q", c.Variable, c.Term)
		}
		res.vars[j] = pos
		res.terms[j] = ti
	}
	if r.Then.Variable != rb.consequent.Name() {
		return resolvedRule{}, configErrorf("consequent clause references %q, rule base output is %q", r.Then.Variable, rb.consequent.Name())
	}
	ti, ok := rb.consequent.index[r.Then.Term]
	if !ok {
		return resolvedRule{}, configErrorf("variable %q has no term %q", r.Then.Variable, r.Then.Term)
	}
	res.then = ti
	return res, nil
}

// Antecedents returns the input variables in declaration order.
func (rb *RuleBase) Antecedents() []*Variable {
	out := make([]*Variable, len(rb.antecedents))
	copy(out, rb.antecedents)
	return out
}

// Antecedent looks up an input variable by name.
func (rb *RuleBase) Antecedent(name string) (*Variable, bool) {
	v, ok := rb.byName[name]
	return v, ok
}

// Consequent returns the output variable.
func (rb *RuleBase) Consequent() *Variable { return rb.consequent }

// Len returns the number of rules.
func (rb *RuleBase) Len() int { return len(rb.rules) }

// Rules returns the rules in insertion order. Labels are always populated.
func (rb *RuleBase) Rules() []Rule {
	out := make([]Rule, len(rb.rules))
	copy(out, rb.rules)
	return out
}

// Rule returns the i-th rule.
func (rb *RuleBase) Rule(i int) Rule { return rb.rules[i] }

// ClauseTerm returns the antecedent variable index and term index of clause j of rule i.
func (rb *RuleBase) ClauseTerm(i, j int) (variable, term int) {
	return rb.resolved[i].vars[j], rb.resolved[i].terms[j]
}

// OutputTerm returns the consequent term index of rule i.
func (rb *RuleBase) OutputTerm(i int) int { return rb.resolved[i].then }
