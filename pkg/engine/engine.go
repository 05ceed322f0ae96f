// Package engine runs Mamdani inference over a fuzzy.RuleBase:
// fuzzification, min-AND rule firing, min-implication, max-aggregation
// and defuzzification.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

var (
	// ErrNoRuleFired means every rule has a clause of degree 0 for the given inputs.
	ErrNoRuleFired = errors.New("engine: no applicable rule")

	// ErrInvalidInput means a required antecedent value is missing or not finite.
	ErrInvalidInput = errors.New("engine: invalid input")
)

// Evaluator computes one crisp output from crisp inputs.
type Evaluator interface {
	Evaluate(inputs types.Inputs) (types.InferenceResult, error)
}

// Observer is notified of each state transition of an evaluation.
type Observer func(from, to types.State)

// Engine evaluates a rule base. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	rb          *fuzzy.RuleBase
	defuzzifier Defuzzifier
	epsilon     float64
	observer    Observer
	logger      *slog.Logger

	// sampled consequent, computed once
	outX        []float64
	outCurves   [][]float64
	outSupports [][]float64 // 1 where the term curve is positive
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefuzzifier replaces the default Centroid strategy.
func WithDefuzzifier(d Defuzzifier) Option {
	return func(e *Engine) {
		if d != nil {
			e.defuzzifier = d
		}
	}
}

// WithEpsilon sets the firing strength at or below which a rule counts as not fired.
// Values outside [0, 1) are ignored.
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		if eps >= 0 && eps < 1 {
			e.epsilon = eps
		}
	}
}

// WithObserver registers a state transition callback.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine for rb. The engine never mutates rb.
func New(rb *fuzzy.RuleBase, opts ...Option) *Engine {
	e := &Engine{
		rb:          rb,
		defuzzifier: Centroid{},
		epsilon:     types.DefaultEpsilon,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	out := rb.Consequent()
	e.outX = out.Universe().Points()
	terms := out.Terms()
	e.outCurves = make([][]float64, len(terms))
	e.outSupports = make([][]float64, len(terms))
	for i, t := range terms {
		e.outCurves[i] = fuzzy.Sample(t.MF, out.Universe())
		e.outSupports[i] = make([]float64, len(e.outX))
		for j, d := range e.outCurves[i] {
			if d > 0 {
				e.outSupports[i][j] = 1
			}
		}
	}
	return e
}

// RuleBase returns the rule base the engine evaluates.
func (e *Engine) RuleBase() *fuzzy.RuleBase { return e.rb }

// Method returns the defuzzifier name.
func (e *Engine) Method() string { return e.defuzzifier.Name() }

// Evaluate runs the full inference pipeline for one set of crisp inputs.
//
// ErrNoRuleFired is returned only when every rule has a clause of degree exactly 0.
// Rules whose strength is positive but at or below epsilon are weighed against each
// other in log space instead. On ErrNoRuleFired the returned result is in StateFailed
// but still carries the memberships, activations and (all-zero) aggregated curve.
func (e *Engine) Evaluate(inputs types.Inputs) (types.InferenceResult, error) {
	out := e.rb.Consequent()
	result := types.InferenceResult{
		State:    types.StateReady,
		Variable: out.Name(),
		Method:   e.defuzzifier.Name(),
		Inputs:   make(types.Inputs, len(inputs)),
	}
	for k, v := range inputs {
		result.Inputs[k] = v
	}
	e.transition(&result, types.StateComputing)

	antecedents := e.rb.Antecedents()
	names := make([]string, len(antecedents))
	for i, v := range antecedents {
		names[i] = v.Name()
	}
	if err := inputs.Require(names...); err != nil {
		return e.fail(&result, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}

	// fuzzify
	result.Memberships = make(map[string]map[string]float64, len(antecedents))
	terms := make([][]fuzzy.Term, len(antecedents))
	for i, v := range antecedents {
		result.Memberships[v.Name()] = Fuzzify(v, inputs[v.Name()])
		terms[i] = v.Terms()
	}

	// fire
	strengths := make([]float64, e.rb.Len())
	logStrengths := make([]float64, e.rb.Len())
	activations := make([]types.RuleActivation, e.rb.Len())
	outTerms := out.Terms()
	for i, r := range e.rb.Rules() {
		clause := make([]float64, len(r.If))
		logs := make([]float64, len(r.If))
		for j, c := range r.If {
			vi, ti := e.rb.ClauseTerm(i, j)
			clause[j] = result.Memberships[c.Variable][c.Term]
			logs[j] = fuzzy.LogDegree(terms[vi][ti].MF, inputs[c.Variable])
		}
		strengths[i] = FiringStrength(clause...)
		logStrengths[i] = logFiringStrength(logs...)
		activations[i] = types.RuleActivation{
			Index:    i,
			Label:    r.Name(),
			Strength: strengths[i],
			Degrees:  clause,
			Output:   outTerms[e.rb.OutputTerm(i)].Name,
		}
	}
	maxLog := floats.Max(logStrengths)
	if !math.IsInf(maxLog, -1) {
		for i := range activations {
			activations[i].Weight = math.Exp(logStrengths[i] - maxLog)
		}
	}

	// imply, aggregate
	aggregated := make([]float64, len(e.outX))
	switch {
	case floats.Max(strengths) > e.epsilon:
		for i := range activations {
			if activations[i].Strength > e.epsilon {
				activations[i].Fired = true
				Implicate(aggregated, e.outCurves[e.rb.OutputTerm(i)], activations[i].Strength)
			}
		}
	case !math.IsInf(maxLog, -1):
		// Every strength is at or below epsilon but not zero. As strengths shrink,
		// min(curve, s) tends to s on the term's support, so each rule contributes
		// its support scaled by its weight.
		for i := range activations {
			if activations[i].Weight > e.epsilon {
				activations[i].Fired = true
				Implicate(aggregated, e.outSupports[e.rb.OutputTerm(i)], activations[i].Weight)
			}
		}
		e.logger.Debug("firing strengths below epsilon, using relative weights",
			slog.Any("inputs", inputs),
			slog.Float64("max_log_strength", maxLog),
		)
	}
	result.Activations = rank(activations)
	result.Aggregated = make(types.Curve, len(e.outX))
	for i, x := range e.outX {
		result.Aggregated[i] = types.Point{X: x, Degree: aggregated[i]}
	}

	if math.IsInf(maxLog, -1) {
		e.logger.Warn("no rule fired",
			slog.Any("inputs", inputs),
			slog.Float64("epsilon", e.epsilon),
		)
		return e.fail(&result, ErrNoRuleFired)
	}

	crisp, err := e.defuzzifier.Defuzzify(e.outX, aggregated)
	if err != nil {
		return e.fail(&result, fmt.Errorf("defuzzify %s: %w", out.Name(), err))
	}
	result.Output = crisp
	e.transition(&result, types.StateDone)

	e.logger.Debug("evaluated",
		slog.Any("inputs", inputs),
		slog.String("variable", out.Name()),
		slog.Float64("output", crisp),
		slog.Int("fired", len(result.Fired())),
	)
	return result, nil
}

func (e *Engine) transition(r *types.InferenceResult, to types.State) {
	from := r.State
	r.State = to
	if e.observer != nil {
		e.observer(from, to)
	}
}

func (e *Engine) fail(r *types.InferenceResult, err error) (types.InferenceResult, error) {
	e.transition(r, types.StateFailed)
	return *r, err
}

// Fuzzify evaluates every term of v at x. Out-of-range values are not clamped.
func Fuzzify(v *fuzzy.Variable, x float64) map[string]float64 {
	terms := v.Terms()
	out := make(map[string]float64, len(terms))
	for _, t := range terms {
		out[t.Name] = t.MF.Degree(x)
	}
	return out
}

// FiringStrength is the fuzzy AND (minimum) of clause degrees, bounded to [0, 1].
func FiringStrength(degrees ...float64) float64 {
	if len(degrees) == 0 {
		return 0
	}
	s := floats.Min(degrees)
	switch {
	case math.IsNaN(s) || s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// logFiringStrength is FiringStrength over log degrees. -Inf means a clause is exactly 0.
func logFiringStrength(logs ...float64) float64 {
	if len(logs) == 0 {
		return math.Inf(-1)
	}
	s := floats.Min(logs)
	switch {
	case math.IsNaN(s):
		return math.Inf(-1)
	case s > 0:
		return 0
	}
	return s
}

// Implicate clips curve at strength and folds it into aggregated by point-wise maximum.
func Implicate(aggregated, curve []float64, strength float64) {
	for i, d := range curve {
		aggregated[i] = math.Max(aggregated[i], math.Min(d, strength))
	}
}

// rank orders activations by strength, strongest first, for deterministic diagnostics.
func rank(activations []types.RuleActivation) []types.RuleActivation {
	sort.SliceStable(activations, func(i, j int) bool {
		// Primary: higher weight first, which still orders rules whose strength underflowed
		if activations[i].Weight != activations[j].Weight {
			return activations[i].Weight > activations[j].Weight
		}
		// Secondary: higher strength first
		if activations[i].Strength != activations[j].Strength {
			return activations[i].Strength > activations[j].Strength
		}
		// Secondary: declaration order
		return activations[i].Index < activations[j].Index
	})
	for i := range activations {
		activations[i].Rank = i + 1
	}
	return activations
}
