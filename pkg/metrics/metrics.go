// Package metrics instruments inference with Prometheus metrics and OpenTelemetry spans.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNoRuleFired  = "no_rule_fired"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fuzzyheater_evaluations_total",
		Help: "Total evaluations by rule base and outcome",
	}, []string{"rulebase", "outcome"})

	evaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fuzzyheater_evaluation_duration_seconds",
		Help:    "Duration of a single evaluation",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	}, []string{"rulebase"})

	outputValue = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fuzzyheater_output_value",
		Help:    "Crisp output of successful evaluations",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"rulebase"})

	rulesFired = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fuzzyheater_rules_fired",
		Help:    "Number of rules fired per evaluation",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
	}, []string{"rulebase"})
)

var tracer = otel.Tracer("fuzzyheater.engine")

// Instrumented wraps an evaluator and records metrics for every call.
type Instrumented struct {
	next engine.Evaluator
	name string
}

// Wrap instruments next under the rule base label name.
func Wrap(name string, next engine.Evaluator) *Instrumented {
	return &Instrumented{next: next, name: name}
}

// Evaluate delegates to the wrapped evaluator.
func (i *Instrumented) Evaluate(inputs types.Inputs) (types.InferenceResult, error) {
	return i.EvaluateContext(context.Background(), inputs)
}

// EvaluateContext is Evaluate with a parent context for the span.
// The evaluation itself is not cancellable.
func (i *Instrumented) EvaluateContext(ctx context.Context, inputs types.Inputs) (types.InferenceResult, error) {
	_, span := tracer.Start(ctx, "fuzzyheater.evaluate")
	defer span.End()

	start := time.Now()
	result, err := i.next.Evaluate(inputs)
	evaluationDuration.WithLabelValues(i.name).Observe(time.Since(start).Seconds())

	outcome := Outcome(err)
	evaluationsTotal.WithLabelValues(i.name, outcome).Inc()
	rulesFired.WithLabelValues(i.name).Observe(float64(len(result.Fired())))

	attrs := []attribute.KeyValue{
		attribute.String("rulebase", i.name),
		attribute.String("state", string(result.State)),
		attribute.String("outcome", outcome),
		attribute.Int("rules_fired", len(result.Fired())),
	}
	for name, v := range inputs {
		attrs = append(attrs, attribute.Float64("input."+name, v))
	}
	if err != nil {
		span.SetAttributes(attrs...)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return result, err
	}

	outputValue.WithLabelValues(i.name).Observe(result.Output)
	attrs = append(attrs, attribute.Float64("output", result.Output))
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// Outcome classifies an evaluation error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, engine.ErrNoRuleFired):
		return OutcomeNoRuleFired
	case errors.Is(err, engine.ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
