package engine

import (
	"errors"
	"sync/atomic"

	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// ErrNoEngine is returned by a Holder that has never been given an engine.
var ErrNoEngine = errors.New("engine: no engine loaded")

// Snapshot is an engine together with the name it was loaded under.
type Snapshot struct {
	Name   string
	Engine *Engine
}

// Holder publishes the active engine for hot reloading.
// Swap replaces the engine atomically; evaluations already running keep the
// snapshot they started with.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder creates a holder with an initial engine.
func NewHolder(name string, e *Engine) *Holder {
	h := &Holder{}
	h.Swap(name, e)
	return h
}

// Swap installs e and returns the snapshot it replaced, if any.
func (h *Holder) Swap(name string, e *Engine) *Snapshot {
	return h.current.Swap(&Snapshot{Name: name, Engine: e})
}

// Load returns the active snapshot, or nil.
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Evaluate runs the active engine.
func (h *Holder) Evaluate(inputs types.Inputs) (types.InferenceResult, error) {
	snap := h.current.Load()
	if snap == nil || snap.Engine == nil {
		return types.InferenceResult{State: types.StateFailed}, ErrNoEngine
	}
	return snap.Engine.Evaluate(inputs)
}
