package types

// State is the phase of a single evaluation.
type State string

const (
	StateReady     State = "ready"
	StateComputing State = "computing"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// InferenceResult is produced once per evaluation and owned by the caller.
type InferenceResult struct {
	State       State                         `json:"state"`
	Output      float64                       `json:"output"`
	Variable    string                        `json:"variable"`
	Inputs      Inputs                        `json:"inputs"`
	Memberships map[string]map[string]float64 `json:"memberships"`
	Activations []RuleActivation              `json:"activations"`
	Aggregated  Curve                         `json:"aggregated"`
	Method      string                        `json:"method"` // defuzzifier name
}

// Fired returns the activations whose strength counted as fired, in rank order.
func (r InferenceResult) Fired() []RuleActivation {
	var out []RuleActivation
	for _, a := range r.Activations {
		if a.Fired {
			out = append(out, a)
		}
	}
	return out
}
