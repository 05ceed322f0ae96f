package types

// RuleActivation records how strongly one rule fired during an evaluation.
type RuleActivation struct {
	Rank     int       `json:"rank"`
	Index    int       `json:"index"`
	Label    string    `json:"label"`
	Strength float64   `json:"strength"`
	Weight   float64   `json:"weight"`  // strength relative to the strongest rule, computed in log space
	Degrees  []float64 `json:"degrees"` // one per antecedent clause, in clause order
	Output   string    `json:"output"`  // consequent term
	Fired    bool      `json:"fired"`
}
