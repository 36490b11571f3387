package heuristics

import "github.com/adrianhallmark/satcore/sat"

// Naive picks the lowest-index unassigned variable and branches positive,
// per spec.md §4.4.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) Choose(eng *sat.Engine) (sat.Literal, bool) {
	for v := 0; v < eng.NumVariables(); v++ {
		if eng.VarValue(v) == sat.Unknown {
			return sat.PositiveLiteral(v), true
		}
	}
	return 0, false
}
