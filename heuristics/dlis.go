package heuristics

import "github.com/adrianhallmark/satcore/sat"

// DLIS (Dynamic Largest Individual Sum) chooses the literal occurring in
// the most currently unsatisfied clauses, per spec.md §4.4.
type DLIS struct{}

func (DLIS) Name() string { return "DLIS" }

func (DLIS) Choose(eng *sat.Engine) (sat.Literal, bool) {
	vars := unassignedVars(eng)
	if len(vars) == 0 {
		return 0, false
	}

	pos, neg := occurrences(unsatisfiedClauses(eng), eng.NumVariables())

	bestVar, bestPositive, bestCount := -1, true, -1
	for _, v := range vars {
		if pos[v] > bestCount {
			bestVar, bestPositive, bestCount = v, true, pos[v]
		}
		if neg[v] > bestCount {
			bestVar, bestPositive, bestCount = v, false, neg[v]
		}
	}
	return pick(bestVar, bestPositive), true
}
