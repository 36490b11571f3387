package heuristics

import "github.com/adrianhallmark/satcore/sat"

// DLCS (Dynamic Largest Combined Sum) picks the variable maximizing
// occurrences(v) + occurrences(¬v) over unsatisfied clauses, branching on
// whichever polarity occurs more, per spec.md §4.4.
type DLCS struct{}

func (DLCS) Name() string { return "DLCS" }

func (DLCS) Choose(eng *sat.Engine) (sat.Literal, bool) {
	vars := unassignedVars(eng)
	if len(vars) == 0 {
		return 0, false
	}

	pos, neg := occurrences(unsatisfiedClauses(eng), eng.NumVariables())

	bestVar, bestPositive, bestSum := -1, true, -1
	for _, v := range vars {
		sum := pos[v] + neg[v]
		if sum > bestSum {
			bestVar, bestSum = v, sum
			bestPositive = pos[v] >= neg[v]
		}
	}
	return pick(bestVar, bestPositive), true
}
