package heuristics

import "github.com/adrianhallmark/satcore/sat"

// momK is MOM's exponent constant. The source specification leaves k
// unspecified; k = 2 is the conventional value and is adopted here (see
// spec.md §9's Open Questions and DESIGN.md).
const momK = 2

// MOM (Maximum Occurrences in clauses of Minimum size) restricts attention
// to the currently unsatisfied clauses of minimum length m, scores each
// variable by f(x) = (h(x)+h(¬x))·2^k + h(x)·h(¬x), and branches on the
// polarity with the larger occurrence count, per spec.md §4.4.
type MOM struct{}

func (MOM) Name() string { return "MOM" }

func (MOM) Choose(eng *sat.Engine) (sat.Literal, bool) {
	vars := unassignedVars(eng)
	if len(vars) == 0 {
		return 0, false
	}

	clauses := unsatisfiedClauses(eng)
	if len(clauses) == 0 {
		// No unsatisfied clause constrains the choice: fall back to the
		// deterministic tie-break (lowest ID, positive polarity).
		return sat.PositiveLiteral(vars[0]), true
	}

	minLen := -1
	for _, c := range clauses {
		if minLen == -1 || len(c) < minLen {
			minLen = len(c)
		}
	}

	var minClauses [][]sat.Literal
	for _, c := range clauses {
		if len(c) == minLen {
			minClauses = append(minClauses, c)
		}
	}

	pos, neg := occurrences(minClauses, eng.NumVariables())

	bestVar, bestPositive := -1, true
	bestScore := -1.0
	weight := float64(uint64(1) << momK)
	for _, v := range vars {
		h1, h2 := float64(pos[v]), float64(neg[v])
		score := (h1+h2)*weight + h1*h2
		if score > bestScore {
			bestVar, bestScore = v, score
			bestPositive = pos[v] >= neg[v]
		}
	}
	return pick(bestVar, bestPositive), true
}
