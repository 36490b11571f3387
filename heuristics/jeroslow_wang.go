package heuristics

import "github.com/adrianhallmark/satcore/sat"

// JeroslowWang scores each literal L by J(L) = Σ 2^(-|C|) over unsatisfied
// clauses C containing L, and branches on the literal with the highest
// score, per spec.md §4.4.
type JeroslowWang struct{}

func (JeroslowWang) Name() string { return "Jeroslow-Wang" }

func (JeroslowWang) Choose(eng *sat.Engine) (sat.Literal, bool) {
	vars := unassignedVars(eng)
	if len(vars) == 0 {
		return 0, false
	}

	scores := make(map[sat.Literal]float64)
	for _, c := range unsatisfiedClauses(eng) {
		weight := 1.0
		for i := 0; i < len(c); i++ {
			weight /= 2
		}
		for _, l := range c {
			scores[l] += weight
		}
	}

	bestVar, bestPositive := vars[0], true
	bestScore := -1.0
	for _, v := range vars {
		ps := scores[sat.PositiveLiteral(v)]
		ns := scores[sat.NegativeLiteral(v)]
		if ps > bestScore {
			bestVar, bestPositive, bestScore = v, true, ps
		}
		if ns > bestScore {
			bestVar, bestPositive, bestScore = v, false, ns
		}
	}
	return pick(bestVar, bestPositive), true
}
