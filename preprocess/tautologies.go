package preprocess

import "github.com/adrianhallmark/satcore/sat"

// dropTautologies removes every clause containing both a literal and its
// complement (spec.md §4.7). It is independent from sat.Formula.AddClause's
// own tautology rejection so that preprocessing remains meaningful even for
// formulas assembled without going through AddClause (e.g. an
// intermediate result produced by another preprocessing step).
func dropTautologies(f *sat.Formula) *sat.Formula {
	out := sat.NewFormula(f.NumVars())
	for _, c := range f.Clauses() {
		if !isTautology(c) {
			out.AddClauseRaw(c)
		}
	}
	return out
}

func isTautology(clause []sat.Literal) bool {
	seen := make(map[sat.Literal]bool, len(clause))
	for _, l := range clause {
		if seen[l.Opposite()] {
			return true
		}
		seen[l] = true
	}
	return false
}
