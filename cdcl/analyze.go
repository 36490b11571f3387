package cdcl

import "github.com/adrianhallmark/satcore/sat"

// analyze implements first-UIP conflict analysis (spec.md §4.6): starting
// from the conflicting clause, it resolves with the antecedent of the most
// recently trailed literal in the current reason until exactly one literal
// of the reason remains at the current decision level (the asserting
// literal). It returns the learnt clause (asserting literal first), the
// backjump level (the second-highest decision level in the clause, or 0 if
// unit), and the clause's LBD (the number of distinct decision levels among
// its literals).
//
// Grounded closely on the teacher's internal/sat/solver.go `analyze`.
func (s *Solver) analyze(conflict *sat.Clause) (learnt []sat.Literal, backjumpLevel int, lbd int) {
	eng := s.eng
	nImplicationPoints := 0

	learnt = append(learnt[:0], -1) // slot 0 reserved for the asserting literal

	trail := eng.Trail()
	next := len(trail) - 1

	l := sat.Literal(-1) // unknown: marks the conflict clause itself
	eng.SeenClear()
	isConflict := true

	for {
		var reason []sat.Literal
		if isConflict {
			reason = eng.ExplainFailure(conflict)
		} else {
			reason = eng.ExplainAssign(conflict)
		}
		isConflict = false

		for _, q := range reason {
			v := q.VarID()
			if eng.SeenContains(v) {
				continue
			}
			eng.SeenAdd(v)
			s.bumpVar(v)

			if eng.VarLevel(v) == eng.DecisionLevel() {
				nImplicationPoints++
				continue
			}

			learnt = append(learnt, q.Opposite())
			if lvl := eng.VarLevel(v); lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		for {
			l = trail[next]
			next--
			v := l.VarID()
			conflict = eng.Reason(v)
			if eng.SeenContains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	learnt[0] = l.Opposite()

	lbd = lbdOf(eng, learnt)
	return learnt, backjumpLevel, lbd
}

// lbdOf computes the literal block distance of a clause: the number of
// distinct decision levels among its literals (spec.md §3).
func lbdOf(eng *sat.Engine, lits []sat.Literal) int {
	seen := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		seen[eng.VarLevel(l.VarID())] = struct{}{}
	}
	return len(seen)
}
