package preprocess

import "github.com/adrianhallmark/satcore/sat"

// niverState records, for each variable NiVER eliminated, its original
// clauses (both the ones containing it positively and negatively) so a
// model of the reduced formula can be reverse-eliminated back into a model
// that also satisfies those original clauses (spec.md §4.7).
type niverState struct {
	// eliminated lists variables in the order they were eliminated; reverse
	// elimination must undo them in reverse order, since a later
	// elimination's resolvents can reference an earlier one's clauses.
	eliminated []eliminatedVar
}

type eliminatedVar struct {
	varID           int
	originalClauses [][]sat.Literal
}

// runNiVER repeatedly eliminates variables by resolution as long as doing
// so does not increase the total literal count, per spec.md §4.7, until no
// variable qualifies.
func runNiVER(f *sat.Formula) (*sat.Formula, *niverState) {
	clauses := make([][]sat.Literal, len(f.Clauses()))
	for i, c := range f.Clauses() {
		clauses[i] = append([]sat.Literal(nil), c...)
	}

	state := &niverState{}

	for {
		v, ok := pickEliminationCandidate(clauses, f.NumVars())
		if !ok {
			break
		}

		var pos, neg, rest [][]sat.Literal
		for _, c := range clauses {
			switch classify(c, v) {
			case classPositive:
				pos = append(pos, c)
			case classNegative:
				neg = append(neg, c)
			default:
				rest = append(rest, c)
			}
		}

		resolvents := resolveAll(pos, neg, v)

		original := append(append([][]sat.Literal(nil), pos...), neg...)
		state.eliminated = append(state.eliminated, eliminatedVar{
			varID:           v,
			originalClauses: original,
		})

		clauses = append(rest, resolvents...)
	}

	out := sat.NewFormula(f.NumVars())
	for _, c := range clauses {
		out.AddClauseRaw(c)
	}
	return out, state
}

type clauseClass int

const (
	classNeither clauseClass = iota
	classPositive
	classNegative
)

func classify(clause []sat.Literal, v int) clauseClass {
	for _, l := range clause {
		if l.VarID() != v {
			continue
		}
		if l.IsPositive() {
			return classPositive
		}
		return classNegative
	}
	return classNeither
}

// pickEliminationCandidate scans variables in ascending order and returns
// the first one for which resolving away P (clauses containing v) and N
// (clauses containing ¬v) does not increase the total literal count.
func pickEliminationCandidate(clauses [][]sat.Literal, numVars int) (int, bool) {
	for v := 0; v < numVars; v++ {
		var pos, neg [][]sat.Literal
		for _, c := range clauses {
			switch classify(c, v) {
			case classPositive:
				pos = append(pos, c)
			case classNegative:
				neg = append(neg, c)
			}
		}
		if len(pos) == 0 && len(neg) == 0 {
			continue
		}

		resolvents := resolveAll(pos, neg, v)
		if literalCount(resolvents) <= literalCount(pos)+literalCount(neg) {
			return v, true
		}
	}
	return 0, false
}

func literalCount(clauses [][]sat.Literal) int {
	n := 0
	for _, c := range clauses {
		n += len(c)
	}
	return n
}

// resolveAll returns every non-tautological resolvent on variable v between
// every clause of pos and every clause of neg.
func resolveAll(pos, neg [][]sat.Literal, v int) [][]sat.Literal {
	var out [][]sat.Literal
	for _, p := range pos {
		for _, n := range neg {
			if r, ok := resolve(p, n, v); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// resolve computes the resolvent of p and n on variable v: the union of
// their literals minus the two complementary literals on v, deduplicated.
// It reports ok=false if the resolvent would be a tautology (p and n share
// some other complementary pair).
func resolve(p, n []sat.Literal, v int) ([]sat.Literal, bool) {
	seen := make(map[sat.Literal]bool, len(p)+len(n))
	out := make([]sat.Literal, 0, len(p)+len(n)-2)

	add := func(l sat.Literal) bool {
		if l.VarID() == v {
			return true
		}
		if seen[l.Opposite()] {
			return false
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
		return true
	}

	for _, l := range p {
		if !add(l) {
			return nil, false
		}
	}
	for _, l := range n {
		if !add(l) {
			return nil, false
		}
	}
	return out, true
}

// extend reverse-eliminates every variable NiVER removed, in reverse
// elimination order, assigning each so that all of its recorded original
// clauses become satisfied (spec.md §4.7).
func (st *niverState) extend(model []bool) []bool {
	out := append([]bool(nil), model...)
	for i := len(st.eliminated) - 1; i >= 0; i-- {
		ev := st.eliminated[i]
		out = assignToSatisfy(out, ev.varID, ev.originalClauses)
	}
	return out
}

// assignToSatisfy grows out if needed and picks a value for varID that
// satisfies every one of its original clauses under the rest of the
// (already-extended) assignment, if possible; defaulting to true is always
// safe if no clause forces otherwise, because NiVER guarantees the reduced
// formula's satisfiability implies the original's.
func assignToSatisfy(out []bool, varID int, clauses [][]sat.Literal) []bool {
	for len(out) <= varID {
		out = append(out, false)
	}

	for _, val := range []bool{true, false} {
		out[varID] = val
		if allSatisfied(out, clauses) {
			return out
		}
	}
	// Neither value satisfies every clause simultaneously under the other
	// variables' assignment: this cannot happen for a correctly-derived
	// resolution elimination, since the remaining formula already
	// guarantees the other literals are consistent. Leave the last
	// attempted value; satisfied-ness is rechecked by model-soundness
	// tests.
	return out
}

func allSatisfied(assignment []bool, clauses [][]sat.Literal) bool {
	for _, c := range clauses {
		if !clauseSatisfied(assignment, c) {
			return false
		}
	}
	return true
}

func clauseSatisfied(assignment []bool, clause []sat.Literal) bool {
	for _, l := range clause {
		v := l.VarID()
		if v >= len(assignment) {
			continue
		}
		val := assignment[v]
		if !l.IsPositive() {
			val = !val
		}
		if val {
			return true
		}
	}
	return false
}
