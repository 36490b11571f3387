// Package bruteforce is a deliberately naive SAT oracle used by tests and by
// cmd/satcore's --algorithm=bruteforce: it enumerates every assignment of a
// small formula and checks it directly against the clauses, with no unit
// propagation, heuristics, or learning of any kind. It exists to cross-check
// dpll and cdcl against ground truth on small instances (spec.md §8's
// differential-testing properties), not as a solving strategy in its own
// right.
package bruteforce

import "github.com/adrianhallmark/satcore/sat"

// MaxVars bounds the instance size this package will attempt: 2^MaxVars
// assignments is already a lot of enumeration for a test helper.
const MaxVars = 24

// Result mirrors the shape of dpll/cdcl results closely enough for test
// comparison, without importing either package.
type Result struct {
	Sat   bool
	Model []bool // valid only if Sat
}

// Solve enumerates every assignment of f's variables in increasing order and
// returns the first one that satisfies every clause, or Sat=false if none
// does. It panics if f has more than MaxVars variables.
func Solve(f *sat.Formula) Result {
	n := f.NumVars()
	if n > MaxVars {
		panic("bruteforce: formula too large for exhaustive search")
	}

	model := make([]bool, n)
	total := uint64(1) << uint(n)
	for assignment := uint64(0); assignment < total; assignment++ {
		for v := 0; v < n; v++ {
			model[v] = assignment&(1<<uint(v)) != 0
		}
		if satisfiesAll(model, f) {
			out := append([]bool(nil), model...)
			return Result{Sat: true, Model: out}
		}
	}
	return Result{Sat: false}
}

// SolveAll enumerates every assignment of f's variables and returns every
// one that satisfies all clauses. It panics if f has more than MaxVars
// variables. Used to cross-check a solver's "find every model" behavior
// (obtained by repeatedly forbidding the last model found) against ground
// truth.
func SolveAll(f *sat.Formula) [][]bool {
	n := f.NumVars()
	if n > MaxVars {
		panic("bruteforce: formula too large for exhaustive search")
	}

	var models [][]bool
	model := make([]bool, n)
	total := uint64(1) << uint(n)
	for assignment := uint64(0); assignment < total; assignment++ {
		for v := 0; v < n; v++ {
			model[v] = assignment&(1<<uint(v)) != 0
		}
		if satisfiesAll(model, f) {
			models = append(models, append([]bool(nil), model...))
		}
	}
	return models
}

func satisfiesAll(model []bool, f *sat.Formula) bool {
	for _, c := range f.Clauses() {
		if !satisfiesClause(model, c) {
			return false
		}
	}
	return true
}

func satisfiesClause(model []bool, clause []sat.Literal) bool {
	for _, l := range clause {
		val := model[l.VarID()]
		if !l.IsPositive() {
			val = !val
		}
		if val {
			return true
		}
	}
	return false
}

// CheckModel reports whether model satisfies every clause of f, independent
// of any solver: used to validate a dpll/cdcl result against the oracle's
// own clause-satisfaction check (spec.md §8 property 2).
func CheckModel(f *sat.Formula, model []bool) bool {
	return satisfiesAll(model, f)
}
