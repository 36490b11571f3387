// Package oracle wraps github.com/go-air/gini, a third-party CDCL SAT
// solver, behind the same Solve(*sat.Formula) -> sat.Result shape as dpll
// and cdcl. It exists purely for cross-validation (spec.md §8 property 3,
// "oracle agreement") and for cmd/satcore's --algorithm=cadical, not as
// part of the solving core itself.
package oracle

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/adrianhallmark/satcore/sat"
)

// Solve hands f to gini and translates its result back into a sat.Result.
func Solve(f *sat.Formula) sat.Result {
	g := gini.New()

	for i := 0; i < f.NumVars(); i++ {
		g.Add(z.Dimacs2Lit(i + 1))
		g.Add(z.Dimacs2Lit(-(i + 1)))
		g.Add(z.LitNull) // force the variable to exist even if unused
	}

	for _, c := range f.Clauses() {
		for _, l := range clauseLits(c).signed() {
			g.Add(z.Dimacs2Lit(l))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case 1:
		model := make([]bool, f.NumVars())
		for v := 0; v < f.NumVars(); v++ {
			model[v] = g.Value(z.Dimacs2Lit(v + 1))
		}
		return sat.Result{Status: sat.StatusSat, Model: model}
	case -1:
		return sat.Result{Status: sat.StatusUnsat}
	default:
		return sat.Result{Status: sat.StatusUnknown}
	}
}

type clauseLits []sat.Literal

func (c clauseLits) signed() []int {
	out := make([]int, len(c))
	for i, l := range c {
		out[i] = l.Signed()
	}
	return out
}
