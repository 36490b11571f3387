package preprocess

import (
	"testing"

	"github.com/adrianhallmark/satcore/sat"
)

func lit(n int) sat.Literal {
	if n > 0 {
		return sat.PositiveLiteral(n - 1)
	}
	return sat.NegativeLiteral(-n - 1)
}

func clause(ns ...int) []sat.Literal {
	out := make([]sat.Literal, len(ns))
	for i, n := range ns {
		out[i] = lit(n)
	}
	return out
}

func buildFormula(t *testing.T, numVars int, clauses [][]int) *sat.Formula {
	t.Helper()
	f := sat.NewFormula(numVars)
	for _, c := range clauses {
		if err := f.AddClause(clause(c...)); err != nil {
			t.Fatalf("AddClause: %v", err)
		}
	}
	return f
}

func TestDropTautologies(t *testing.T) {
	// Build a formula directly (bypassing AddClause's own tautology
	// rejection) so the step has something to do.
	f := sat.NewFormula(2)
	f.AddClauseRaw(clause(1, -1, 2)) // tautology
	f.AddClauseRaw(clause(1, 2))

	p, err := NewPipeline([]Step{StepTautologies})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got := p.Run(f)

	if got.NumClauses() != 1 {
		t.Fatalf("NumClauses() = %d, want 1", got.NumClauses())
	}
}

func TestNiVER_eliminatesVariable(t *testing.T) {
	// Variables are scanned in ascending order. Variable 1 (varID 0) occurs
	// only positively, so it qualifies first: no resolvents (0 literals) <=
	// the 4 literals of its clauses. Eliminating it removes both clauses and
	// with them every occurrence of variable 2.
	f := buildFormula(t, 2, [][]int{
		{1, 2},
		{-2, 1},
	})

	p, err := NewPipeline([]Step{StepNiVER})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got := p.Run(f)

	// The reduced formula has no clauses left, so no clause can mention
	// variable 2.
	for _, c := range got.Clauses() {
		for _, l := range c {
			if l.VarID() == 1 {
				t.Errorf("variable 2 (varID 1) should have been eliminated, found in clause %v", c)
			}
		}
	}
}

func TestNiVER_extendModelSatisfiesOriginal(t *testing.T) {
	f := buildFormula(t, 2, [][]int{
		{1, 2},
		{-2, 1},
	})

	p, err := NewPipeline([]Step{StepNiVER})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	reduced := p.Run(f)

	// The reduced formula has no clauses, so any assignment is a model of it;
	// use all true.
	model := make([]bool, reduced.NumVars())
	for v := range model {
		model[v] = true
	}

	extended := p.ExtendModel(model)

	for _, c := range f.Clauses() {
		if !clauseSatisfied(extended, c) {
			t.Errorf("extended model does not satisfy original clause %v", c)
		}
	}
}

func TestPipeline_unknownStep(t *testing.T) {
	if _, err := NewPipeline([]Step{"bogus"}); err == nil {
		t.Error("NewPipeline: want error for unknown step")
	}
}
