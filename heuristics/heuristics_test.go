package heuristics

import (
	"testing"

	"github.com/adrianhallmark/satcore/sat"
)

// newEngine builds an Engine with n variables and the given clauses (each a
// slice of signed ints, DIMACS-style) loaded as original constraints.
func newEngine(t *testing.T, n int, clauses [][]int) *sat.Engine {
	t.Helper()
	eng := sat.NewEngine()
	for i := 0; i < n; i++ {
		eng.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for i, l := range c {
			if l > 0 {
				lits[i] = sat.PositiveLiteral(l - 1)
			} else {
				lits[i] = sat.NegativeLiteral(-l - 1)
			}
		}
		if err := eng.AddClause(lits); err != nil {
			t.Fatalf("AddClause: %v", err)
		}
	}
	return eng
}

func TestNaive_picksLowestUnassignedPositive(t *testing.T) {
	eng := newEngine(t, 3, [][]int{{1, 2, 3}})
	got, ok := Naive{}.Choose(eng)
	if !ok {
		t.Fatal("Choose: want ok")
	}
	if want := sat.PositiveLiteral(0); got != want {
		t.Errorf("Choose() = %v, want %v", got, want)
	}
}

func TestNaive_noneLeft(t *testing.T) {
	eng := newEngine(t, 1, nil)
	eng.Assume(sat.PositiveLiteral(0))
	if _, ok := (Naive{}).Choose(eng); ok {
		t.Error("Choose(): want ok=false when every variable is assigned")
	}
}

func TestDLIS_picksMostFrequentLiteral(t *testing.T) {
	// Variable 1 (lit 0) appears positively in 3 clauses; no other literal
	// appears more than twice.
	eng := newEngine(t, 3, [][]int{
		{1, 2},
		{1, 3},
		{1, -2},
		{-1, 3},
		{2, -3},
	})
	got, ok := DLIS{}.Choose(eng)
	if !ok {
		t.Fatal("Choose: want ok")
	}
	if want := sat.PositiveLiteral(0); got != want {
		t.Errorf("Choose() = %v, want %v", got, want)
	}
}

func TestDLCS_picksVariableWithLargestCombinedCount(t *testing.T) {
	eng := newEngine(t, 2, [][]int{
		{1, 2},
		{-1, 2},
		{1, -2},
	})
	// var 0 occurs 3 times total (2 pos, 1 neg); var 1 occurs 3 times too
	// (2 pos, 1 neg). Tie-break favors the lower-ID variable.
	got, ok := DLCS{}.Choose(eng)
	if !ok {
		t.Fatal("Choose: want ok")
	}
	if got.VarID() != 0 {
		t.Errorf("Choose() variable = %d, want 0", got.VarID())
	}
}

func TestMOM_restrictsToMinimumLengthClauses(t *testing.T) {
	eng := newEngine(t, 3, [][]int{
		{1, 2, 3},
		{1, -2},
		{1, 2},
	})
	// Minimum length is 2: clauses {1,-2} and {1,2}. Variable 1 (ID 0) has
	// h(x)=2, h(¬x)=0, scoring 2·4+0 = 8; variable 2 (ID 1) has h(x)=1,
	// h(¬x)=1, scoring 2·4+1 = 9, so variable ID 1 wins, positive on the tie.
	got, ok := MOM{}.Choose(eng)
	if !ok {
		t.Fatal("Choose: want ok")
	}
	if got.VarID() != 1 || !got.IsPositive() {
		t.Errorf("Choose() = %v, want positive literal of variable 1", got)
	}
}

func TestJeroslowWang_weightsShorterClausesMore(t *testing.T) {
	eng := newEngine(t, 5, [][]int{
		{1, 5},
		{2, 3, 4, -5},
		{2, -3, -4, -5},
	})
	// Literal 1 occurs once, in a binary clause: J = 1/4. Literals 2 and -5
	// occur twice each, but only in 4-literal clauses: J = 2/16. Literal 5
	// ties with 1 at 1/4 and loses on the higher variable ID.
	got, ok := (JeroslowWang{}).Choose(eng)
	if !ok {
		t.Fatal("Choose: want ok")
	}
	if want := sat.PositiveLiteral(0); got != want {
		t.Errorf("Choose() = %v, want %v", got, want)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"naive", "DLIS", "DLCS", "MOM", "Jeroslaw-Wang"} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("nope"); err == nil {
		t.Error("ByName(\"nope\"): want error")
	}
}
