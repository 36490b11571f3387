package cdcl

import (
	"testing"

	"github.com/adrianhallmark/satcore/proof"
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

func checkModel(t *testing.T, f *sat.Formula, model []bool) {
	t.Helper()
	for _, c := range f.Clauses() {
		ok := false
		for _, l := range c {
			v := l.VarID()
			val := model[v]
			if !l.IsPositive() {
				val = !val
			}
			if val {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("model %v does not satisfy clause %v", model, c)
		}
	}
}

func TestSolve_unitClauseSat(t *testing.T) {
	f := buildFormula(t, 1, [][]int{{1}})
	s, err := New(f, DefaultOptions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := s.Solve()
	if res.Status != sat.StatusSat {
		t.Fatalf("Status = %v, want Sat", res.Status)
	}
	checkModel(t, f, res.Model)
}

func TestSolve_directConflictUnsat(t *testing.T) {
	f := buildFormula(t, 1, [][]int{{1}, {-1}})
	s, err := New(f, DefaultOptions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res := s.Solve(); res.Status != sat.StatusUnsat {
		t.Fatalf("Status = %v, want Unsat", res.Status)
	}
}

func TestSolve_pigeonholeUnsat(t *testing.T) {
	v := func(p, h int) int { return p*2 + h + 1 }

	var clauses [][]int
	for p := 0; p < 4; p++ {
		clauses = append(clauses, []int{v(p, 0), v(p, 1)})
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 4; p1++ {
			for p2 := p1 + 1; p2 < 4; p2++ {
				clauses = append(clauses, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}

	for _, restart := range []RestartPolicy{RestartNever, RestartFixed, RestartGeom, RestartLuby} {
		for _, deletion := range []DeletionPolicy{DeletionNever, DeletionBerkMin} {
			opts := DefaultOptions
			opts.Restart = restart
			opts.RestartFixed = 2
			opts.Deletion = deletion

			f := buildFormula(t, 8, clauses)
			s, err := New(f, opts)
			if err != nil {
				t.Fatalf("restart=%s deletion=%s: New: %v", restart, deletion, err)
			}
			if res := s.Solve(); res.Status != sat.StatusUnsat {
				t.Fatalf("restart=%s deletion=%s: Status = %v, want Unsat", restart, deletion, res.Status)
			}
		}
	}
}

func TestSolve_backtrackRequired(t *testing.T) {
	f := buildFormula(t, 3, [][]int{
		{1, 2},
		{1, -2, 3},
		{-1, 2, 3},
		{-1, -2, -3},
		{1, -2, -3},
	})
	s, err := New(f, DefaultOptions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := s.Solve()
	if res.Status != sat.StatusSat {
		t.Fatalf("Status = %v, want Sat", res.Status)
	}
	checkModel(t, f, res.Model)
}

func TestSolve_emitsDRUPRefutation(t *testing.T) {
	f := buildFormula(t, 1, [][]int{{1}, {-1}})

	var buf writerBuf
	w := proof.NewWriter(&buf)

	opts := DefaultOptions
	opts.Proof = w
	s, err := New(f, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res := s.Solve(); res.Status != sat.StatusUnsat {
		t.Fatalf("Status = %v, want Unsat", res.Status)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.String() == "" {
		t.Error("expected a non-empty DRUP proof for an unsatisfiable formula")
	}
}

func TestSolve_budgetExhausted(t *testing.T) {
	v := func(p, h int) int { return p*2 + h + 1 }
	var clauses [][]int
	for p := 0; p < 4; p++ {
		clauses = append(clauses, []int{v(p, 0), v(p, 1)})
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 4; p1++ {
			for p2 := p1 + 1; p2 < 4; p2++ {
				clauses = append(clauses, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	f := buildFormula(t, 8, clauses)
	opts := DefaultOptions
	opts.Budget = sat.Budget{MaxConflict: 1}
	s, err := New(f, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res := s.Solve(); res.Status != sat.StatusUnknown {
		t.Fatalf("Status = %v, want Unknown (budget exhausted)", res.Status)
	}
}

// writerBuf is a minimal io.Writer sink, avoiding a bytes.Buffer import just
// for String().
type writerBuf struct {
	data []byte
}

func (b *writerBuf) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *writerBuf) String() string { return string(b.data) }
