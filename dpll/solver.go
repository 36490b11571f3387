// Package dpll implements the Davis-Putnam-Logemann-Loveland solver of
// spec.md §4.5: backtracking search with a pluggable branching heuristic
// and unit propagation / pure-literal simplification, sharing its BCP
// engine with cdcl via sat.Engine.
//
// The search is an explicit stack of frames rather than a recursive
// function, per spec.md §9's design note ("Recursive DPLL: re-architect as
// an explicit stack to avoid call-stack blowup on large instances"). Each
// frame records one heuristic decision. Pure-literal assignments also go
// through Engine.Assume and so open decision levels of their own with no
// frame; frame i's decision therefore sits at decision level i+1 or deeper.
package dpll

import (
	"fmt"
	"log"

	"github.com/adrianhallmark/satcore/heuristics"
	"github.com/adrianhallmark/satcore/sat"
)

// Options configures a Solver.
type Options struct {
	Heuristic heuristics.Heuristic
	Budget    sat.Budget
}

// DefaultOptions mirrors the CLI default of spec.md §6 (DLCS).
var DefaultOptions = Options{
	Heuristic: heuristics.DLCS{},
}

// frame is one level of the explicit search stack: which variable was
// decided at this level and which polarity(ies) have been tried so far.
type frame struct {
	variable      int
	triedPositive bool
	triedNegative bool
}

// Solver is a DPLL SAT solver (spec.md §4.5).
type Solver struct {
	eng       *sat.Engine
	heuristic heuristics.Heuristic
	budget    sat.Budget

	stack []frame

	Decisions int64
	Conflicts int64
}

// New builds a DPLL solver for the given formula.
func New(f *sat.Formula, opts Options) (*Solver, error) {
	if opts.Heuristic == nil {
		opts.Heuristic = heuristics.DLCS{}
	}
	eng := sat.NewEngine()
	s := &Solver{eng: eng, heuristic: opts.Heuristic, budget: opts.Budget}

	for i := 0; i < f.NumVars(); i++ {
		eng.AddVariable()
	}
	for _, c := range f.Clauses() {
		if err := eng.AddClause(c); err != nil {
			return nil, fmt.Errorf("dpll: %w", err)
		}
	}
	return s, nil
}

// Solve runs DPLL to completion, cancellation, or timeout.
func (s *Solver) Solve() sat.Result {
	if s.eng.Unsat() {
		return sat.Result{Status: sat.StatusUnsat}
	}

	if !s.propagateAndSimplify() {
		return sat.Result{Status: sat.StatusUnsat}
	}

	for {
		if s.budget.Exhausted(s.Conflicts) {
			return sat.Result{Status: sat.StatusUnknown, Decisions: s.Decisions, Conflicts: s.Conflicts}
		}

		if s.eng.NumAssigned() == s.eng.NumVariables() {
			return s.modelResult()
		}

		lit, ok := s.heuristic.Choose(s.eng)
		if !ok {
			return s.modelResult() // every variable assigned
		}

		s.pushDecision(lit)
		for !s.propagateAndSimplify() {
			s.Conflicts++
			if s.budget.Exhausted(s.Conflicts) {
				return sat.Result{Status: sat.StatusUnknown, Decisions: s.Decisions, Conflicts: s.Conflicts}
			}
			if !s.retryOrBacktrack() {
				return sat.Result{Status: sat.StatusUnsat, Decisions: s.Decisions, Conflicts: s.Conflicts}
			}
		}
	}
}

// pushDecision assigns lit as a new decision, recording the tried polarity
// in a fresh stack frame.
func (s *Solver) pushDecision(lit sat.Literal) {
	s.Decisions++
	s.eng.Assume(lit)
	s.stack = append(s.stack, frame{
		variable:      lit.VarID(),
		triedPositive: lit.IsPositive(),
		triedNegative: !lit.IsPositive(),
	})
}

// retryOrBacktrack handles a conflict: it undoes the deepest frame's
// assignments and either retries it with the complementary polarity (per
// spec.md §4.5: "backtrack one level and try the complementary polarity")
// or, if both polarities of that frame are exhausted, pops it and repeats
// on the parent frame ("if that also conflicts, backtrack further"). It
// reports false once the stack is empty (the whole search space is
// exhausted: UNSAT).
func (s *Solver) retryOrBacktrack() bool {
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		s.eng.BacktrackTo(len(s.stack)-1, nil)

		switch {
		case !top.triedPositive:
			top.triedPositive = true
			s.eng.Assume(sat.PositiveLiteral(top.variable))
			return true
		case !top.triedNegative:
			top.triedNegative = true
			s.eng.Assume(sat.NegativeLiteral(top.variable))
			return true
		default:
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	return false
}

// propagateAndSimplify runs BCP and the pure-literal rule to fixpoint
// (spec.md §4.5). It returns false if a conflict was found.
func (s *Solver) propagateAndSimplify() bool {
	for {
		if conflict := s.eng.Propagate(); conflict != nil {
			return false
		}
		lit, ok := s.pureLiteral()
		if !ok {
			return true
		}
		s.eng.Assume(lit)
	}
}

// pureLiteral implements the pure-literal rule of spec.md §4.5: if a
// variable occurs only positively (or only negatively) across every
// currently unsatisfied clause, it can be assigned to satisfy all of them.
func (s *Solver) pureLiteral() (sat.Literal, bool) {
	seenPos := make([]bool, s.eng.NumVariables())
	seenNeg := make([]bool, s.eng.NumVariables())

	for _, c := range s.eng.Constraints() {
		if s.eng.Satisfied(c) {
			continue
		}
		for _, l := range c.Literals() {
			if s.eng.Value(l) != sat.Unknown {
				continue
			}
			if l.IsPositive() {
				seenPos[l.VarID()] = true
			} else {
				seenNeg[l.VarID()] = true
			}
		}
	}

	for v := 0; v < s.eng.NumVariables(); v++ {
		if s.eng.VarValue(v) != sat.Unknown {
			continue
		}
		switch {
		case seenPos[v] && !seenNeg[v]:
			return sat.PositiveLiteral(v), true
		case seenNeg[v] && !seenPos[v]:
			return sat.NegativeLiteral(v), true
		}
	}
	return 0, false
}

func (s *Solver) modelResult() sat.Result {
	model := make([]bool, s.eng.NumVariables())
	for v := range model {
		lb := s.eng.VarValue(v)
		if lb == sat.Unknown {
			log.Panicf("dpll: variable %d unassigned at a reported solution", v)
		}
		model[v] = lb == sat.True
	}
	return sat.Result{Status: sat.StatusSat, Model: model, Decisions: s.Decisions, Conflicts: s.Conflicts}
}
