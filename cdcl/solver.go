// Package cdcl implements the Conflict-Driven Clause Learning solver of
// spec.md §4.6: a state machine alternating unit propagation, VSIDS-guided
// decisions, first-UIP conflict analysis, non-chronological backjumping,
// restarts, and clause deletion.
//
// Only the relsat learning schema (first-UIP) is supported, matching
// spec.md's note that "other schemas are not supported".
package cdcl

import (
	"fmt"
	"log"

	"github.com/adrianhallmark/satcore/proof"
	"github.com/adrianhallmark/satcore/sat"
)

// Options configures a Solver. New replaces a zero VariableDecay,
// RestartFixed, RestartGeomK0, RestartGeomR or RestartLubyBase with its
// DefaultOptions value. PhaseSaving, Restart and Deletion are used as given:
// an empty Restart or Deletion selects no restarts or no deletion.
type Options struct {
	VariableDecay float64
	ClauseDecay   float64
	PhaseSaving   bool

	Restart         RestartPolicy
	RestartFixed    int64   // conflicts per restart, "fixed" policy
	RestartGeomK0   float64 // initial conflict budget, "geom" policy
	RestartGeomR    float64 // growth factor, "geom" policy (spec.md: r ~= 1.5)
	RestartLubyBase int64   // base unit, "luby" policy (spec.md: ~= 32)

	Deletion DeletionPolicy

	// Budget bounds the search per spec.md §4.9's interruptible execution
	// harness: cancellation, time limits, or a conflict ceiling.
	Budget sat.Budget

	// Proof, if non-nil, receives every learnt clause as it is added and
	// every learnt clause the deletion policy removes (spec.md §4.8). Learnt
	// clauses that Engine.Simplify drops or shortens at decision level 0 are
	// not reported. Only meaningful for CDCL (spec.md: "Available only when
	// CDCL is selected").
	Proof proof.Emitter
}

// DefaultOptions mirrors the CLI defaults of spec.md §6.
var DefaultOptions = Options{
	VariableDecay:   0.95,
	ClauseDecay:     0.999,
	PhaseSaving:     true,
	Restart:         RestartLuby,
	RestartFixed:    100,
	RestartGeomK0:   100,
	RestartGeomR:    1.5,
	RestartLubyBase: 32,
	Deletion:        DeletionBerkMin,
}

// Solver is a CDCL SAT solver (spec.md §4.6).
type Solver struct {
	eng   *sat.Engine
	order *vsidsOrder

	restart  restartSchedule
	deletion deletionManager
	proof    proof.Emitter
	budget   sat.Budget

	Conflicts int64
	Decisions int64
	Restarts  int64
}

// New builds a CDCL solver for the given formula.
func New(f *sat.Formula, opts Options) (*Solver, error) {
	if opts.VariableDecay == 0 {
		opts.VariableDecay = DefaultOptions.VariableDecay
	}
	if opts.RestartFixed == 0 {
		opts.RestartFixed = DefaultOptions.RestartFixed
	}
	if opts.RestartGeomK0 == 0 {
		opts.RestartGeomK0 = DefaultOptions.RestartGeomK0
	}
	if opts.RestartGeomR == 0 {
		opts.RestartGeomR = DefaultOptions.RestartGeomR
	}
	if opts.RestartLubyBase == 0 {
		opts.RestartLubyBase = DefaultOptions.RestartLubyBase
	}
	eng := sat.NewEngine()
	order := newVSIDSOrder(opts.VariableDecay, opts.PhaseSaving)

	s := &Solver{
		eng:      eng,
		order:    order,
		restart:  newRestartSchedule(opts.Restart, opts.RestartFixed, opts.RestartGeomK0, opts.RestartGeomR, opts.RestartLubyBase),
		deletion: newDeletionManager(opts.Deletion),
		proof:    opts.Proof,
		budget:   opts.Budget,
	}

	for i := 0; i < f.NumVars(); i++ {
		eng.AddVariable()
		order.addVar()
	}
	for _, c := range f.Clauses() {
		if err := eng.AddClause(c); err != nil {
			return nil, fmt.Errorf("cdcl: %w", err)
		}
	}
	return s, nil
}

func (s *Solver) bumpVar(v int) {
	s.order.bump(v)
}

// Solve runs the CDCL state machine to completion, cancellation, or
// timeout (spec.md §4.6, §4.9).
func (s *Solver) Solve() sat.Result {
	if s.eng.Unsat() {
		return s.unsatResult()
	}

	reducePending := false
	for {
		if s.eng.DecisionLevel() == 0 {
			if !s.eng.Simplify() {
				return s.unsatResult()
			}
			if reducePending {
				s.reduceLearnts()
				reducePending = false
			}
		}

		if s.budget.Exhausted(s.Conflicts) {
			return sat.Result{Status: sat.StatusUnknown, Conflicts: s.Conflicts, Decisions: s.Decisions, Restarts: s.Restarts}
		}

		conflict := s.eng.Propagate()
		if conflict != nil {
			s.Conflicts++

			if s.eng.DecisionLevel() == 0 {
				s.eng.MarkUnsat()
				return s.unsatResult()
			}

			learnt, backjumpLevel, lbd := s.analyze(conflict)
			s.eng.BacktrackTo(backjumpLevel, func(l sat.Literal) {
				s.order.reinsert(l.VarID(), sat.Lift(l.IsPositive()))
			})

			c := s.eng.RecordLearnt(learnt)
			if s.proof != nil {
				s.proof.Add(signedLits(learnt))
			}
			if c != nil {
				c.SetLBD(lbd)
				if s.deletion.learntAdded() {
					reducePending = true
				}
			}

			s.eng.DecayClauseActivity()
			s.order.decayAll()

			if s.restart.conflict() {
				s.doRestart()
			}
			continue
		}

		// No conflict.
		lit, ok := s.order.next(s.eng)
		if !ok {
			return s.done()
		}
		s.Decisions++
		if !s.eng.Assume(lit) {
			log.Panicf("cdcl: assume(%v) conflicted immediately after VSIDS reported it unassigned", lit)
		}
	}
}

func (s *Solver) reduceLearnts() {
	before := make(map[*sat.Clause]bool, len(s.eng.Learnts()))
	for _, c := range s.eng.Learnts() {
		before[c] = true
	}
	s.deletion.reduce(s.eng)
	if s.proof == nil {
		return
	}
	after := make(map[*sat.Clause]bool, len(s.eng.Learnts()))
	for _, c := range s.eng.Learnts() {
		after[c] = true
	}
	for c := range before {
		if !after[c] {
			s.proof.Delete(signedLits(c.Literals()))
		}
	}
}

// doRestart backjumps to level 0 while retaining every learnt clause and
// the VSIDS state, per spec.md §4.6.
func (s *Solver) doRestart() {
	s.Restarts++
	s.eng.BacktrackTo(0, func(l sat.Literal) {
		s.order.reinsert(l.VarID(), sat.Lift(l.IsPositive()))
	})
}

func (s *Solver) done() sat.Result {
	model := make([]bool, s.eng.NumVariables())
	for v := range model {
		lb := s.eng.VarValue(v)
		if lb == sat.Unknown {
			log.Panicf("cdcl: variable %d unassigned at a reported solution", v)
		}
		model[v] = lb == sat.True
	}
	return sat.Result{
		Status:    sat.StatusSat,
		Model:     model,
		Conflicts: s.Conflicts,
		Decisions: s.Decisions,
		Restarts:  s.Restarts,
	}
}

// unsatResult finalizes an UNSAT outcome, emitting the empty clause that
// terminates a DRUP refutation (spec.md §4.8) when a proof is being
// recorded.
func (s *Solver) unsatResult() sat.Result {
	if s.proof != nil {
		s.proof.Add(nil)
	}
	return sat.Result{
		Status:    sat.StatusUnsat,
		Conflicts: s.Conflicts,
		Decisions: s.Decisions,
		Restarts:  s.Restarts,
	}
}

// signedLits converts internal literals to DIMACS-signed ints for proof
// emission.
func signedLits(lits []sat.Literal) []int {
	out := make([]int, len(lits))
	for i, l := range lits {
		out[i] = l.Signed()
	}
	return out
}
