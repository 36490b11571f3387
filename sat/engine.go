package sat

// watcher attaches a clause to the watch list of one of its two watched
// literals, together with a guard literal (the clause's other watch). If
// the guard is already true the clause can be skipped without touching it,
// per spec.md §4.3 step 1.
type watcher struct {
	clause *Clause
	guard  Literal
}

// Engine is the Assignment & Trail (spec.md §4.2) plus the two-watched-
// literal unit propagation engine (spec.md §4.3). It is embedded by both
// dpll.Solver and cdcl.Solver so that BCP, the trail, and the watch lists
// are implemented exactly once and shared between them, per spec.md §2.
type Engine struct {
	constraints []*Clause
	learnts     []*Clause

	clauseInc   float64
	clauseDecay float64

	watchers  [][]watcher
	propQueue *litQueue

	assigns []LBool
	trail   []Literal
	// trailLim holds, for each decision level d >= 1, the trail index of
	// the first literal assigned at that level (its decision literal).
	trailLim []int
	reason   []*Clause
	level    []int

	unsat bool

	seenVar *resetSet

	tmpWatchers []watcher
	tmpReason   []Literal
}

// NewEngine returns an empty engine ready to have variables and clauses
// added via AddVariable/LoadFormula.
func NewEngine() *Engine {
	return &Engine{
		clauseInc:   1,
		clauseDecay: 0.999,
		propQueue:   newLitQueue(128),
		seenVar:     &resetSet{},
	}
}

// NumVariables returns the number of declared variables.
func (e *Engine) NumVariables() int { return len(e.assigns) / 2 }

// NumAssigned returns the number of variables currently assigned.
func (e *Engine) NumAssigned() int { return len(e.trail) }

// NumConstraints returns the number of original (non-learnt) clauses.
func (e *Engine) NumConstraints() int { return len(e.constraints) }

// Constraints exposes the original (non-learnt) clause database, used by
// heuristics that need to scan currently-unsatisfied clauses (spec.md
// §4.4). Callers must treat the returned slice as read-only.
func (e *Engine) Constraints() []*Clause { return e.constraints }

// Satisfied reports whether clause c has at least one literal currently
// true.
func (e *Engine) Satisfied(c *Clause) bool {
	for _, l := range c.literals {
		if e.Value(l) == True {
			return true
		}
	}
	return false
}

// NumLearnts returns the number of learnt clauses currently kept.
func (e *Engine) NumLearnts() int { return len(e.learnts) }

// Learnts exposes the learnt clause database for the clause deletion policy.
func (e *Engine) Learnts() []*Clause { return e.learnts }

// SetLearnts replaces the learnt clause database, used by the clause
// deletion policy after it has filtered the slice in place.
func (e *Engine) SetLearnts(learnts []*Clause) { e.learnts = learnts }

// Unsat reports whether the engine has already detected a root-level
// conflict.
func (e *Engine) Unsat() bool { return e.unsat }

// MarkUnsat records a root-level conflict.
func (e *Engine) MarkUnsat() { e.unsat = true }

// AddVariable grows all per-variable/per-literal bookkeeping by one
// variable and returns its (zero-based) ID.
func (e *Engine) AddVariable() int {
	id := e.NumVariables()
	e.watchers = append(e.watchers, nil, nil)
	e.reason = append(e.reason, nil)
	e.level = append(e.level, -1)
	e.assigns = append(e.assigns, Unknown, Unknown)
	e.seenVar.Expand()
	return id
}

// LoadFormula declares NumVars() variables and adds every clause of f to
// the engine as an original constraint. It must be called before any
// decision is made.
func (e *Engine) LoadFormula(f *Formula) error {
	for i := 0; i < f.NumVars(); i++ {
		e.AddVariable()
	}
	for _, c := range f.Clauses() {
		if err := e.AddClause(c); err != nil {
			return err
		}
	}
	return nil
}

// AddClause adds an original clause to the engine. It must only be called
// at decision level 0.
func (e *Engine) AddClause(lits []Literal) error {
	tmp := append([]Literal(nil), lits...)
	c, ok := NewClause(e, tmp, false)
	if c != nil {
		e.constraints = append(e.constraints, c)
	}
	if !ok {
		e.unsat = true
	}
	return nil
}

func (e *Engine) watch(c *Clause, at Literal, guard Literal) {
	e.watchers[at] = append(e.watchers[at], watcher{clause: c, guard: guard})
}

func (e *Engine) unwatch(c *Clause, at Literal) {
	ws := e.watchers[at]
	j := 0
	for i := range ws {
		if ws[i].clause != c {
			ws[j] = ws[i]
			j++
		}
	}
	e.watchers[at] = ws[:j]
}

// Value returns the current truth value of literal l.
func (e *Engine) Value(l Literal) LBool { return e.assigns[l] }

// VarValue returns the current truth value of variable v (as the value of
// its positive literal).
func (e *Engine) VarValue(v int) LBool { return e.assigns[PositiveLiteral(v)] }

// DecisionLevel returns the current decision level (0 = top level).
func (e *Engine) DecisionLevel() int { return len(e.trailLim) }

// VarLevel returns the decision level at which variable v was assigned, or
// -1 if it is currently unassigned.
func (e *Engine) VarLevel(v int) int { return e.level[v] }

// Reason returns the antecedent clause of variable v's assignment, or nil
// if v is unassigned or was a decision.
func (e *Engine) Reason(v int) *Clause { return e.reason[v] }

// Trail returns the assignment trail in order.
func (e *Engine) Trail() []Literal { return e.trail }

// DecisionBoundary returns the trail index of the decision literal for the
// given 1-based decision level.
func (e *Engine) DecisionBoundary(level int) int { return e.trailLim[level-1] }

// enqueue records l as true with the given antecedent (nil for a decision),
// returning false if l is already false (a conflicting assignment).
func (e *Engine) enqueue(l Literal, from *Clause) bool {
	switch e.Value(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		e.assigns[l] = True
		e.assigns[l.Opposite()] = False
		e.level[v] = e.DecisionLevel()
		e.reason[v] = from
		e.trail = append(e.trail, l)
		e.propQueue.Push(l)
		return true
	}
}

// Assume pushes a new decision level and assigns l as a decision literal.
// It returns false if l was already false.
func (e *Engine) Assume(l Literal) bool {
	e.trailLim = append(e.trailLim, len(e.trail))
	return e.enqueue(l, nil)
}

// Propagate runs BCP to fixpoint (spec.md §4.3): it pops literals from the
// propagation queue and, for each, scans the watch list of its complement,
// moving watches or enqueuing implications as needed. It returns the first
// conflicting clause encountered, or nil once the queue is empty with no
// conflict (the BCP fixpoint property of spec.md §8).
func (e *Engine) Propagate() *Clause {
	for e.propQueue.Size() > 0 {
		l := e.propQueue.Pop()

		e.tmpWatchers = append(e.tmpWatchers[:0], e.watchers[l]...)
		e.watchers[l] = e.watchers[l][:0]

		for i, w := range e.tmpWatchers {
			if e.Value(w.guard) == True {
				e.watchers[l] = append(e.watchers[l], w)
				continue
			}

			if w.clause.Propagate(e, l) {
				continue
			}

			e.watchers[l] = append(e.watchers[l], e.tmpWatchers[i+1:]...)
			e.propQueue.Clear()
			return e.tmpWatchers[i].clause
		}
	}
	return nil
}

// undoOne unassigns the most recently trailed literal, restoring it to
// Unknown.
func (e *Engine) undoOne() Literal {
	l := e.trail[len(e.trail)-1]
	v := l.VarID()
	e.assigns[l] = Unknown
	e.assigns[l.Opposite()] = Unknown
	e.reason[v] = nil
	e.level[v] = -1
	e.trail = e.trail[:len(e.trail)-1]
	return l
}

// BacktrackTo pops the trail until every literal with decision level
// greater than level has been unassigned, restoring the invariant that the
// trail is consistent with Value at all times (spec.md §4.2). undone, if
// non-nil, is called with each unassigned literal in LIFO order so that
// callers (e.g. VSIDS phase saving, heuristic reinsertion) can react.
func (e *Engine) BacktrackTo(level int, undone func(Literal)) {
	for e.DecisionLevel() > level {
		boundary := e.trailLim[len(e.trailLim)-1]
		for len(e.trail) > boundary {
			l := e.undoOne()
			if undone != nil {
				undone(l)
			}
		}
		e.trailLim = e.trailLim[:len(e.trailLim)-1]
	}
	e.propQueue.Clear()
}

// ExplainFailure returns the negation of every literal of the conflicting
// clause c, used by conflict analysis when c is the conflict itself.
func (e *Engine) ExplainFailure(c *Clause) []Literal {
	return c.explainFailure(e)
}

// ExplainAssign returns the negation of every literal of c but the asserted
// one (c.Literals()[0]), used by conflict analysis when c is the antecedent
// of an implied literal.
func (e *Engine) ExplainAssign(c *Clause) []Literal {
	return c.explainAssign(e)
}

func (e *Engine) bumpClauseActivity(c *Clause) {
	c.activity += e.clauseInc
	if c.activity > 1e100 {
		e.clauseInc *= 1e-100
		for _, l := range e.learnts {
			l.activity *= 1e-100
		}
	}
}

// DecayClauseActivity implements the clause-activity decay of spec.md
// §4.6's berk-min policy by growing the shared bump increment.
func (e *Engine) DecayClauseActivity() {
	e.clauseInc /= e.clauseDecay
}

// Simplify removes clauses satisfied at the root level from both the
// constraint and learnt databases. It must only be called at decision
// level 0. It first propagates any pending literals and returns false,
// marking the engine unsat, if that yields a conflict.
func (e *Engine) Simplify() bool {
	if e.unsat || e.Propagate() != nil {
		e.unsat = true
		return false
	}
	e.simplifySlice(&e.learnts)
	e.simplifySlice(&e.constraints)
	return true
}

func (e *Engine) simplifySlice(clauses *[]*Clause) {
	cs := *clauses
	j := 0
	for _, c := range cs {
		if c.Simplify(e) {
			c.remove(e)
		} else {
			cs[j] = c
			j++
		}
	}
	*clauses = cs[:j]
}

// RecordLearnt adds a learnt clause derived from conflict analysis,
// enqueuing its asserting literal (clause[0]) and appending the clause to
// the learnt database. lits[0] must already be the asserting literal.
func (e *Engine) RecordLearnt(lits []Literal) *Clause {
	c, _ := NewClause(e, lits, true)
	e.enqueue(lits[0], c)
	if c != nil {
		e.learnts = append(e.learnts, c)
	}
	return c
}

// RemoveLearnt unwatches and drops a single learnt clause. Callers are
// responsible for removing it from the Learnts() slice and for only doing
// so at decision level 0, outside of propagation (spec.md §5).
func (e *Engine) RemoveLearnt(c *Clause) {
	c.remove(e)
}

// Locked reports whether c is currently the antecedent of a trail literal,
// meaning it must not be deleted (spec.md §4.6).
func (e *Engine) Locked(c *Clause) bool { return c.locked(e) }

// SeenClear resets the shared "seen variable" set used by conflict
// analysis, in O(1).
func (e *Engine) SeenClear() { e.seenVar.Clear() }

// SeenAdd marks variable v as seen.
func (e *Engine) SeenAdd(v int) { e.seenVar.Add(v) }

// SeenContains reports whether variable v has been marked seen since the
// last SeenClear.
func (e *Engine) SeenContains(v int) bool { return e.seenVar.Contains(v) }
