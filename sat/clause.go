package sat

import "strings"

// Clause is a disjunction of literals with no duplicate variable, stored in
// an arena owned by the Formula/Engine that created it. Clauses of length
// zero or one never materialize as a *Clause: they are resolved immediately
// (the empty clause marks the formula unsat, unit clauses are enqueued
// directly), per spec.md §3.
type Clause struct {
	// Literals always holds at least two entries for a live clause.
	// literals[0] and literals[1] are the two watched literals.
	literals []Literal

	// Activity is bumped whenever the clause participates in conflict
	// analysis (spec.md §4.6's berk-min policy) and decays via the shared
	// clause activity increment.
	activity float64

	// LBD is the literal block distance: the number of distinct decision
	// levels among the clause's literals, computed when the clause is
	// learnt (spec.md §4.6).
	lbd int

	learnt    bool
	protected bool
}

// NewClause constructs a clause from literals, normalizing it if it is an
// original (non-learnt) clause: duplicate literals are removed, the clause
// is dropped (reported via the second return) if it contains a literal and
// its complement (a tautology) or is already satisfied by the engine's
// current assignment, and literals falsified at the root level are removed.
//
// The returned bool is false only if adding the clause makes the formula
// immediately unsatisfiable (the clause reduces to the empty clause); it is
// true for tautological/satisfied clauses that are simply dropped, for unit
// clauses (enqueued directly, no *Clause is allocated) and for ordinary
// multi-literal clauses.
func NewClause(eng *Engine, lits []Literal, learnt bool) (*Clause, bool) {
	size := len(lits)

	if !learnt {
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[lits[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[lits[i]]; ok {
				size--
				lits[i], lits[size] = lits[size], lits[i]
				continue
			}
			seen[lits[i]] = struct{}{}

			switch eng.Value(lits[i]) {
			case True:
				return nil, true // already satisfied
			case False:
				size--
				lits[i], lits[size] = lits[size], lits[i]
			}
		}
		lits = lits[:size]
	}

	switch size {
	case 0:
		return nil, false // empty clause: unsat
	case 1:
		return nil, eng.enqueue(lits[0], nil)
	default:
		c := &Clause{
			learnt:   learnt,
			literals: append([]Literal(nil), lits...),
		}
		if learnt {
			// Watch the asserting literal (index 0, placed there by the
			// caller) and the literal with the highest decision level among
			// the rest, so that backjumping immediately re-triggers
			// propagation through this clause.
			maxLevel, at := -1, 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := eng.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel, at = lvl, i
				}
			}
			c.literals[1], c.literals[at] = c.literals[at], c.literals[1]
		}
		eng.watch(c, c.literals[0].Opposite(), c.literals[1])
		eng.watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

// Literals returns the clause's current literals. The returned slice must
// not be retained across calls that mutate the clause (Propagate, Simplify).
func (c *Clause) Literals() []Literal { return c.literals }

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int { return len(c.literals) }

// Learnt reports whether the clause was derived by conflict analysis rather
// than given as part of the original formula.
func (c *Clause) Learnt() bool { return c.learnt }

// LBD returns the clause's literal block distance, valid for learnt clauses.
func (c *Clause) LBD() int { return c.lbd }

// Activity returns the clause's current activity score.
func (c *Clause) Activity() float64 { return c.activity }

// HalveActivity divides the clause's activity score in two, used by the
// berk-min deletion policy's periodic activity halving (spec.md §4.6).
func (c *Clause) HalveActivity() { c.activity /= 2 }

// SetLBD sets the clause's literal block distance, computed by conflict
// analysis when the clause is learnt.
func (c *Clause) SetLBD(lbd int) { c.lbd = lbd }

func (c *Clause) locked(eng *Engine) bool {
	return eng.reason[c.literals[0].VarID()] == c
}

// remove unwatches the clause from both of its watch lists. It does not
// otherwise invalidate the clause; callers must also drop all references.
func (c *Clause) remove(eng *Engine) {
	eng.unwatch(c, c.literals[0].Opposite())
	eng.unwatch(c, c.literals[1].Opposite())
}

// Simplify drops falsified literals and reports whether the clause is
// satisfied at the root level (in which case it should be removed by the
// caller). Only valid to call at decision level 0.
func (c *Clause) Simplify(eng *Engine) bool {
	j := 0
	for _, l := range c.literals {
		switch eng.Value(l) {
		case True:
			return true
		case False:
			// drop
		default:
			c.literals[j] = l
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// Propagate is invoked when literal l (one of the clause's two watched
// literals, in its opposite/falsified form) becomes false. It implements
// the two-watched-literal scan of spec.md §4.3: find a replacement watch if
// one exists, otherwise either confirm satisfaction, enqueue the unit
// implication, or (by returning false) signal a conflict.
func (c *Clause) Propagate(eng *Engine, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if eng.Value(c.literals[0]) == True {
		eng.watch(c, l, c.literals[0])
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if eng.Value(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			eng.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	eng.watch(c, l, c.literals[0])
	return eng.enqueue(c.literals[0], c)
}

// explainFailure returns the negation of every literal in c, used when c is
// the conflicting clause itself during conflict analysis.
func (c *Clause) explainFailure(eng *Engine) []Literal {
	out := make([]Literal, 0, len(c.literals))
	for _, l := range c.literals {
		out = append(out, l.Opposite())
	}
	if c.learnt {
		eng.bumpClauseActivity(c)
	}
	return out
}

// explainAssign returns the negation of every literal but the asserted one
// (literals[0]), used when c is the antecedent of an implied literal.
func (c *Clause) explainAssign(eng *Engine) []Literal {
	out := make([]Literal, 0, len(c.literals)-1)
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	if c.learnt {
		eng.bumpClauseActivity(c)
	}
	return out
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
