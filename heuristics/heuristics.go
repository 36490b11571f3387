// Package heuristics implements the DPLL branching heuristics of spec.md
// §4.4: naive, DLIS, DLCS, MOM, and Jeroslow-Wang. Each heuristic consumes
// the current formula and assignment and returns an unassigned literal to
// branch on.
//
// Tie-breaking is deterministic across every heuristic: lower variable ID
// first, then positive polarity before negative, unless the heuristic's own
// scoring already picked a polarity.
package heuristics

import (
	"fmt"

	"github.com/adrianhallmark/satcore/sat"
)

// Heuristic selects the next decision literal from the engine's current
// unsatisfied clauses.
type Heuristic interface {
	Name() string

	// Choose returns the literal to branch on next, or ok=false if every
	// variable is already assigned.
	Choose(eng *sat.Engine) (lit sat.Literal, ok bool)
}

// unassignedVars returns the IDs of every variable with no current value,
// in ascending order.
func unassignedVars(eng *sat.Engine) []int {
	vars := make([]int, 0, eng.NumVariables())
	for v := 0; v < eng.NumVariables(); v++ {
		if eng.VarValue(v) == sat.Unknown {
			vars = append(vars, v)
		}
	}
	return vars
}

// unsatisfiedClauses returns the literal slices of every original clause
// not currently satisfied.
func unsatisfiedClauses(eng *sat.Engine) [][]sat.Literal {
	var out [][]sat.Literal
	for _, c := range eng.Constraints() {
		if !eng.Satisfied(c) {
			out = append(out, c.Literals())
		}
	}
	return out
}

// occurrences counts, over the given clauses, how many contain each
// literal.
func occurrences(clauses [][]sat.Literal, numVars int) (pos, neg []int) {
	pos = make([]int, numVars)
	neg = make([]int, numVars)
	for _, c := range clauses {
		for _, l := range c {
			if l.IsPositive() {
				pos[l.VarID()]++
			} else {
				neg[l.VarID()]++
			}
		}
	}
	return pos, neg
}

// pick builds the literal for variable v using the given polarity
// preference (true = positive).
func pick(v int, positive bool) sat.Literal {
	if positive {
		return sat.PositiveLiteral(v)
	}
	return sat.NegativeLiteral(v)
}

// ByName returns the heuristic registered under name (matching the
// --dpll-branching CLI values of spec.md §6), or an error if name is
// unrecognized.
func ByName(name string) (Heuristic, error) {
	switch name {
	case "naive":
		return Naive{}, nil
	case "DLIS":
		return DLIS{}, nil
	case "DLCS":
		return DLCS{}, nil
	case "MOM":
		return MOM{}, nil
	case "Jeroslaw-Wang", "Jeroslow-Wang":
		return JeroslowWang{}, nil
	default:
		return nil, fmt.Errorf("heuristics: unknown branching heuristic %q", name)
	}
}
