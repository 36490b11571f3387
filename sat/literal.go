// Package sat provides the CNF data model, the assignment trail, and the
// two-watched-literal unit propagation engine shared by the dpll and cdcl
// solvers.
package sat

import "fmt"

// Literal represents a reference to a boolean variable, either the variable
// itself or its negation. Literals use a dense encoding (2*varID + sign) so
// that they can index directly into per-literal slices such as watch lists.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether l represents the variable itself rather than
// its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the complementary literal (same variable, opposite sign).
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Signed returns the DIMACS-style signed integer for l, given that DIMACS
// variable numbers are 1-based (internal varID 0 corresponds to DIMACS
// variable 1).
func (l Literal) Signed() int {
	n := l.VarID() + 1
	if !l.IsPositive() {
		n = -n
	}
	return n
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
