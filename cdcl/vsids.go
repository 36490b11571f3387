package cdcl

import (
	"github.com/rhartert/yagh"

	"github.com/adrianhallmark/satcore/sat"
)

// vsidsOrder maintains per-variable VSIDS activity (spec.md §4.4's CDCL-only
// heuristic) plus phase saving. It is grounded on the teacher's
// internal/sat/ordering.go almost directly, including the rescaling
// threshold and the decay-by-growing-increment trick.
type vsidsOrder struct {
	heap *yagh.IntMap[float64]

	scores   []float64
	scoreInc float64
	decay    float64

	// phases holds the last value each variable was assigned, used to pick
	// the branching polarity (phase saving). The Open Question in spec.md
	// §9 is resolved by starting every variable at False before it has ever
	// been assigned.
	phases      []sat.LBool
	phaseSaving bool
}

func newVSIDSOrder(decay float64, phaseSaving bool) *vsidsOrder {
	return &vsidsOrder{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

// addVar registers a new variable with zero initial activity and the
// default saved phase (False, per the Open Question resolution above).
func (vo *vsidsOrder) addVar() {
	v := len(vo.phases)
	vo.scores = append(vo.scores, 0)
	vo.phases = append(vo.phases, sat.False)
	vo.heap.GrowBy(1)
	vo.heap.Put(v, 0)
}

// reinsert adds variable v back to the candidate set when it becomes
// unassigned (e.g. on backtrack), recording the value it held so phase
// saving can use it next time the variable is branched on. Callers must
// pass the value v held just before it was unassigned (e.g. derived from
// the trailed literal via sat.Lift(l.IsPositive())): by the time a
// BacktrackTo callback runs, the engine itself already reports v as
// Unknown, so reading it back from the engine would always save False.
func (vo *vsidsOrder) reinsert(v int, val sat.LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.heap.Put(v, -vo.scores[v])
}

// bump increases v's activity, rescaling every variable's score (and the
// shared increment) if the ceiling is exceeded so relative ordering is
// preserved. Per spec.md §4.4, called for every variable touched while
// resolving a conflict.
func (vo *vsidsOrder) bump(v int) {
	vo.scores[v] += vo.scoreInc
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.scores[v])
	}
	if vo.scores[v] > 1e100 {
		vo.rescale()
	}
}

// decayAll implements VSIDS decay (spec.md §4.4) by growing the shared bump
// increment rather than shrinking every score, an O(1) substitute for
// multiplying every activity by the decay factor.
func (vo *vsidsOrder) decayAll() {
	vo.scoreInc /= vo.decay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

func (vo *vsidsOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		vo.scores[v] = s * 1e-100
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.scores[v])
		}
	}
}

// next pops the unassigned variable of maximum activity and returns the
// literal to branch on, using the saved phase for polarity (spec.md §4.4).
func (vo *vsidsOrder) next(eng *sat.Engine) (sat.Literal, bool) {
	for {
		item, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if eng.VarValue(item.Elem) != sat.Unknown {
			continue // stale entry: variable already assigned
		}
		if vo.phases[item.Elem] == sat.False {
			return sat.NegativeLiteral(item.Elem), true
		}
		return sat.PositiveLiteral(item.Elem), true
	}
}
